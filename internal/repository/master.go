package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

// Category operations

func (r *repo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repo) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repo) UpdateCategory(ctx context.Context, category *models.Category) error {
	result := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Supplier operations

func (r *repo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *repo) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	var suppliers []*models.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *repo) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	result := r.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]interface{}{
			"name":           supplier.Name,
			"contact_person": supplier.ContactPerson,
			"email":          supplier.Email,
			"phone":          supplier.Phone,
			"address":        supplier.Address,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Division operations

func (r *repo) CreateDivision(ctx context.Context, division *models.Division) error {
	return translateError(r.db.WithContext(ctx).Create(division).Error)
}

func (r *repo) ListDivisions(ctx context.Context) ([]*models.Division, error) {
	var divisions []*models.Division
	err := r.db.WithContext(ctx).Order("name ASC").Find(&divisions).Error
	return divisions, err
}

func (r *repo) UpdateDivision(ctx context.Context, division *models.Division) error {
	result := r.db.WithContext(ctx).Model(&models.Division{}).
		Where("id = ?", division.ID).
		Updates(map[string]interface{}{
			"name":        division.Name,
			"description": division.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteDivision(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Division{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApprovalLevel operations

func (r *repo) CreateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *repo) ListApprovalLevels(ctx context.Context) ([]*models.ApprovalLevel, error) {
	var levels []*models.ApprovalLevel
	err := r.db.WithContext(ctx).Order("division ASC, level_order ASC").Find(&levels).Error
	return levels, err
}

func (r *repo) ListApprovalLevelsByDivision(ctx context.Context, division string) ([]*models.ApprovalLevel, error) {
	var levels []*models.ApprovalLevel
	err := r.db.WithContext(ctx).
		Where("division = ?", division).
		Order("level_order ASC").
		Find(&levels).Error
	return levels, err
}

func (r *repo) UpdateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error {
	result := r.db.WithContext(ctx).Model(&models.ApprovalLevel{}).
		Where("id = ?", level.ID).
		Updates(map[string]interface{}{
			"name":        level.Name,
			"email":       level.Email,
			"level_order": level.LevelOrder,
			"division":    level.Division,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteApprovalLevel(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ApprovalLevel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
