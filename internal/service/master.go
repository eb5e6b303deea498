package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

// Master data operations are thin pass-throughs with input validation; the
// repository owns not-found and duplicate translation.

func (s *service) CreateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return s.repo.UpdateCategory(ctx, category)
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	if strings.TrimSpace(supplier.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", ErrValidation)
	}
	return s.repo.CreateSupplier(ctx, supplier)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *service) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	if strings.TrimSpace(supplier.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", ErrValidation)
	}
	return s.repo.UpdateSupplier(ctx, supplier)
}

func (s *service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *service) CreateDivision(ctx context.Context, division *models.Division) error {
	if strings.TrimSpace(division.Name) == "" {
		return fmt.Errorf("%w: division name is required", ErrValidation)
	}
	return s.repo.CreateDivision(ctx, division)
}

func (s *service) ListDivisions(ctx context.Context) ([]*models.Division, error) {
	return s.repo.ListDivisions(ctx)
}

func (s *service) UpdateDivision(ctx context.Context, division *models.Division) error {
	if strings.TrimSpace(division.Name) == "" {
		return fmt.Errorf("%w: division name is required", ErrValidation)
	}
	return s.repo.UpdateDivision(ctx, division)
}

func (s *service) DeleteDivision(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDivision(ctx, id)
}

func (s *service) CreateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error {
	if err := validateApprovalLevel(level); err != nil {
		return err
	}
	return s.repo.CreateApprovalLevel(ctx, level)
}

func (s *service) ListApprovalLevels(ctx context.Context) ([]*models.ApprovalLevel, error) {
	return s.repo.ListApprovalLevels(ctx)
}

func (s *service) UpdateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error {
	if err := validateApprovalLevel(level); err != nil {
		return err
	}
	return s.repo.UpdateApprovalLevel(ctx, level)
}

func (s *service) DeleteApprovalLevel(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteApprovalLevel(ctx, id)
}

func validateApprovalLevel(level *models.ApprovalLevel) error {
	if strings.TrimSpace(level.Name) == "" {
		return fmt.Errorf("%w: approver name is required", ErrValidation)
	}
	if strings.TrimSpace(level.Email) == "" || !strings.Contains(level.Email, "@") {
		return fmt.Errorf("%w: a valid approver email is required", ErrValidation)
	}
	if level.LevelOrder <= 0 {
		return fmt.Errorf("%w: level order must be positive", ErrValidation)
	}
	if strings.TrimSpace(level.Division) == "" {
		return fmt.Errorf("%w: division is required", ErrValidation)
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, product *models.Product) error {
	if strings.TrimSpace(product.Code) == "" || strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: product code and name are required", ErrValidation)
	}
	if product.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}
	return s.repo.CreateProduct(ctx, product)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, product *models.Product) error {
	if strings.TrimSpace(product.Code) == "" || strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: product code and name are required", ErrValidation)
	}
	return s.repo.UpdateProduct(ctx, product)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}
