package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

func (r *repo) CreateProduct(ctx context.Context, product *models.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

func (r *repo) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *repo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("code ASC").
		Find(&products).Error
	return products, err
}

func (r *repo) UpdateProduct(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"code":           product.Code,
			"name":           product.Name,
			"description":    product.Description,
			"category_id":    product.CategoryID,
			"unit":           product.Unit,
			"min_stock":      product.MinStock,
			"purchase_price": product.PurchasePrice,
			"selling_price":  product.SellingPrice,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustProductStock applies a signed delta to the running balance.
// The ledger entry itself is written separately; this is the projection.
func (r *repo) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) CreateStockTransactions(ctx context.Context, transactions []*models.StockTransaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&transactions).Error
}

func (r *repo) ListStockTransactions(ctx context.Context, limit int) ([]*models.StockTransaction, error) {
	var transactions []*models.StockTransaction
	q := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *repo) ListStockTransactionsByReference(ctx context.Context, reference string) ([]*models.StockTransaction, error) {
	var transactions []*models.StockTransaction
	err := r.db.WithContext(ctx).
		Where("reference_number = ?", reference).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *repo) DeleteStockTransactionsByReference(ctx context.Context, reference string) error {
	return r.db.WithContext(ctx).
		Where("reference_number = ?", reference).
		Delete(&models.StockTransaction{}).Error
}

// Dashboard counts

func (r *repo) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *repo) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

func (r *repo) CountSuppliers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Supplier{}).Count(&count).Error
	return count, err
}

func (r *repo) CountDeliveryNotes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DeliveryNote{}).Count(&count).Error
	return count, err
}

func (r *repo) CountLowStockProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("stock_quantity <= min_stock").
		Count(&count).Error
	return count, err
}
