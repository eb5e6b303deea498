package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

// Repository provides data access methods
type Repository interface {
	// Transaction support
	WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Supplier operations
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	// Division operations
	CreateDivision(ctx context.Context, division *models.Division) error
	ListDivisions(ctx context.Context) ([]*models.Division, error)
	UpdateDivision(ctx context.Context, division *models.Division) error
	DeleteDivision(ctx context.Context, id uuid.UUID) error

	// ApprovalLevel operations
	CreateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error
	ListApprovalLevels(ctx context.Context) ([]*models.ApprovalLevel, error)
	ListApprovalLevelsByDivision(ctx context.Context, division string) ([]*models.ApprovalLevel, error)
	UpdateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error
	DeleteApprovalLevel(ctx context.Context, id uuid.UUID) error

	// Product operations
	CreateProduct(ctx context.Context, product *models.Product) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error

	// StockTransaction operations
	CreateStockTransactions(ctx context.Context, transactions []*models.StockTransaction) error
	ListStockTransactions(ctx context.Context, limit int) ([]*models.StockTransaction, error)
	ListStockTransactionsByReference(ctx context.Context, reference string) ([]*models.StockTransaction, error)
	DeleteStockTransactionsByReference(ctx context.Context, reference string) error

	// DeliveryNote operations
	CreateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error
	FindDeliveryNoteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryNote, error)
	ListDeliveryNotes(ctx context.Context) ([]*models.DeliveryNote, error)
	UpdateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error
	DeleteDeliveryNote(ctx context.Context, id uuid.UUID) error
	UpdateNoteStatus(ctx context.Context, id uuid.UUID, status models.NoteStatus) error
	UpdateNoteApprovalStatus(ctx context.Context, id uuid.UUID, status models.NoteApprovalStatus) error
	CreateDeliveryNoteItems(ctx context.Context, items []*models.DeliveryNoteItem) error
	ListDeliveryNoteItems(ctx context.Context, noteID uuid.UUID) ([]*models.DeliveryNoteItem, error)
	DeleteDeliveryNoteItems(ctx context.Context, noteID uuid.UUID) error
	ListStalePendingNotes(ctx context.Context, olderThan time.Time) ([]*models.DeliveryNote, error)

	// Approval ledger operations
	CreateApprovalRecords(ctx context.Context, records []*models.DeliveryNoteApproval) error
	FindApprovalRecord(ctx context.Context, noteID, levelID uuid.UUID) (*models.DeliveryNoteApproval, error)
	FindPendingApprovalByToken(ctx context.Context, token string) (*models.DeliveryNoteApproval, error)
	ListApprovalsForNote(ctx context.Context, noteID uuid.UUID, division string) ([]*models.DeliveryNoteApproval, error)
	ResolveApprovalRecord(ctx context.Context, id uuid.UUID, status models.ApprovalStatus, approvedAt time.Time, notes string) error
	SetApprovalToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	DeleteApprovalRecords(ctx context.Context, noteID uuid.UUID) error

	// Dashboard counts
	CountProducts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountSuppliers(ctx context.Context) (int64, error)
	CountDeliveryNotes(ctx context.Context) (int64, error)
	CountLowStockProducts(ctx context.Context) (int64, error)
}

// repo is an implementation of the Repository interface
type repo struct {
	db *gorm.DB
}

// NewRepository creates a new repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repo{db: db}
}

// WithTransaction executes the given function within a database transaction
func (r *repo) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &repo{db: tx})
	})
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	}
	return err
}
