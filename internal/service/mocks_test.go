package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BersamaBelajar/gudang-pintar/internal/mailer"
	"github.com/BersamaBelajar/gudang-pintar/internal/messaging"
	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
)

// MockRepository is a testify mock of repository.Repository. WithTransaction
// runs the callback against the same mock so expectations set on it cover
// transactional calls too.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo repository.Repository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MockRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockRepository) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

func (m *MockRepository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CreateDivision(ctx context.Context, division *models.Division) error {
	return m.Called(ctx, division).Error(0)
}

func (m *MockRepository) ListDivisions(ctx context.Context) ([]*models.Division, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Division), args.Error(1)
}

func (m *MockRepository) UpdateDivision(ctx context.Context, division *models.Division) error {
	return m.Called(ctx, division).Error(0)
}

func (m *MockRepository) DeleteDivision(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CreateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error {
	return m.Called(ctx, level).Error(0)
}

func (m *MockRepository) ListApprovalLevels(ctx context.Context) ([]*models.ApprovalLevel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ApprovalLevel), args.Error(1)
}

func (m *MockRepository) ListApprovalLevelsByDivision(ctx context.Context, division string) ([]*models.ApprovalLevel, error) {
	args := m.Called(ctx, division)
	return args.Get(0).([]*models.ApprovalLevel), args.Error(1)
}

func (m *MockRepository) UpdateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error {
	return m.Called(ctx, level).Error(0)
}

func (m *MockRepository) DeleteApprovalLevel(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockRepository) CreateStockTransactions(ctx context.Context, transactions []*models.StockTransaction) error {
	return m.Called(ctx, transactions).Error(0)
}

func (m *MockRepository) ListStockTransactions(ctx context.Context, limit int) ([]*models.StockTransaction, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.StockTransaction), args.Error(1)
}

func (m *MockRepository) ListStockTransactionsByReference(ctx context.Context, reference string) ([]*models.StockTransaction, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).([]*models.StockTransaction), args.Error(1)
}

func (m *MockRepository) DeleteStockTransactionsByReference(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

func (m *MockRepository) CreateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockRepository) FindDeliveryNoteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryNote, error) {
	args := m.Called(ctx, id)
	if note := args.Get(0); note != nil {
		return note.(*models.DeliveryNote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListDeliveryNotes(ctx context.Context) ([]*models.DeliveryNote, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.DeliveryNote), args.Error(1)
}

func (m *MockRepository) UpdateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockRepository) DeleteDeliveryNote(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) UpdateNoteStatus(ctx context.Context, id uuid.UUID, status models.NoteStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRepository) UpdateNoteApprovalStatus(ctx context.Context, id uuid.UUID, status models.NoteApprovalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRepository) CreateDeliveryNoteItems(ctx context.Context, items []*models.DeliveryNoteItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockRepository) ListDeliveryNoteItems(ctx context.Context, noteID uuid.UUID) ([]*models.DeliveryNoteItem, error) {
	args := m.Called(ctx, noteID)
	return args.Get(0).([]*models.DeliveryNoteItem), args.Error(1)
}

func (m *MockRepository) DeleteDeliveryNoteItems(ctx context.Context, noteID uuid.UUID) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *MockRepository) ListStalePendingNotes(ctx context.Context, olderThan time.Time) ([]*models.DeliveryNote, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]*models.DeliveryNote), args.Error(1)
}

func (m *MockRepository) CreateApprovalRecords(ctx context.Context, records []*models.DeliveryNoteApproval) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockRepository) FindApprovalRecord(ctx context.Context, noteID, levelID uuid.UUID) (*models.DeliveryNoteApproval, error) {
	args := m.Called(ctx, noteID, levelID)
	if record := args.Get(0); record != nil {
		return record.(*models.DeliveryNoteApproval), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FindPendingApprovalByToken(ctx context.Context, token string) (*models.DeliveryNoteApproval, error) {
	args := m.Called(ctx, token)
	if record := args.Get(0); record != nil {
		return record.(*models.DeliveryNoteApproval), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListApprovalsForNote(ctx context.Context, noteID uuid.UUID, division string) ([]*models.DeliveryNoteApproval, error) {
	args := m.Called(ctx, noteID, division)
	return args.Get(0).([]*models.DeliveryNoteApproval), args.Error(1)
}

func (m *MockRepository) ResolveApprovalRecord(ctx context.Context, id uuid.UUID, status models.ApprovalStatus, approvedAt time.Time, notes string) error {
	return m.Called(ctx, id, status, approvedAt, notes).Error(0)
}

func (m *MockRepository) SetApprovalToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	return m.Called(ctx, id, token, expiresAt).Error(0)
}

func (m *MockRepository) DeleteApprovalRecords(ctx context.Context, noteID uuid.UUID) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *MockRepository) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountCategories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountSuppliers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountDeliveryNotes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountLowStockProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMailer records what would have been sent
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email mailer.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockBus records published approval events
type MockBus struct {
	mock.Mock
}

func (m *MockBus) PublishApprovalEvent(ctx context.Context, event messaging.ApprovalEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockBus) Close() error {
	return m.Called().Error(0)
}

// MockCache is an in-memory cache.RedisClient
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}
