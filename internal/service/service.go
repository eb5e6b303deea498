package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/config"
	"github.com/BersamaBelajar/gudang-pintar/internal/cache"
	"github.com/BersamaBelajar/gudang-pintar/internal/mailer"
	"github.com/BersamaBelajar/gudang-pintar/internal/messaging"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
	"github.com/BersamaBelajar/gudang-pintar/internal/search"
)

// Service errors surfaced to the API layer
var (
	ErrValidation        = errors.New("validation error")
	ErrTokenNotFound     = errors.New("approval link invalid or already used")
	ErrTokenExpired      = errors.New("approval link expired")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSearchUnavailable = errors.New("search is not available")
)

// DeliveryNoteItemRequest is one requested shipment line
type DeliveryNoteItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	Notes     string    `json:"notes"`
}

// DeliveryNoteRequest carries the fields of the delivery form
type DeliveryNoteRequest struct {
	CustomerName    string                    `json:"customer_name" binding:"required"`
	CustomerAddress string                    `json:"customer_address"`
	CustomerPhone   string                    `json:"customer_phone"`
	Division        string                    `json:"division" binding:"required"`
	DeliveryDate    time.Time                 `json:"delivery_date"`
	Notes           string                    `json:"notes"`
	Items           []DeliveryNoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

// StockTransactionRequest is a manual ledger entry
type StockTransactionRequest struct {
	ProductID       uuid.UUID              `json:"product_id" binding:"required"`
	TransactionType models.TransactionType `json:"transaction_type" binding:"required"`
	Quantity        int                    `json:"quantity" binding:"required"`
	ReferenceNumber string                 `json:"reference_number"`
	Notes           string                 `json:"notes"`
}

// EmailRequest asks the notifier to render and send one message
type EmailRequest struct {
	DeliveryNoteID uuid.UUID        `json:"deliveryNoteId" binding:"required"`
	DeliveryNumber string           `json:"deliveryNumber"`
	CustomerName   string           `json:"customerName"`
	Kind           models.EmailKind `json:"type" binding:"required"`
}

// EmailResult reports what the notifier did
type EmailResult struct {
	Sent    bool   `json:"sent"`
	EmailID string `json:"emailId,omitempty"`
	SentTo  string `json:"sentTo,omitempty"`
}

// Resolution is the outcome of resolving one approval record, with enough
// context to render a confirmation page.
type Resolution struct {
	DeliveryNumber string
	CustomerName   string
	Division       string
	ApproverName   string
	Action         models.ApprovalAction
	// Outcome is the parent note's approval status after this resolution;
	// it stays pending_approval on a non-terminal escalation.
	Outcome models.NoteApprovalStatus
}

// Escalated reports whether the chain moved on to a next approver
func (r *Resolution) Escalated() bool {
	return r.Action == models.ActionApprove && r.Outcome == models.NotePendingApproval
}

// DashboardCounts summarizes the warehouse for the landing screen
type DashboardCounts struct {
	Products         int64 `json:"products"`
	Categories       int64 `json:"categories"`
	Suppliers        int64 `json:"suppliers"`
	DeliveryNotes    int64 `json:"delivery_notes"`
	LowStockProducts int64 `json:"low_stock_products"`
}

// Service defines the business logic operations
type Service interface {
	// Master data operations
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	CreateDivision(ctx context.Context, division *models.Division) error
	ListDivisions(ctx context.Context) ([]*models.Division, error)
	UpdateDivision(ctx context.Context, division *models.Division) error
	DeleteDivision(ctx context.Context, id uuid.UUID) error
	CreateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error
	ListApprovalLevels(ctx context.Context) ([]*models.ApprovalLevel, error)
	UpdateApprovalLevel(ctx context.Context, level *models.ApprovalLevel) error
	DeleteApprovalLevel(ctx context.Context, id uuid.UUID) error

	// Product operations
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// Stock ledger operations
	RecordStockTransaction(ctx context.Context, req StockTransactionRequest) (*models.StockTransaction, error)
	ListStockTransactions(ctx context.Context, limit int) ([]*models.StockTransaction, error)
	ReverseStock(ctx context.Context, noteID uuid.UUID) error

	// Delivery note operations
	CreateDeliveryNote(ctx context.Context, req DeliveryNoteRequest) (*models.DeliveryNote, error)
	GetDeliveryNote(ctx context.Context, id uuid.UUID) (*models.DeliveryNote, error)
	ListDeliveryNotes(ctx context.Context) ([]*models.DeliveryNote, error)
	UpdateDeliveryNote(ctx context.Context, id uuid.UUID, req DeliveryNoteRequest) (*models.DeliveryNote, error)
	DeleteDeliveryNote(ctx context.Context, id uuid.UUID) error
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status models.NoteStatus) error
	SearchDeliveryNotes(ctx context.Context, query string, limit int) ([]map[string]interface{}, error)
	RenderDeliveryNoteHTML(ctx context.Context, id uuid.UUID) (string, error)

	// Approval workflow operations
	ResolveApproval(ctx context.Context, noteID, levelID uuid.UUID, action models.ApprovalAction, notes string) (*Resolution, error)
	ResolveByToken(ctx context.Context, token string, action models.ApprovalAction) (*Resolution, error)
	SendApprovalEmail(ctx context.Context, req EmailRequest) (*EmailResult, error)
	SendPendingReminders(ctx context.Context) (int, error)

	// Dashboard
	GetDashboard(ctx context.Context) (*DashboardCounts, error)
}

// service is an implementation of the Service interface
type service struct {
	repo    repository.Repository
	cache   cache.RedisClient
	mail    mailer.Mailer
	bus     messaging.ServiceBusClient
	es      *search.ElasticClient
	metrics *metrics.Metrics
	cfg     *config.Config
}

// Config holds the dependencies for the service
type Config struct {
	Repository repository.Repository
	Cache      cache.RedisClient
	Mailer     mailer.Mailer
	Bus        messaging.ServiceBusClient
	Search     *search.ElasticClient
	Metrics    *metrics.Metrics
	AppConfig  *config.Config
}

// New creates a new service instance
func New(cfg Config) (Service, error) {
	if cfg.Repository == nil {
		return nil, errors.New("repository is required")
	}
	if cfg.Mailer == nil {
		return nil, errors.New("mailer is required")
	}
	if cfg.AppConfig == nil {
		return nil, errors.New("app config is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	return &service{
		repo:    cfg.Repository,
		cache:   cfg.Cache,
		mail:    cfg.Mailer,
		bus:     cfg.Bus,
		es:      cfg.Search,
		metrics: cfg.Metrics,
		cfg:     cfg.AppConfig,
	}, nil
}
