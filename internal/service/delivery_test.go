package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

func TestCreateDeliveryNoteSeedsChainAndLedger(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)
	svc := newTestService(t, repo, mail, new(MockBus))

	productID := uuid.New()
	levels := []*models.ApprovalLevel{
		{ID: uuid.New(), Name: "Supervisor", Email: "supervisor@example.com", LevelOrder: 1, Division: "Logistik"},
		{ID: uuid.New(), Name: "Manager", Email: "manager@example.com", LevelOrder: 2, Division: "Logistik"},
	}

	repo.On("ListApprovalLevelsByDivision", mock.Anything, "Logistik").Return(levels, nil)
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("CreateDeliveryNote", mock.Anything, mock.MatchedBy(func(note *models.DeliveryNote) bool {
		return note.ApprovalStatus == models.NotePendingApproval &&
			strings.HasPrefix(note.DeliveryNumber, "SJ-"+time.Now().Format("20060102")+"-")
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.DeliveryNote).ID = uuid.New()
	}).Return(nil)
	repo.On("FindProductByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Code: "PRD-001", StockQuantity: 10}, nil)
	repo.On("CreateDeliveryNoteItems", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateStockTransactions", mock.Anything, mock.MatchedBy(func(entries []*models.StockTransaction) bool {
		return len(entries) == 1 && entries[0].TransactionType == models.TransactionOut && entries[0].Quantity == 4
	})).Return(nil)
	repo.On("AdjustProductStock", mock.Anything, productID, -4).Return(nil)
	repo.On("CreateApprovalRecords", mock.Anything, mock.MatchedBy(func(records []*models.DeliveryNoteApproval) bool {
		return len(records) == 2 &&
			records[0].Status == models.ApprovalPending &&
			records[1].Status == models.ApprovalPending
	})).Return(nil)

	// Post-commit: reload for the response and for the first approval email.
	repo.On("FindDeliveryNoteByID", mock.Anything, mock.Anything).Return(&models.DeliveryNote{
		ID:             uuid.New(),
		DeliveryNumber: "SJ-20260201-0008",
		Division:       "Logistik",
		ApprovalStatus: models.NotePendingApproval,
	}, nil)
	repo.On("ListApprovalsForNote", mock.Anything, mock.Anything, "Logistik").Return([]*models.DeliveryNoteApproval{
		{ID: uuid.New(), Status: models.ApprovalPending, ApprovalLevel: levels[0]},
	}, nil)
	repo.On("SetApprovalToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything).Return("email-1", nil)

	note, err := svc.CreateDeliveryNote(context.Background(), DeliveryNoteRequest{
		CustomerName: "PT Sejahtera",
		Division:     "Logistik",
		Items:        []DeliveryNoteItemRequest{{ProductID: productID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NotNil(t, note)
	repo.AssertExpectations(t)
}

func TestCreateDeliveryNoteInsufficientStock(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	productID := uuid.New()
	repo.On("ListApprovalLevelsByDivision", mock.Anything, "Logistik").Return([]*models.ApprovalLevel{}, nil)
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("CreateDeliveryNote", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindProductByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Code: "PRD-002", StockQuantity: 2}, nil)

	_, err := svc.CreateDeliveryNote(context.Background(), DeliveryNoteRequest{
		CustomerName: "PT Sejahtera",
		Division:     "Logistik",
		Items:        []DeliveryNoteItemRequest{{ProductID: productID, Quantity: 5}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	repo.AssertNotCalled(t, "AdjustProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDeliveryNoteNoChainIsAutoApproved(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)
	svc := newTestService(t, repo, mail, new(MockBus))

	productID := uuid.New()
	repo.On("ListApprovalLevelsByDivision", mock.Anything, "Gudang Umum").Return([]*models.ApprovalLevel{}, nil)
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("CreateDeliveryNote", mock.Anything, mock.MatchedBy(func(note *models.DeliveryNote) bool {
		return note.ApprovalStatus == models.NoteApproved
	})).Return(nil)
	repo.On("FindProductByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, StockQuantity: 10}, nil)
	repo.On("CreateDeliveryNoteItems", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateStockTransactions", mock.Anything, mock.Anything).Return(nil)
	repo.On("AdjustProductStock", mock.Anything, productID, -1).Return(nil)
	repo.On("FindDeliveryNoteByID", mock.Anything, mock.Anything).Return(&models.DeliveryNote{
		ID:             uuid.New(),
		ApprovalStatus: models.NoteApproved,
	}, nil)

	note, err := svc.CreateDeliveryNote(context.Background(), DeliveryNoteRequest{
		CustomerName: "CV Mandiri",
		Division:     "Gudang Umum",
		Items:        []DeliveryNoteItemRequest{{ProductID: productID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, models.NoteApproved, note.ApprovalStatus)

	repo.AssertNotCalled(t, "CreateApprovalRecords", mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCreateDeliveryNoteRejectsDuplicateProducts(t *testing.T) {
	svc := newTestService(t, new(MockRepository), new(MockMailer), new(MockBus))

	productID := uuid.New()
	_, err := svc.CreateDeliveryNote(context.Background(), DeliveryNoteRequest{
		CustomerName: "PT Dobel",
		Division:     "Logistik",
		Items: []DeliveryNoteItemRequest{
			{ProductID: productID, Quantity: 1},
			{ProductID: productID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateDeliveryNoteRestartsApprovalChain(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)
	svc := newTestService(t, repo, mail, new(MockBus))

	oldProduct, newProduct := uuid.New(), uuid.New()
	note := &models.DeliveryNote{
		ID:             uuid.New(),
		DeliveryNumber: "SJ-20260201-0009",
		CustomerName:   "PT Lama",
		Division:       "Logistik",
		Status:         models.NoteStatusDraft,
		ApprovalStatus: models.NotePendingApproval,
	}
	levels := []*models.ApprovalLevel{
		{ID: uuid.New(), Name: "Supervisor", Email: "supervisor@example.com", LevelOrder: 1, Division: "Logistik"},
	}

	repo.On("FindDeliveryNoteByID", mock.Anything, note.ID).Return(note, nil)
	repo.On("ListApprovalLevelsByDivision", mock.Anything, "Logistik").Return(levels, nil)
	repo.On("WithTransaction", mock.Anything).Return(nil)

	// Unwind: restore old stock, drop old ledger and items.
	repo.On("ListDeliveryNoteItems", mock.Anything, note.ID).
		Return([]*models.DeliveryNoteItem{{ProductID: oldProduct, Quantity: 3}}, nil)
	repo.On("AdjustProductStock", mock.Anything, oldProduct, 3).Return(nil)
	repo.On("DeleteStockTransactionsByReference", mock.Anything, note.DeliveryNumber).Return(nil)
	repo.On("DeleteDeliveryNoteItems", mock.Anything, note.ID).Return(nil)
	repo.On("DeleteApprovalRecords", mock.Anything, note.ID).Return(nil)

	repo.On("UpdateDeliveryNote", mock.Anything, mock.MatchedBy(func(n *models.DeliveryNote) bool {
		return n.CustomerName == "PT Baru" && n.ApprovalStatus == models.NotePendingApproval
	})).Return(nil)

	// Rewrite: new items, new ledger, new pending chain.
	repo.On("FindProductByID", mock.Anything, newProduct).
		Return(&models.Product{ID: newProduct, StockQuantity: 9}, nil)
	repo.On("CreateDeliveryNoteItems", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateStockTransactions", mock.Anything, mock.Anything).Return(nil)
	repo.On("AdjustProductStock", mock.Anything, newProduct, -2).Return(nil)
	repo.On("CreateApprovalRecords", mock.Anything, mock.Anything).Return(nil)

	repo.On("ListApprovalsForNote", mock.Anything, note.ID, "Logistik").Return([]*models.DeliveryNoteApproval{
		{ID: uuid.New(), Status: models.ApprovalPending, ApprovalLevel: levels[0]},
	}, nil)
	repo.On("SetApprovalToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything).Return("email-1", nil)

	_, err := svc.UpdateDeliveryNote(context.Background(), note.ID, DeliveryNoteRequest{
		CustomerName: "PT Baru",
		Division:     "Logistik",
		Items:        []DeliveryNoteItemRequest{{ProductID: newProduct, Quantity: 2}},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateDeliveryNoteRejectsNonDraft(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	note := &models.DeliveryNote{ID: uuid.New(), Status: models.NoteStatusSent}
	repo.On("FindDeliveryNoteByID", mock.Anything, note.ID).Return(note, nil)

	_, err := svc.UpdateDeliveryNote(context.Background(), note.ID, DeliveryNoteRequest{
		CustomerName: "PT X",
		Division:     "Logistik",
		Items:        []DeliveryNoteItemRequest{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateDeliveryStatusRequiresApproval(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	note := &models.DeliveryNote{
		ID:             uuid.New(),
		DeliveryNumber: "SJ-20260202-0001",
		ApprovalStatus: models.NotePendingApproval,
	}
	repo.On("FindDeliveryNoteByID", mock.Anything, note.ID).Return(note, nil)

	err := svc.UpdateDeliveryStatus(context.Background(), note.ID, models.NoteStatusSent)
	require.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "UpdateNoteStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateDeliveryStatusDeliveredCompletesApproval(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	note := &models.DeliveryNote{
		ID:             uuid.New(),
		ApprovalStatus: models.NoteApproved,
	}
	repo.On("FindDeliveryNoteByID", mock.Anything, note.ID).Return(note, nil)
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("UpdateNoteStatus", mock.Anything, note.ID, models.NoteStatusDelivered).Return(nil)
	repo.On("UpdateNoteApprovalStatus", mock.Anything, note.ID, models.NoteCompleted).Return(nil)

	err := svc.UpdateDeliveryStatus(context.Background(), note.ID, models.NoteStatusDelivered)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRenderDeliveryNoteHTML(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	note := &models.DeliveryNote{
		ID:             uuid.New(),
		DeliveryNumber: "SJ-20260203-0001",
		CustomerName:   "PT Cetak",
		Division:       "Logistik",
		DeliveryDate:   time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		ApprovalStatus: models.NoteApproved,
		Items: []models.DeliveryNoteItem{
			{Quantity: 7, Product: &models.Product{Code: "PRD-010", Name: "Kardus Besar", Unit: "pcs"}},
		},
	}
	repo.On("FindDeliveryNoteByID", mock.Anything, note.ID).Return(note, nil)

	html, err := svc.RenderDeliveryNoteHTML(context.Background(), note.ID)
	require.NoError(t, err)
	require.Contains(t, html, "SURAT JALAN")
	require.Contains(t, html, note.DeliveryNumber)
	require.Contains(t, html, "Kardus Besar")
	require.Contains(t, html, "PT Cetak")
}
