package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

func TestRecordStockTransactionIn(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	productID := uuid.New()
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("FindProductByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, StockQuantity: 3}, nil)
	repo.On("CreateStockTransactions", mock.Anything, mock.Anything).Return(nil)
	repo.On("AdjustProductStock", mock.Anything, productID, 10).Return(nil)

	entry, err := svc.RecordStockTransaction(context.Background(), StockTransactionRequest{
		ProductID:       productID,
		TransactionType: models.TransactionIn,
		Quantity:        10,
		ReferenceNumber: "PO-2026-001",
	})
	require.NoError(t, err)
	require.Equal(t, models.TransactionIn, entry.TransactionType)
	repo.AssertExpectations(t)
}

func TestRecordStockTransactionOutBelowZero(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	productID := uuid.New()
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("FindProductByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Code: "PRD-003", StockQuantity: 3}, nil)

	_, err := svc.RecordStockTransaction(context.Background(), StockTransactionRequest{
		ProductID:       productID,
		TransactionType: models.TransactionOut,
		Quantity:        5,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	repo.AssertNotCalled(t, "CreateStockTransactions", mock.Anything, mock.Anything)
}

func TestRecordStockTransactionNegativeAdjustment(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))

	productID := uuid.New()
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.On("FindProductByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, StockQuantity: 8}, nil)
	repo.On("CreateStockTransactions", mock.Anything, mock.Anything).Return(nil)
	repo.On("AdjustProductStock", mock.Anything, productID, -2).Return(nil)

	_, err := svc.RecordStockTransaction(context.Background(), StockTransactionRequest{
		ProductID:       productID,
		TransactionType: models.TransactionAdjustment,
		Quantity:        -2,
		Notes:           "Stock opname",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordStockTransactionUnknownType(t *testing.T) {
	svc := newTestService(t, new(MockRepository), new(MockMailer), new(MockBus))

	_, err := svc.RecordStockTransaction(context.Background(), StockTransactionRequest{
		ProductID:       uuid.New(),
		TransactionType: "loan",
		Quantity:        1,
	})
	require.ErrorIs(t, err, ErrValidation)
}
