package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
)

// RecordStockTransaction appends a manual entry to the stock ledger and
// applies it to the product balance in one transaction.
func (s *service) RecordStockTransaction(ctx context.Context, req StockTransactionRequest) (*models.StockTransaction, error) {
	if !req.TransactionType.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, req.TransactionType)
	}
	if req.TransactionType == models.TransactionAdjustment {
		if req.Quantity == 0 {
			return nil, fmt.Errorf("%w: adjustment quantity must be non-zero", ErrValidation)
		}
	} else if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	entry := &models.StockTransaction{
		ProductID:       req.ProductID,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		product, err := tx.FindProductByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		delta := stockDelta(req.TransactionType, req.Quantity)
		if product.StockQuantity+delta < 0 {
			return fmt.Errorf("%w: product %s has %d, requested %d out",
				ErrInsufficientStock, product.Code, product.StockQuantity, req.Quantity)
		}

		if err := tx.CreateStockTransactions(ctx, []*models.StockTransaction{entry}); err != nil {
			return err
		}
		return tx.AdjustProductStock(ctx, req.ProductID, delta)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListStockTransactions returns the most recent ledger entries
func (s *service) ListStockTransactions(ctx context.Context, limit int) ([]*models.StockTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListStockTransactions(ctx, limit)
}

// ReverseStock returns the goods of a delivery note to stock. Used by the
// approval flow on rejection and by note deletion while undelivered.
func (s *service) ReverseStock(ctx context.Context, noteID uuid.UUID) error {
	note, err := s.repo.FindDeliveryNoteByID(ctx, noteID)
	if err != nil {
		return err
	}
	return s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		return s.reverseStockIn(ctx, tx, note)
	})
}

// reverseStockIn writes compensating `in` ledger entries for every item of
// the note and restores the product balances. Runs inside the caller's
// transaction. The RETURN reference makes the reversal idempotent: a second
// call for the same note is a caller bug, guarded by checking for existing
// return entries first.
func (s *service) reverseStockIn(ctx context.Context, tx repository.Repository, note *models.DeliveryNote) error {
	reference := "RETURN-" + note.DeliveryNumber

	existing, err := tx.ListStockTransactionsByReference(ctx, reference)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Warn().
			Str("delivery_number", note.DeliveryNumber).
			Msg("Stock already reversed, skipping")
		return nil
	}

	items, err := tx.ListDeliveryNoteItems(ctx, note.ID)
	if err != nil {
		return err
	}

	entries := make([]*models.StockTransaction, 0, len(items))
	for _, item := range items {
		entries = append(entries, &models.StockTransaction{
			ProductID:       item.ProductID,
			TransactionType: models.TransactionIn,
			Quantity:        item.Quantity,
			ReferenceNumber: reference,
			Notes:           fmt.Sprintf("Pengembalian stok karena surat jalan ditolak: %s", note.DeliveryNumber),
		})
	}
	if len(entries) == 0 {
		return nil
	}
	if err := tx.CreateStockTransactions(ctx, entries); err != nil {
		return err
	}
	for _, item := range items {
		if err := tx.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	s.metrics.Increment(metrics.CounterStockReversals)
	log.Info().
		Str("delivery_number", note.DeliveryNumber).
		Int("items", len(items)).
		Msg("Stock reversed for rejected delivery note")
	return nil
}

// stockDelta maps a ledger entry to its effect on the product balance.
// Adjustments carry a signed quantity already.
func stockDelta(kind models.TransactionType, quantity int) int {
	switch kind {
	case models.TransactionIn:
		return quantity
	case models.TransactionOut:
		return -quantity
	default:
		return quantity
	}
}
