package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
)

// CreateDeliveryNote validates stock, writes the note with its items and
// outbound ledger entries in one transaction, and seeds a pending approval
// record per level of the note's division. Search indexing and the first
// approval email run after commit and are best-effort.
func (s *service) CreateDeliveryNote(ctx context.Context, req DeliveryNoteRequest) (*models.DeliveryNote, error) {
	if err := validateNoteRequest(req); err != nil {
		return nil, err
	}

	levels, err := s.repo.ListApprovalLevelsByDivision(ctx, req.Division)
	if err != nil {
		return nil, err
	}

	deliveryDate := req.DeliveryDate
	if deliveryDate.IsZero() {
		deliveryDate = time.Now()
	}

	note := &models.DeliveryNote{
		DeliveryNumber:  nextDeliveryNumber(),
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
		Division:        req.Division,
		DeliveryDate:    deliveryDate,
		Status:          models.NoteStatusDraft,
		ApprovalStatus:  models.NotePendingApproval,
		Notes:           req.Notes,
	}
	// A division with no configured chain needs no sign-off.
	if len(levels) == 0 {
		note.ApprovalStatus = models.NoteApproved
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		if err := tx.CreateDeliveryNote(ctx, note); err != nil {
			return err
		}
		if err := s.writeItemsAndLedger(ctx, tx, note, req.Items); err != nil {
			return err
		}
		return s.seedApprovalRecords(ctx, tx, note.ID, levels)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("delivery_number", note.DeliveryNumber).
		Str("division", note.Division).
		Int("items", len(req.Items)).
		Msg("Delivery note created")

	s.indexBestEffort(ctx, note.ID)
	if note.ApprovalStatus == models.NotePendingApproval {
		s.notifyBestEffort(ctx, note, models.EmailApprovalRequest)
	}

	return s.repo.FindDeliveryNoteByID(ctx, note.ID)
}

// GetDeliveryNote loads a note with its items
func (s *service) GetDeliveryNote(ctx context.Context, id uuid.UUID) (*models.DeliveryNote, error) {
	return s.repo.FindDeliveryNoteByID(ctx, id)
}

// ListDeliveryNotes returns all notes, newest first
func (s *service) ListDeliveryNotes(ctx context.Context) ([]*models.DeliveryNote, error) {
	return s.repo.ListDeliveryNotes(ctx)
}

// UpdateDeliveryNote replaces the note's form fields and items. The old
// outbound ledger is unwound and rewritten against the new items, and the
// approval chain restarts from scratch: stale decisions must not carry over
// to changed contents.
func (s *service) UpdateDeliveryNote(ctx context.Context, id uuid.UUID, req DeliveryNoteRequest) (*models.DeliveryNote, error) {
	if err := validateNoteRequest(req); err != nil {
		return nil, err
	}

	note, err := s.repo.FindDeliveryNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status != models.NoteStatusDraft {
		return nil, fmt.Errorf("%w: only draft notes can be edited", ErrValidation)
	}

	levels, err := s.repo.ListApprovalLevelsByDivision(ctx, req.Division)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		if err := s.unwindItemsAndLedger(ctx, tx, note); err != nil {
			return err
		}
		if err := tx.DeleteApprovalRecords(ctx, note.ID); err != nil {
			return err
		}

		note.CustomerName = req.CustomerName
		note.CustomerAddress = req.CustomerAddress
		note.CustomerPhone = req.CustomerPhone
		note.Division = req.Division
		note.Notes = req.Notes
		if !req.DeliveryDate.IsZero() {
			note.DeliveryDate = req.DeliveryDate
		}
		note.ApprovalStatus = models.NotePendingApproval
		if len(levels) == 0 {
			note.ApprovalStatus = models.NoteApproved
		}
		note.Items = nil
		if err := tx.UpdateDeliveryNote(ctx, note); err != nil {
			return err
		}

		if err := s.writeItemsAndLedger(ctx, tx, note, req.Items); err != nil {
			return err
		}
		return s.seedApprovalRecords(ctx, tx, note.ID, levels)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("delivery_number", note.DeliveryNumber).
		Msg("Delivery note updated, approval chain restarted")

	s.indexBestEffort(ctx, note.ID)
	if note.ApprovalStatus == models.NotePendingApproval {
		s.notifyBestEffort(ctx, note, models.EmailApprovalRequest)
	}

	return s.repo.FindDeliveryNoteByID(ctx, note.ID)
}

// DeleteDeliveryNote removes a note with its items, approval records and
// ledger entries. Undelivered goods go back to stock; a rejected note was
// already re-credited at rejection time.
func (s *service) DeleteDeliveryNote(ctx context.Context, id uuid.UUID) error {
	note, err := s.repo.FindDeliveryNoteByID(ctx, id)
	if err != nil {
		return err
	}
	if note.Status == models.NoteStatusDelivered {
		return fmt.Errorf("%w: delivered notes cannot be deleted", ErrValidation)
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		if note.ApprovalStatus != models.NoteRejected {
			if err := s.unwindItemsAndLedger(ctx, tx, note); err != nil {
				return err
			}
		} else {
			if err := tx.DeleteStockTransactionsByReference(ctx, note.DeliveryNumber); err != nil {
				return err
			}
			if err := tx.DeleteStockTransactionsByReference(ctx, "RETURN-"+note.DeliveryNumber); err != nil {
				return err
			}
			if err := tx.DeleteDeliveryNoteItems(ctx, note.ID); err != nil {
				return err
			}
		}
		if err := tx.DeleteApprovalRecords(ctx, note.ID); err != nil {
			return err
		}
		return tx.DeleteDeliveryNote(ctx, note.ID)
	})
	if err != nil {
		return err
	}

	if s.es != nil {
		if err := s.es.DeleteDeliveryNote(ctx, note.ID.String()); err != nil {
			log.Warn().Err(err).
				Str("delivery_number", note.DeliveryNumber).
				Msg("Failed to remove delivery note from search index")
		}
	}

	log.Info().Str("delivery_number", note.DeliveryNumber).Msg("Delivery note deleted")
	return nil
}

// UpdateDeliveryStatus moves a note through its dispatch lifecycle.
// Dispatching requires a fully approved note; marking it delivered also
// completes the approval lifecycle.
func (s *service) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status models.NoteStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	note, err := s.repo.FindDeliveryNoteByID(ctx, id)
	if err != nil {
		return err
	}

	if status != models.NoteStatusDraft &&
		note.ApprovalStatus != models.NoteApproved && note.ApprovalStatus != models.NoteCompleted {
		return fmt.Errorf("%w: delivery note %s is not approved", ErrValidation, note.DeliveryNumber)
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		if err := tx.UpdateNoteStatus(ctx, id, status); err != nil {
			return err
		}
		if status == models.NoteStatusDelivered {
			return tx.UpdateNoteApprovalStatus(ctx, id, models.NoteCompleted)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.indexBestEffort(ctx, id)
	return nil
}

// SearchDeliveryNotes queries the search index
func (s *service) SearchDeliveryNotes(ctx context.Context, query string, limit int) ([]map[string]interface{}, error) {
	if s.es == nil {
		return nil, ErrSearchUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	return s.es.SearchDeliveryNotes(ctx, query, limit)
}

// RenderDeliveryNoteHTML builds the printable surat jalan document
func (s *service) RenderDeliveryNoteHTML(ctx context.Context, id uuid.UUID) (string, error) {
	note, err := s.repo.FindDeliveryNoteByID(ctx, id)
	if err != nil {
		return "", err
	}
	return renderPrintableNote(note), nil
}

// validateNoteRequest checks the business rules the binding tags cannot
func validateNoteRequest(req DeliveryNoteRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Division) == "" {
		return fmt.Errorf("%w: division is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		if seen[item.ProductID] {
			return fmt.Errorf("%w: duplicate product %s", ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = true
	}
	return nil
}

// nextDeliveryNumber formats SJ-YYYYMMDD-XXXX with a random 4-digit suffix.
// The column's unique index catches the rare same-day collision.
func nextDeliveryNumber() string {
	return fmt.Sprintf("SJ-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
}

// writeItemsAndLedger creates the note items, their outbound ledger entries
// referencing the delivery number, and decrements product balances. Stock
// sufficiency is checked against the balance read inside the transaction.
func (s *service) writeItemsAndLedger(ctx context.Context, tx repository.Repository, note *models.DeliveryNote, reqItems []DeliveryNoteItemRequest) error {
	items := make([]*models.DeliveryNoteItem, 0, len(reqItems))
	entries := make([]*models.StockTransaction, 0, len(reqItems))

	for _, line := range reqItems {
		product, err := tx.FindProductByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product.StockQuantity < line.Quantity {
			return fmt.Errorf("%w: product %s has %d, requested %d",
				ErrInsufficientStock, product.Code, product.StockQuantity, line.Quantity)
		}
		items = append(items, &models.DeliveryNoteItem{
			DeliveryNoteID: note.ID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			Notes:          line.Notes,
		})
		entries = append(entries, &models.StockTransaction{
			ProductID:       line.ProductID,
			TransactionType: models.TransactionOut,
			Quantity:        line.Quantity,
			ReferenceNumber: note.DeliveryNumber,
			Notes:           fmt.Sprintf("Pengeluaran stok untuk surat jalan %s", note.DeliveryNumber),
		})
	}

	if err := tx.CreateDeliveryNoteItems(ctx, items); err != nil {
		return err
	}
	if err := tx.CreateStockTransactions(ctx, entries); err != nil {
		return err
	}
	for _, line := range reqItems {
		if err := tx.AdjustProductStock(ctx, line.ProductID, -line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// unwindItemsAndLedger restores the stock held by the note's current items
// and removes its items and outbound ledger entries
func (s *service) unwindItemsAndLedger(ctx context.Context, tx repository.Repository, note *models.DeliveryNote) error {
	items, err := tx.ListDeliveryNoteItems(ctx, note.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := tx.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	if err := tx.DeleteStockTransactionsByReference(ctx, note.DeliveryNumber); err != nil {
		return err
	}
	return tx.DeleteDeliveryNoteItems(ctx, note.ID)
}

// seedApprovalRecords creates one pending record per configured level
func (s *service) seedApprovalRecords(ctx context.Context, tx repository.Repository, noteID uuid.UUID, levels []*models.ApprovalLevel) error {
	if len(levels) == 0 {
		return nil
	}
	records := make([]*models.DeliveryNoteApproval, 0, len(levels))
	for _, level := range levels {
		records = append(records, &models.DeliveryNoteApproval{
			DeliveryNoteID:  noteID,
			ApprovalLevelID: level.ID,
			Status:          models.ApprovalPending,
		})
	}
	return tx.CreateApprovalRecords(ctx, records)
}

// indexBestEffort refreshes the search document; failures are logged only
func (s *service) indexBestEffort(ctx context.Context, noteID uuid.UUID) {
	if s.es == nil {
		return
	}
	note, err := s.repo.FindDeliveryNoteByID(ctx, noteID)
	if err != nil {
		log.Warn().Err(err).Str("note_id", noteID.String()).Msg("Failed to reload note for indexing")
		return
	}
	if err := s.es.IndexDeliveryNote(ctx, note); err != nil {
		log.Warn().Err(err).
			Str("delivery_number", note.DeliveryNumber).
			Msg("Failed to index delivery note")
	}
}

// renderPrintableNote lays out the surat jalan for printing
func renderPrintableNote(note *models.DeliveryNote) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="id"><head><meta charset="utf-8">`)
	b.WriteString(fmt.Sprintf("<title>Surat Jalan %s</title>", note.DeliveryNumber))
	b.WriteString(`<style>
      body { font-family: Arial, sans-serif; margin: 40px; color: #111; }
      h1 { font-size: 22px; margin-bottom: 4px; }
      .meta { margin: 16px 0; line-height: 1.6; }
      table { width: 100%; border-collapse: collapse; margin-top: 16px; }
      th, td { border: 1px solid #333; padding: 8px; text-align: left; }
      th { background-color: #f0f0f0; }
      .sign { margin-top: 60px; display: flex; justify-content: space-between; }
      .sign div { width: 200px; text-align: center; }
      .sign span { display: block; margin-top: 60px; border-top: 1px solid #333; padding-top: 4px; }
    </style></head><body>`)
	b.WriteString("<h1>SURAT JALAN</h1>")
	b.WriteString(fmt.Sprintf("<p><strong>No: %s</strong></p>", note.DeliveryNumber))
	b.WriteString(`<div class="meta">`)
	b.WriteString(fmt.Sprintf("Customer: %s<br>", note.CustomerName))
	if note.CustomerAddress != "" {
		b.WriteString(fmt.Sprintf("Alamat: %s<br>", note.CustomerAddress))
	}
	if note.CustomerPhone != "" {
		b.WriteString(fmt.Sprintf("Telepon: %s<br>", note.CustomerPhone))
	}
	b.WriteString(fmt.Sprintf("Divisi: %s<br>", note.Division))
	b.WriteString(fmt.Sprintf("Tanggal Pengiriman: %s<br>", note.DeliveryDate.Format("02-01-2006")))
	b.WriteString(fmt.Sprintf("Status Persetujuan: %s", note.ApprovalStatus))
	b.WriteString("</div>")

	b.WriteString("<table><thead><tr><th>No</th><th>Kode</th><th>Nama Barang</th><th>Qty</th><th>Satuan</th><th>Keterangan</th></tr></thead><tbody>")
	for i, item := range note.Items {
		code, name, unit := "-", "-", "-"
		if item.Product != nil {
			code, name, unit = item.Product.Code, item.Product.Name, item.Product.Unit
		}
		b.WriteString(fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			i+1, code, name, item.Quantity, unit, item.Notes))
	}
	b.WriteString("</tbody></table>")

	if note.Notes != "" {
		b.WriteString(fmt.Sprintf("<p>Catatan: %s</p>", note.Notes))
	}

	b.WriteString(`<div class="sign">
      <div>Dibuat oleh<span>&nbsp;</span></div>
      <div>Pengirim<span>&nbsp;</span></div>
      <div>Penerima<span>&nbsp;</span></div>
    </div>`)
	b.WriteString("</body></html>")
	return b.String()
}
