package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

func (r *repo) CreateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	return translateError(r.db.WithContext(ctx).Omit("Items").Create(note).Error)
}

func (r *repo) FindDeliveryNoteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryNote, error) {
	var note models.DeliveryNote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&note, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &note, nil
}

func (r *repo) ListDeliveryNotes(ctx context.Context) ([]*models.DeliveryNote, error) {
	var notes []*models.DeliveryNote
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *repo) UpdateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	result := r.db.WithContext(ctx).Model(&models.DeliveryNote{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"customer_name":    note.CustomerName,
			"customer_address": note.CustomerAddress,
			"customer_phone":   note.CustomerPhone,
			"division":         note.Division,
			"delivery_date":    note.DeliveryDate,
			"approval_status":  note.ApprovalStatus,
			"notes":            note.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteDeliveryNote(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeliveryNote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) UpdateNoteStatus(ctx context.Context, id uuid.UUID, status models.NoteStatus) error {
	result := r.db.WithContext(ctx).Model(&models.DeliveryNote{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) UpdateNoteApprovalStatus(ctx context.Context, id uuid.UUID, status models.NoteApprovalStatus) error {
	result := r.db.WithContext(ctx).Model(&models.DeliveryNote{}).
		Where("id = ?", id).
		Update("approval_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) CreateDeliveryNoteItems(ctx context.Context, items []*models.DeliveryNoteItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repo) ListDeliveryNoteItems(ctx context.Context, noteID uuid.UUID) ([]*models.DeliveryNoteItem, error) {
	var items []*models.DeliveryNoteItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("delivery_note_id = ?", noteID).
		Find(&items).Error
	return items, err
}

func (r *repo) DeleteDeliveryNoteItems(ctx context.Context, noteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("delivery_note_id = ?", noteID).
		Delete(&models.DeliveryNoteItem{}).Error
}

// ListStalePendingNotes returns notes still awaiting approval whose last
// update is older than the cutoff. Fed to the reminder worker.
func (r *repo) ListStalePendingNotes(ctx context.Context, olderThan time.Time) ([]*models.DeliveryNote, error) {
	var notes []*models.DeliveryNote
	err := r.db.WithContext(ctx).
		Where("approval_status = ?", models.NotePendingApproval).
		Where("updated_at < ?", olderThan).
		Order("updated_at ASC").
		Find(&notes).Error
	return notes, err
}
