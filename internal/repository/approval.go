package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

func (r *repo) CreateApprovalRecords(ctx context.Context, records []*models.DeliveryNoteApproval) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *repo) FindApprovalRecord(ctx context.Context, noteID, levelID uuid.UUID) (*models.DeliveryNoteApproval, error) {
	var record models.DeliveryNoteApproval
	err := r.db.WithContext(ctx).
		Preload("ApprovalLevel").
		Where("delivery_note_id = ? AND approval_level_id = ?", noteID, levelID).
		First(&record).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

// FindPendingApprovalByToken looks up a live emailed-link credential. A
// consumed token was cleared on resolution, so it simply no longer matches.
func (r *repo) FindPendingApprovalByToken(ctx context.Context, token string) (*models.DeliveryNoteApproval, error) {
	var record models.DeliveryNoteApproval
	err := r.db.WithContext(ctx).
		Preload("ApprovalLevel").
		Preload("DeliveryNote").
		Where("approval_token = ? AND status = ?", token, models.ApprovalPending).
		First(&record).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

// ListApprovalsForNote returns the note's approval records scoped to the
// given division, in ascending level order. The chain position of each
// record is a pure function of this ordering.
func (r *repo) ListApprovalsForNote(ctx context.Context, noteID uuid.UUID, division string) ([]*models.DeliveryNoteApproval, error) {
	var records []*models.DeliveryNoteApproval
	err := r.db.WithContext(ctx).
		Joins("JOIN approval_levels ON approval_levels.id = delivery_note_approvals.approval_level_id").
		Where("delivery_note_approvals.delivery_note_id = ?", noteID).
		Where("approval_levels.division = ?", division).
		Order("approval_levels.level_order ASC").
		Preload("ApprovalLevel").
		Find(&records).Error
	return records, err
}

// ResolveApprovalRecord performs the single terminal transition of a record.
// The update is gated on status = pending so the first writer wins; a second
// resolution attempt gets ErrAlreadyResolved instead of silently re-firing
// side effects. The token pair is cleared in the same statement, which is
// what makes emailed links single-use.
func (r *repo) ResolveApprovalRecord(ctx context.Context, id uuid.UUID, status models.ApprovalStatus, approvedAt time.Time, notes string) error {
	result := r.db.WithContext(ctx).Model(&models.DeliveryNoteApproval{}).
		Where("id = ? AND status = ?", id, models.ApprovalPending).
		Updates(map[string]interface{}{
			"status":           status,
			"approved_at":      approvedAt,
			"notes":            notes,
			"approval_token":   nil,
			"token_expires_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyResolved
	}
	return nil
}

// SetApprovalToken stores a freshly minted token, replacing any previous one
// so at most one live link exists per record.
func (r *repo) SetApprovalToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.DeliveryNoteApproval{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"approval_token":   token,
			"token_expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) DeleteApprovalRecords(ctx context.Context, noteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("delivery_note_id = ?", noteID).
		Delete(&models.DeliveryNoteApproval{}).Error
}
