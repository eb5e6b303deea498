package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/messaging"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
)

// ResolveApproval records an approver's decision on the (note, level) record
// and advances the note's approval chain: escalate to the next pending level,
// finalize as approved, or finalize as rejected with a stock reversal.
func (s *service) ResolveApproval(ctx context.Context, noteID, levelID uuid.UUID, action models.ApprovalAction, notes string) (*Resolution, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	record, err := s.repo.FindApprovalRecord(ctx, noteID, levelID)
	if err != nil {
		return nil, err
	}

	note, err := s.repo.FindDeliveryNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	return s.resolveRecord(ctx, note, record, action, notes)
}

// ResolveByToken resolves an approval through an emailed action link. The
// token is single-use: the lookup only matches a pending record still holding
// it, and the terminal update clears it.
func (s *service) ResolveByToken(ctx context.Context, token string, action models.ApprovalAction) (*Resolution, error) {
	if token == "" || !action.Valid() {
		return nil, fmt.Errorf("%w: token and a valid action are required", ErrValidation)
	}

	record, err := s.repo.FindPendingApprovalByToken(ctx, token)
	if err != nil {
		s.metrics.Increment(metrics.CounterTokenLookupFailures)
		return nil, ErrTokenNotFound
	}

	if record.TokenState(time.Now()) == models.TokenExpired {
		// The record stays pending; the in-app path remains available.
		return nil, ErrTokenExpired
	}

	note := record.DeliveryNote
	if note == nil {
		n, err := s.repo.FindDeliveryNoteByID(ctx, record.DeliveryNoteID)
		if err != nil {
			return nil, err
		}
		note = n
	}

	approverName := ""
	if record.ApprovalLevel != nil {
		approverName = record.ApprovalLevel.Name
	}
	notes := fmt.Sprintf("Disetujui melalui email oleh %s", approverName)
	if action == models.ActionReject {
		notes = fmt.Sprintf("Ditolak melalui email oleh %s", approverName)
	}

	return s.resolveRecord(ctx, note, record, action, notes)
}

// resolveRecord is the single terminal transition plus its consequences.
// The conditional update on the record is the only concurrency guard: the
// first writer wins, a second attempt surfaces ErrAlreadyResolved before
// any side effect fires.
func (s *service) resolveRecord(ctx context.Context, note *models.DeliveryNote, record *models.DeliveryNoteApproval, action models.ApprovalAction, notes string) (*Resolution, error) {
	now := time.Now()
	if err := s.repo.ResolveApprovalRecord(ctx, record.ID, action.TerminalStatus(), now, notes); err != nil {
		return nil, err
	}

	res := &Resolution{
		DeliveryNumber: note.DeliveryNumber,
		CustomerName:   note.CustomerName,
		Division:       note.Division,
		Action:         action,
	}
	if record.ApprovalLevel != nil {
		res.ApproverName = record.ApprovalLevel.Name
	}

	if action == models.ActionReject {
		return s.finalizeRejection(ctx, note, res)
	}
	return s.advanceChain(ctx, note, res)
}

// finalizeRejection marks the note rejected and re-credits its stock. Both
// writes happen in one transaction; the notification stays outside it and is
// best-effort.
func (s *service) finalizeRejection(ctx context.Context, note *models.DeliveryNote, res *Resolution) (*Resolution, error) {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		if err := tx.UpdateNoteApprovalStatus(ctx, note.ID, models.NoteRejected); err != nil {
			return err
		}
		return s.reverseStockIn(ctx, tx, note)
	})
	if err != nil {
		return nil, err
	}

	res.Outcome = models.NoteRejected
	s.metrics.Increment(metrics.CounterApprovalsRejected)

	s.publishEvent(ctx, "approval.rejected", note, res.ApproverName)
	s.notifyBestEffort(ctx, note, models.EmailRejected)
	return res, nil
}

// advanceChain re-reads the sibling records inside a transaction so the
// all-approved decision and the note finalization are serialized, then
// notifies: a terminal approved message, or an escalation request to the
// next pending approver.
func (s *service) advanceChain(ctx context.Context, note *models.DeliveryNote, res *Resolution) (*Resolution, error) {
	var allApproved bool
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		records, err := tx.ListApprovalsForNote(ctx, note.ID, note.Division)
		if err != nil {
			return err
		}
		allApproved = len(records) > 0
		for _, sibling := range records {
			if sibling.Status != models.ApprovalApproved {
				allApproved = false
				break
			}
		}
		if allApproved {
			return tx.UpdateNoteApprovalStatus(ctx, note.ID, models.NoteApproved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Increment(metrics.CounterApprovalsResolved)

	if allApproved {
		res.Outcome = models.NoteApproved
		s.publishEvent(ctx, "approval.approved", note, res.ApproverName)
		s.notifyBestEffort(ctx, note, models.EmailApproved)
		return res, nil
	}

	res.Outcome = models.NotePendingApproval
	s.metrics.Increment(metrics.CounterApprovalsEscalated)
	s.publishEvent(ctx, "approval.escalated", note, res.ApproverName)
	s.notifyBestEffort(ctx, note, models.EmailApprovalRequest)
	return res, nil
}

// notifyBestEffort asks the notifier to send and only logs on failure. A
// committed approve/reject is authoritative whether or not the email left.
func (s *service) notifyBestEffort(ctx context.Context, note *models.DeliveryNote, kind models.EmailKind) {
	_, err := s.SendApprovalEmail(ctx, EmailRequest{
		DeliveryNoteID: note.ID,
		DeliveryNumber: note.DeliveryNumber,
		CustomerName:   note.CustomerName,
		Kind:           kind,
	})
	if err != nil {
		s.metrics.Increment(metrics.CounterEmailsFailed)
		log.Error().Err(err).
			Str("delivery_number", note.DeliveryNumber).
			Str("kind", string(kind)).
			Msg("Failed to send approval notification")
	}
}

// publishEvent emits an approval lifecycle event; failures are logged only
func (s *service) publishEvent(ctx context.Context, kind string, note *models.DeliveryNote, levelName string) {
	if s.bus == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.bus.PublishApprovalEvent(ctx, messaging.ApprovalEvent{
		Kind:           kind,
		DeliveryNoteID: note.ID.String(),
		DeliveryNumber: note.DeliveryNumber,
		Division:       note.Division,
		LevelName:      levelName,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).
			Str("kind", kind).
			Str("delivery_number", note.DeliveryNumber).
			Msg("Failed to publish approval event")
	}
}
