package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

// SendPendingReminders nags the next approver of every note that has sat in
// pending_approval beyond the configured cutoff. A short-lived cache key per
// note suppresses repeats between worker runs. Returns how many reminders
// went out.
func (s *service) SendPendingReminders(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.cfg.Approval.ReminderAfter)
	notes, err := s.repo.ListStalePendingNotes(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, note := range notes {
		suppressKey := fmt.Sprintf("gudang:reminder:%s", note.ID)
		if s.cache != nil {
			if _, err := s.cache.Get(ctx, suppressKey); err == nil {
				continue
			}
		}

		result, err := s.SendApprovalEmail(ctx, EmailRequest{
			DeliveryNoteID: note.ID,
			DeliveryNumber: note.DeliveryNumber,
			CustomerName:   note.CustomerName,
			Kind:           models.EmailReminder,
		})
		if err != nil {
			log.Error().Err(err).
				Str("delivery_number", note.DeliveryNumber).
				Msg("Failed to send approval reminder")
			continue
		}
		if !result.Sent {
			continue
		}

		sent++
		if s.cache != nil {
			if err := s.cache.Set(ctx, suppressKey, "1", s.cfg.Approval.ReminderAfter); err != nil {
				log.Warn().Err(err).
					Str("delivery_number", note.DeliveryNumber).
					Msg("Failed to set reminder suppression key")
			}
		}
	}

	if sent > 0 {
		log.Info().Int("sent", sent).Int("stale", len(notes)).Msg("Approval reminders sent")
	}
	return sent, nil
}
