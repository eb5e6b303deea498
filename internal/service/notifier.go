package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/mailer"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

// SendApprovalEmail renders and sends one notification for a delivery note.
// For approval_request and reminder kinds the recipient is the next pending
// approver (lowest level_order in the note's division) and the mail embeds
// two action links carrying a freshly minted single-use token.
func (s *service) SendApprovalEmail(ctx context.Context, req EmailRequest) (*EmailResult, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown email type %q", ErrValidation, req.Kind)
	}

	note, err := s.repo.FindDeliveryNoteByID(ctx, req.DeliveryNoteID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListApprovalsForNote(ctx, note.ID, note.Division)
	if err != nil {
		return nil, err
	}

	recipient := s.pickRecipient(records, req.Kind)
	if recipient == nil {
		log.Info().
			Str("delivery_number", note.DeliveryNumber).
			Str("kind", string(req.Kind)).
			Msg("No approver to notify")
		return &EmailResult{Sent: false}, nil
	}

	var email mailer.Email
	switch req.Kind {
	case models.EmailApprovalRequest, models.EmailReminder:
		token, err := s.issueToken(ctx, recipient.ID)
		if err != nil {
			return nil, err
		}
		email = s.composeActionRequest(note, recipient.ApprovalLevel, token, req.Kind == models.EmailReminder)
	case models.EmailApproved:
		email = s.composeApproved(note, recipient.ApprovalLevel)
	case models.EmailRejected:
		email = s.composeRejected(note, recipient.ApprovalLevel)
	}

	emailID, err := s.mail.Send(ctx, email)
	if err != nil {
		return nil, err
	}

	s.metrics.Increment(metrics.CounterEmailsSent)
	log.Info().
		Str("delivery_number", note.DeliveryNumber).
		Str("kind", string(req.Kind)).
		Str("to", email.To).
		Msg("Approval email sent")

	return &EmailResult{Sent: true, EmailID: emailID, SentTo: email.To}, nil
}

// pickRecipient chooses who gets the message. Records arrive in ascending
// level order, division-scoped. Action requests go to the first pending
// record; terminal announcements fall back to the last record of the chain
// when nothing is pending anymore.
func (s *service) pickRecipient(records []*models.DeliveryNoteApproval, kind models.EmailKind) *models.DeliveryNoteApproval {
	for _, record := range records {
		if record.Status == models.ApprovalPending && record.ApprovalLevel != nil {
			return record
		}
	}
	if kind == models.EmailApprovalRequest || kind == models.EmailReminder {
		// An action request with no pending record is a no-op.
		return nil
	}
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].ApprovalLevel != nil {
			return records[i]
		}
	}
	return nil
}

// issueToken mints a fresh single-use token, replacing any previous one on
// the record so at most one live link exists.
func (s *service) issueToken(ctx context.Context, recordID uuid.UUID) (string, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.Approval.TokenTTL)
	if err := s.repo.SetApprovalToken(ctx, recordID, token, expiresAt); err != nil {
		return "", err
	}
	s.metrics.Increment(metrics.CounterTokensIssued)
	return token, nil
}

func (s *service) actionLink(token string, action models.ApprovalAction) string {
	return fmt.Sprintf("%s/handle-email-approval?token=%s&action=%s", s.cfg.Approval.BaseURL, token, action)
}

func (s *service) composeActionRequest(note *models.DeliveryNote, level *models.ApprovalLevel, token string, reminder bool) mailer.Email {
	prefix := ""
	if reminder {
		prefix = "[REMINDER] "
	}

	approveURL := s.actionLink(token, models.ActionApprove)
	rejectURL := s.actionLink(token, models.ActionReject)
	ttlHours := int(s.cfg.Approval.TokenTTL.Hours())

	html := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #333; margin-bottom: 20px;">Permintaan Persetujuan Surat Jalan</h2>
        <p>Halo %s,</p>
        <p>Surat jalan berikut memerlukan persetujuan Anda:</p>
        <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
          <ul style="margin: 0; padding-left: 20px;">
            <li><strong>No. Surat Jalan:</strong> %s</li>
            <li><strong>Customer:</strong> %s</li>
            <li><strong>Divisi:</strong> %s</li>
            <li><strong>Level Approval:</strong> %s</li>
          </ul>
        </div>
        <div style="text-align: center; margin: 30px 0;">
          <p style="margin-bottom: 20px; font-weight: bold;">Klik salah satu tombol di bawah untuk memberikan persetujuan:</p>
          <a href="%s" style="display: inline-block; background-color: #10b981; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 0 10px; font-weight: bold;">&#10003; SETUJU</a>
          <a href="%s" style="display: inline-block; background-color: #ef4444; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 0 10px; font-weight: bold;">&#10007; TOLAK</a>
        </div>
        <div style="border-top: 1px solid #ddd; padding-top: 20px; margin-top: 30px; color: #666; font-size: 14px;">
          <p>Atau silakan login ke sistem Gudang Pintar untuk memberikan persetujuan manual.</p>
          <p><strong>Penting:</strong> Link persetujuan ini berlaku selama %d jam.</p>
        </div>
        <p style="margin-top: 20px;">Terima kasih.</p>
      </div>`,
		level.Name, note.DeliveryNumber, note.CustomerName, note.Division, level.Name,
		approveURL, rejectURL, ttlHours)

	return mailer.Email{
		To:      level.Email,
		Subject: fmt.Sprintf("%sPersetujuan Surat Jalan - %s", prefix, note.DeliveryNumber),
		HTML:    html,
	}
}

func (s *service) composeApproved(note *models.DeliveryNote, level *models.ApprovalLevel) mailer.Email {
	html := fmt.Sprintf(`
      <h2>Surat Jalan Telah Disetujui</h2>
      <p>Surat jalan dengan nomor %s untuk customer %s dari divisi %s telah disetujui dan siap untuk proses pengiriman.</p>
      <p>Terima kasih.</p>`,
		note.DeliveryNumber, note.CustomerName, note.Division)

	return mailer.Email{
		To:      level.Email,
		Subject: fmt.Sprintf("Surat Jalan Disetujui - %s", note.DeliveryNumber),
		HTML:    html,
	}
}

func (s *service) composeRejected(note *models.DeliveryNote, level *models.ApprovalLevel) mailer.Email {
	html := fmt.Sprintf(`
      <h2>Surat Jalan Ditolak</h2>
      <p>Surat jalan dengan nomor %s untuk customer %s dari divisi %s telah ditolak.</p>
      <p>Silakan periksa sistem untuk detail lebih lanjut.</p>
      <p>Terima kasih.</p>`,
		note.DeliveryNumber, note.CustomerName, note.Division)

	return mailer.Email{
		To:      level.Email,
		Subject: fmt.Sprintf("Surat Jalan Ditolak - %s", note.DeliveryNumber),
		HTML:    html,
	}
}
