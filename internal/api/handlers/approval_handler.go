package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// ApprovalHandler handles the approval workflow endpoints
type ApprovalHandler struct {
	service service.Service
}

// NewApprovalHandler creates a new ApprovalHandler instance
func NewApprovalHandler(svc service.Service) *ApprovalHandler {
	return &ApprovalHandler{service: svc}
}

type handleApprovalRequest struct {
	DeliveryNoteID  uuid.UUID `json:"deliveryNoteId" binding:"required"`
	ApprovalLevelID uuid.UUID `json:"approvalLevelId" binding:"required"`
	Action          string    `json:"action" binding:"required"`
	Notes           string    `json:"notes"`
}

// HandleApproval records an in-app approval decision
func (h *ApprovalHandler) HandleApproval(c *gin.Context) {
	var req handleApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	resolution, err := h.service.ResolveApproval(c.Request.Context(),
		req.DeliveryNoteID, req.ApprovalLevelID, models.ApprovalAction(req.Action), req.Notes)
	if err != nil {
		WriteError(c, err)
		return
	}

	message := fmt.Sprintf("Surat jalan %s telah disetujui", resolution.DeliveryNumber)
	if resolution.Action == models.ActionReject {
		message = fmt.Sprintf("Surat jalan %s telah ditolak", resolution.DeliveryNumber)
	} else if resolution.Escalated() {
		message = fmt.Sprintf("Persetujuan dicatat, menunggu level berikutnya untuk surat jalan %s", resolution.DeliveryNumber)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         message,
		"approval_status": resolution.Outcome,
	})
}

// HandleEmailApproval resolves an approval through an emailed action link
// and answers with a human-readable HTML page, since the click comes from a
// mail client, not an API consumer.
func (h *ApprovalHandler) HandleEmailApproval(c *gin.Context) {
	token := c.Query("token")
	action := models.ApprovalAction(c.Query("action"))

	if token == "" || !action.Valid() {
		h.renderErrorPage(c, http.StatusBadRequest,
			"Link Tidak Valid",
			"Parameter persetujuan tidak lengkap. Silakan gunakan link dari email Anda.")
		return
	}

	resolution, err := h.service.ResolveByToken(c.Request.Context(), token, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			h.renderErrorPage(c, http.StatusNotFound,
				"Link Tidak Ditemukan",
				"Link persetujuan tidak valid atau sudah digunakan.")
		case errors.Is(err, service.ErrTokenExpired):
			h.renderErrorPage(c, http.StatusBadRequest,
				"Link Kedaluwarsa",
				"Link persetujuan sudah kedaluwarsa. Silakan login ke sistem untuk memberikan persetujuan manual.")
		default:
			log.Error().Err(err).Msg("Failed to resolve email approval")
			h.renderErrorPage(c, http.StatusInternalServerError,
				"Terjadi Kesalahan",
				"Sistem tidak dapat memproses persetujuan Anda. Silakan coba lagi nanti.")
		}
		return
	}

	h.renderResultPage(c, resolution)
}

// SendApprovalEmail triggers one notification for a delivery note
func (h *ApprovalHandler) SendApprovalEmail(c *gin.Context) {
	var req service.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	result, err := h.service.SendApprovalEmail(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}

	message := "Email persetujuan telah dikirim"
	if !result.Sent {
		message = "Tidak ada approver yang perlu dikirimi email"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"result":  result,
	})
}

func (h *ApprovalHandler) renderResultPage(c *gin.Context, res *service.Resolution) {
	title := "Surat Jalan Disetujui"
	color := "#10b981"
	icon := "&#10003;"
	detail := fmt.Sprintf("Surat jalan <strong>%s</strong> untuk customer <strong>%s</strong> telah disetujui sepenuhnya dan siap diproses.",
		res.DeliveryNumber, res.CustomerName)

	switch {
	case res.Action == models.ActionReject:
		title = "Surat Jalan Ditolak"
		color = "#ef4444"
		icon = "&#10007;"
		detail = fmt.Sprintf("Surat jalan <strong>%s</strong> untuk customer <strong>%s</strong> telah ditolak. Stok barang dikembalikan.",
			res.DeliveryNumber, res.CustomerName)
	case res.Escalated():
		title = "Persetujuan Dicatat"
		color = "#3b82f6"
		icon = "&#10003;"
		detail = fmt.Sprintf("Persetujuan Anda untuk surat jalan <strong>%s</strong> telah dicatat. Permintaan diteruskan ke approver level berikutnya.",
			res.DeliveryNumber)
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(approvalPage(title, color, icon, detail)))
}

func (h *ApprovalHandler) renderErrorPage(c *gin.Context, status int, title, detail string) {
	c.Data(status, "text/html; charset=utf-8", []byte(approvalPage(title, "#ef4444", "&#9888;", detail)))
}

func approvalPage(title, color, icon, detail string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="id">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s - Gudang Pintar</title>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f3f4f6; margin: 0; padding: 40px 20px; }
    .card { max-width: 480px; margin: 0 auto; background: white; border-radius: 12px; padding: 40px; text-align: center; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
    .icon { width: 64px; height: 64px; border-radius: 50%%; background-color: %s; color: white; font-size: 32px; line-height: 64px; margin: 0 auto 24px; }
    h1 { font-size: 22px; color: #111827; margin: 0 0 16px; }
    p { color: #4b5563; line-height: 1.6; margin: 0; }
    .footer { margin-top: 32px; font-size: 13px; color: #9ca3af; }
  </style>
</head>
<body>
  <div class="card">
    <div class="icon">%s</div>
    <h1>%s</h1>
    <p>%s</p>
    <div class="footer">Gudang Pintar &mdash; Sistem Manajemen Gudang</div>
  </div>
</body>
</html>`, title, color, icon, title, detail)
}
