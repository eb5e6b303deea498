package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// stubService embeds the interface so only the methods a test exercises
// need an implementation.
type stubService struct {
	service.Service
	resolveByToken func(ctx context.Context, token string, action models.ApprovalAction) (*service.Resolution, error)
	resolve        func(ctx context.Context, noteID, levelID uuid.UUID, action models.ApprovalAction, notes string) (*service.Resolution, error)
	sendEmail      func(ctx context.Context, req service.EmailRequest) (*service.EmailResult, error)
}

func (s *stubService) ResolveByToken(ctx context.Context, token string, action models.ApprovalAction) (*service.Resolution, error) {
	return s.resolveByToken(ctx, token, action)
}

func (s *stubService) ResolveApproval(ctx context.Context, noteID, levelID uuid.UUID, action models.ApprovalAction, notes string) (*service.Resolution, error) {
	return s.resolve(ctx, noteID, levelID, action, notes)
}

func (s *stubService) SendApprovalEmail(ctx context.Context, req service.EmailRequest) (*service.EmailResult, error) {
	return s.sendEmail(ctx, req)
}

func newApprovalRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewApprovalHandler(svc)
	r.GET("/handle-email-approval", h.HandleEmailApproval)
	r.POST("/api/v1/handle-approval", h.HandleApproval)
	r.POST("/api/v1/send-approval-email", h.SendApprovalEmail)
	return r
}

func TestHandleEmailApprovalApprove(t *testing.T) {
	svc := &stubService{
		resolveByToken: func(ctx context.Context, token string, action models.ApprovalAction) (*service.Resolution, error) {
			require.Equal(t, "tok-1", token)
			require.Equal(t, models.ActionApprove, action)
			return &service.Resolution{
				DeliveryNumber: "SJ-20260201-0001",
				CustomerName:   "PT Uji",
				Action:         models.ActionApprove,
				Outcome:        models.NoteApproved,
			}, nil
		},
	}
	router := newApprovalRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/handle-email-approval?token=tok-1&action=approve", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "Disetujui")
	require.Contains(t, w.Body.String(), "SJ-20260201-0001")
}

func TestHandleEmailApprovalMissingParams(t *testing.T) {
	router := newApprovalRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/handle-email-approval?token=tok-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Link Tidak Valid")
}

func TestHandleEmailApprovalUsedToken(t *testing.T) {
	svc := &stubService{
		resolveByToken: func(ctx context.Context, token string, action models.ApprovalAction) (*service.Resolution, error) {
			return nil, service.ErrTokenNotFound
		},
	}
	router := newApprovalRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/handle-email-approval?token=used&action=reject", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "sudah digunakan")
}

func TestHandleEmailApprovalExpiredToken(t *testing.T) {
	svc := &stubService{
		resolveByToken: func(ctx context.Context, token string, action models.ApprovalAction) (*service.Resolution, error) {
			return nil, service.ErrTokenExpired
		},
	}
	router := newApprovalRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/handle-email-approval?token=old&action=approve", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Kedaluwarsa")
}

func TestHandleApprovalEscalation(t *testing.T) {
	noteID, levelID := uuid.New(), uuid.New()
	svc := &stubService{
		resolve: func(ctx context.Context, gotNote, gotLevel uuid.UUID, action models.ApprovalAction, notes string) (*service.Resolution, error) {
			require.Equal(t, noteID, gotNote)
			require.Equal(t, levelID, gotLevel)
			return &service.Resolution{
				DeliveryNumber: "SJ-20260201-0002",
				Action:         models.ActionApprove,
				Outcome:        models.NotePendingApproval,
			}, nil
		},
	}
	router := newApprovalRouter(svc)

	body := `{"deliveryNoteId":"` + noteID.String() + `","approvalLevelId":"` + levelID.String() + `","action":"approve"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/handle-approval", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "level berikutnya")
}

func TestSendApprovalEmailNoOp(t *testing.T) {
	svc := &stubService{
		sendEmail: func(ctx context.Context, req service.EmailRequest) (*service.EmailResult, error) {
			return &service.EmailResult{Sent: false}, nil
		},
	}
	router := newApprovalRouter(svc)

	body := `{"deliveryNoteId":"` + uuid.NewString() + `","type":"approval_request"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/send-approval-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Tidak ada approver")
}
