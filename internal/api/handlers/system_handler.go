package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// SystemHandler serves health, metrics and the dashboard
type SystemHandler struct {
	service service.Service
	metrics *metrics.Metrics
}

// NewSystemHandler creates a new SystemHandler instance
func NewSystemHandler(svc service.Service, m *metrics.Metrics) *SystemHandler {
	return &SystemHandler{service: svc, metrics: m}
}

// HealthCheck reports liveness
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics serves the in-process counters and timers
func (h *SystemHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// Dashboard serves the landing-screen counts
func (h *SystemHandler) Dashboard(c *gin.Context) {
	counts, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
