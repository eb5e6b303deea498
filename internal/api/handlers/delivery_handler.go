package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// DeliveryNoteHandler handles delivery note requests
type DeliveryNoteHandler struct {
	service service.Service
}

// NewDeliveryNoteHandler creates a new DeliveryNoteHandler instance
func NewDeliveryNoteHandler(svc service.Service) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{service: svc}
}

// CreateDeliveryNote creates a delivery note with its items
func (h *DeliveryNoteHandler) CreateDeliveryNote(c *gin.Context) {
	var req service.DeliveryNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	note, err := h.service.CreateDeliveryNote(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// ListDeliveryNotes returns all delivery notes
func (h *DeliveryNoteHandler) ListDeliveryNotes(c *gin.Context) {
	notes, err := h.service.ListDeliveryNotes(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetDeliveryNote returns one delivery note with its items
func (h *DeliveryNoteHandler) GetDeliveryNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid delivery note ID", Code: "INVALID_REQUEST"})
		return
	}

	note, err := h.service.GetDeliveryNote(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// UpdateDeliveryNote replaces a note's form fields and items
func (h *DeliveryNoteHandler) UpdateDeliveryNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid delivery note ID", Code: "INVALID_REQUEST"})
		return
	}

	var req service.DeliveryNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	note, err := h.service.UpdateDeliveryNote(c.Request.Context(), id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteDeliveryNote removes a note and restores undelivered stock
func (h *DeliveryNoteHandler) DeleteDeliveryNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid delivery note ID", Code: "INVALID_REQUEST"})
		return
	}

	if err := h.service.DeleteDeliveryNote(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a note through its dispatch lifecycle
func (h *DeliveryNoteHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid delivery note ID", Code: "INVALID_REQUEST"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	if err := h.service.UpdateDeliveryStatus(c.Request.Context(), id, models.NoteStatus(req.Status)); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}

// Print renders the printable surat jalan document
func (h *DeliveryNoteHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid delivery note ID", Code: "INVALID_REQUEST"})
		return
	}

	html, err := h.service.RenderDeliveryNoteHTML(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Search queries the delivery note search index
func (h *DeliveryNoteHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	results, err := h.service.SearchDeliveryNotes(c.Request.Context(), query, limit)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
