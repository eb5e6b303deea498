package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// MasterDataHandler handles category, supplier, division and approval level
// administration.
type MasterDataHandler struct {
	service service.Service
}

// NewMasterDataHandler creates a new MasterDataHandler instance
func NewMasterDataHandler(svc service.Service) *MasterDataHandler {
	return &MasterDataHandler{service: svc}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ID", Code: "INVALID_REQUEST"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *MasterDataHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if err := h.service.CreateCategory(c.Request.Context(), &category); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *MasterDataHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *MasterDataHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	category.ID = id
	if err := h.service.UpdateCategory(c.Request.Context(), &category); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *MasterDataHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MasterDataHandler) CreateSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if err := h.service.CreateSupplier(c.Request.Context(), &supplier); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *MasterDataHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *MasterDataHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	supplier.ID = id
	if err := h.service.UpdateSupplier(c.Request.Context(), &supplier); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *MasterDataHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MasterDataHandler) CreateDivision(c *gin.Context) {
	var division models.Division
	if err := c.ShouldBindJSON(&division); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if err := h.service.CreateDivision(c.Request.Context(), &division); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, division)
}

func (h *MasterDataHandler) ListDivisions(c *gin.Context) {
	divisions, err := h.service.ListDivisions(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, divisions)
}

func (h *MasterDataHandler) UpdateDivision(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var division models.Division
	if err := c.ShouldBindJSON(&division); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	division.ID = id
	if err := h.service.UpdateDivision(c.Request.Context(), &division); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, division)
}

func (h *MasterDataHandler) DeleteDivision(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDivision(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MasterDataHandler) CreateApprovalLevel(c *gin.Context) {
	var level models.ApprovalLevel
	if err := c.ShouldBindJSON(&level); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if err := h.service.CreateApprovalLevel(c.Request.Context(), &level); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, level)
}

func (h *MasterDataHandler) ListApprovalLevels(c *gin.Context) {
	levels, err := h.service.ListApprovalLevels(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

func (h *MasterDataHandler) UpdateApprovalLevel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var level models.ApprovalLevel
	if err := c.ShouldBindJSON(&level); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	level.ID = id
	if err := h.service.UpdateApprovalLevel(c.Request.Context(), &level); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, level)
}

func (h *MasterDataHandler) DeleteApprovalLevel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteApprovalLevel(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
