package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// ProductHandler handles product and stock ledger requests
type ProductHandler struct {
	service service.Service
}

// NewProductHandler creates a new ProductHandler instance
func NewProductHandler(svc service.Service) *ProductHandler {
	return &ProductHandler{service: svc}
}

// CreateProduct registers a product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	if err := h.service.CreateProduct(c.Request.Context(), &product); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts returns all products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product ID", Code: "INVALID_REQUEST"})
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates a product's master data
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product ID", Code: "INVALID_REQUEST"})
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	product.ID = id

	if err := h.service.UpdateProduct(c.Request.Context(), &product); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product ID", Code: "INVALID_REQUEST"})
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RecordStockTransaction appends a manual ledger entry
func (h *ProductHandler) RecordStockTransaction(c *gin.Context) {
	var req service.StockTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	entry, err := h.service.RecordStockTransaction(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListStockTransactions returns the most recent ledger entries
func (h *ProductHandler) ListStockTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.service.ListStockTransactions(c.Request.Context(), limit)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
