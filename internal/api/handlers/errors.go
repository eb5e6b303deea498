package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// ErrorResponse defines the structure of an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error represents an API error
type Error struct {
	Message    string
	StatusCode int
	Code       string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Common API errors
var (
	ErrInvalidRequest = &Error{Message: "Invalid request", StatusCode: http.StatusBadRequest, Code: "INVALID_REQUEST"}
	ErrNotFound       = &Error{Message: "Resource not found", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
	ErrInternalServer = &Error{Message: "Internal server error", StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR"}
	ErrConflict       = &Error{Message: "Resource already exists", StatusCode: http.StatusConflict, Code: "CONFLICT"}
)

// WriteError maps service and repository errors onto HTTP responses
func WriteError(c *gin.Context, err error) {
	var apiError *Error
	if errors.As(err, &apiError) {
		c.JSON(apiError.StatusCode, ErrorResponse{Error: apiError.Message, Code: apiError.Code})
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found", Code: "NOT_FOUND"})
	case errors.Is(err, repository.ErrDuplicateKey):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Resource already exists", Code: "CONFLICT"})
	case errors.Is(err, repository.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Approval already resolved", Code: "ALREADY_RESOLVED"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INSUFFICIENT_STOCK"})
	case errors.Is(err, service.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "TOKEN_NOT_FOUND"})
	case errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "TOKEN_EXPIRED"})
	case errors.Is(err, service.ErrSearchUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "SEARCH_UNAVAILABLE"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
	}
}
