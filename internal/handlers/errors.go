package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/middleware"
	"options-contracts-api/internal/models"
)

// statusForError maps service errors onto HTTP status codes
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidQuery):
		return http.StatusBadRequest, "Invalid query"
	case errors.Is(err, models.ErrContractNotFound):
		return http.StatusNotFound, "Contract not found"
	case polygon.IsUnavailable(err):
		return http.StatusServiceUnavailable, "Provider unavailable"
	}
	if _, ok := polygon.AsAPIError(err); ok {
		return http.StatusBadGateway, "Provider error"
	}
	if errors.Is(err, polygon.ErrInvalidResponse) {
		return http.StatusBadGateway, "Provider error"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// respondError writes an ErrorResponse for err and logs it
func respondError(c *gin.Context, err error) {
	status, title := statusForError(err)
	requestID := c.GetString(middleware.RequestIDKey)

	entry := logrus.WithFields(logrus.Fields{
		"request_id":  requestID,
		"path":        c.Request.URL.Path,
		"status_code": status,
		"error":       err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error(title)
	} else {
		entry.Warn(title)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An internal error occurred"
	}

	c.JSON(status, middleware.ErrorResponse{
		Error:     title,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// isClientFacing reports whether an error should be reported inside a
// successful invocation rather than failing it
func isClientFacing(err error) bool {
	if errors.Is(err, models.ErrInvalidQuery) || errors.Is(err, models.ErrContractNotFound) {
		return true
	}
	_, ok := polygon.AsAPIError(err)
	return ok
}
