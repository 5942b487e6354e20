package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoangducbinh/duckgoose/internal/auth"
	"github.com/hoangducbinh/duckgoose/internal/models"
)

// writeError maps the service error taxonomy onto HTTP statuses and emits the
// teacher-standard {"error": ...} payload.
func writeError(c *gin.Context, err error) {
	var (
		validation *models.ValidationError
		duplicate  *models.DuplicateError
		reference  *models.ReferenceError
		remote     *models.RemoteOperationError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
	case errors.As(err, &reference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": reference.Error()})
	case errors.Is(err, models.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotImplemented):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &remote):
		c.JSON(http.StatusBadGateway, gin.H{"error": remote.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
