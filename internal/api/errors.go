package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/validation"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation
// errors carry field details; everything else surfaces as a single
// user-facing message.
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "submission already processed"})
	case errors.Is(err, models.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
