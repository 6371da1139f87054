package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
)

// respondServiceError maps service-layer errors onto HTTP responses so every
// handler reports the same way. Conflicts keep their structured reasons.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var conflictErr *apperrors.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		logger.Warn("Scheduling conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrConflict.Error(), "conflicts": conflictErr.Reasons})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Scheduling conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid state transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
