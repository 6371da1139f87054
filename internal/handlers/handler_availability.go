package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// availabilityHandler handles HTTP requests for slot availability checks.
type availabilityHandler struct {
	availabilityService portssvc.AvailabilitySvcFacade
}

func newAvailabilityHandler(as portssvc.AvailabilitySvcFacade) *availabilityHandler {
	return &availabilityHandler{availabilityService: as}
}

// registerAvailabilityRoutes registers the read-only availability routes.
func registerAvailabilityRoutes(rg *gin.RouterGroup, availabilityService portssvc.AvailabilitySvcFacade) {
	h := newAvailabilityHandler(availabilityService)

	rg.GET("/availability", h.checkAvailability)
	rg.GET("/partners/:id/schedule", h.getDaySchedule)
}

// checkAvailability runs the full conflict detection for a candidate slot and
// returns the engine's verdict, including suggested alternatives when the
// slot is taken.
func (h *availabilityHandler) checkAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for CheckAvailability", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.availabilityService.CheckAvailability(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to check availability")
		return
	}

	c.JSON(http.StatusOK, dto.ToAvailabilityResponse(result))
}

// getDaySchedule returns a partner's working window, break, blocked windows
// and booked slots for one day.
func (h *availabilityHandler) getDaySchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	partnerID := c.Param("id")
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("partner_id", partnerID))

	schedule, err := h.availabilityService.GetDaySchedule(c.Request.Context(), partnerID, date)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get day schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToDayScheduleResponse(schedule, date))
}
