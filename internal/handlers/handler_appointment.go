package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// appointmentHandler handles HTTP requests for the appointment lifecycle.
type appointmentHandler struct {
	appointmentService    portssvc.AppointmentSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newAppointmentHandler(as portssvc.AppointmentSvcFacade, rs portssvc.ReconciliationSvcFacade) *appointmentHandler {
	return &appointmentHandler{
		appointmentService:    as,
		reconciliationService: rs,
	}
}

// registerAppointmentRoutes registers routes related to appointments.
func registerAppointmentRoutes(rg *gin.RouterGroup, appointmentService portssvc.AppointmentSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newAppointmentHandler(appointmentService, reconciliationService)

	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.createAppointment)
		appointments.GET("", h.listAppointments)
		appointments.GET("/:id", h.getAppointment)
		appointments.PUT("/:id", h.updateAppointment)
		appointments.DELETE("/:id", h.deleteAppointment)
		appointments.POST("/:id/cancel", h.cancelAppointment)
		appointments.POST("/:id/check-in", h.checkIn)
		appointments.POST("/:id/undo-check-in", h.undoCheckIn)
		appointments.POST("/:id/check-out", h.checkOut)
		appointments.POST("/:id/undo-check-out", h.undoCheckOut)
		appointments.POST("/:id/checkout", h.checkOutWithFinancials)
		appointments.POST("/:id/cancel-checkout", h.cancelCheckoutFinancials)
		appointments.POST("/:id/no-show", h.markNoShow)
		appointments.GET("/:id/entries", h.listAppointmentEntries)
	}
}

func (h *appointmentHandler) createAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAppointment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("partner_id", req.PartnerID))

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create appointment")
		return
	}

	logger.Info("Appointment created", slog.String("appointment_id", appointment.AppointmentID))
	c.JSON(http.StatusCreated, dto.ToAppointmentResponse(appointment))
}

func (h *appointmentHandler) getAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	appointment, err := h.appointmentService.GetAppointmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve appointment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// listAppointments serves two list shapes: a partner's appointments over a
// date range, or a patient's history page.
func (h *appointmentHandler) listAppointments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAppointmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAppointments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	switch {
	case params.PartnerID != "":
		if params.From == nil || params.To == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required when listing by partner"})
			return
		}
		appointments, err := h.appointmentService.ListByPartnerAndDateRange(c.Request.Context(), params.PartnerID, *params.From, *params.To)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to list appointments")
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": dto.ToAppointmentResponses(appointments)})

	case params.PatientID != "":
		appointments, err := h.appointmentService.ListByPatient(c.Request.Context(), params.PatientID, params.Limit, params.Offset)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to list appointments")
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": dto.ToAppointmentResponses(appointments)})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either partnerID or patientID is required"})
	}
}

func (h *appointmentHandler) updateAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAppointment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("appointment_id", appointmentID))

	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), appointmentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update appointment")
		return
	}

	logger.Info("Appointment updated")
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

func (h *appointmentHandler) deleteAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")

	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), appointmentID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete appointment")
		return
	}

	logger.Info("Appointment deleted", slog.String("appointment_id", appointmentID))
	c.Status(http.StatusNoContent)
}

func (h *appointmentHandler) cancelAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")

	var req dto.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelAppointment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("appointment_id", appointmentID))

	appointment, err := h.appointmentService.CancelAppointment(c.Request.Context(), appointmentID, req.Reason, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel appointment")
		return
	}

	logger.Info("Appointment cancelled")
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

func (h *appointmentHandler) checkIn(c *gin.Context) {
	h.transition(c, h.appointmentService.CheckIn, "Failed to check in appointment")
}

func (h *appointmentHandler) undoCheckIn(c *gin.Context) {
	h.transition(c, h.appointmentService.UndoCheckIn, "Failed to undo check-in")
}

func (h *appointmentHandler) checkOut(c *gin.Context) {
	h.transition(c, h.appointmentService.CheckOut, "Failed to check out appointment")
}

func (h *appointmentHandler) undoCheckOut(c *gin.Context) {
	h.transition(c, h.appointmentService.UndoCheckOut, "Failed to undo check-out")
}

func (h *appointmentHandler) markNoShow(c *gin.Context) {
	h.transition(c, h.appointmentService.MarkNoShow, "Failed to mark no-show")
}

// transition runs one of the body-less status transitions, which all share
// the same request and response shape.
func (h *appointmentHandler) transition(c *gin.Context, fn func(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error), fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")
	userID := middleware.GetActorFromContext(c)

	appointment, err := fn(c.Request.Context(), appointmentID, userID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("appointment_id", appointmentID)), err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// checkOutWithFinancials completes the appointment and posts its revenue and
// commission entries in one call.
func (h *appointmentHandler) checkOutWithFinancials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Checkout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("appointment_id", appointmentID))

	appointment, result, err := h.appointmentService.CheckOutWithFinancials(c.Request.Context(), appointmentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to check out appointment")
		return
	}

	// The reconciliation step is best-effort; the checkout stands even when
	// no entries were posted.
	if result == nil {
		logger.Warn("Checkout completed without financial entries")
		c.JSON(http.StatusOK, gin.H{
			"appointment": dto.ToAppointmentResponse(appointment),
			"warnings":    []string{"financial entries were not posted; run reconciliation for this appointment"},
		})
		return
	}

	logger.Info("Appointment checked out", slog.String("final_amount", result.FinalAmount.String()))
	c.JSON(http.StatusOK, dto.ToCheckoutResponse(appointment, result))
}

func (h *appointmentHandler) cancelCheckoutFinancials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")

	var req dto.CancelEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelCheckoutFinancials", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("appointment_id", appointmentID))

	appointment, result, err := h.appointmentService.CancelCheckoutFinancials(c.Request.Context(), appointmentID, req.Reason, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel checkout financials")
		return
	}

	logger.Info("Checkout financials cancelled", slog.Int("cancelled_count", result.CancelledCount))
	c.JSON(http.StatusOK, gin.H{
		"appointment": dto.ToAppointmentResponse(appointment),
		"summary":     dto.ToCancellationSummaryResponse(*result),
	})
}

func (h *appointmentHandler) listAppointmentEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appointmentID := c.Param("id")

	entries, err := h.reconciliationService.ListEntriesByAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list appointment entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToFinancialEntryResponses(entries)})
}
