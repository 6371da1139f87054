package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// financialHandler handles HTTP requests for individual ledger entries.
type financialHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newFinancialHandler(rs portssvc.ReconciliationSvcFacade) *financialHandler {
	return &financialHandler{reconciliationService: rs}
}

// registerFinancialRoutes registers routes related to financial entries.
func registerFinancialRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newFinancialHandler(reconciliationService)

	entries := rg.Group("/financial-entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("/:id/pay", h.markEntryPaid)
		entries.POST("/:id/cancel", h.cancelEntry)
	}
}

// listEntries lists ledger entries either for an appointment or for a bank
// account, optionally filtered by status.
func (h *financialHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	switch {
	case params.AppointmentID != "":
		entries, err := h.reconciliationService.ListEntriesByAppointment(c.Request.Context(), params.AppointmentID)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to list entries")
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": dto.ToFinancialEntryResponses(entries)})

	case params.BankAccountID != "":
		entries, err := h.reconciliationService.ListEntriesByAccount(c.Request.Context(), params.BankAccountID, params.Status)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to list entries")
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": dto.ToFinancialEntryResponses(entries)})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either appointmentID or bankAccountID is required"})
	}
}

// markEntryPaid settles a pending entry and syncs the linked appointment.
func (h *financialHandler) markEntryPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.PayEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkEntryPaid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.reconciliationService.MarkEntryPaid(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark entry as paid")
		return
	}

	logger.Info("Entry marked as paid", slog.String("amount", entry.Amount.String()))
	c.JSON(http.StatusOK, dto.ToFinancialEntryResponse(entry))
}

// cancelEntry cancels a single entry, reversing its balance contribution
// when it was already paid.
func (h *financialHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.CancelEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.reconciliationService.CancelEntry(c.Request.Context(), entryID, req.Reason, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel entry")
		return
	}

	logger.Info("Entry cancelled")
	c.JSON(http.StatusOK, dto.ToFinancialEntryResponse(entry))
}
