package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// partnerHandler handles HTTP requests for partners and their schedules.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: ps}
}

// registerPartnerRoutes registers routes related to partners.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(partnerService)

	partners := rg.Group("/partners")
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.GET("/:id", h.getPartner)
		partners.PUT("/:id/availability", h.replaceWeeklyAvailability)
		partners.POST("/:id/blocked-dates", h.addBlockedDate)
		partners.DELETE("/:id/blocked-dates/:blockedDateID", h.removeBlockedDate)
	}
}

func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePartner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create partner")
		return
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

func (h *partnerHandler) getPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve partner")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

func (h *partnerHandler) listPartners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	onlyActive := c.DefaultQuery("onlyActive", "true") == "true"

	partners, err := h.partnerService.ListPartners(c.Request.Context(), onlyActive)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list partners")
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": dto.ToPartnerResponses(partners)})
}

func (h *partnerHandler) replaceWeeklyAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("id")

	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReplaceWeeklyAvailability", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("partner_id", partnerID))

	partner, err := h.partnerService.ReplaceWeeklyAvailability(c.Request.Context(), partnerID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to replace weekly availability")
		return
	}

	logger.Info("Weekly availability replaced", slog.Int("entry_count", len(req.Entries)))
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

func (h *partnerHandler) addBlockedDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("id")

	var req dto.BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddBlockedDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("partner_id", partnerID))

	blocked, err := h.partnerService.AddBlockedDate(c.Request.Context(), partnerID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add blocked date")
		return
	}

	logger.Info("Blocked date added", slog.String("blocked_date_id", blocked.BlockedDateID))
	c.JSON(http.StatusCreated, dto.ToBlockedDateResponse(blocked))
}

func (h *partnerHandler) removeBlockedDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("id")
	blockedDateID := c.Param("blockedDateID")

	if err := h.partnerService.RemoveBlockedDate(c.Request.Context(), partnerID, blockedDateID); err != nil {
		respondServiceError(c, logger.With(slog.String("partner_id", partnerID)), err, "Failed to remove blocked date")
		return
	}

	c.Status(http.StatusNoContent)
}
