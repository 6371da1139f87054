package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// catalogHandler serves the reference data the booking flow selects from.
// These aggregates are managed elsewhere; this service only reads them.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers the read-only catalog routes.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	rg.GET("/services", h.listBookableServices)
	rg.GET("/services/:id", h.getService)
	rg.GET("/patients/:id", h.getPatient)
	rg.GET("/rooms/:id", h.getRoom)
}

func (h *catalogHandler) listBookableServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	services, err := h.catalogService.ListBookableServices(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *catalogHandler) getService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	service, err := h.catalogService.GetServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve service")
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *catalogHandler) getPatient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	patient, err := h.catalogService.GetPatientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *catalogHandler) getRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	room, err := h.catalogService.GetRoomByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve room")
		return
	}

	c.JSON(http.StatusOK, room)
}
