package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// registerCustomValidators installs the custom binding tags: "hhmm" for
// request DTOs carrying a clock time and "partnershiptype" for partner
// payloads.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return domain.ValidClock(fl.Field().String())
		})
		_ = v.RegisterValidation("partnershiptype", func(fl validator.FieldLevel) bool {
			return domain.PartnershipType(fl.Field().String()).Valid()
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAvailabilityRoutes(v1, services.Availability)
	registerAppointmentRoutes(v1, services.Appointment, services.Reconciliation)
	registerPartnerRoutes(v1, services.Partner)
	registerFinancialRoutes(v1, services.Reconciliation)
	registerBankAccountRoutes(v1, services.BankLedger, services.Reconciliation)
	registerCatalogRoutes(v1, services.Catalog)
}
