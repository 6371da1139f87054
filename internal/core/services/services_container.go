package services

import (
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/pkg/config"
)

// NewServiceContainer wires every service with its repository and
// collaborator dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	availability := NewAvailabilityService(
		repos.PartnerRepo,
		repos.AppointmentRepo,
		WithSlotIncrement(cfg.SlotIncrementMinutes),
		WithMaxSuggestedSlots(cfg.MaxSuggestedSlots),
	)
	scheduleRules := NewScheduleRulesService(
		cfg.OpeningTime,
		cfg.ClosingTime,
		cfg.MinBookingAdvanceMinutes,
		cfg.MaxBookingAdvanceDays,
	)
	notifier := NewLogNotifierService()
	reconciliation := NewReconciliationService(
		repos.EntryRepo,
		repos.BankAccountRepo,
		repos.AppointmentRepo,
		repos.PartnerRepo,
		repos.CatalogRepo,
	)
	appointment := NewAppointmentService(
		repos.AppointmentRepo,
		repos.PartnerRepo,
		repos.CatalogRepo,
		availability,
		reconciliation,
		scheduleRules,
		notifier,
	)

	return &portssvc.ServiceContainer{
		Availability:   availability,
		Appointment:    appointment,
		Reconciliation: reconciliation,
		BankLedger:     NewBankLedgerService(repos.BankAccountRepo, repos.EntryRepo),
		Partner:        NewPartnerService(repos.PartnerRepo),
		Catalog:        NewCatalogService(repos.CatalogRepo),
		ScheduleRules:  scheduleRules,
		Notifier:       notifier,
	}
}
