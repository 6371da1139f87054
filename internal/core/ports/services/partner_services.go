package services

import (
	"context"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
)

// PartnerSvcFacade manages partners, their weekly availability and blocked dates.
type PartnerSvcFacade interface {
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error)
	GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context, onlyActive bool) ([]domain.Partner, error)

	// ReplaceWeeklyAvailability swaps the partner's full weekly schedule.
	// Each entry must have start < end and any break fully inside the window.
	ReplaceWeeklyAvailability(ctx context.Context, partnerID string, req dto.ReplaceAvailabilityRequest, userID string) (*domain.Partner, error)

	// AddBlockedDate blocks a whole day or a window within it.
	AddBlockedDate(ctx context.Context, partnerID string, req dto.BlockedDateRequest, userID string) (*domain.BlockedDate, error)

	// RemoveBlockedDate deactivates a blocked date.
	RemoveBlockedDate(ctx context.Context, partnerID string, blockedDateID string) error
}

// CatalogSvcFacade exposes reference-data reads used by the booking flow.
type CatalogSvcFacade interface {
	GetServiceByID(ctx context.Context, serviceID string) (*domain.ProductService, error)
	GetPatientByID(ctx context.Context, patientID string) (*domain.Patient, error)
	GetRoomByID(ctx context.Context, roomID string) (*domain.Room, error)
	ListBookableServices(ctx context.Context) ([]domain.ProductService, error)
}
