package services

import (
	"context"
	"fmt"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
)

// catalogService is a thin read facade over the reference data the booking
// flow needs.
type catalogService struct {
	catalogRepo portsrepo.CatalogReader
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogReader) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) GetServiceByID(ctx context.Context, serviceID string) (*domain.ProductService, error) {
	service, err := s.catalogRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, err)
	}
	return service, nil
}

func (s *catalogService) GetPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	patient, err := s.catalogRepo.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find patient %s: %w", patientID, err)
	}
	return patient, nil
}

func (s *catalogService) GetRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	room, err := s.catalogRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room %s: %w", roomID, err)
	}
	return room, nil
}

func (s *catalogService) ListBookableServices(ctx context.Context) ([]domain.ProductService, error) {
	return s.catalogRepo.ListServices(ctx, true)
}
