package repositories

import (
	"context"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// CatalogReader defines read operations for patients, rooms and the
// service/product catalog. These aggregates are plain reference data for the
// scheduling core.
type CatalogReader interface {
	// FindServiceByID retrieves a service or product by ID.
	FindServiceByID(ctx context.Context, serviceID string) (*domain.ProductService, error)

	// FindPatientByID retrieves a patient by ID.
	FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error)

	// FindRoomByID retrieves a room by ID.
	FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error)

	// ListServices retrieves catalog entries, optionally only those bookable.
	ListServices(ctx context.Context, onlyBookable bool) ([]domain.ProductService, error)
}

// CatalogWriter defines write operations for catalog reference data
type CatalogWriter interface {
	SaveService(ctx context.Context, service domain.ProductService) error
	SavePatient(ctx context.Context, patient domain.Patient) error
	SaveRoom(ctx context.Context, room domain.Room) error
}

// CatalogRepositoryFacade combines all catalog-related repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
