package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	"github.com/praxisdesk/clinic_management_app/internal/models"
)

type PgxCatalogRepository struct {
	pool *pgxpool.Pool
}

// newPgxCatalogRepository creates a new repository for catalog reference data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{pool: pool}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

const serviceColumns = `service_id, name, kind, sale_price, duration_minutes, is_active, available_for_booking, created_at, created_by, last_updated_at, last_updated_by`

func toDomainProductService(m models.ProductService) domain.ProductService {
	return domain.ProductService{
		ServiceID:           m.ServiceID,
		Name:                m.Name,
		Kind:                domain.ServiceKind(m.Kind),
		SalePrice:           m.SalePrice,
		DurationMinutes:     m.DurationMinutes,
		IsActive:            m.IsActive,
		AvailableForBooking: m.AvailableForBooking,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanProductService(row pgx.Row) (models.ProductService, error) {
	var m models.ProductService
	err := row.Scan(
		&m.ServiceID,
		&m.Name,
		&m.Kind,
		&m.SalePrice,
		&m.DurationMinutes,
		&m.IsActive,
		&m.AvailableForBooking,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindServiceByID retrieves a service or product by ID.
func (r *PgxCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.ProductService, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE service_id = $1;`

	m, err := scanProductService(r.pool.QueryRow(ctx, query, serviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service by ID %s: %w", serviceID, err)
	}
	d := toDomainProductService(m)
	return &d, nil
}

// FindPatientByID retrieves a patient by ID.
func (r *PgxCatalogRepository) FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	query := `
		SELECT patient_id, name, phone, email, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM patients
		WHERE patient_id = $1;
	`
	var m models.Patient
	err := r.pool.QueryRow(ctx, query, patientID).Scan(
		&m.PatientID,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient by ID %s: %w", patientID, err)
	}
	return &domain.Patient{
		PatientID: m.PatientID,
		Name:      m.Name,
		Phone:     m.Phone,
		Email:     m.Email,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// FindRoomByID retrieves a room by ID.
func (r *PgxCatalogRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	query := `
		SELECT room_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM rooms
		WHERE room_id = $1;
	`
	var m models.Room
	err := r.pool.QueryRow(ctx, query, roomID).Scan(
		&m.RoomID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room by ID %s: %w", roomID, err)
	}
	return &domain.Room{
		RoomID:   m.RoomID,
		Name:     m.Name,
		IsActive: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// ListServices retrieves catalog entries, optionally only those bookable.
func (r *PgxCatalogRepository) ListServices(ctx context.Context, onlyBookable bool) ([]domain.ProductService, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE is_active = TRUE AND ($1 = FALSE OR available_for_booking = TRUE)
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query, onlyBookable)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := []domain.ProductService{}
	for rows.Next() {
		m, err := scanProductService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, toDomainProductService(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service rows: %w", err)
	}
	return services, nil
}

// SaveService inserts a new catalog entry.
func (r *PgxCatalogRepository) SaveService(ctx context.Context, service domain.ProductService) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		service.ServiceID,
		service.Name,
		string(service.Kind),
		service.SalePrice,
		service.DurationMinutes,
		service.IsActive,
		service.AvailableForBooking,
		service.CreatedAt,
		service.CreatedBy,
		service.LastUpdatedAt,
		service.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: service with ID %s already exists", apperrors.ErrDuplicate, service.ServiceID)
		}
		return fmt.Errorf("failed to save service %s: %w", service.ServiceID, err)
	}
	return nil
}

// SavePatient inserts a new patient.
func (r *PgxCatalogRepository) SavePatient(ctx context.Context, patient domain.Patient) error {
	query := `
		INSERT INTO patients (patient_id, name, phone, email, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		patient.PatientID,
		patient.Name,
		patient.Phone,
		patient.Email,
		patient.IsActive,
		patient.CreatedAt,
		patient.CreatedBy,
		patient.LastUpdatedAt,
		patient.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: patient with ID %s already exists", apperrors.ErrDuplicate, patient.PatientID)
		}
		return fmt.Errorf("failed to save patient %s: %w", patient.PatientID, err)
	}
	return nil
}

// SaveRoom inserts a new room.
func (r *PgxCatalogRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	query := `
		INSERT INTO rooms (room_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		room.RoomID,
		room.Name,
		room.IsActive,
		room.CreatedAt,
		room.CreatedBy,
		room.LastUpdatedAt,
		room.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: room with ID %s already exists", apperrors.ErrDuplicate, room.RoomID)
		}
		return fmt.Errorf("failed to save room %s: %w", room.RoomID, err)
	}
	return nil
}
