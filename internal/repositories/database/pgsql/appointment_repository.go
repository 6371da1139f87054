package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	"github.com/praxisdesk/clinic_management_app/internal/models"
)

type PgxAppointmentRepository struct {
	pool *pgxpool.Pool
}

// newPgxAppointmentRepository creates a new repository for appointment data.
func newPgxAppointmentRepository(pool *pgxpool.Pool) portsrepo.AppointmentRepositoryFacade {
	return &PgxAppointmentRepository{pool: pool}
}

var _ portsrepo.AppointmentRepositoryFacade = (*PgxAppointmentRepository)(nil)

const appointmentColumns = `appointment_id, patient_id, partner_id, service_id, room_id, date, start_time, end_time, type, status, notes, cancellation_reason, check_in_at, check_out_at, is_fit_in, created_at, created_by, last_updated_at, last_updated_by`

func toModelAppointment(d domain.Appointment) models.Appointment {
	return models.Appointment{
		AppointmentID:      d.AppointmentID,
		PatientID:          d.PatientID,
		PartnerID:          d.PartnerID,
		ServiceID:          d.ServiceID,
		RoomID:             d.RoomID,
		Date:               d.Date,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		Type:               string(d.Type),
		Status:             string(d.Status),
		Notes:              d.Notes,
		CancellationReason: d.CancellationReason,
		CheckInAt:          d.CheckInAt,
		CheckOutAt:         d.CheckOutAt,
		IsFitIn:            d.IsFitIn,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAppointment(m models.Appointment) domain.Appointment {
	return domain.Appointment{
		AppointmentID:      m.AppointmentID,
		PatientID:          m.PatientID,
		PartnerID:          m.PartnerID,
		ServiceID:          m.ServiceID,
		RoomID:             m.RoomID,
		Date:               m.Date,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Type:               domain.AppointmentType(m.Type),
		Status:             domain.AppointmentStatus(m.Status),
		Notes:              m.Notes,
		CancellationReason: m.CancellationReason,
		CheckInAt:          m.CheckInAt,
		CheckOutAt:         m.CheckOutAt,
		IsFitIn:            m.IsFitIn,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAppointment(row pgx.Row) (models.Appointment, error) {
	var m models.Appointment
	err := row.Scan(
		&m.AppointmentID,
		&m.PatientID,
		&m.PartnerID,
		&m.ServiceID,
		&m.RoomID,
		&m.Date,
		&m.StartTime,
		&m.EndTime,
		&m.Type,
		&m.Status,
		&m.Notes,
		&m.CancellationReason,
		&m.CheckInAt,
		&m.CheckOutAt,
		&m.IsFitIn,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	defer rows.Close()
	appointments := []domain.Appointment{}
	for rows.Next() {
		m, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, toDomainAppointment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}
	return appointments, nil
}

// SaveAppointment inserts a new appointment.
func (r *PgxAppointmentRepository) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	m := toModelAppointment(appointment)

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AppointmentID,
		m.PatientID,
		m.PartnerID,
		m.ServiceID,
		m.RoomID,
		m.Date,
		m.StartTime,
		m.EndTime,
		m.Type,
		m.Status,
		m.Notes,
		m.CancellationReason,
		m.CheckInAt,
		m.CheckOutAt,
		m.IsFitIn,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: appointment with ID %s already exists", apperrors.ErrDuplicate, m.AppointmentID)
		}
		return fmt.Errorf("failed to save appointment %s: %w", m.AppointmentID, err)
	}
	return nil
}

// FindAppointmentByID retrieves an appointment by its ID.
func (r *PgxAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE appointment_id = $1;`

	m, err := scanAppointment(r.pool.QueryRow(ctx, query, appointmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment by ID %s: %w", appointmentID, err)
	}
	d := toDomainAppointment(m)
	return &d, nil
}

// FindActiveByPartnerAndDate retrieves all non-cancelled appointments for a
// partner on a given day.
func (r *PgxAppointmentRepository) FindActiveByPartnerAndDate(ctx context.Context, partnerID string, date time.Time, excludeAppointmentID *string) ([]domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE partner_id = $1 AND date = $2 AND status <> 'CANCELLED'
		  AND ($3::text IS NULL OR appointment_id <> $3)
		ORDER BY start_time;
	`
	rows, err := r.pool.Query(ctx, query, partnerID, date, excludeAppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments for partner %s: %w", partnerID, err)
	}
	return collectAppointments(rows)
}

// FindActiveByRoomAndDate retrieves all non-cancelled appointments in a room
// on a given day.
func (r *PgxAppointmentRepository) FindActiveByRoomAndDate(ctx context.Context, roomID string, date time.Time, excludeAppointmentID *string) ([]domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE room_id = $1 AND date = $2 AND status <> 'CANCELLED'
		  AND ($3::text IS NULL OR appointment_id <> $3)
		ORDER BY start_time;
	`
	rows, err := r.pool.Query(ctx, query, roomID, date, excludeAppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments for room %s: %w", roomID, err)
	}
	return collectAppointments(rows)
}

// ListByPartnerAndDateRange retrieves a partner's appointments between two days, inclusive.
func (r *PgxAppointmentRepository) ListByPartnerAndDateRange(ctx context.Context, partnerID string, from, to time.Time) ([]domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE partner_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, start_time;
	`
	rows, err := r.pool.Query(ctx, query, partnerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments for partner %s: %w", partnerID, err)
	}
	return collectAppointments(rows)
}

// ListByPatient retrieves a patient's appointments, most recent first.
func (r *PgxAppointmentRepository) ListByPatient(ctx context.Context, patientID string, limit int, offset int) ([]domain.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date DESC, start_time DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments for patient %s: %w", patientID, err)
	}
	return collectAppointments(rows)
}

// UpdateAppointment updates an existing appointment.
func (r *PgxAppointmentRepository) UpdateAppointment(ctx context.Context, appointment domain.Appointment) error {
	m := toModelAppointment(appointment)

	query := `
		UPDATE appointments
		SET patient_id = $2, partner_id = $3, service_id = $4, room_id = $5,
		    date = $6, start_time = $7, end_time = $8, type = $9, status = $10,
		    notes = $11, cancellation_reason = $12, check_in_at = $13,
		    check_out_at = $14, is_fit_in = $15,
		    last_updated_at = $16, last_updated_by = $17
		WHERE appointment_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AppointmentID,
		m.PatientID,
		m.PartnerID,
		m.ServiceID,
		m.RoomID,
		m.Date,
		m.StartTime,
		m.EndTime,
		m.Type,
		m.Status,
		m.Notes,
		m.CancellationReason,
		m.CheckInAt,
		m.CheckOutAt,
		m.IsFitIn,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", m.AppointmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAppointment removes an appointment row.
func (r *PgxAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE appointment_id = $1;`, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", appointmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
