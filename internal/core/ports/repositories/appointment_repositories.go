package repositories

import (
	"context"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// AppointmentReader defines read operations for appointment data
type AppointmentReader interface {
	// FindAppointmentByID retrieves a specific appointment by its unique identifier.
	FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)

	// FindActiveByPartnerAndDate retrieves all non-cancelled appointments for a
	// partner on a given day, optionally excluding one appointment ID (used when
	// re-checking availability for an update of that same appointment).
	FindActiveByPartnerAndDate(ctx context.Context, partnerID string, date time.Time, excludeAppointmentID *string) ([]domain.Appointment, error)

	// FindActiveByRoomAndDate is the room-collision counterpart of
	// FindActiveByPartnerAndDate.
	FindActiveByRoomAndDate(ctx context.Context, roomID string, date time.Time, excludeAppointmentID *string) ([]domain.Appointment, error)

	// ListByPartnerAndDateRange retrieves a partner's appointments between two days, inclusive.
	ListByPartnerAndDateRange(ctx context.Context, partnerID string, from, to time.Time) ([]domain.Appointment, error)

	// ListByPatient retrieves a patient's appointments, most recent first.
	ListByPatient(ctx context.Context, patientID string, limit int, offset int) ([]domain.Appointment, error)
}

// AppointmentWriter defines write operations for appointment data
type AppointmentWriter interface {
	// SaveAppointment persists a new appointment.
	SaveAppointment(ctx context.Context, appointment domain.Appointment) error

	// UpdateAppointment updates an existing appointment.
	UpdateAppointment(ctx context.Context, appointment domain.Appointment) error

	// DeleteAppointment removes an appointment. Only SCHEDULED appointments are
	// ever deleted; the service layer enforces that guard.
	DeleteAppointment(ctx context.Context, appointmentID string) error
}

// AppointmentRepositoryFacade combines all appointment-related repository interfaces
type AppointmentRepositoryFacade interface {
	AppointmentReader
	AppointmentWriter
}
