package services

import (
	"context"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
)

// AppointmentReaderSvc defines read operations on appointments.
type AppointmentReaderSvc interface {
	GetAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByPartnerAndDateRange(ctx context.Context, partnerID string, from, to time.Time) ([]domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Appointment, error)
}

// AppointmentLifecycleSvc defines the booking state machine. Every guard
// violation returns ErrInvalidState naming the required prior state; slot
// conflicts return a ConflictError carrying the engine's structured reasons.
type AppointmentLifecycleSvc interface {
	// CreateAppointment validates referenced entities, business-hour and
	// advance rules and slot availability, then books the slot.
	CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest, creatorUserID string) (*domain.Appointment, error)

	// UpdateAppointment re-runs availability when date/time/partner/room
	// change (excluding the appointment's own slot) and re-validates any
	// changed entity references.
	UpdateAppointment(ctx context.Context, appointmentID string, req dto.UpdateAppointmentRequest, userID string) (*domain.Appointment, error)

	// DeleteAppointment removes an appointment. Permitted only while SCHEDULED.
	DeleteAppointment(ctx context.Context, appointmentID string) error

	// CancelAppointment cancels from SCHEDULED or IN_PROGRESS, records the
	// reason, and reverses every financial entry tied to the appointment.
	CancelAppointment(ctx context.Context, appointmentID string, reason string, userID string) (*domain.Appointment, error)

	// CheckIn moves SCHEDULED to IN_PROGRESS and records the check-in time.
	CheckIn(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error)

	// CheckOut moves IN_PROGRESS to COMPLETED and records the check-out time.
	CheckOut(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error)

	// CheckOutWithFinancials performs CheckOut and then posts the revenue
	// and commission entries for the appointment.
	CheckOutWithFinancials(ctx context.Context, appointmentID string, payment dto.CheckoutRequest, userID string) (*domain.Appointment, *domain.CheckoutResult, error)

	// UndoCheckIn reverts IN_PROGRESS to SCHEDULED and clears the check-in time.
	UndoCheckIn(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error)

	// UndoCheckOut reverts COMPLETED to IN_PROGRESS and clears the check-out time.
	UndoCheckOut(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error)

	// CancelCheckoutFinancials cancels only the appointment's financial
	// entries and pulls the appointment back to IN_PROGRESS. It is the
	// money-driven narrower undo of a checkout.
	CancelCheckoutFinancials(ctx context.Context, appointmentID string, reason string, userID string) (*domain.Appointment, *domain.CancellationResult, error)

	// MarkNoShow flags a SCHEDULED appointment whose start time has passed.
	MarkNoShow(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error)
}

// AppointmentSvcFacade combines all appointment service interfaces.
type AppointmentSvcFacade interface {
	AppointmentReaderSvc
	AppointmentLifecycleSvc
}
