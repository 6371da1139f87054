package domain

import "time"

// AppointmentStatus tracks an appointment through its lifecycle.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "SCHEDULED"
	StatusInProgress AppointmentStatus = "IN_PROGRESS"
	StatusCompleted  AppointmentStatus = "COMPLETED"
	StatusCancelled  AppointmentStatus = "CANCELLED"
	// StatusNoShow is terminal and only ever set manually; no lifecycle
	// operation produces it as a side effect.
	StatusNoShow AppointmentStatus = "NO_SHOW"
)

// AppointmentType classifies the visit.
type AppointmentType string

const (
	TypeConsultation AppointmentType = "CONSULTATION"
	TypeReturn       AppointmentType = "RETURN"
	TypeProcedure    AppointmentType = "PROCEDURE"
	TypeFitIn        AppointmentType = "FIT_IN"
)

// Appointment is a booked time slot for a partner against a patient, a
// service and optionally a room. Times are HH:MM strings, the date is a
// wall-clock day (time component ignored).
type Appointment struct {
	AppointmentID      string            `json:"appointmentID"`
	PatientID          string            `json:"patientID"`
	PartnerID          string            `json:"partnerID"`
	ServiceID          string            `json:"serviceID"`
	RoomID             *string           `json:"roomID,omitempty"`
	Date               time.Time         `json:"date"`
	StartTime          string            `json:"startTime"`
	EndTime            string            `json:"endTime"`
	Type               AppointmentType   `json:"type"`
	Status             AppointmentStatus `json:"status"`
	Notes              string            `json:"notes"`
	CancellationReason string            `json:"cancellationReason,omitempty"`
	CheckInAt          *time.Time        `json:"checkInAt,omitempty"`
	CheckOutAt         *time.Time        `json:"checkOutAt,omitempty"`
	// IsFitIn waives appointment/appointment and appointment/room collision
	// checks. Working hours, breaks and blocked dates still apply.
	IsFitIn bool `json:"isFitIn"`
	AuditFields
}

// IsActive reports whether the appointment still occupies its time slot for
// conflict-detection purposes.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}
