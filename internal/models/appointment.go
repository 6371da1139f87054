package models

import "time"

// Appointment represents a booked time slot as stored in the database.
// Times are HH:MM strings; the date column is a plain DATE.
type Appointment struct {
	AppointmentID      string     `db:"appointment_id"`
	PatientID          string     `db:"patient_id"`
	PartnerID          string     `db:"partner_id"`
	ServiceID          string     `db:"service_id"`
	RoomID             *string    `db:"room_id"` // Nullable
	Date               time.Time  `db:"date"`
	StartTime          string     `db:"start_time"`
	EndTime            string     `db:"end_time"`
	Type               string     `db:"type"`
	Status             string     `db:"status"`
	Notes              string     `db:"notes"`
	CancellationReason string     `db:"cancellation_reason"`
	CheckInAt          *time.Time `db:"check_in_at"`  // Nullable
	CheckOutAt         *time.Time `db:"check_out_at"` // Nullable
	IsFitIn            bool       `db:"is_fit_in"`
	AuditFields
}
