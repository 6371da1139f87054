package dto

import (
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// CreateAppointmentRequest defines the data needed to book a new appointment.
// EndTime may be omitted; it is then derived from the service duration.
type CreateAppointmentRequest struct {
	PatientID string                 `json:"patientID" binding:"required"`
	PartnerID string                 `json:"partnerID" binding:"required"`
	ServiceID string                 `json:"serviceID" binding:"required"`
	RoomID    *string                `json:"roomID"`
	Date      time.Time              `json:"date" binding:"required"`
	StartTime string                 `json:"startTime" binding:"required,hhmm"`
	EndTime   *string                `json:"endTime" binding:"omitempty,hhmm"`
	Type      domain.AppointmentType `json:"type" binding:"omitempty,oneof=CONSULTATION RETURN PROCEDURE FIT_IN"`
	Notes     string                 `json:"notes"`
	IsFitIn   bool                   `json:"isFitIn"`
}

// UpdateAppointmentRequest defines the fields that may be changed on an
// existing appointment. Pointers distinguish "not provided" from zero values.
type UpdateAppointmentRequest struct {
	PatientID *string                 `json:"patientID"`
	PartnerID *string                 `json:"partnerID"`
	ServiceID *string                 `json:"serviceID"`
	RoomID    *string                 `json:"roomID"`
	Date      *time.Time              `json:"date"`
	StartTime *string                 `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   *string                 `json:"endTime" binding:"omitempty,hhmm"`
	Type      *domain.AppointmentType `json:"type" binding:"omitempty,oneof=CONSULTATION RETURN PROCEDURE FIT_IN"`
	Notes     *string                 `json:"notes"`
}

// CancelAppointmentRequest carries the mandatory cancellation reason.
type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AppointmentResponse defines the data returned for an appointment.
type AppointmentResponse struct {
	AppointmentID      string                   `json:"appointmentID"`
	PatientID          string                   `json:"patientID"`
	PartnerID          string                   `json:"partnerID"`
	ServiceID          string                   `json:"serviceID"`
	RoomID             *string                  `json:"roomID,omitempty"`
	Date               time.Time                `json:"date"`
	StartTime          string                   `json:"startTime"`
	EndTime            string                   `json:"endTime"`
	Type               domain.AppointmentType   `json:"type"`
	Status             domain.AppointmentStatus `json:"status"`
	Notes              string                   `json:"notes,omitempty"`
	CancellationReason string                   `json:"cancellationReason,omitempty"`
	CheckInAt          *time.Time               `json:"checkInAt,omitempty"`
	CheckOutAt         *time.Time               `json:"checkOutAt,omitempty"`
	IsFitIn            bool                     `json:"isFitIn"`
	CreatedAt          time.Time                `json:"createdAt"`
	LastUpdatedAt      time.Time                `json:"lastUpdatedAt"`
}

// ToAppointmentResponse converts a domain.Appointment to its response DTO.
func ToAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		AppointmentID:      a.AppointmentID,
		PatientID:          a.PatientID,
		PartnerID:          a.PartnerID,
		ServiceID:          a.ServiceID,
		RoomID:             a.RoomID,
		Date:               a.Date,
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		Type:               a.Type,
		Status:             a.Status,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CheckInAt:          a.CheckInAt,
		CheckOutAt:         a.CheckOutAt,
		IsFitIn:            a.IsFitIn,
		CreatedAt:          a.CreatedAt,
		LastUpdatedAt:      a.LastUpdatedAt,
	}
}

// ToAppointmentResponses converts a slice of appointments.
func ToAppointmentResponses(appointments []domain.Appointment) []AppointmentResponse {
	res := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		res[i] = ToAppointmentResponse(&appointments[i])
	}
	return res
}

// ListAppointmentsParams defines query parameters for listing appointments.
type ListAppointmentsParams struct {
	PartnerID string     `form:"partnerID"`
	PatientID string     `form:"patientID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	Offset    int        `form:"offset,default=0"`
}
