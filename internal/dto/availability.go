package dto

import (
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// AvailabilityQuery defines the query parameters for an availability check.
type AvailabilityQuery struct {
	PartnerID            string    `form:"partnerID" binding:"required"`
	RoomID               *string   `form:"roomID"`
	Date                 time.Time `form:"date" binding:"required" time_format:"2006-01-02"`
	StartTime            string    `form:"startTime" binding:"required,hhmm"`
	EndTime              string    `form:"endTime" binding:"required,hhmm"`
	ExcludeAppointmentID *string   `form:"excludeAppointmentID"`
	FitIn                bool      `form:"fitIn"`
}

// ConflictDetailResponse is one structured reason a slot is unavailable.
type ConflictDetailResponse struct {
	Kind   domain.ConflictKind `json:"kind"`
	Reason string              `json:"reason"`
	Start  string              `json:"start,omitempty"`
	End    string              `json:"end,omitempty"`
}

// AvailabilityResponse is the engine's verdict for a candidate slot.
type AvailabilityResponse struct {
	Available      bool                     `json:"available"`
	Conflicts      []ConflictDetailResponse `json:"conflicts"`
	SuggestedTimes []string                 `json:"suggestedTimes,omitempty"`
}

// ToAvailabilityResponse converts a domain.AvailabilityResult to its DTO.
func ToAvailabilityResponse(r *domain.AvailabilityResult) AvailabilityResponse {
	conflicts := make([]ConflictDetailResponse, len(r.Conflicts))
	for i, c := range r.Conflicts {
		conflicts[i] = ConflictDetailResponse{Kind: c.Kind, Reason: c.Reason, Start: c.Start, End: c.End}
	}
	return AvailabilityResponse{
		Available:      r.Available,
		Conflicts:      conflicts,
		SuggestedTimes: r.SuggestedTimes,
	}
}

// DayScheduleResponse is a partner's schedule picture for one day.
type DayScheduleResponse struct {
	PartnerID  string                `json:"partnerID"`
	Date       time.Time             `json:"date"`
	Working    bool                  `json:"working"`
	StartTime  string                `json:"startTime,omitempty"`
	EndTime    string                `json:"endTime,omitempty"`
	BreakStart *string               `json:"breakStart,omitempty"`
	BreakEnd   *string               `json:"breakEnd,omitempty"`
	Blocked    []BlockedDateResponse `json:"blocked,omitempty"`
	Booked     []BookedSlotResponse  `json:"booked,omitempty"`
}

// BookedSlotResponse is one occupied window within a day schedule.
type BookedSlotResponse struct {
	AppointmentID string                   `json:"appointmentID"`
	StartTime     string                   `json:"startTime"`
	EndTime       string                   `json:"endTime"`
	Status        domain.AppointmentStatus `json:"status"`
}

// ToDayScheduleResponse converts a domain.DaySchedule to its DTO.
func ToDayScheduleResponse(s *domain.DaySchedule, date time.Time) DayScheduleResponse {
	booked := make([]BookedSlotResponse, len(s.Booked))
	for i, b := range s.Booked {
		booked[i] = BookedSlotResponse{
			AppointmentID: b.AppointmentID,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
		}
	}
	blocked := make([]BlockedDateResponse, len(s.Blocked))
	for i := range s.Blocked {
		blocked[i] = ToBlockedDateResponse(&s.Blocked[i])
	}
	return DayScheduleResponse{
		PartnerID:  s.PartnerID,
		Date:       date,
		Working:    s.Working,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
		Blocked:    blocked,
		Booked:     booked,
	}
}
