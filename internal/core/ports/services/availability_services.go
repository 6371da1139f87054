package services

import (
	"context"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
)

// AvailabilitySvcFacade decides whether a candidate time slot is bookable and
// explains why not. It is consulted by the appointment lifecycle before any
// time/partner/room mutation and exposed read-only over HTTP.
type AvailabilitySvcFacade interface {
	// CheckAvailability runs the full conflict detection for a candidate slot:
	// appointment/appointment and appointment/room collisions (skipped for
	// fit-ins), weekly working hours, break windows and blocked dates.
	CheckAvailability(ctx context.Context, query dto.AvailabilityQuery) (*domain.AvailabilityResult, error)

	// GetDaySchedule returns a partner's working window, break, blocked
	// windows and booked slots for one day.
	GetDaySchedule(ctx context.Context, partnerID string, date time.Time) (*domain.DaySchedule, error)
}
