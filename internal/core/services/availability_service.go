package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

const (
	defaultSlotIncrementMinutes = 30
	defaultMaxSuggestedSlots    = 5
)

// availabilityService implements the slot conflict detection engine.
type availabilityService struct {
	partnerRepo          portsrepo.PartnerReader
	appointmentRepo      portsrepo.AppointmentReader
	slotIncrementMinutes int
	maxSuggestedSlots    int
}

// AvailabilityOption configures the availability service.
type AvailabilityOption func(*availabilityService)

// WithSlotIncrement sets the grid step used when generating suggested times.
func WithSlotIncrement(minutes int) AvailabilityOption {
	return func(s *availabilityService) {
		if minutes > 0 {
			s.slotIncrementMinutes = minutes
		}
	}
}

// WithMaxSuggestedSlots caps the number of suggested alternative windows.
func WithMaxSuggestedSlots(n int) AvailabilityOption {
	return func(s *availabilityService) {
		if n > 0 {
			s.maxSuggestedSlots = n
		}
	}
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(partnerRepo portsrepo.PartnerReader, appointmentRepo portsrepo.AppointmentReader, opts ...AvailabilityOption) portssvc.AvailabilitySvcFacade {
	s := &availabilityService{
		partnerRepo:          partnerRepo,
		appointmentRepo:      appointmentRepo,
		slotIncrementMinutes: defaultSlotIncrementMinutes,
		maxSuggestedSlots:    defaultMaxSuggestedSlots,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AvailabilitySvcFacade = (*availabilityService)(nil)

// dayOf truncates a timestamp to its wall-clock day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckAvailability runs the full conflict detection for a candidate slot.
// Fit-in bookings skip only the appointment/appointment and appointment/room
// collision checks; working hours, breaks and blocked dates always apply.
func (s *availabilityService) CheckAvailability(ctx context.Context, query dto.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidClock(query.StartTime) || !domain.ValidClock(query.EndTime) {
		return nil, fmt.Errorf("%w: times must be HH:MM", apperrors.ErrValidation)
	}
	if query.StartTime >= query.EndTime {
		return nil, fmt.Errorf("%w: startTime %s must be before endTime %s", apperrors.ErrValidation, query.StartTime, query.EndTime)
	}

	date := dayOf(query.Date)
	result := &domain.AvailabilityResult{Conflicts: []domain.ConflictDetail{}}

	if !query.FitIn {
		if err := s.collectAppointmentConflicts(ctx, query, date, result); err != nil {
			return nil, err
		}
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, query.PartnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
				Kind:   domain.ConflictAvailability,
				Reason: fmt.Sprintf("partner %s not found", query.PartnerID),
			})
			result.Available = false
			return result, nil
		}
		logger.Error("Failed to fetch partner for availability check", slog.String("partner_id", query.PartnerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch partner: %w", err)
	}

	entry := partner.AvailabilityForWeekday(date.Weekday())
	s.collectScheduleConflicts(partner, entry, date, query.StartTime, query.EndTime, result)

	if err := s.collectBlockedDateConflicts(ctx, query.PartnerID, date, query.StartTime, query.EndTime, result); err != nil {
		return nil, err
	}

	result.Available = len(result.Conflicts) == 0
	if !result.Available && entry != nil {
		result.SuggestedTimes = s.suggestSlots(entry, query.StartTime, query.EndTime)
	}

	logger.Debug("Availability check completed",
		slog.String("partner_id", query.PartnerID),
		slog.Bool("available", result.Available),
		slog.Int("conflicts", len(result.Conflicts)),
	)
	return result, nil
}

// collectAppointmentConflicts adds one conflict per existing appointment whose
// window overlaps the candidate, tagged by whether the collision is on the
// partner or the room.
func (s *availabilityService) collectAppointmentConflicts(ctx context.Context, query dto.AvailabilityQuery, date time.Time, result *domain.AvailabilityResult) error {
	partnerAppts, err := s.appointmentRepo.FindActiveByPartnerAndDate(ctx, query.PartnerID, date, query.ExcludeAppointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch partner appointments: %w", err)
	}
	for _, appt := range partnerAppts {
		if domain.ClockRangesOverlap(appt.StartTime, appt.EndTime, query.StartTime, query.EndTime) {
			result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
				Kind:   domain.ConflictAppointment,
				Reason: fmt.Sprintf("partner already booked from %s to %s", appt.StartTime, appt.EndTime),
				Start:  appt.StartTime,
				End:    appt.EndTime,
			})
		}
	}

	if query.RoomID == nil {
		return nil
	}
	roomAppts, err := s.appointmentRepo.FindActiveByRoomAndDate(ctx, *query.RoomID, date, query.ExcludeAppointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch room appointments: %w", err)
	}
	for _, appt := range roomAppts {
		// A collision on both partner and room belongs to the partner check.
		if appt.PartnerID == query.PartnerID {
			continue
		}
		if domain.ClockRangesOverlap(appt.StartTime, appt.EndTime, query.StartTime, query.EndTime) {
			result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
				Kind:   domain.ConflictAppointment,
				Reason: fmt.Sprintf("room occupied from %s to %s", appt.StartTime, appt.EndTime),
				Start:  appt.StartTime,
				End:    appt.EndTime,
			})
		}
	}
	return nil
}

// collectScheduleConflicts checks the weekly availability entry and its break
// window against the candidate slot.
func (s *availabilityService) collectScheduleConflicts(partner *domain.Partner, entry *domain.WeeklyAvailability, date time.Time, startTime, endTime string, result *domain.AvailabilityResult) {
	if entry == nil {
		result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
			Kind:   domain.ConflictAvailability,
			Reason: fmt.Sprintf("partner does not work on %s%s", date.Weekday(), workingDaysHint(partner)),
		})
		return
	}

	if !domain.ClockWithin(startTime, endTime, entry.StartTime, entry.EndTime) {
		result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
			Kind:   domain.ConflictAvailability,
			Reason: fmt.Sprintf("requested slot is outside working hours %s-%s", entry.StartTime, entry.EndTime),
			Start:  entry.StartTime,
			End:    entry.EndTime,
		})
	}

	if entry.HasBreak() && domain.ClockRangesOverlap(*entry.BreakStart, *entry.BreakEnd, startTime, endTime) {
		result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
			Kind:   domain.ConflictBreak,
			Reason: fmt.Sprintf("requested slot overlaps break %s-%s", *entry.BreakStart, *entry.BreakEnd),
			Start:  *entry.BreakStart,
			End:    *entry.BreakEnd,
		})
	}
}

// collectBlockedDateConflicts checks the partner's active blocked dates for
// the candidate day.
func (s *availabilityService) collectBlockedDateConflicts(ctx context.Context, partnerID string, date time.Time, startTime, endTime string, result *domain.AvailabilityResult) error {
	blocked, err := s.partnerRepo.FindBlockedDates(ctx, partnerID, date)
	if err != nil {
		return fmt.Errorf("failed to fetch blocked dates: %w", err)
	}
	for _, b := range blocked {
		if !b.IsActive {
			continue
		}
		if b.WholeDay() {
			reason := "date is blocked"
			if b.Reason != "" {
				reason = fmt.Sprintf("date is blocked: %s", b.Reason)
			}
			result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
				Kind:   domain.ConflictBlocked,
				Reason: reason,
			})
			continue
		}
		if domain.ClockRangesOverlap(*b.StartTime, *b.EndTime, startTime, endTime) {
			reason := fmt.Sprintf("time window %s-%s is blocked", *b.StartTime, *b.EndTime)
			if b.Reason != "" {
				reason = fmt.Sprintf("%s (%s)", reason, b.Reason)
			}
			result.Conflicts = append(result.Conflicts, domain.ConflictDetail{
				Kind:   domain.ConflictBlocked,
				Reason: reason,
				Start:  *b.StartTime,
				End:    *b.EndTime,
			})
		}
	}
	return nil
}

// suggestSlots walks the working window on a fixed grid and returns windows
// of the requested duration that fit before closing. The suggestions are a
// hint only: they are not re-validated against existing appointments, breaks
// or blocked windows.
func (s *availabilityService) suggestSlots(entry *domain.WeeklyAvailability, startTime, endTime string) []string {
	duration, err := domain.MinutesBetween(startTime, endTime)
	if err != nil || duration <= 0 {
		return nil
	}

	windowStart, err := domain.ClockToMinutes(entry.StartTime)
	if err != nil {
		return nil
	}
	windowEnd, err := domain.ClockToMinutes(entry.EndTime)
	if err != nil {
		return nil
	}
	if s.slotIncrementMinutes <= 0 {
		return nil
	}

	// Slot arithmetic stays in minutes: a slot is kept only while its true
	// end fits inside the working window.
	var suggestions []string
	for cursor := windowStart; cursor+duration <= windowEnd && len(suggestions) < s.maxSuggestedSlots; cursor += s.slotIncrementMinutes {
		suggestions = append(suggestions, fmt.Sprintf("%s-%s", domain.MinutesToClock(cursor), domain.MinutesToClock(cursor+duration)))
	}
	return suggestions
}

// workingDaysHint renders the days the partner does work, for conflict reasons.
func workingDaysHint(partner *domain.Partner) string {
	days := partner.WorkingWeekdays()
	if len(days) == 0 {
		return " (no working days configured)"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return fmt.Sprintf(" (works: %s)", strings.Join(names, ", "))
}

// GetDaySchedule returns a partner's full picture for one day.
func (s *availabilityService) GetDaySchedule(ctx context.Context, partnerID string, date time.Time) (*domain.DaySchedule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	day := dayOf(date)

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch partner for day schedule", slog.String("partner_id", partnerID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to fetch partner %s: %w", partnerID, err)
	}

	schedule := &domain.DaySchedule{PartnerID: partnerID}
	if entry := partner.AvailabilityForWeekday(day.Weekday()); entry != nil {
		schedule.Working = true
		schedule.StartTime = entry.StartTime
		schedule.EndTime = entry.EndTime
		schedule.BreakStart = entry.BreakStart
		schedule.BreakEnd = entry.BreakEnd
	}

	blocked, err := s.partnerRepo.FindBlockedDates(ctx, partnerID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked dates: %w", err)
	}
	schedule.Blocked = blocked

	appts, err := s.appointmentRepo.FindActiveByPartnerAndDate(ctx, partnerID, day, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].StartTime < appts[j].StartTime })
	for _, appt := range appts {
		schedule.Booked = append(schedule.Booked, domain.BookedSlot{
			AppointmentID: appt.AppointmentID,
			StartTime:     appt.StartTime,
			EndTime:       appt.EndTime,
			Status:        appt.Status,
		})
	}
	return schedule, nil
}
