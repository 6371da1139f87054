package services

import (
	"fmt"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
)

// scheduleRulesService is the stock config-driven rule set: clinic opening
// hours plus minimum and maximum booking lead time.
type scheduleRulesService struct {
	openingTime       string
	closingTime       string
	minAdvanceMinutes int
	maxAdvanceDays    int
	now               func() time.Time
}

// ScheduleRulesOption configures the schedule rules service.
type ScheduleRulesOption func(*scheduleRulesService)

// WithRulesClock overrides the wall clock; tests use this to pin time.
func WithRulesClock(now func() time.Time) ScheduleRulesOption {
	return func(s *scheduleRulesService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScheduleRulesService creates the default rule set. Malformed opening
// hours fall back to an always-open clinic so a bad config row cannot make
// every booking fail.
func NewScheduleRulesService(openingTime, closingTime string, minAdvanceMinutes, maxAdvanceDays int, opts ...ScheduleRulesOption) portssvc.ScheduleRulesSvc {
	if !domain.ValidClock(openingTime) || !domain.ValidClock(closingTime) {
		openingTime = "00:00"
		closingTime = "23:59"
	}
	s := &scheduleRulesService{
		openingTime:       openingTime,
		closingTime:       closingTime,
		minAdvanceMinutes: minAdvanceMinutes,
		maxAdvanceDays:    maxAdvanceDays,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ScheduleRulesSvc = (*scheduleRulesService)(nil)

// ValidateBusinessHours requires the whole appointment window to sit inside
// clinic opening hours, boundaries included.
func (s *scheduleRulesService) ValidateBusinessHours(date time.Time, startTime, endTime string) portssvc.RuleResult {
	if domain.ClockWithin(startTime, endTime, s.openingTime, s.closingTime) {
		return portssvc.RuleResult{Valid: true}
	}
	return portssvc.RuleResult{
		Valid:  false,
		Reason: fmt.Sprintf("appointment %s-%s is outside clinic hours %s-%s", startTime, endTime, s.openingTime, s.closingTime),
	}
}

// ValidateBookingAdvance requires the appointment start to be at least the
// minimum lead time in the future and no further out than the maximum.
func (s *scheduleRulesService) ValidateBookingAdvance(date time.Time, startTime string) portssvc.RuleResult {
	startMinutes, err := domain.ClockToMinutes(startTime)
	if err != nil {
		return portssvc.RuleResult{Valid: false, Reason: err.Error()}
	}
	start := dayOf(date).Add(time.Duration(startMinutes) * time.Minute)
	now := s.now().UTC()

	if s.minAdvanceMinutes > 0 {
		earliest := now.Add(time.Duration(s.minAdvanceMinutes) * time.Minute)
		if start.Before(earliest) {
			return portssvc.RuleResult{
				Valid:  false,
				Reason: fmt.Sprintf("appointments must be booked at least %d minutes in advance", s.minAdvanceMinutes),
			}
		}
	}
	if s.maxAdvanceDays > 0 {
		latest := now.AddDate(0, 0, s.maxAdvanceDays)
		if start.After(latest) {
			return portssvc.RuleResult{
				Valid:  false,
				Reason: fmt.Sprintf("appointments cannot be booked more than %d days in advance", s.maxAdvanceDays),
			}
		}
	}
	return portssvc.RuleResult{Valid: true}
}

// ValidateAppointmentMovement allows rescheduling only while the appointment
// has not started.
func (s *scheduleRulesService) ValidateAppointmentMovement(currentStatus domain.AppointmentStatus) portssvc.RuleResult {
	if currentStatus == domain.StatusScheduled {
		return portssvc.RuleResult{Valid: true}
	}
	return portssvc.RuleResult{
		Valid:  false,
		Reason: fmt.Sprintf("appointments in status %s cannot be moved", currentStatus),
	}
}
