package services

import (
	"context"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// RuleResult is the verdict of a single business rule check.
type RuleResult struct {
	Valid  bool
	Reason string
}

// ScheduleRulesSvc is the business-rule collaborator consumed by the
// appointment lifecycle. The default implementation is config-driven; a
// deployment can swap in its own rules.
type ScheduleRulesSvc interface {
	// ValidateBusinessHours checks the candidate window against clinic
	// opening hours.
	ValidateBusinessHours(date time.Time, startTime, endTime string) RuleResult

	// ValidateBookingAdvance checks minimum and maximum booking lead time.
	ValidateBookingAdvance(date time.Time, startTime string) RuleResult

	// ValidateAppointmentMovement checks whether an appointment in the
	// given status may still be freely rescheduled.
	ValidateAppointmentMovement(currentStatus domain.AppointmentStatus) RuleResult
}

// NotifierSvc delivers best-effort patient notifications. Callers log and
// swallow every returned error; a failed reminder never blocks a booking
// mutation.
type NotifierSvc interface {
	ScheduleReminders(ctx context.Context, appointment domain.Appointment) error
	RescheduleReminders(ctx context.Context, appointment domain.Appointment) error
	CancelReminders(ctx context.Context, appointmentID string) error
	SendImmediateNotification(ctx context.Context, appointment domain.Appointment, message string) error
}
