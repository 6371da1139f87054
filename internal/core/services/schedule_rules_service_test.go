package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/praxisdesk/clinic_management_app/internal/core/services"
)

func TestScheduleRules_BusinessHours(t *testing.T) {
	rules := services.NewScheduleRulesService("08:00", "19:00", 0, 0)

	tests := []struct {
		name      string
		startTime string
		endTime   string
		valid     bool
	}{
		{"inside hours", "09:00", "10:00", true},
		{"ends exactly at closing", "18:00", "19:00", true},
		{"starts exactly at opening", "08:00", "08:30", true},
		{"runs past closing", "18:30", "19:30", false},
		{"before opening", "07:00", "08:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := rules.ValidateBusinessHours(monday, tc.startTime, tc.endTime)
			assert.Equal(t, tc.valid, result.Valid)
			if !tc.valid {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestScheduleRules_BookingAdvance(t *testing.T) {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	rules := services.NewScheduleRulesService("08:00", "19:00", 60, 30, services.WithRulesClock(func() time.Time { return now }))

	sameDay := rules.ValidateBookingAdvance(now, "10:30")
	assert.True(t, sameDay.Valid)

	tooSoon := rules.ValidateBookingAdvance(now, "09:30")
	assert.False(t, tooSoon.Valid)
	assert.Contains(t, tooSoon.Reason, "60 minutes")

	tooFar := rules.ValidateBookingAdvance(now.AddDate(0, 0, 45), "10:00")
	assert.False(t, tooFar.Valid)
	assert.Contains(t, tooFar.Reason, "30 days")
}

func TestScheduleRules_ZeroLimitsDisableAdvanceChecks(t *testing.T) {
	rules := services.NewScheduleRulesService("08:00", "19:00", 0, 0)

	result := rules.ValidateBookingAdvance(time.Now().UTC().AddDate(2, 0, 0), "10:00")
	assert.True(t, result.Valid)
}

func TestScheduleRules_Movement(t *testing.T) {
	rules := services.NewScheduleRulesService("08:00", "19:00", 0, 0)

	assert.True(t, rules.ValidateAppointmentMovement(domain.StatusScheduled).Valid)
	assert.False(t, rules.ValidateAppointmentMovement(domain.StatusInProgress).Valid)
	assert.False(t, rules.ValidateAppointmentMovement(domain.StatusCompleted).Valid)
	assert.False(t, rules.ValidateAppointmentMovement(domain.StatusCancelled).Valid)
}

func TestScheduleRules_MalformedHoursFallBackToAlwaysOpen(t *testing.T) {
	rules := services.NewScheduleRulesService("8am", "late", 0, 0)

	assert.True(t, rules.ValidateBusinessHours(monday, "00:00", "23:59").Valid)
}
