package domain_test

import (
	"testing"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidClock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"09:60", false},
		{"0930", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidClock(tt.input))
		})
	}
}

func TestClockRangesOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical ranges", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained range", "09:00", "12:00", "10:00", "11:00", true},
		{"shared boundary only", "09:00", "10:00", "10:00", "11:00", false},
		{"shared boundary reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "08:00", "09:00", "13:00", "14:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClockRangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestClockWithin(t *testing.T) {
	assert.True(t, domain.ClockWithin("09:00", "17:00", "09:00", "17:00"))
	assert.True(t, domain.ClockWithin("10:00", "10:30", "09:00", "17:00"))
	assert.False(t, domain.ClockWithin("16:45", "17:15", "09:00", "17:00"))
	assert.False(t, domain.ClockWithin("08:30", "09:30", "09:00", "17:00"))
}

func TestAddMinutesToClock(t *testing.T) {
	got, err := domain.AddMinutesToClock("09:00", 45)
	assert.NoError(t, err)
	assert.Equal(t, "09:45", got)

	got, err = domain.AddMinutesToClock("23:30", 90)
	assert.NoError(t, err)
	assert.Equal(t, "23:59", got) // clamped to end of day

	_, err = domain.AddMinutesToClock("25:00", 10)
	assert.Error(t, err)
}

func TestMinutesBetween(t *testing.T) {
	mins, err := domain.MinutesBetween("09:00", "10:30")
	assert.NoError(t, err)
	assert.Equal(t, 90, mins)

	mins, err = domain.MinutesBetween("10:00", "09:00")
	assert.NoError(t, err)
	assert.Equal(t, -60, mins)
}
