package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Clock times throughout the scheduling core are zero-padded "HH:MM" strings.
// Lexicographic comparison on that representation is equivalent to numeric
// comparison, so ordering checks are plain string comparisons. There is no
// timezone handling: a clinic day is a local wall-clock day.

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a well-formed zero-padded HH:MM string.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ClockToMinutes converts an HH:MM string to minutes since midnight.
func ClockToMinutes(s string) (int, error) {
	if !ValidClock(s) {
		return 0, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h*60 + m, nil
}

// MinutesToClock converts minutes since midnight to an HH:MM string.
// Values are clamped into a single day.
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutesToClock returns the HH:MM string that is delta minutes after t.
func AddMinutesToClock(t string, delta int) (string, error) {
	m, err := ClockToMinutes(t)
	if err != nil {
		return "", err
	}
	return MinutesToClock(m + delta), nil
}

// MinutesBetween returns end-start in minutes. Negative when end < start.
func MinutesBetween(start, end string) (int, error) {
	s, err := ClockToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ClockToMinutes(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// ClockRangesOverlap reports whether the half-open intervals [aStart, aEnd)
// and [bStart, bEnd) intersect. Ranges that share only a boundary do not
// overlap: a 09:00-10:00 slot does not collide with a 10:00-11:00 slot.
func ClockRangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// ClockWithin reports whether [start, end] is fully contained in the window
// [windowStart, windowEnd]. Boundaries are inclusive: a slot ending exactly at
// closing time is still within working hours.
func ClockWithin(start, end, windowStart, windowEnd string) bool {
	return start >= windowStart && end <= windowEnd
}
