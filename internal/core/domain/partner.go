package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartnershipType is the closed set of commission arrangements a partner can
// have with the clinic. Commission computation branches exactly once, in
// ComputeCommission; an unrecognised value is an error, never a silent zero.
type PartnershipType string

const (
	// PartnershipSublease partners pay a fixed sublease fee outside the
	// checkout flow; no per-appointment commission is owed.
	PartnershipSublease PartnershipType = "SUBLEASE"
	// PartnershipPercentage partners earn a percentage (or a flat amount)
	// of each completed appointment.
	PartnershipPercentage PartnershipType = "PERCENTAGE"
	// PartnershipPercentageWithProducts partners keep the remainder after
	// the clinic takes its share of the final amount.
	PartnershipPercentageWithProducts PartnershipType = "PERCENTAGE_WITH_PRODUCTS"
)

// Valid reports whether t is one of the known partnership types.
func (t PartnershipType) Valid() bool {
	switch t {
	case PartnershipSublease, PartnershipPercentage, PartnershipPercentageWithProducts:
		return true
	}
	return false
}

// Partner is a service provider working at the clinic.
type Partner struct {
	PartnerID       string          `json:"partnerID"`
	Name            string          `json:"name"`
	PartnershipType PartnershipType `json:"partnershipType"`
	// PercentageRate is the commission rate in percent (e.g. 20 for 20%).
	// For PERCENTAGE_WITH_PRODUCTS it is the clinic's share.
	PercentageRate *decimal.Decimal `json:"percentageRate,omitempty"`
	// PercentageAmount is a flat per-appointment commission, used when no
	// rate is configured.
	PercentageAmount   *decimal.Decimal     `json:"percentageAmount,omitempty"`
	IsActive           bool                 `json:"isActive"`
	WeeklyAvailability []WeeklyAvailability `json:"weeklyAvailability,omitempty"`
	BlockedDates       []BlockedDate        `json:"blockedDates,omitempty"`
	AuditFields
}

// WeeklyAvailability is one weekday's working window for a partner, with an
// optional break window inside it.
type WeeklyAvailability struct {
	AvailabilityID string       `json:"availabilityID"`
	PartnerID      string       `json:"partnerID"`
	Weekday        time.Weekday `json:"weekday"`
	StartTime      string       `json:"startTime"`
	EndTime        string       `json:"endTime"`
	BreakStart     *string      `json:"breakStart,omitempty"`
	BreakEnd       *string      `json:"breakEnd,omitempty"`
	IsActive       bool         `json:"isActive"`
}

// HasBreak reports whether both ends of the break window are set.
func (w *WeeklyAvailability) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil
}

// BlockedDate marks a specific day (or a window within it) as unavailable for
// a partner. A blocked date without a start/end window blocks the whole day.
type BlockedDate struct {
	BlockedDateID string    `json:"blockedDateID"`
	PartnerID     string    `json:"partnerID"`
	Date          time.Time `json:"date"`
	StartTime     *string   `json:"startTime,omitempty"`
	EndTime       *string   `json:"endTime,omitempty"`
	Reason        string    `json:"reason"`
	IsActive      bool      `json:"isActive"`
}

// WholeDay reports whether the blocked date covers the entire day.
func (b *BlockedDate) WholeDay() bool {
	return b.StartTime == nil || b.EndTime == nil
}

// AvailabilityForWeekday returns the active weekly availability entry for the
// given weekday, or nil when the partner does not work that day.
func (p *Partner) AvailabilityForWeekday(day time.Weekday) *WeeklyAvailability {
	for i := range p.WeeklyAvailability {
		entry := &p.WeeklyAvailability[i]
		if entry.IsActive && entry.Weekday == day {
			return entry
		}
	}
	return nil
}

// WorkingWeekdays lists the weekdays the partner has an active availability
// entry for, in Sunday-first order.
func (p *Partner) WorkingWeekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if p.AvailabilityForWeekday(d) != nil {
			days = append(days, d)
		}
	}
	return days
}
