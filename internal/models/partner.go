package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner represents a service provider as stored in the database.
type Partner struct {
	PartnerID        string           `db:"partner_id"`
	Name             string           `db:"name"`
	PartnershipType  string           `db:"partnership_type"`
	PercentageRate   *decimal.Decimal `db:"percentage_rate"`   // Nullable
	PercentageAmount *decimal.Decimal `db:"percentage_amount"` // Nullable
	IsActive         bool             `db:"is_active"`
	AuditFields
}

// WeeklyAvailability is one weekday's working window row for a partner.
type WeeklyAvailability struct {
	AvailabilityID string  `db:"availability_id"`
	PartnerID      string  `db:"partner_id"`
	Weekday        int     `db:"weekday"` // 0 = Sunday
	StartTime      string  `db:"start_time"`
	EndTime        string  `db:"end_time"`
	BreakStart     *string `db:"break_start"` // Nullable
	BreakEnd       *string `db:"break_end"`   // Nullable
	IsActive       bool    `db:"is_active"`
}

// BlockedDate marks a day or a window of it as unavailable for a partner.
type BlockedDate struct {
	BlockedDateID string    `db:"blocked_date_id"`
	PartnerID     string    `db:"partner_id"`
	Date          time.Time `db:"date"`
	StartTime     *string   `db:"start_time"` // Nullable
	EndTime       *string   `db:"end_time"`   // Nullable
	Reason        string    `db:"reason"`
	IsActive      bool      `db:"is_active"`
}
