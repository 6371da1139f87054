package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialEntry is a single ledger line as stored in the database. The
// reference_type/reference_id pair and the appointment_id column are both
// kept because historic rows use either style.
type FinancialEntry struct {
	EntryID       string          `db:"entry_id"`
	Type          string          `db:"type"`
	Status        string          `db:"status"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Category      string          `db:"category"`
	PaymentMethod string          `db:"payment_method"`
	DueDate       time.Time       `db:"due_date"`
	PaidDate      *time.Time      `db:"paid_date"` // Nullable
	BankAccountID string          `db:"bank_account_id"`
	ReferenceType *string         `db:"reference_type"` // Nullable
	ReferenceID   *string         `db:"reference_id"`   // Nullable
	AppointmentID *string         `db:"appointment_id"` // Nullable
	Notes         string          `db:"notes"`
	AuditFields
}
