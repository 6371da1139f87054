package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a financial entry represents money in or out.
type EntryType string

const (
	EntryIncome  EntryType = "INCOME"
	EntryExpense EntryType = "EXPENSE"
)

// EntryStatus tracks a financial entry's settlement state. Cancellation is a
// status transition, never a delete, so the audit trail survives.
type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryPaid      EntryStatus = "PAID"
	EntryCancelled EntryStatus = "CANCELLED"
	// EntryOverdue is a derived view of PENDING past its due date. For the
	// appointment status sync it counts as pending.
	EntryOverdue EntryStatus = "OVERDUE"
)

// EntryCategory classifies the business origin of an entry.
type EntryCategory string

const (
	CategoryConsultation      EntryCategory = "CONSULTATION"
	CategoryProductSales      EntryCategory = "PRODUCT_SALES"
	CategoryOtherIncome       EntryCategory = "OTHER_INCOME"
	CategoryPartnerCommission EntryCategory = "PARTNER_COMMISSION"
)

// PaymentMethod is how an income entry was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentPix      PaymentMethod = "PIX"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentOther    PaymentMethod = "OTHER"
)

// ReferenceAppointment is the reference type linking an entry to the
// appointment that produced it.
const ReferenceAppointment = "APPOINTMENT"

// FinancialEntry is a single ledger line. Entries created by the
// reconciliation engine reference their appointment either through the
// ReferenceType/ReferenceID pair or the direct AppointmentID; lookups must
// honour both styles.
type FinancialEntry struct {
	EntryID       string          `json:"entryID"`
	Type          EntryType       `json:"type"`
	Status        EntryStatus     `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      EntryCategory   `json:"category"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	DueDate       time.Time       `json:"dueDate"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	BankAccountID string          `json:"bankAccountID"`
	ReferenceType *string         `json:"referenceType,omitempty"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	AppointmentID *string         `json:"appointmentID,omitempty"`
	Notes         string          `json:"notes"`
	AuditFields
}

// ReferencesAppointment reports whether the entry is tied to the given
// appointment through either reference style.
func (e *FinancialEntry) ReferencesAppointment(appointmentID string) bool {
	if e.AppointmentID != nil && *e.AppointmentID == appointmentID {
		return true
	}
	return e.ReferenceType != nil && *e.ReferenceType == ReferenceAppointment &&
		e.ReferenceID != nil && *e.ReferenceID == appointmentID
}

// SignedAmount is the entry's contribution to its account balance when PAID:
// positive for income, negative for expense.
func (e *FinancialEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// BankAccount holds a cached balance derived from its paid entries.
// CurrentBalance = InitialBalance + paid income - paid expense.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
