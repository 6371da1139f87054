package dto

import (
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckoutRequest carries the payment details for an appointment checkout.
// TotalAmount overrides the derived service price when provided.
type CheckoutRequest struct {
	PaymentMethod     domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CARD PIX TRANSFER OTHER"`
	BankAccountID     string               `json:"bankAccountID" binding:"required"`
	TotalAmount       *decimal.Decimal     `json:"totalAmount"`
	DiscountAmount    *decimal.Decimal     `json:"discountAmount"`
	AdditionalCharges *decimal.Decimal     `json:"additionalCharges"`
}

// PayEntryRequest marks a financial entry as paid.
type PayEntryRequest struct {
	PaidDate      *time.Time `json:"paidDate"`
	BankAccountID *string    `json:"bankAccountID"`
}

// CancelEntryRequest cancels a single financial entry.
type CancelEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams defines query parameters for listing financial entries.
type ListEntriesParams struct {
	AppointmentID string              `form:"appointmentID"`
	BankAccountID string              `form:"bankAccountID"`
	Status        *domain.EntryStatus `form:"status"`
}

// FinancialEntryResponse defines the data returned for a ledger entry.
type FinancialEntryResponse struct {
	EntryID       string               `json:"entryID"`
	Type          domain.EntryType     `json:"type"`
	Status        domain.EntryStatus   `json:"status"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description"`
	Category      domain.EntryCategory `json:"category"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod,omitempty"`
	DueDate       time.Time            `json:"dueDate"`
	PaidDate      *time.Time           `json:"paidDate,omitempty"`
	BankAccountID string               `json:"bankAccountID"`
	AppointmentID *string              `json:"appointmentID,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToFinancialEntryResponse converts a domain.FinancialEntry to its DTO.
func ToFinancialEntryResponse(e *domain.FinancialEntry) FinancialEntryResponse {
	appointmentID := e.AppointmentID
	if appointmentID == nil && e.ReferenceType != nil && *e.ReferenceType == domain.ReferenceAppointment {
		appointmentID = e.ReferenceID
	}
	return FinancialEntryResponse{
		EntryID:       e.EntryID,
		Type:          e.Type,
		Status:        e.Status,
		Amount:        e.Amount,
		Description:   e.Description,
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		DueDate:       e.DueDate,
		PaidDate:      e.PaidDate,
		BankAccountID: e.BankAccountID,
		AppointmentID: appointmentID,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

// ToFinancialEntryResponses converts a slice of entries.
func ToFinancialEntryResponses(entries []domain.FinancialEntry) []FinancialEntryResponse {
	res := make([]FinancialEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToFinancialEntryResponse(&entries[i])
	}
	return res
}

// CheckoutResponse is the result of checking out an appointment with payment.
type CheckoutResponse struct {
	Appointment     AppointmentResponse     `json:"appointment"`
	RevenueEntry    FinancialEntryResponse  `json:"revenueEntry"`
	CommissionEntry *FinancialEntryResponse `json:"commissionEntry,omitempty"`
	CommissionOwed  decimal.Decimal         `json:"commissionOwed"`
	ClinicShare     decimal.Decimal         `json:"clinicShare"`
	FinalAmount     decimal.Decimal         `json:"finalAmount"`
	Warnings        []string                `json:"warnings,omitempty"`
}

// ToCheckoutResponse assembles the checkout response from the updated
// appointment and the reconciliation outcome.
func ToCheckoutResponse(a *domain.Appointment, r *domain.CheckoutResult) CheckoutResponse {
	resp := CheckoutResponse{
		Appointment:    ToAppointmentResponse(a),
		RevenueEntry:   ToFinancialEntryResponse(&r.RevenueEntry),
		CommissionOwed: r.Commission.Amount,
		ClinicShare:    r.Commission.ClinicShare,
		FinalAmount:    r.FinalAmount,
		Warnings:       r.Warnings,
	}
	if r.CommissionEntry != nil {
		entry := ToFinancialEntryResponse(r.CommissionEntry)
		resp.CommissionEntry = &entry
	}
	return resp
}

// CancellationSummaryResponse reports a best-effort entry cancellation sweep.
type CancellationSummaryResponse struct {
	CancelledCount int             `json:"cancelledCount"`
	FailedCount    int             `json:"failedCount"`
	TotalReversed  decimal.Decimal `json:"totalReversed"`
}

// ToCancellationSummaryResponse converts a domain.CancellationResult to its DTO.
func ToCancellationSummaryResponse(r domain.CancellationResult) CancellationSummaryResponse {
	return CancellationSummaryResponse{
		CancelledCount: r.CancelledCount,
		FailedCount:    r.FailedCount,
		TotalReversed:  r.TotalReversed,
	}
}
