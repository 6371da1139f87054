package services

import (
	"context"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ReconciliationSvcFacade derives ledger entries from completed appointments,
// reverses them on cancellation, and keeps appointment status and entry
// statuses consistent in both directions.
type ReconciliationSvcFacade interface {
	// ProcessCheckout creates the PAID income entry for the appointment's
	// final amount and, depending on the partner's partnership type, a
	// PENDING commission expense entry against the default bank account.
	ProcessCheckout(ctx context.Context, appointmentID string, payment dto.CheckoutRequest, userID string) (*domain.CheckoutResult, error)

	// CancelAppointmentEntries cancels every non-cancelled entry tied to the
	// appointment, reversing the balance contribution of any PAID ones.
	// Per-entry failures are logged and skipped; the sweep continues.
	CancelAppointmentEntries(ctx context.Context, appointmentID string, reason string, userID string) (domain.CancellationResult, error)

	// SyncAppointmentStatus re-derives the appointment's status from the
	// aggregate state of its financial entries and applies it when it
	// differs. Idempotent; both sync directions go through here.
	SyncAppointmentStatus(ctx context.Context, appointmentID string, userID string) error

	// MarkEntryPaid settles a pending entry and triggers the status sync
	// when the entry references an appointment.
	MarkEntryPaid(ctx context.Context, entryID string, req dto.PayEntryRequest, userID string) (*domain.FinancialEntry, error)

	// CancelEntry cancels a single entry, reverses its balance contribution
	// when it was PAID, and triggers the status sync.
	CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.FinancialEntry, error)

	// ListEntriesByAppointment returns every entry tied to an appointment.
	ListEntriesByAppointment(ctx context.Context, appointmentID string) ([]domain.FinancialEntry, error)

	// ListEntriesByAccount returns a bank account's entries in creation order.
	ListEntriesByAccount(ctx context.Context, bankAccountID string, status *domain.EntryStatus) ([]domain.FinancialEntry, error)
}

// BankLedgerSvcFacade manages bank accounts and the derived current balance.
type BankLedgerSvcFacade interface {
	// CreateBankAccount opens a new account.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// GetBankAccountByID retrieves an account.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// RecalculateBalance recomputes currentBalance from scratch as a fold
	// over the account's PAID entries, optionally resetting the initial
	// balance first. Numerically equivalent to the incremental adjustments
	// applied on single-entry transitions.
	RecalculateBalance(ctx context.Context, bankAccountID string, newInitialBalance *decimal.Decimal, userID string) (*domain.BankAccount, error)
}
