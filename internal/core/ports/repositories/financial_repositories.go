package repositories

import (
	"context"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// FinancialEntryReader defines read operations for ledger entry data
type FinancialEntryReader interface {
	// FindEntryByID retrieves a specific financial entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.FinancialEntry, error)

	// FindEntriesByAppointment retrieves every entry tied to an appointment
	// through either reference style (referenceType/referenceID pair or the
	// direct appointmentID column).
	FindEntriesByAppointment(ctx context.Context, appointmentID string) ([]domain.FinancialEntry, error)

	// ListEntriesByAccount retrieves entries for a bank account, optionally
	// filtered by status, in creation order.
	ListEntriesByAccount(ctx context.Context, bankAccountID string, status *domain.EntryStatus) ([]domain.FinancialEntry, error)
}

// FinancialEntryWriter defines write operations for ledger entry data
type FinancialEntryWriter interface {
	// SaveEntry persists a new financial entry.
	SaveEntry(ctx context.Context, entry domain.FinancialEntry) error

	// UpdateEntry updates an existing financial entry. Cancellation is a
	// status update through here; entries are never deleted.
	UpdateEntry(ctx context.Context, entry domain.FinancialEntry) error
}

// FinancialEntryRepositoryFacade combines all entry-related repository interfaces
type FinancialEntryRepositoryFacade interface {
	FinancialEntryReader
	FinancialEntryWriter
}
