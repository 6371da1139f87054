package repositories

import (
	"context"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a specific bank account.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListActiveAccountsByCreation retrieves active accounts ordered by
	// creation time, oldest first. The default-account policy picks the head.
	ListActiveAccountsByCreation(ctx context.Context) ([]domain.BankAccount, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount updates an account's details (name, active flag, initial balance).
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateAccountBalance persists a newly derived current balance.
	UpdateAccountBalance(ctx context.Context, bankAccountID string, newBalance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error
}

// BankAccountRepositoryFacade combines all bank-account repository interfaces
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
