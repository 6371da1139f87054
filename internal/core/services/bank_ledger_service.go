package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

type bankLedgerService struct {
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
	entryRepo       portsrepo.FinancialEntryReader
}

// NewBankLedgerService creates a new BankLedgerService.
func NewBankLedgerService(bankAccountRepo portsrepo.BankAccountRepositoryFacade, entryRepo portsrepo.FinancialEntryReader) portssvc.BankLedgerSvcFacade {
	return &bankLedgerService{
		bankAccountRepo: bankAccountRepo,
		entryRepo:       entryRepo,
	}
}

var _ portssvc.BankLedgerSvcFacade = (*bankLedgerService)(nil)

// CreateBankAccount opens an account. The current balance starts equal to the
// initial balance, which defaults to zero.
func (s *bankLedgerService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	initial := decimal.Zero
	if req.InitialBalance != nil {
		initial = *req.InitialBalance
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		Name:           req.Name,
		InitialBalance: initial,
		CurrentBalance: initial,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankAccountRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// GetBankAccountByID retrieves an account.
func (s *bankLedgerService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

// ListBankAccounts retrieves all accounts.
func (s *bankLedgerService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.bankAccountRepo.ListAccounts(ctx)
}

// RecalculateBalance recomputes the cached balance from scratch:
// initialBalance plus the signed sum of the account's PAID entries. An
// optional new initial balance is persisted before the fold.
func (s *bankLedgerService) RecalculateBalance(ctx context.Context, bankAccountID string, newInitialBalance *decimal.Decimal, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}

	now := time.Now().UTC()
	if newInitialBalance != nil {
		account.InitialBalance = *newInitialBalance
		account.LastUpdatedAt = now
		account.LastUpdatedBy = userID
		if err := s.bankAccountRepo.UpdateBankAccount(ctx, *account); err != nil {
			return nil, fmt.Errorf("failed to update initial balance: %w", err)
		}
	}

	paid := domain.EntryPaid
	entries, err := s.entryRepo.ListEntriesByAccount(ctx, bankAccountID, &paid)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid entries for account %s: %w", bankAccountID, err)
	}

	balance := account.InitialBalance
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}

	if err := s.bankAccountRepo.UpdateAccountBalance(ctx, bankAccountID, balance, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update balance of account %s: %w", bankAccountID, err)
	}
	account.CurrentBalance = balance
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	logger.Info("Bank account balance recalculated",
		slog.String("bank_account_id", bankAccountID),
		slog.String("balance", balance.String()),
		slog.Int("paid_entries", len(entries)),
	)
	return account, nil
}
