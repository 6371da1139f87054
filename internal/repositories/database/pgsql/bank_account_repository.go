package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	"github.com/praxisdesk/clinic_management_app/internal/models"
)

type PgxBankAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxBankAccountRepository creates a new repository for bank accounts.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{pool: pool}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `bank_account_id, name, initial_balance, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func toDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		Name:           m.Name,
		InitialBalance: m.InitialBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.Name,
		&m.InitialBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectBankAccounts(rows pgx.Rows) ([]domain.BankAccount, error) {
	defer rows.Close()
	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, toDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// FindBankAccountByID retrieves a specific bank account.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`

	m, err := scanBankAccount(r.pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account by ID %s: %w", bankAccountID, err)
	}
	d := toDomainBankAccount(m)
	return &d, nil
}

// ListActiveAccountsByCreation retrieves active accounts, oldest first.
func (r *PgxBankAccountRepository) ListActiveAccountsByCreation(ctx context.Context) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE is_active = TRUE
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active bank accounts: %w", err)
	}
	return collectBankAccounts(rows)
}

// ListAccounts retrieves all accounts.
func (r *PgxBankAccountRepository) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	return collectBankAccounts(rows)
}

// SaveBankAccount persists a new bank account.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		account.BankAccountID,
		account.Name,
		account.InitialBalance,
		account.CurrentBalance,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: bank account with ID %s already exists", apperrors.ErrDuplicate, account.BankAccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

// UpdateBankAccount updates an account's details.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		UPDATE bank_accounts SET
			name = $2,
			initial_balance = $3,
			is_active = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE bank_account_id = $1;
	`
	commandTag, err := r.pool.Exec(ctx, query,
		account.BankAccountID,
		account.Name,
		account.InitialBalance,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", account.BankAccountID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalance persists a newly derived current balance.
func (r *PgxBankAccountRepository) UpdateAccountBalance(ctx context.Context, bankAccountID string, newBalance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE bank_accounts SET
			current_balance = $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE bank_account_id = $1;
	`
	commandTag, err := r.pool.Exec(ctx, query, bankAccountID, newBalance, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", bankAccountID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
