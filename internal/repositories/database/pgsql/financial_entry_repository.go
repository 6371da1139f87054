package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	"github.com/praxisdesk/clinic_management_app/internal/models"
)

type PgxFinancialEntryRepository struct {
	pool *pgxpool.Pool
}

// newPgxFinancialEntryRepository creates a new repository for ledger entries.
func newPgxFinancialEntryRepository(pool *pgxpool.Pool) portsrepo.FinancialEntryRepositoryFacade {
	return &PgxFinancialEntryRepository{pool: pool}
}

var _ portsrepo.FinancialEntryRepositoryFacade = (*PgxFinancialEntryRepository)(nil)

const financialEntryColumns = `entry_id, type, status, amount, description, category, payment_method, due_date, paid_date, bank_account_id, reference_type, reference_id, appointment_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func toModelFinancialEntry(e domain.FinancialEntry) models.FinancialEntry {
	return models.FinancialEntry{
		EntryID:       e.EntryID,
		Type:          string(e.Type),
		Status:        string(e.Status),
		Amount:        e.Amount,
		Description:   e.Description,
		Category:      string(e.Category),
		PaymentMethod: string(e.PaymentMethod),
		DueDate:       e.DueDate,
		PaidDate:      e.PaidDate,
		BankAccountID: e.BankAccountID,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		AppointmentID: e.AppointmentID,
		Notes:         e.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     e.CreatedAt,
			CreatedBy:     e.CreatedBy,
			LastUpdatedAt: e.LastUpdatedAt,
			LastUpdatedBy: e.LastUpdatedBy,
		},
	}
}

func toDomainFinancialEntry(m models.FinancialEntry) domain.FinancialEntry {
	return domain.FinancialEntry{
		EntryID:       m.EntryID,
		Type:          domain.EntryType(m.Type),
		Status:        domain.EntryStatus(m.Status),
		Amount:        m.Amount,
		Description:   m.Description,
		Category:      domain.EntryCategory(m.Category),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		DueDate:       m.DueDate,
		PaidDate:      m.PaidDate,
		BankAccountID: m.BankAccountID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		AppointmentID: m.AppointmentID,
		Notes:         m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanFinancialEntry(row pgx.Row) (models.FinancialEntry, error) {
	var m models.FinancialEntry
	err := row.Scan(
		&m.EntryID,
		&m.Type,
		&m.Status,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.PaymentMethod,
		&m.DueDate,
		&m.PaidDate,
		&m.BankAccountID,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.AppointmentID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectFinancialEntries(rows pgx.Rows) ([]domain.FinancialEntry, error) {
	defer rows.Close()
	entries := []domain.FinancialEntry{}
	for rows.Next() {
		m, err := scanFinancialEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial entry row: %w", err)
		}
		entries = append(entries, toDomainFinancialEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial entry rows: %w", err)
	}
	return entries, nil
}

// FindEntryByID retrieves a specific financial entry.
func (r *PgxFinancialEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.FinancialEntry, error) {
	query := `SELECT ` + financialEntryColumns + ` FROM financial_entries WHERE entry_id = $1;`

	m, err := scanFinancialEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial entry by ID %s: %w", entryID, err)
	}
	d := toDomainFinancialEntry(m)
	return &d, nil
}

// FindEntriesByAppointment retrieves every entry tied to an appointment.
// Historic rows reference appointments two ways, so both are matched.
func (r *PgxFinancialEntryRepository) FindEntriesByAppointment(ctx context.Context, appointmentID string) ([]domain.FinancialEntry, error) {
	query := `
		SELECT ` + financialEntryColumns + `
		FROM financial_entries
		WHERE appointment_id = $1
		   OR (reference_type = 'APPOINTMENT' AND reference_id = $1)
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for appointment %s: %w", appointmentID, err)
	}
	return collectFinancialEntries(rows)
}

// ListEntriesByAccount retrieves entries for a bank account in creation order.
func (r *PgxFinancialEntryRepository) ListEntriesByAccount(ctx context.Context, bankAccountID string, status *domain.EntryStatus) ([]domain.FinancialEntry, error) {
	query := `
		SELECT ` + financialEntryColumns + `
		FROM financial_entries
		WHERE bank_account_id = $1
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, bankAccountID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", bankAccountID, err)
	}
	return collectFinancialEntries(rows)
}

// SaveEntry persists a new financial entry.
func (r *PgxFinancialEntryRepository) SaveEntry(ctx context.Context, entry domain.FinancialEntry) error {
	m := toModelFinancialEntry(entry)
	query := `
		INSERT INTO financial_entries (` + financialEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.pool.Exec(ctx, query,
		m.EntryID,
		m.Type,
		m.Status,
		m.Amount,
		m.Description,
		m.Category,
		m.PaymentMethod,
		m.DueDate,
		m.PaidDate,
		m.BankAccountID,
		m.ReferenceType,
		m.ReferenceID,
		m.AppointmentID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: financial entry with ID %s already exists", apperrors.ErrDuplicate, entry.EntryID)
		}
		return fmt.Errorf("failed to save financial entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// UpdateEntry updates an existing financial entry.
func (r *PgxFinancialEntryRepository) UpdateEntry(ctx context.Context, entry domain.FinancialEntry) error {
	m := toModelFinancialEntry(entry)
	query := `
		UPDATE financial_entries SET
			type = $2,
			status = $3,
			amount = $4,
			description = $5,
			category = $6,
			payment_method = $7,
			due_date = $8,
			paid_date = $9,
			bank_account_id = $10,
			notes = $11,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE entry_id = $1;
	`
	commandTag, err := r.pool.Exec(ctx, query,
		m.EntryID,
		m.Type,
		m.Status,
		m.Amount,
		m.Description,
		m.Category,
		m.PaymentMethod,
		m.DueDate,
		m.PaidDate,
		m.BankAccountID,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial entry %s: %w", entry.EntryID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
