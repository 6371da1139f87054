package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	"github.com/praxisdesk/clinic_management_app/internal/models"
)

type PgxPartnerRepository struct {
	BaseRepository
}

// newPgxPartnerRepository creates a new repository for partner data.
func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

const partnerColumns = `partner_id, name, partnership_type, percentage_rate, percentage_amount, is_active, created_at, created_by, last_updated_at, last_updated_by`

func toDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:        m.PartnerID,
		Name:             m.Name,
		PartnershipType:  domain.PartnershipType(m.PartnershipType),
		PercentageRate:   m.PercentageRate,
		PercentageAmount: m.PercentageAmount,
		IsActive:         m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanPartner(row pgx.Row) (models.Partner, error) {
	var m models.Partner
	err := row.Scan(
		&m.PartnerID,
		&m.Name,
		&m.PartnershipType,
		&m.PercentageRate,
		&m.PercentageAmount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func toDomainWeeklyAvailability(m models.WeeklyAvailability) domain.WeeklyAvailability {
	return domain.WeeklyAvailability{
		AvailabilityID: m.AvailabilityID,
		PartnerID:      m.PartnerID,
		Weekday:        time.Weekday(m.Weekday),
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		BreakStart:     m.BreakStart,
		BreakEnd:       m.BreakEnd,
		IsActive:       m.IsActive,
	}
}

func toDomainBlockedDate(m models.BlockedDate) domain.BlockedDate {
	return domain.BlockedDate{
		BlockedDateID: m.BlockedDateID,
		PartnerID:     m.PartnerID,
		Date:          m.Date,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Reason:        m.Reason,
		IsActive:      m.IsActive,
	}
}

// SavePartner inserts a new partner.
func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		partner.PartnerID,
		partner.Name,
		string(partner.PartnershipType),
		partner.PercentageRate,
		partner.PercentageAmount,
		partner.IsActive,
		partner.CreatedAt,
		partner.CreatedBy,
		partner.LastUpdatedAt,
		partner.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: partner with ID %s already exists", apperrors.ErrDuplicate, partner.PartnerID)
		}
		return fmt.Errorf("failed to save partner %s: %w", partner.PartnerID, err)
	}
	return nil
}

// FindPartnerByID retrieves a partner with weekly availability and blocked
// dates populated.
func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_id = $1;`

	m, err := scanPartner(r.Pool.QueryRow(ctx, query, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by ID %s: %w", partnerID, err)
	}
	partner := toDomainPartner(m)

	availability, err := r.loadWeeklyAvailability(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	partner.WeeklyAvailability = availability

	blocked, err := r.loadBlockedDates(ctx, partnerID, nil)
	if err != nil {
		return nil, err
	}
	partner.BlockedDates = blocked

	return &partner, nil
}

func (r *PgxPartnerRepository) loadWeeklyAvailability(ctx context.Context, partnerID string) ([]domain.WeeklyAvailability, error) {
	query := `
		SELECT availability_id, partner_id, weekday, start_time, end_time, break_start, break_end, is_active
		FROM partner_weekly_availability
		WHERE partner_id = $1 AND is_active = TRUE
		ORDER BY weekday, start_time;
	`
	rows, err := r.Pool.Query(ctx, query, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly availability for partner %s: %w", partnerID, err)
	}
	defer rows.Close()

	entries := []domain.WeeklyAvailability{}
	for rows.Next() {
		var m models.WeeklyAvailability
		if err := rows.Scan(&m.AvailabilityID, &m.PartnerID, &m.Weekday, &m.StartTime, &m.EndTime, &m.BreakStart, &m.BreakEnd, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan weekly availability row: %w", err)
		}
		entries = append(entries, toDomainWeeklyAvailability(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly availability rows: %w", err)
	}
	return entries, nil
}

func (r *PgxPartnerRepository) loadBlockedDates(ctx context.Context, partnerID string, date *time.Time) ([]domain.BlockedDate, error) {
	query := `
		SELECT blocked_date_id, partner_id, date, start_time, end_time, reason, is_active
		FROM partner_blocked_dates
		WHERE partner_id = $1 AND is_active = TRUE
		  AND ($2::date IS NULL OR date = $2)
		ORDER BY date;
	`
	rows, err := r.Pool.Query(ctx, query, partnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked dates for partner %s: %w", partnerID, err)
	}
	defer rows.Close()

	blocked := []domain.BlockedDate{}
	for rows.Next() {
		var m models.BlockedDate
		if err := rows.Scan(&m.BlockedDateID, &m.PartnerID, &m.Date, &m.StartTime, &m.EndTime, &m.Reason, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan blocked date row: %w", err)
		}
		blocked = append(blocked, toDomainBlockedDate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blocked date rows: %w", err)
	}
	return blocked, nil
}

// ListPartners retrieves partners, optionally only active ones.
func (r *PgxPartnerRepository) ListPartners(ctx context.Context, onlyActive bool) ([]domain.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		m, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, toDomainPartner(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", err)
	}
	return partners, nil
}

// FindBlockedDates retrieves a partner's active blocked dates for a specific day.
func (r *PgxPartnerRepository) FindBlockedDates(ctx context.Context, partnerID string, date time.Time) ([]domain.BlockedDate, error) {
	return r.loadBlockedDates(ctx, partnerID, &date)
}

// UpdatePartner updates an existing partner's details.
func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		UPDATE partners
		SET name = $2, partnership_type = $3, percentage_rate = $4,
		    percentage_amount = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE partner_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		partner.PartnerID,
		partner.Name,
		string(partner.PartnershipType),
		partner.PercentageRate,
		partner.PercentageAmount,
		partner.IsActive,
		partner.LastUpdatedAt,
		partner.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner %s: %w", partner.PartnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceWeeklyAvailability swaps a partner's full weekly availability set in
// one transaction.
func (r *PgxPartnerRepository) ReplaceWeeklyAvailability(ctx context.Context, partnerID string, entries []domain.WeeklyAvailability) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM partner_weekly_availability WHERE partner_id = $1;`, partnerID); err != nil {
		return fmt.Errorf("failed to clear weekly availability for partner %s: %w", partnerID, err)
	}

	insert := `
		INSERT INTO partner_weekly_availability (availability_id, partner_id, weekday, start_time, end_time, break_start, break_end, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, insert,
			e.AvailabilityID,
			partnerID,
			int(e.Weekday),
			e.StartTime,
			e.EndTime,
			e.BreakStart,
			e.BreakEnd,
			e.IsActive,
		); err != nil {
			return fmt.Errorf("failed to insert weekly availability entry: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// SaveBlockedDate persists a new blocked date for a partner.
func (r *PgxPartnerRepository) SaveBlockedDate(ctx context.Context, blocked domain.BlockedDate) error {
	query := `
		INSERT INTO partner_blocked_dates (blocked_date_id, partner_id, date, start_time, end_time, reason, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		blocked.BlockedDateID,
		blocked.PartnerID,
		blocked.Date,
		blocked.StartTime,
		blocked.EndTime,
		blocked.Reason,
		blocked.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to save blocked date for partner %s: %w", blocked.PartnerID, err)
	}
	return nil
}

// RemoveBlockedDate deactivates one of a partner's blocked dates.
func (r *PgxPartnerRepository) RemoveBlockedDate(ctx context.Context, partnerID string, blockedDateID string) error {
	query := `
		UPDATE partner_blocked_dates
		SET is_active = FALSE
		WHERE partner_id = $1 AND blocked_date_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, partnerID, blockedDateID)
	if err != nil {
		return fmt.Errorf("failed to remove blocked date %s: %w", blockedDateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
