package repositories

import (
	"context"
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
)

// PartnerReader defines read operations for partner data
type PartnerReader interface {
	// FindPartnerByID retrieves a partner with weekly availability and blocked
	// dates populated.
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners retrieves partners, optionally only active ones.
	ListPartners(ctx context.Context, onlyActive bool) ([]domain.Partner, error)

	// FindBlockedDates retrieves a partner's active blocked dates for a specific day.
	FindBlockedDates(ctx context.Context, partnerID string, date time.Time) ([]domain.BlockedDate, error)
}

// PartnerWriter defines write operations for partner data
type PartnerWriter interface {
	// SavePartner persists a new partner.
	SavePartner(ctx context.Context, partner domain.Partner) error

	// UpdatePartner updates an existing partner's details.
	UpdatePartner(ctx context.Context, partner domain.Partner) error

	// ReplaceWeeklyAvailability swaps a partner's full weekly availability set.
	ReplaceWeeklyAvailability(ctx context.Context, partnerID string, entries []domain.WeeklyAvailability) error

	// SaveBlockedDate persists a new blocked date for a partner.
	SaveBlockedDate(ctx context.Context, blocked domain.BlockedDate) error

	// RemoveBlockedDate deactivates one of a partner's blocked dates.
	RemoveBlockedDate(ctx context.Context, partnerID string, blockedDateID string) error
}

// PartnerRepositoryFacade combines all partner-related repository interfaces
type PartnerRepositoryFacade interface {
	PartnerReader
	PartnerWriter
}
