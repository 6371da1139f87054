package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

type partnerService struct {
	partnerRepo portsrepo.PartnerRepositoryFacade
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

// CreatePartner registers a new partner. The partnership type is validated
// against the closed set even though binding already restricts it, so callers
// bypassing the HTTP layer get the same guarantee.
func (s *partnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PartnershipType.Valid() {
		return nil, fmt.Errorf("%w: unknown partnership type %q", apperrors.ErrValidation, req.PartnershipType)
	}
	if req.PercentageRate != nil && (req.PercentageRate.IsNegative() || req.PercentageRate.GreaterThan(decimal.NewFromInt(100))) {
		return nil, fmt.Errorf("%w: percentage rate must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.PercentageAmount != nil && req.PercentageAmount.IsNegative() {
		return nil, fmt.Errorf("%w: percentage amount cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	partner := domain.Partner{
		PartnerID:        uuid.NewString(),
		Name:             req.Name,
		PartnershipType:  req.PartnershipType,
		PercentageRate:   req.PercentageRate,
		PercentageAmount: req.PercentageAmount,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		logger.Error("Failed to save partner", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save partner: %w", err)
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID), slog.String("partnership_type", string(partner.PartnershipType)))
	return &partner, nil
}

// GetPartnerByID retrieves a partner with availability and blocked dates.
func (s *partnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	return partner, nil
}

// ListPartners retrieves partners, optionally only active ones.
func (s *partnerService) ListPartners(ctx context.Context, onlyActive bool) ([]domain.Partner, error) {
	return s.partnerRepo.ListPartners(ctx, onlyActive)
}

// ReplaceWeeklyAvailability swaps the partner's whole weekly schedule after
// validating every entry: windows must be well-formed and breaks must sit
// fully inside their window.
func (s *partnerService) ReplaceWeeklyAvailability(ctx context.Context, partnerID string, req dto.ReplaceAvailabilityRequest, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partnerRepo.FindPartnerByID(ctx, partnerID); err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}

	entries := make([]domain.WeeklyAvailability, 0, len(req.Entries))
	for i, e := range req.Entries {
		if err := validateAvailabilityWindow(e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %s", apperrors.ErrValidation, i, err)
		}
		entries = append(entries, domain.WeeklyAvailability{
			AvailabilityID: uuid.NewString(),
			PartnerID:      partnerID,
			Weekday:        e.Weekday,
			StartTime:      e.StartTime,
			EndTime:        e.EndTime,
			BreakStart:     e.BreakStart,
			BreakEnd:       e.BreakEnd,
			IsActive:       true,
		})
	}

	if err := s.partnerRepo.ReplaceWeeklyAvailability(ctx, partnerID, entries); err != nil {
		logger.Error("Failed to replace weekly availability", slog.String("partner_id", partnerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to replace weekly availability: %w", err)
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload partner %s: %w", partnerID, err)
	}

	logger.Info("Weekly availability replaced", slog.String("partner_id", partnerID), slog.Int("entries", len(entries)))
	return partner, nil
}

// validateAvailabilityWindow checks one weekday entry. Break bounds are
// optional but must come as a pair.
func validateAvailabilityWindow(e dto.WeeklyAvailabilityRequest) error {
	if e.StartTime >= e.EndTime {
		return fmt.Errorf("start time %s must be before end time %s", e.StartTime, e.EndTime)
	}
	if (e.BreakStart == nil) != (e.BreakEnd == nil) {
		return fmt.Errorf("break start and break end must both be set or both be empty")
	}
	if e.BreakStart != nil {
		if *e.BreakStart >= *e.BreakEnd {
			return fmt.Errorf("break start %s must be before break end %s", *e.BreakStart, *e.BreakEnd)
		}
		if !domain.ClockWithin(*e.BreakStart, *e.BreakEnd, e.StartTime, e.EndTime) {
			return fmt.Errorf("break %s-%s must be inside the working window %s-%s", *e.BreakStart, *e.BreakEnd, e.StartTime, e.EndTime)
		}
	}
	return nil
}

// AddBlockedDate blocks a whole day, or a window of it when both bounds are
// given.
func (s *partnerService) AddBlockedDate(ctx context.Context, partnerID string, req dto.BlockedDateRequest, userID string) (*domain.BlockedDate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partnerRepo.FindPartnerByID(ctx, partnerID); err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, fmt.Errorf("%w: blocked window needs both start and end times, or neither", apperrors.ErrValidation)
	}
	if req.StartTime != nil && *req.StartTime >= *req.EndTime {
		return nil, fmt.Errorf("%w: blocked window start %s must be before end %s", apperrors.ErrValidation, *req.StartTime, *req.EndTime)
	}

	blocked := domain.BlockedDate{
		BlockedDateID: uuid.NewString(),
		PartnerID:     partnerID,
		Date:          dayOf(req.Date),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Reason:        req.Reason,
		IsActive:      true,
	}

	if err := s.partnerRepo.SaveBlockedDate(ctx, blocked); err != nil {
		logger.Error("Failed to save blocked date", slog.String("partner_id", partnerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save blocked date: %w", err)
	}

	logger.Info("Blocked date added", slog.String("partner_id", partnerID), slog.String("date", blocked.Date.Format("2006-01-02")))
	return &blocked, nil
}

// RemoveBlockedDate deactivates a blocked date.
func (s *partnerService) RemoveBlockedDate(ctx context.Context, partnerID string, blockedDateID string) error {
	if err := s.partnerRepo.RemoveBlockedDate(ctx, partnerID, blockedDateID); err != nil {
		return fmt.Errorf("failed to remove blocked date %s: %w", blockedDateID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Blocked date removed", slog.String("partner_id", partnerID), slog.String("blocked_date_id", blockedDateID))
	return nil
}
