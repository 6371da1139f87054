package services

import (
	"context"
	"errors"
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

// DefaultAccountPolicy selects the bank account used for commission expense
// entries when none is named explicitly. The stock policy takes the first
// active account in creation order; deployments can override it.
type DefaultAccountPolicy func(ctx context.Context, accounts portsrepo.BankAccountReader) (*domain.BankAccount, error)

// FirstActiveAccountByCreation is the stock default-account policy.
func FirstActiveAccountByCreation(ctx context.Context, accounts portsrepo.BankAccountReader) (*domain.BankAccount, error) {
	active, err := accounts.ListActiveAccountsByCreation(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &active[0], nil
}

// reconciliationService keeps appointments and their financial entries
// mutually consistent: it derives entries on checkout, reverses them on
// cancellation, and re-derives the appointment status from the aggregate
// state of its entries after every entry-status change.
type reconciliationService struct {
	entryRepo       portsrepo.FinancialEntryRepositoryFacade
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
	appointmentRepo portsrepo.AppointmentRepositoryFacade
	partnerRepo     portsrepo.PartnerReader
	catalogRepo     portsrepo.CatalogReader
	defaultAccount  DefaultAccountPolicy
}

// ReconciliationOption configures the reconciliation service.
type ReconciliationOption func(*reconciliationService)

// WithDefaultAccountPolicy overrides how the commission account is chosen.
func WithDefaultAccountPolicy(policy DefaultAccountPolicy) ReconciliationOption {
	return func(s *reconciliationService) {
		if policy != nil {
			s.defaultAccount = policy
		}
	}
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	entryRepo portsrepo.FinancialEntryRepositoryFacade,
	bankAccountRepo portsrepo.BankAccountRepositoryFacade,
	appointmentRepo portsrepo.AppointmentRepositoryFacade,
	partnerRepo portsrepo.PartnerReader,
	catalogRepo portsrepo.CatalogReader,
	opts ...ReconciliationOption,
) portssvc.ReconciliationSvcFacade {
	s := &reconciliationService{
		entryRepo:       entryRepo,
		bankAccountRepo: bankAccountRepo,
		appointmentRepo: appointmentRepo,
		partnerRepo:     partnerRepo,
		catalogRepo:     catalogRepo,
		defaultAccount:  FirstActiveAccountByCreation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// categoryForService maps a catalog kind to the income category.
func categoryForService(kind domain.ServiceKind) domain.EntryCategory {
	switch kind {
	case domain.KindService:
		return domain.CategoryConsultation
	case domain.KindProduct:
		return domain.CategoryProductSales
	default:
		return domain.CategoryOtherIncome
	}
}

// ProcessCheckout posts the revenue entry for a completed appointment and,
// depending on the partner's arrangement, a pending commission expense entry.
func (s *reconciliationService) ProcessCheckout(ctx context.Context, appointmentID string, payment dto.CheckoutRequest, userID string) (*domain.CheckoutResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, appt.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", appt.PartnerID, err)
	}
	service, err := s.catalogRepo.FindServiceByID(ctx, appt.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %w", appt.ServiceID, err)
	}

	finalAmount := s.resolveFinalAmount(service, payment)
	if finalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: final amount %s is negative", apperrors.ErrValidation, finalAmount)
	}

	now := time.Now().UTC()
	refType := domain.ReferenceAppointment
	refID := appointmentID

	revenue := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryIncome,
		Status:        domain.EntryPaid,
		Amount:        finalAmount,
		Description:   fmt.Sprintf("Checkout of appointment for service %s", service.Name),
		Category:      categoryForService(service.Kind),
		PaymentMethod: payment.PaymentMethod,
		DueDate:       now,
		PaidDate:      &now,
		BankAccountID: payment.BankAccountID,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entryRepo.SaveEntry(ctx, revenue); err != nil {
		logger.Error("Failed to save revenue entry", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save revenue entry: %w", err)
	}
	if err := s.applyBalanceDelta(ctx, revenue.BankAccountID, revenue.SignedAmount(), userID); err != nil {
		logger.Error("Failed to adjust balance for revenue entry", slog.String("entry_id", revenue.EntryID), slog.String("error", err.Error()))
	}

	result := &domain.CheckoutResult{RevenueEntry: revenue, FinalAmount: finalAmount}

	commission, err := partner.ComputeCommission(finalAmount)
	if err != nil {
		// Misconfigured partnership types surface as a warning, never as a
		// silently zeroed commission.
		logger.Error("Commission computation failed", slog.String("partner_id", partner.PartnerID), slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, err.Error())
		return result, nil
	}
	result.Commission = commission

	if commission.CreatesExpenseEntry {
		entry, warning := s.postCommissionEntry(ctx, appointmentID, partner, commission.Amount, userID, now)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
			result.Commission.Amount = decimal.Zero
		}
		result.CommissionEntry = entry
	}

	logger.Info("Checkout processed",
		slog.String("appointment_id", appointmentID),
		slog.String("final_amount", finalAmount.String()),
		slog.String("commission", result.Commission.Amount.String()),
	)
	return result, nil
}

// resolveFinalAmount applies the override-or-derive rule:
// totalAmount ?? (servicePrice - discount + additionalCharges).
func (s *reconciliationService) resolveFinalAmount(service *domain.ProductService, payment dto.CheckoutRequest) decimal.Decimal {
	if payment.TotalAmount != nil {
		return *payment.TotalAmount
	}
	amount := service.SalePrice
	if payment.DiscountAmount != nil {
		amount = amount.Sub(*payment.DiscountAmount)
	}
	if payment.AdditionalCharges != nil {
		amount = amount.Add(*payment.AdditionalCharges)
	}
	return amount
}

// postCommissionEntry creates the PENDING expense entry against the default
// bank account. Returns a warning instead of an error: a missing account or a
// failed insert must not abort the checkout.
func (s *reconciliationService) postCommissionEntry(ctx context.Context, appointmentID string, partner *domain.Partner, amount decimal.Decimal, userID string, now time.Time) (*domain.FinancialEntry, string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.defaultAccount(ctx, s.bankAccountRepo)
	if err != nil {
		logger.Warn("No bank account available for commission entry", slog.String("partner_id", partner.PartnerID), slog.String("error", err.Error()))
		return nil, fmt.Sprintf("no active bank account for commission of partner %s; entry skipped", partner.PartnerID)
	}

	refType := domain.ReferenceAppointment
	refID := appointmentID
	entry := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryExpense,
		Status:        domain.EntryPending,
		Amount:        amount,
		Description:   fmt.Sprintf("Commission for partner %s", partner.Name),
		Category:      domain.CategoryPartnerCommission,
		DueDate:       now,
		BankAccountID: account.BankAccountID,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save commission entry", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		return nil, fmt.Sprintf("failed to post commission entry: %v", err)
	}
	return &entry, ""
}

// CancelAppointmentEntries cancels every non-cancelled entry tied to the
// appointment. Best-effort by design: one bad entry cannot block reversal of
// the rest.
func (s *reconciliationService) CancelAppointmentEntries(ctx context.Context, appointmentID string, reason string, userID string) (domain.CancellationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := domain.CancellationResult{TotalReversed: decimal.Zero}

	entries, err := s.entryRepo.FindEntriesByAppointment(ctx, appointmentID)
	if err != nil {
		return result, fmt.Errorf("failed to fetch entries for appointment %s: %w", appointmentID, err)
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		if entry.Status == domain.EntryCancelled {
			continue
		}
		wasPaid := entry.Status == domain.EntryPaid

		entry.Status = domain.EntryCancelled
		if entry.Notes != "" {
			entry.Notes += "\n"
		}
		entry.Notes += fmt.Sprintf("Cancelled: %s", reason)
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID

		if err := s.entryRepo.UpdateEntry(ctx, entry); err != nil {
			logger.Error("Failed to cancel financial entry, continuing",
				slog.String("entry_id", entry.EntryID),
				slog.String("appointment_id", appointmentID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}
		result.CancelledCount++

		if wasPaid {
			// Reverse exactly what the original PAID transition contributed.
			if err := s.applyBalanceDelta(ctx, entry.BankAccountID, entry.SignedAmount().Neg(), userID); err != nil {
				logger.Error("Failed to reverse balance for cancelled entry",
					slog.String("entry_id", entry.EntryID),
					slog.String("error", err.Error()),
				)
			} else {
				result.TotalReversed = result.TotalReversed.Add(entry.Amount)
			}
		}
	}

	if err := s.SyncAppointmentStatus(ctx, appointmentID, userID); err != nil {
		logger.Error("Failed to sync appointment status after entry cancellation", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
	}

	logger.Info("Appointment entries cancelled",
		slog.String("appointment_id", appointmentID),
		slog.Int("cancelled", result.CancelledCount),
		slog.Int("failed", result.FailedCount),
		slog.String("total_reversed", result.TotalReversed.String()),
	)
	return result, nil
}

// deriveStatusFromEntries is the single status-derivation rule shared by both
// sync directions.
func deriveStatusFromEntries(entries []domain.FinancialEntry) domain.AppointmentStatus {
	if len(entries) == 0 {
		return domain.StatusInProgress
	}
	allCancelled := true
	anyPaid := false
	for _, e := range entries {
		if e.Status != domain.EntryCancelled {
			allCancelled = false
		}
		if e.Status == domain.EntryPaid {
			anyPaid = true
		}
	}
	switch {
	case allCancelled:
		return domain.StatusInProgress
	case anyPaid:
		return domain.StatusCompleted
	default:
		return domain.StatusInProgress
	}
}

// SyncAppointmentStatus re-derives the appointment's status from its entries
// and applies the result when it differs. Idempotent. Cancelled appointments
// are never touched: cancellation is final from the appointment side.
func (s *reconciliationService) SyncAppointmentStatus(ctx context.Context, appointmentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Appointment referenced by financial entries no longer exists", slog.String("appointment_id", appointmentID))
			return nil
		}
		return fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status == domain.StatusCancelled {
		return nil
	}

	entries, err := s.entryRepo.FindEntriesByAppointment(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch entries for appointment %s: %w", appointmentID, err)
	}

	required := deriveStatusFromEntries(entries)
	if required == appt.Status {
		return nil
	}

	now := time.Now().UTC()
	previous := appt.Status
	appt.Status = required
	switch required {
	case domain.StatusInProgress:
		if previous == domain.StatusCompleted {
			appt.CheckOutAt = nil
		}
	case domain.StatusCompleted:
		if appt.CheckOutAt == nil {
			appt.CheckOutAt = &now
		}
	}
	appt.LastUpdatedAt = now
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		return fmt.Errorf("failed to apply synced status: %w", err)
	}

	logger.Info("Appointment status synced from financial entries",
		slog.String("appointment_id", appointmentID),
		slog.String("from", string(previous)),
		slog.String("to", string(required)),
	)
	return nil
}

// MarkEntryPaid settles a pending entry, adjusts the account balance and
// syncs the owning appointment.
func (s *reconciliationService) MarkEntryPaid(ctx context.Context, entryID string, req dto.PayEntryRequest, userID string) (*domain.FinancialEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.EntryPending && entry.Status != domain.EntryOverdue {
		return nil, fmt.Errorf("%w: entry must be pending to be paid, current status is %s", apperrors.ErrInvalidState, entry.Status)
	}

	now := time.Now().UTC()
	paidDate := now
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}
	if req.BankAccountID != nil {
		if _, err := s.bankAccountRepo.FindBankAccountByID(ctx, *req.BankAccountID); err != nil {
			return nil, fmt.Errorf("bank account %s: %w", *req.BankAccountID, err)
		}
		entry.BankAccountID = *req.BankAccountID
	}

	entry.Status = domain.EntryPaid
	entry.PaidDate = &paidDate
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to mark entry paid: %w", err)
	}
	if err := s.applyBalanceDelta(ctx, entry.BankAccountID, entry.SignedAmount(), userID); err != nil {
		logger.Error("Failed to adjust balance for paid entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
	}

	s.syncIfReferenced(ctx, entry, userID)

	logger.Info("Financial entry marked paid", slog.String("entry_id", entryID))
	return entry, nil
}

// CancelEntry cancels a single entry, reversing its balance contribution when
// it was paid, and syncs the owning appointment.
func (s *reconciliationService) CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.FinancialEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status == domain.EntryCancelled {
		return nil, fmt.Errorf("%w: entry is already cancelled", apperrors.ErrInvalidState)
	}
	wasPaid := entry.Status == domain.EntryPaid

	now := time.Now().UTC()
	entry.Status = domain.EntryCancelled
	if entry.Notes != "" {
		entry.Notes += "\n"
	}
	entry.Notes += fmt.Sprintf("Cancelled: %s", reason)
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to cancel entry: %w", err)
	}
	if wasPaid {
		if err := s.applyBalanceDelta(ctx, entry.BankAccountID, entry.SignedAmount().Neg(), userID); err != nil {
			logger.Error("Failed to reverse balance for cancelled entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		}
	}

	s.syncIfReferenced(ctx, entry, userID)

	logger.Info("Financial entry cancelled", slog.String("entry_id", entryID))
	return entry, nil
}

// syncIfReferenced triggers the status sync when the entry belongs to an
// appointment. Sync failures are logged, not propagated: the entry mutation
// has already committed.
func (s *reconciliationService) syncIfReferenced(ctx context.Context, entry *domain.FinancialEntry, userID string) {
	appointmentID := ""
	if entry.AppointmentID != nil {
		appointmentID = *entry.AppointmentID
	} else if entry.ReferenceType != nil && *entry.ReferenceType == domain.ReferenceAppointment && entry.ReferenceID != nil {
		appointmentID = *entry.ReferenceID
	}
	if appointmentID == "" {
		return
	}
	if err := s.SyncAppointmentStatus(ctx, appointmentID, userID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sync appointment status after entry change",
			slog.String("appointment_id", appointmentID),
			slog.String("entry_id", entry.EntryID),
			slog.String("error", err.Error()),
		)
	}
}

// ListEntriesByAppointment returns every entry tied to an appointment.
func (s *reconciliationService) ListEntriesByAppointment(ctx context.Context, appointmentID string) ([]domain.FinancialEntry, error) {
	return s.entryRepo.FindEntriesByAppointment(ctx, appointmentID)
}

// ListEntriesByAccount returns a bank account's entries in creation order.
func (s *reconciliationService) ListEntriesByAccount(ctx context.Context, bankAccountID string, status *domain.EntryStatus) ([]domain.FinancialEntry, error) {
	return s.entryRepo.ListEntriesByAccount(ctx, bankAccountID, status)
}

// applyBalanceDelta applies an incremental adjustment to an account's cached
// balance. Numerically equivalent to a full recompute for a single entry
// transition; callers must serialize per-account mutations.
func (s *reconciliationService) applyBalanceDelta(ctx context.Context, bankAccountID string, delta decimal.Decimal, userID string) error {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	newBalance := account.CurrentBalance.Add(delta)
	if err := s.bankAccountRepo.UpdateAccountBalance(ctx, bankAccountID, newBalance, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", bankAccountID, err)
	}
	return nil
}
