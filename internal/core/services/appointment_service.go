package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// appointmentService implements the booking state machine. State guards are
// enforced here; slot conflicts are delegated to the availability engine and
// money movements to the reconciliation engine.
type appointmentService struct {
	appointmentRepo portsrepo.AppointmentRepositoryFacade
	partnerRepo     portsrepo.PartnerReader
	catalogRepo     portsrepo.CatalogReader
	availabilitySvc portssvc.AvailabilitySvcFacade
	reconciliation  portssvc.ReconciliationSvcFacade
	scheduleRules   portssvc.ScheduleRulesSvc
	notifier        portssvc.NotifierSvc
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(
	appointmentRepo portsrepo.AppointmentRepositoryFacade,
	partnerRepo portsrepo.PartnerReader,
	catalogRepo portsrepo.CatalogReader,
	availabilitySvc portssvc.AvailabilitySvcFacade,
	reconciliation portssvc.ReconciliationSvcFacade,
	scheduleRules portssvc.ScheduleRulesSvc,
	notifier portssvc.NotifierSvc,
) portssvc.AppointmentSvcFacade {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		partnerRepo:     partnerRepo,
		catalogRepo:     catalogRepo,
		availabilitySvc: availabilitySvc,
		reconciliation:  reconciliation,
		scheduleRules:   scheduleRules,
		notifier:        notifier,
	}
}

var _ portssvc.AppointmentSvcFacade = (*appointmentService)(nil)

// GetAppointmentByID retrieves a specific appointment.
func (s *appointmentService) GetAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	return appt, nil
}

// ListByPartnerAndDateRange retrieves a partner's appointments between two days.
func (s *appointmentService) ListByPartnerAndDateRange(ctx context.Context, partnerID string, from, to time.Time) ([]domain.Appointment, error) {
	return s.appointmentRepo.ListByPartnerAndDateRange(ctx, partnerID, dayOf(from), dayOf(to))
}

// ListByPatient retrieves a patient's appointments, most recent first.
func (s *appointmentService) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.appointmentRepo.ListByPatient(ctx, patientID, limit, offset)
}

// validateReferences checks that every referenced entity exists, is active,
// and (for services) is bookable.
func (s *appointmentService) validateReferences(ctx context.Context, patientID, partnerID, serviceID string, roomID *string) (*domain.ProductService, error) {
	patient, err := s.catalogRepo.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient %s: %w", patientID, err)
	}
	if !patient.IsActive {
		return nil, fmt.Errorf("%w: patient %s is inactive", apperrors.ErrValidation, patientID)
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("partner %s: %w", partnerID, err)
	}
	if !partner.IsActive {
		return nil, fmt.Errorf("%w: partner %s is inactive", apperrors.ErrValidation, partnerID)
	}

	service, err := s.catalogRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, err)
	}
	if !service.IsActive {
		return nil, fmt.Errorf("%w: service %s is inactive", apperrors.ErrValidation, serviceID)
	}
	if !service.AvailableForBooking {
		return nil, fmt.Errorf("%w: service %s is not available for booking", apperrors.ErrValidation, serviceID)
	}

	if roomID != nil {
		room, err := s.catalogRepo.FindRoomByID(ctx, *roomID)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", *roomID, err)
		}
		if !room.IsActive {
			return nil, fmt.Errorf("%w: room %s is inactive", apperrors.ErrValidation, *roomID)
		}
	}
	return service, nil
}

// CreateAppointment books a new slot after entity, business-rule and
// availability validation.
func (s *appointmentService) CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest, creatorUserID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	service, err := s.validateReferences(ctx, req.PatientID, req.PartnerID, req.ServiceID, req.RoomID)
	if err != nil {
		return nil, err
	}

	endTime := ""
	if req.EndTime != nil {
		endTime = *req.EndTime
	} else {
		endTime, err = domain.AddMinutesToClock(req.StartTime, service.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	if req.StartTime >= endTime {
		return nil, fmt.Errorf("%w: startTime %s must be before endTime %s", apperrors.ErrValidation, req.StartTime, endTime)
	}

	isFitIn := req.IsFitIn || req.Type == domain.TypeFitIn

	if rule := s.scheduleRules.ValidateBusinessHours(req.Date, req.StartTime, endTime); !rule.Valid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, rule.Reason)
	}
	if rule := s.scheduleRules.ValidateBookingAdvance(req.Date, req.StartTime); !rule.Valid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, rule.Reason)
	}

	verdict, err := s.availabilitySvc.CheckAvailability(ctx, dto.AvailabilityQuery{
		PartnerID: req.PartnerID,
		RoomID:    req.RoomID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   endTime,
		FitIn:     isFitIn,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return nil, apperrors.NewConflictError(verdict.Reasons()...)
	}

	apptType := req.Type
	if apptType == "" {
		apptType = domain.TypeConsultation
	}
	if isFitIn {
		apptType = domain.TypeFitIn
	}

	now := time.Now().UTC()
	appointment := domain.Appointment{
		AppointmentID: uuid.NewString(),
		PatientID:     req.PatientID,
		PartnerID:     req.PartnerID,
		ServiceID:     req.ServiceID,
		RoomID:        req.RoomID,
		Date:          dayOf(req.Date),
		StartTime:     req.StartTime,
		EndTime:       endTime,
		Type:          apptType,
		Status:        domain.StatusScheduled,
		Notes:         req.Notes,
		IsFitIn:       isFitIn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.appointmentRepo.SaveAppointment(ctx, appointment); err != nil {
		logger.Error("Failed to save appointment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}

	if err := s.notifier.ScheduleReminders(ctx, appointment); err != nil {
		logger.Warn("Failed to schedule reminders", slog.String("appointment_id", appointment.AppointmentID), slog.String("error", err.Error()))
	}

	logger.Info("Appointment created", slog.String("appointment_id", appointment.AppointmentID), slog.String("partner_id", appointment.PartnerID))
	return &appointment, nil
}

// UpdateAppointment applies partial changes, re-running availability when the
// slot moves and re-validating any changed entity references.
func (s *appointmentService) UpdateAppointment(ctx context.Context, appointmentID string, req dto.UpdateAppointmentRequest, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}

	slotMoved := req.Date != nil || req.StartTime != nil || req.EndTime != nil ||
		req.PartnerID != nil || req.RoomID != nil
	referencesChanged := req.PatientID != nil || req.PartnerID != nil || req.ServiceID != nil || req.RoomID != nil

	if slotMoved {
		if rule := s.scheduleRules.ValidateAppointmentMovement(appt.Status); !rule.Valid {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, rule.Reason)
		}
	}

	if req.PatientID != nil {
		appt.PatientID = *req.PatientID
	}
	if req.PartnerID != nil {
		appt.PartnerID = *req.PartnerID
	}
	if req.ServiceID != nil {
		appt.ServiceID = *req.ServiceID
	}
	if req.RoomID != nil {
		if *req.RoomID == "" {
			appt.RoomID = nil
		} else {
			appt.RoomID = req.RoomID
		}
	}
	if req.Date != nil {
		appt.Date = dayOf(*req.Date)
	}
	if req.StartTime != nil {
		appt.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		appt.EndTime = *req.EndTime
	}
	if req.Type != nil {
		appt.Type = *req.Type
		appt.IsFitIn = *req.Type == domain.TypeFitIn
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}

	if appt.StartTime >= appt.EndTime {
		return nil, fmt.Errorf("%w: startTime %s must be before endTime %s", apperrors.ErrValidation, appt.StartTime, appt.EndTime)
	}

	if referencesChanged {
		if _, err := s.validateReferences(ctx, appt.PatientID, appt.PartnerID, appt.ServiceID, appt.RoomID); err != nil {
			return nil, err
		}
	}

	if slotMoved {
		excludeID := appt.AppointmentID
		verdict, err := s.availabilitySvc.CheckAvailability(ctx, dto.AvailabilityQuery{
			PartnerID:            appt.PartnerID,
			RoomID:               appt.RoomID,
			Date:                 appt.Date,
			StartTime:            appt.StartTime,
			EndTime:              appt.EndTime,
			ExcludeAppointmentID: &excludeID,
			FitIn:                appt.IsFitIn,
		})
		if err != nil {
			return nil, err
		}
		if !verdict.Available {
			return nil, apperrors.NewConflictError(verdict.Reasons()...)
		}
	}

	appt.LastUpdatedAt = time.Now().UTC()
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		logger.Error("Failed to update appointment", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if slotMoved {
		if err := s.notifier.RescheduleReminders(ctx, *appt); err != nil {
			logger.Warn("Failed to reschedule reminders", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		}
	}

	logger.Info("Appointment updated", slog.String("appointment_id", appointmentID))
	return appt, nil
}

// DeleteAppointment removes an appointment that was never acted on.
func (s *appointmentService) DeleteAppointment(ctx context.Context, appointmentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusScheduled {
		return fmt.Errorf("%w: only scheduled appointments can be deleted, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	if err := s.appointmentRepo.DeleteAppointment(ctx, appointmentID); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if err := s.notifier.CancelReminders(ctx, appointmentID); err != nil {
		logger.Warn("Failed to cancel reminders", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
	}

	logger.Info("Appointment deleted", slog.String("appointment_id", appointmentID))
	return nil
}

// CancelAppointment cancels a booking and reverses all of its financial
// entries. The reversal is best-effort: its failure never rolls back the
// cancellation itself.
func (s *appointmentService) CancelAppointment(ctx context.Context, appointmentID string, reason string, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusScheduled && appt.Status != domain.StatusInProgress {
		return nil, fmt.Errorf("%w: only scheduled or in-progress appointments can be cancelled, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	now := time.Now().UTC()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = reason
	appt.LastUpdatedAt = now
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		logger.Error("Failed to cancel appointment", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if _, err := s.reconciliation.CancelAppointmentEntries(ctx, appointmentID, reason, userID); err != nil {
		logger.Error("Failed to reverse financial entries for cancelled appointment", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
	}

	if err := s.notifier.CancelReminders(ctx, appointmentID); err != nil {
		logger.Warn("Failed to cancel reminders", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
	}

	logger.Info("Appointment cancelled", slog.String("appointment_id", appointmentID), slog.String("reason", reason))
	return appt, nil
}

// CheckIn marks the patient as arrived.
func (s *appointmentService) CheckIn(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusScheduled {
		return nil, fmt.Errorf("%w: appointment must be scheduled to check in, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	now := time.Now().UTC()
	appt.Status = domain.StatusInProgress
	appt.CheckInAt = &now
	appt.LastUpdatedAt = now
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		return nil, fmt.Errorf("failed to check in appointment: %w", err)
	}

	logger.Info("Appointment checked in", slog.String("appointment_id", appointmentID))
	return appt, nil
}

// CheckOut completes the visit without touching money.
func (s *appointmentService) CheckOut(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusInProgress {
		return nil, fmt.Errorf("%w: appointment must be in progress to check out, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	now := time.Now().UTC()
	appt.Status = domain.StatusCompleted
	appt.CheckOutAt = &now
	appt.LastUpdatedAt = now
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		return nil, fmt.Errorf("failed to check out appointment: %w", err)
	}

	logger.Info("Appointment checked out", slog.String("appointment_id", appointmentID))
	return appt, nil
}

// CheckOutWithFinancials completes the visit and posts the revenue and
// commission entries. A reconciliation failure is logged, not propagated: the
// completed state change has already committed.
func (s *appointmentService) CheckOutWithFinancials(ctx context.Context, appointmentID string, payment dto.CheckoutRequest, userID string) (*domain.Appointment, *domain.CheckoutResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.CheckOut(ctx, appointmentID, userID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.reconciliation.ProcessCheckout(ctx, appointmentID, payment, userID)
	if err != nil {
		logger.Error("Failed to post checkout financials", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		return appt, nil, nil
	}

	return appt, result, nil
}

// UndoCheckIn reverts an accidental check-in.
func (s *appointmentService) UndoCheckIn(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusInProgress || appt.CheckInAt == nil {
		return nil, fmt.Errorf("%w: appointment must be in progress with a recorded check-in to undo it, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	appt.Status = domain.StatusScheduled
	appt.CheckInAt = nil
	appt.LastUpdatedAt = time.Now().UTC()
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		return nil, fmt.Errorf("failed to undo check-in: %w", err)
	}

	logger.Info("Appointment check-in undone", slog.String("appointment_id", appointmentID))
	return appt, nil
}

// UndoCheckOut reverts an accidental check-out by direct operator action.
func (s *appointmentService) UndoCheckOut(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusCompleted || appt.CheckOutAt == nil {
		return nil, fmt.Errorf("%w: appointment must be completed with a recorded check-out to undo it, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	appt.Status = domain.StatusInProgress
	appt.CheckOutAt = nil
	appt.LastUpdatedAt = time.Now().UTC()
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		return nil, fmt.Errorf("failed to undo check-out: %w", err)
	}

	logger.Info("Appointment check-out undone", slog.String("appointment_id", appointmentID))
	return appt, nil
}

// CancelCheckoutFinancials reverses only the money side of a completed
// checkout. The entry cancellation sweep drives the appointment back to
// IN_PROGRESS through the status sync.
func (s *appointmentService) CancelCheckoutFinancials(ctx context.Context, appointmentID string, reason string, userID string) (*domain.Appointment, *domain.CancellationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusCompleted {
		return nil, nil, fmt.Errorf("%w: appointment must be completed to cancel its checkout financials, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	result, err := s.reconciliation.CancelAppointmentEntries(ctx, appointmentID, reason, userID)
	if err != nil {
		logger.Error("Failed to cancel checkout financials", slog.String("appointment_id", appointmentID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to cancel checkout financials: %w", err)
	}

	appt, err = s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, &result, fmt.Errorf("failed to reload appointment %s: %w", appointmentID, err)
	}

	logger.Info("Checkout financials cancelled", slog.String("appointment_id", appointmentID), slog.Int("cancelled_entries", result.CancelledCount))
	return appt, &result, nil
}

// MarkNoShow flags a scheduled appointment whose start time has passed.
func (s *appointmentService) MarkNoShow(ctx context.Context, appointmentID string, userID string) (*domain.Appointment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", appointmentID, err)
	}
	if appt.Status != domain.StatusScheduled {
		return nil, fmt.Errorf("%w: only scheduled appointments can be marked no-show, current status is %s", apperrors.ErrInvalidState, appt.Status)
	}

	startMinutes, err := domain.ClockToMinutes(appt.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	now := time.Now().UTC()
	start := appt.Date.Add(time.Duration(startMinutes) * time.Minute)
	if now.Before(start) {
		return nil, fmt.Errorf("%w: appointment has not started yet", apperrors.ErrValidation)
	}

	appt.Status = domain.StatusNoShow
	appt.LastUpdatedAt = now
	appt.LastUpdatedBy = userID

	if err := s.appointmentRepo.UpdateAppointment(ctx, *appt); err != nil {
		return nil, fmt.Errorf("failed to mark appointment as no-show: %w", err)
	}

	logger.Info("Appointment marked as no-show", slog.String("appointment_id", appointmentID))
	return appt, nil
}
