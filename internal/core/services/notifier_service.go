package services

import (
	"context"
	"log/slog"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// logNotifierService records notification intents through structured logging.
// It stands in until a real delivery channel (mail, SMS, push) is wired up;
// the lifecycle already treats every notifier call as best-effort.
type logNotifierService struct{}

// NewLogNotifierService creates the logging notifier.
func NewLogNotifierService() portssvc.NotifierSvc {
	return &logNotifierService{}
}

var _ portssvc.NotifierSvc = (*logNotifierService)(nil)

func (s *logNotifierService) ScheduleReminders(ctx context.Context, appointment domain.Appointment) error {
	middleware.GetLoggerFromCtx(ctx).Info("Reminders scheduled",
		slog.String("appointment_id", appointment.AppointmentID),
		slog.String("date", appointment.Date.Format("2006-01-02")),
		slog.String("start_time", appointment.StartTime),
	)
	return nil
}

func (s *logNotifierService) RescheduleReminders(ctx context.Context, appointment domain.Appointment) error {
	middleware.GetLoggerFromCtx(ctx).Info("Reminders rescheduled",
		slog.String("appointment_id", appointment.AppointmentID),
		slog.String("date", appointment.Date.Format("2006-01-02")),
		slog.String("start_time", appointment.StartTime),
	)
	return nil
}

func (s *logNotifierService) CancelReminders(ctx context.Context, appointmentID string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Reminders cancelled", slog.String("appointment_id", appointmentID))
	return nil
}

func (s *logNotifierService) SendImmediateNotification(ctx context.Context, appointment domain.Appointment, message string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification sent",
		slog.String("appointment_id", appointment.AppointmentID),
		slog.String("message", message),
	)
	return nil
}
