package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
)

// MockAppointmentRepository is a mock type for the AppointmentRepositoryFacade interface
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveByPartnerAndDate(ctx context.Context, partnerID string, date time.Time, excludeAppointmentID *string) ([]domain.Appointment, error) {
	args := m.Called(ctx, partnerID, date, excludeAppointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveByRoomAndDate(ctx context.Context, roomID string, date time.Time, excludeAppointmentID *string) ([]domain.Appointment, error) {
	args := m.Called(ctx, roomID, date, excludeAppointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPartnerAndDateRange(ctx context.Context, partnerID string, from, to time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, partnerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string, limit int, offset int) ([]domain.Appointment, error) {
	args := m.Called(ctx, patientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateAppointment(ctx context.Context, appointment domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

// MockPartnerRepository is a mock type for the PartnerRepositoryFacade interface
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ListPartners(ctx context.Context, onlyActive bool) ([]domain.Partner, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindBlockedDates(ctx context.Context, partnerID string, date time.Time) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, partnerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) ReplaceWeeklyAvailability(ctx context.Context, partnerID string, entries []domain.WeeklyAvailability) error {
	args := m.Called(ctx, partnerID, entries)
	return args.Error(0)
}

func (m *MockPartnerRepository) SaveBlockedDate(ctx context.Context, blocked domain.BlockedDate) error {
	args := m.Called(ctx, blocked)
	return args.Error(0)
}

func (m *MockPartnerRepository) RemoveBlockedDate(ctx context.Context, partnerID string, blockedDateID string) error {
	args := m.Called(ctx, partnerID, blockedDateID)
	return args.Error(0)
}

// MockCatalogRepository is a mock type for the CatalogRepositoryFacade interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.ProductService, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductService), args.Error(1)
}

func (m *MockCatalogRepository) FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockCatalogRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockCatalogRepository) ListServices(ctx context.Context, onlyBookable bool) ([]domain.ProductService, error) {
	args := m.Called(ctx, onlyBookable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductService), args.Error(1)
}

func (m *MockCatalogRepository) SaveService(ctx context.Context, service domain.ProductService) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockCatalogRepository) SavePatient(ctx context.Context, patient domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

// MockFinancialEntryRepository is a mock type for the FinancialEntryRepositoryFacade interface
type MockFinancialEntryRepository struct {
	mock.Mock
}

func (m *MockFinancialEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.FinancialEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialEntry), args.Error(1)
}

func (m *MockFinancialEntryRepository) FindEntriesByAppointment(ctx context.Context, appointmentID string) ([]domain.FinancialEntry, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialEntry), args.Error(1)
}

func (m *MockFinancialEntryRepository) ListEntriesByAccount(ctx context.Context, bankAccountID string, status *domain.EntryStatus) ([]domain.FinancialEntry, error) {
	args := m.Called(ctx, bankAccountID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialEntry), args.Error(1)
}

func (m *MockFinancialEntryRepository) SaveEntry(ctx context.Context, entry domain.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFinancialEntryRepository) UpdateEntry(ctx context.Context, entry domain.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockBankAccountRepository is a mock type for the BankAccountRepositoryFacade interface
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListActiveAccountsByCreation(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateAccountBalance(ctx context.Context, bankAccountID string, newBalance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, bankAccountID, newBalance, updatedByUserID, updatedAt)
	return args.Error(0)
}

// MockAvailabilityService is a mock type for the AvailabilitySvcFacade interface
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, query dto.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityResult), args.Error(1)
}

func (m *MockAvailabilityService) GetDaySchedule(ctx context.Context, partnerID string, date time.Time) (*domain.DaySchedule, error) {
	args := m.Called(ctx, partnerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySchedule), args.Error(1)
}

// MockReconciliationService is a mock type for the ReconciliationSvcFacade interface
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ProcessCheckout(ctx context.Context, appointmentID string, payment dto.CheckoutRequest, userID string) (*domain.CheckoutResult, error) {
	args := m.Called(ctx, appointmentID, payment, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutResult), args.Error(1)
}

func (m *MockReconciliationService) CancelAppointmentEntries(ctx context.Context, appointmentID string, reason string, userID string) (domain.CancellationResult, error) {
	args := m.Called(ctx, appointmentID, reason, userID)
	return args.Get(0).(domain.CancellationResult), args.Error(1)
}

func (m *MockReconciliationService) SyncAppointmentStatus(ctx context.Context, appointmentID string, userID string) error {
	args := m.Called(ctx, appointmentID, userID)
	return args.Error(0)
}

func (m *MockReconciliationService) MarkEntryPaid(ctx context.Context, entryID string, req dto.PayEntryRequest, userID string) (*domain.FinancialEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialEntry), args.Error(1)
}

func (m *MockReconciliationService) CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.FinancialEntry, error) {
	args := m.Called(ctx, entryID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialEntry), args.Error(1)
}

func (m *MockReconciliationService) ListEntriesByAppointment(ctx context.Context, appointmentID string) ([]domain.FinancialEntry, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialEntry), args.Error(1)
}

func (m *MockReconciliationService) ListEntriesByAccount(ctx context.Context, bankAccountID string, status *domain.EntryStatus) ([]domain.FinancialEntry, error) {
	args := m.Called(ctx, bankAccountID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialEntry), args.Error(1)
}

// MockScheduleRules is a mock type for the ScheduleRulesSvc interface
type MockScheduleRules struct {
	mock.Mock
}

func (m *MockScheduleRules) ValidateBusinessHours(date time.Time, startTime, endTime string) portssvc.RuleResult {
	args := m.Called(date, startTime, endTime)
	return args.Get(0).(portssvc.RuleResult)
}

func (m *MockScheduleRules) ValidateBookingAdvance(date time.Time, startTime string) portssvc.RuleResult {
	args := m.Called(date, startTime)
	return args.Get(0).(portssvc.RuleResult)
}

func (m *MockScheduleRules) ValidateAppointmentMovement(currentStatus domain.AppointmentStatus) portssvc.RuleResult {
	args := m.Called(currentStatus)
	return args.Get(0).(portssvc.RuleResult)
}

// MockNotifier is a mock type for the NotifierSvc interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ScheduleReminders(ctx context.Context, appointment domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockNotifier) RescheduleReminders(ctx context.Context, appointment domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockNotifier) CancelReminders(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockNotifier) SendImmediateNotification(ctx context.Context, appointment domain.Appointment, message string) error {
	args := m.Called(ctx, appointment, message)
	return args.Error(0)
}
