package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisdesk/clinic_management_app/internal/apperrors"
	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/core/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockFinancialEntryRepository
	mockAccountRepo *MockBankAccountRepository
	mockApptRepo    *MockAppointmentRepository
	mockPartnerRepo *MockPartnerRepository
	mockCatalogRepo *MockCatalogRepository
	service         portssvc.ReconciliationSvcFacade

	appointmentID string
	partnerID     string
	serviceID     string
	accountID     string
	userID        string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockFinancialEntryRepository)
	suite.mockAccountRepo = new(MockBankAccountRepository)
	suite.mockApptRepo = new(MockAppointmentRepository)
	suite.mockPartnerRepo = new(MockPartnerRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.service = services.NewReconciliationService(
		suite.mockEntryRepo,
		suite.mockAccountRepo,
		suite.mockApptRepo,
		suite.mockPartnerRepo,
		suite.mockCatalogRepo,
	)
	suite.appointmentID = uuid.NewString()
	suite.partnerID = uuid.NewString()
	suite.serviceID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ReconciliationServiceTestSuite) appointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		AppointmentID: suite.appointmentID,
		PatientID:     uuid.NewString(),
		PartnerID:     suite.partnerID,
		ServiceID:     suite.serviceID,
		Date:          monday,
		StartTime:     "10:00",
		EndTime:       "11:00",
		Type:          domain.TypeConsultation,
		Status:        status,
	}
}

func (suite *ReconciliationServiceTestSuite) percentagePartner(rate int64) *domain.Partner {
	r := dec(rate)
	return &domain.Partner{
		PartnerID:       suite.partnerID,
		Name:            "Dr. Example",
		PartnershipType: domain.PartnershipPercentage,
		PercentageRate:  &r,
		IsActive:        true,
	}
}

func (suite *ReconciliationServiceTestSuite) consultation(price int64) *domain.ProductService {
	return &domain.ProductService{
		ServiceID:           suite.serviceID,
		Name:                "Consultation",
		Kind:                domain.KindService,
		SalePrice:           dec(price),
		DurationMinutes:     60,
		IsActive:            true,
		AvailableForBooking: true,
	}
}

func (suite *ReconciliationServiceTestSuite) account(balance int64) *domain.BankAccount {
	return &domain.BankAccount{
		BankAccountID:  suite.accountID,
		Name:           "Main",
		InitialBalance: dec(0),
		CurrentBalance: dec(balance),
		IsActive:       true,
	}
}

func (suite *ReconciliationServiceTestSuite) checkoutRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		PaymentMethod: domain.PaymentCash,
		BankAccountID: suite.accountID,
	}
}

func (suite *ReconciliationServiceTestSuite) TestProcessCheckout_PercentageCommission() {
	ctx := context.Background()
	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusCompleted), nil).Once()
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partnerID).Return(suite.percentagePartner(20), nil).Once()
	suite.mockCatalogRepo.On("FindServiceByID", ctx, suite.serviceID).Return(suite.consultation(100), nil).Once()

	var savedEntries []domain.FinancialEntry
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.FinancialEntry")).Run(func(args mock.Arguments) {
		savedEntries = append(savedEntries, args.Get(1).(domain.FinancialEntry))
	}).Return(nil).Twice()

	// Revenue posts against the requested account; the commission expense
	// lands on the first active account.
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(400), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(500)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("ListActiveAccountsByCreation", ctx).Return([]domain.BankAccount{*suite.account(400)}, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, suite.appointmentID, suite.checkoutRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.True(result.FinalAmount.Equal(dec(100)))
	suite.True(result.Commission.Amount.Equal(dec(20)))
	suite.Empty(result.Warnings)

	suite.Require().Len(savedEntries, 2)
	revenue, commission := savedEntries[0], savedEntries[1]
	suite.Equal(domain.EntryIncome, revenue.Type)
	suite.Equal(domain.EntryPaid, revenue.Status)
	suite.True(revenue.Amount.Equal(dec(100)))
	suite.Equal(domain.CategoryConsultation, revenue.Category)
	suite.True(revenue.ReferencesAppointment(suite.appointmentID))
	suite.Equal(domain.EntryExpense, commission.Type)
	suite.Equal(domain.EntryPending, commission.Status)
	suite.True(commission.Amount.Equal(dec(20)))
	suite.Equal(domain.CategoryPartnerCommission, commission.Category)
	suite.Require().NotNil(result.CommissionEntry)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestProcessCheckout_SubleaseCreatesNoCommissionEntry() {
	ctx := context.Background()
	partner := suite.percentagePartner(0)
	partner.PartnershipType = domain.PartnershipSublease
	partner.PercentageRate = nil

	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusCompleted), nil).Once()
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partnerID).Return(partner, nil).Once()
	suite.mockCatalogRepo.On("FindServiceByID", ctx, suite.serviceID).Return(suite.consultation(150), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.FinancialEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(0), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(150)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, suite.appointmentID, suite.checkoutRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Commission.Amount.IsZero())
	suite.Nil(result.CommissionEntry)
	suite.Empty(result.Warnings)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListActiveAccountsByCreation", mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestProcessCheckout_TotalAmountOverridesDerivedPrice() {
	ctx := context.Background()
	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusCompleted), nil).Once()
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partnerID).Return(suite.percentagePartner(10), nil).Once()
	suite.mockCatalogRepo.On("FindServiceByID", ctx, suite.serviceID).Return(suite.consultation(100), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.FinancialEntry")).Return(nil).Twice()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(0), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(80)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("ListActiveAccountsByCreation", ctx).Return([]domain.BankAccount{*suite.account(0)}, nil).Once()

	req := suite.checkoutRequest()
	override := dec(80)
	req.TotalAmount = &override

	result, err := suite.service.ProcessCheckout(ctx, suite.appointmentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.FinalAmount.Equal(dec(80)))
	suite.True(result.Commission.Amount.Equal(dec(8)))
}

func (suite *ReconciliationServiceTestSuite) TestProcessCheckout_UnknownPartnershipTypeIsAWarning() {
	ctx := context.Background()
	partner := suite.percentagePartner(20)
	partner.PartnershipType = "BARTER"

	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusCompleted), nil).Once()
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partnerID).Return(partner, nil).Once()
	suite.mockCatalogRepo.On("FindServiceByID", ctx, suite.serviceID).Return(suite.consultation(100), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.FinancialEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(0), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(100)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, suite.appointmentID, suite.checkoutRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "unknown partnership type")
	suite.True(result.Commission.Amount.IsZero())
	suite.Nil(result.CommissionEntry)
}

func (suite *ReconciliationServiceTestSuite) TestProcessCheckout_NoActiveAccountSkipsCommissionEntry() {
	ctx := context.Background()
	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusCompleted), nil).Once()
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partnerID).Return(suite.percentagePartner(20), nil).Once()
	suite.mockCatalogRepo.On("FindServiceByID", ctx, suite.serviceID).Return(suite.consultation(100), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.FinancialEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(0), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(100)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("ListActiveAccountsByCreation", ctx).Return([]domain.BankAccount{}, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, suite.appointmentID, suite.checkoutRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "no active bank account")
	suite.True(result.Commission.Amount.IsZero())
	suite.Nil(result.CommissionEntry)
}

func (suite *ReconciliationServiceTestSuite) TestCancelAppointmentEntries_ReversesPaidAndSyncsStatus() {
	ctx := context.Background()
	refType := domain.ReferenceAppointment
	paidDate := time.Now().UTC()
	income := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryIncome,
		Status:        domain.EntryPaid,
		Amount:        dec(100),
		BankAccountID: suite.accountID,
		ReferenceType: &refType,
		ReferenceID:   &suite.appointmentID,
		PaidDate:      &paidDate,
	}
	pendingExpense := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryExpense,
		Status:        domain.EntryPending,
		Amount:        dec(20),
		BankAccountID: suite.accountID,
		ReferenceType: &refType,
		ReferenceID:   &suite.appointmentID,
	}
	cancelledIncome := income
	cancelledIncome.Status = domain.EntryCancelled
	cancelledExpense := pendingExpense
	cancelledExpense.Status = domain.EntryCancelled

	suite.mockEntryRepo.On("FindEntriesByAppointment", ctx, suite.appointmentID).Return([]domain.FinancialEntry{income, pendingExpense}, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.FinancialEntry) bool {
		return e.Status == domain.EntryCancelled
	})).Return(nil).Twice()

	// Income was PAID, so its 100 comes back off the balance: 500 -> 400.
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(500), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(400)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	// Sync: all entries cancelled pulls the appointment back to IN_PROGRESS.
	checkOutAt := time.Now().UTC()
	completed := suite.appointment(domain.StatusCompleted)
	completed.CheckOutAt = &checkOutAt
	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(completed, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByAppointment", ctx, suite.appointmentID).Return([]domain.FinancialEntry{cancelledIncome, cancelledExpense}, nil).Once()
	suite.mockApptRepo.On("UpdateAppointment", ctx, mock.MatchedBy(func(a domain.Appointment) bool {
		return a.Status == domain.StatusInProgress && a.CheckOutAt == nil
	})).Return(nil).Once()

	result, err := suite.service.CancelAppointmentEntries(ctx, suite.appointmentID, "patient dispute", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.CancelledCount)
	suite.Equal(0, result.FailedCount)
	suite.True(result.TotalReversed.Equal(dec(100)))
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockApptRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCancelAppointmentEntries_ContinuesPastFailures() {
	ctx := context.Background()
	refType := domain.ReferenceAppointment
	bad := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryIncome,
		Status:        domain.EntryPending,
		Amount:        dec(50),
		BankAccountID: suite.accountID,
		ReferenceType: &refType,
		ReferenceID:   &suite.appointmentID,
	}
	good := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryExpense,
		Status:        domain.EntryPending,
		Amount:        dec(10),
		BankAccountID: suite.accountID,
		ReferenceType: &refType,
		ReferenceID:   &suite.appointmentID,
	}

	suite.mockEntryRepo.On("FindEntriesByAppointment", ctx, suite.appointmentID).Return([]domain.FinancialEntry{bad, good}, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.FinancialEntry) bool {
		return e.EntryID == bad.EntryID
	})).Return(assert.AnError).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.FinancialEntry) bool {
		return e.EntryID == good.EntryID
	})).Return(nil).Once()

	// Sync still runs after the sweep.
	inProgress := suite.appointment(domain.StatusInProgress)
	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(inProgress, nil).Once()
	cancelled := good
	cancelled.Status = domain.EntryCancelled
	suite.mockEntryRepo.On("FindEntriesByAppointment", ctx, suite.appointmentID).Return([]domain.FinancialEntry{bad, cancelled}, nil).Once()

	result, err := suite.service.CancelAppointmentEntries(ctx, suite.appointmentID, "cleanup", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.CancelledCount)
	suite.Equal(1, result.FailedCount)
	suite.True(result.TotalReversed.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestSyncAppointmentStatus_PaidEntryCompletesAppointment() {
	ctx := context.Background()
	refType := domain.ReferenceAppointment
	paid := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryIncome,
		Status:        domain.EntryPaid,
		Amount:        dec(100),
		BankAccountID: suite.accountID,
		ReferenceType: &refType,
		ReferenceID:   &suite.appointmentID,
	}

	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusInProgress), nil).Once()
	suite.mockEntryRepo.On("FindEntriesByAppointment", ctx, suite.appointmentID).Return([]domain.FinancialEntry{paid}, nil).Once()
	suite.mockApptRepo.On("UpdateAppointment", ctx, mock.MatchedBy(func(a domain.Appointment) bool {
		return a.Status == domain.StatusCompleted && a.CheckOutAt != nil
	})).Return(nil).Once()

	err := suite.service.SyncAppointmentStatus(ctx, suite.appointmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockApptRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSyncAppointmentStatus_NoChangeIsNoOp() {
	ctx := context.Background()
	refType := domain.ReferenceAppointment
	pending := domain.FinancialEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryExpense,
		Status:        domain.EntryPending,
		Amount:        dec(20),
		BankAccountID: suite.accountID,
		ReferenceType: &refType,
		ReferenceID:   &suite.appointmentID,
	}

	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusInProgress), nil).Once()
	suite.mockEntryRepo.On("FindEntriesByAppointment", ctx, suite.appointmentID).Return([]domain.FinancialEntry{pending}, nil).Once()

	err := suite.service.SyncAppointmentStatus(ctx, suite.appointmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockApptRepo.AssertNotCalled(suite.T(), "UpdateAppointment", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSyncAppointmentStatus_NeverTouchesCancelledAppointments() {
	ctx := context.Background()
	suite.mockApptRepo.On("FindAppointmentByID", ctx, suite.appointmentID).Return(suite.appointment(domain.StatusCancelled), nil).Once()

	err := suite.service.SyncAppointmentStatus(ctx, suite.appointmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindEntriesByAppointment", mock.Anything, mock.Anything)
	suite.mockApptRepo.AssertNotCalled(suite.T(), "UpdateAppointment", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestMarkEntryPaid_SettlesAndAdjustsBalance() {
	ctx := context.Background()
	entryID := uuid.NewString()
	pending := &domain.FinancialEntry{
		EntryID:       entryID,
		Type:          domain.EntryExpense,
		Status:        domain.EntryPending,
		Amount:        dec(20),
		BankAccountID: suite.accountID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.FinancialEntry) bool {
		return e.Status == domain.EntryPaid && e.PaidDate != nil
	})).Return(nil).Once()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.account(500), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, suite.accountID, decEq(dec(480)), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.MarkEntryPaid(ctx, entryID, dto.PayEntryRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPaid, entry.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMarkEntryPaid_RejectsAlreadyPaid() {
	ctx := context.Background()
	entryID := uuid.NewString()
	paid := &domain.FinancialEntry{
		EntryID:       entryID,
		Type:          domain.EntryIncome,
		Status:        domain.EntryPaid,
		Amount:        dec(100),
		BankAccountID: suite.accountID,
	}
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(paid, nil).Once()

	_, err := suite.service.MarkEntryPaid(ctx, entryID, dto.PayEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestCancelEntry_PendingNeedsNoReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	pending := &domain.FinancialEntry{
		EntryID:       entryID,
		Type:          domain.EntryExpense,
		Status:        domain.EntryPending,
		Amount:        dec(20),
		BankAccountID: suite.accountID,
	}
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.FinancialEntry) bool {
		return e.Status == domain.EntryCancelled
	})).Return(nil).Once()

	entry, err := suite.service.CancelEntry(ctx, entryID, "duplicate", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryCancelled, entry.Status)
	suite.Contains(entry.Notes, "duplicate")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
