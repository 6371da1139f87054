package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/handlers"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
	"github.com/praxisdesk/clinic_management_app/pkg/config"
)

// --- Mock AvailabilityService ---
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

var _ portssvc.AvailabilitySvcFacade = (*MockAvailabilityService)(nil)

// --- Test Suite ---
type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockAvailabilityService *MockAvailabilityService
}

func (suite *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockAvailabilityService = new(MockAvailabilityService)

	// Routes not exercised here stay nil; registration does not call them.
	services := &portssvc.ServiceContainer{
		Availability: suite.mockAvailabilityService,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *AvailabilityHandlerTestSuite) TestCheckAvailability_Available() {
	suite.mockAvailabilityService.On("CheckAvailability",
		mock.Anything,
		mock.MatchedBy(func(q dto.AvailabilityQuery) bool {
			return q.PartnerID == "partner-1" && q.StartTime == "09:00" && q.EndTime == "10:00"
		}),
	).Return(&domain.AvailabilityResult{Available: true, Conflicts: []domain.ConflictDetail{}}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/availability?partnerID=partner-1&date=2026-01-05&startTime=09:00&endTime=10:00", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AvailabilityResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Available)
	suite.Empty(body.Conflicts)

	suite.mockAvailabilityService.AssertExpectations(suite.T())
}

func (suite *AvailabilityHandlerTestSuite) TestCheckAvailability_ConflictsAndSuggestions() {
	result := &domain.AvailabilityResult{
		Available: false,
		Conflicts: []domain.ConflictDetail{
			{Kind: domain.ConflictAppointment, Reason: "partner already booked from 09:00 to 10:00", Start: "09:00", End: "10:00"},
		},
		SuggestedTimes: []string{"10:00-11:00", "11:00-12:00"},
	}
	suite.mockAvailabilityService.On("CheckAvailability", mock.Anything, mock.Anything).Return(result, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/availability?partnerID=partner-1&date=2026-01-05&startTime=09:30&endTime=10:30", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AvailabilityResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.Available)
	suite.Len(body.Conflicts, 1)
	suite.Equal(domain.ConflictAppointment, body.Conflicts[0].Kind)
	suite.Equal([]string{"10:00-11:00", "11:00-12:00"}, body.SuggestedTimes)
}

func (suite *AvailabilityHandlerTestSuite) TestCheckAvailability_MissingPartnerIDIsBadRequest() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/availability?date=2026-01-05&startTime=09:00&endTime=10:00", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAvailabilityService.AssertNotCalled(suite.T(), "CheckAvailability")
}

func (suite *AvailabilityHandlerTestSuite) TestCheckAvailability_UnpaddedClockIsBadRequest() {
	// "9:00" fails the hhmm binding tag; clock strings must be zero padded.
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/availability?partnerID=partner-1&date=2026-01-05&startTime=9:00&endTime=10:00", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAvailabilityService.AssertNotCalled(suite.T(), "CheckAvailability")
}

func (suite *AvailabilityHandlerTestSuite) TestGetDaySchedule_Success() {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	breakStart, breakEnd := "12:00", "13:00"
	schedule := &domain.DaySchedule{
		PartnerID:  "partner-1",
		Working:    true,
		StartTime:  "09:00",
		EndTime:    "17:00",
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
		Booked: []domain.BookedSlot{
			{AppointmentID: "appt-1", StartTime: "10:00", EndTime: "11:00", Status: domain.StatusScheduled},
		},
	}
	suite.mockAvailabilityService.On("GetDaySchedule", mock.Anything, "partner-1", date).Return(schedule, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/partners/partner-1/schedule?date=2026-01-05", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.DayScheduleResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Working)
	suite.Equal("09:00", body.StartTime)
	suite.Len(body.Booked, 1)
	suite.Equal("appt-1", body.Booked[0].AppointmentID)

	suite.mockAvailabilityService.AssertExpectations(suite.T())
}

func (suite *AvailabilityHandlerTestSuite) TestGetDaySchedule_MalformedDateIsBadRequest() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/partners/partner-1/schedule?date=05-01-2026", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAvailabilityService.AssertNotCalled(suite.T(), "GetDaySchedule")
}

func TestAvailabilityHandler(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}
