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

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/pagination"
)

type ShiftLifecycleServiceTestSuite struct {
	suite.Suite
	mockShiftRepo   *MockShiftRepository
	mockBookingRepo *MockBookingRepository
	mockStaffRepo   *MockStaffRepository
	service         portssvc.ShiftLifecycleSvcFacade
	fixedNow        time.Time
}

func (suite *ShiftLifecycleServiceTestSuite) SetupTest() {
	suite.mockShiftRepo = new(MockShiftRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.fixedNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewShiftLifecycleService(
		suite.mockShiftRepo,
		suite.mockBookingRepo,
		suite.mockStaffRepo,
		services.WithLifecycleClock(func() time.Time { return suite.fixedNow }),
	)
}

func (suite *ShiftLifecycleServiceTestSuite) validCreateRequest() dto.CreateShiftRequest {
	return dto.CreateShiftRequest{
		AgencyID:      uuid.NewString(),
		ClientID:      uuid.NewString(),
		RoleRequired:  "nurse",
		Date:          time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		StartTime:     "08:00",
		EndTime:       "20:00",
		DurationHours: decimal.NewFromInt(12),
		PayRate:       decimal.NewFromInt(20),
		ChargeRate:    decimal.NewFromInt(30),
	}
}

func (suite *ShiftLifecycleServiceTestSuite) TestCreateShift_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := suite.validCreateRequest()

	suite.mockShiftRepo.On("SaveShift", ctx, mock.MatchedBy(func(s domain.Shift) bool {
		return s.Status == domain.ShiftOpen &&
			s.AgencyID == req.AgencyID &&
			s.Urgency == domain.UrgencyNormal &&
			len(s.JourneyLog) == 1 &&
			s.JourneyLog[0].State == domain.ShiftOpen &&
			s.JourneyLog[0].Method == domain.MethodOperatorAssign &&
			s.JourneyLog[0].ActorID == actorID
	})).Return(nil).Once()

	shift, err := suite.service.CreateShift(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(shift)
	suite.Equal(domain.ShiftOpen, shift.Status)
	suite.NotEmpty(shift.ShiftID)
	suite.True(shift.JourneyLog.ValidPath())
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftLifecycleServiceTestSuite) TestCreateShift_AIExtractionMethod() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Method = domain.MethodAIExtraction

	suite.mockShiftRepo.On("SaveShift", ctx, mock.MatchedBy(func(s domain.Shift) bool {
		return s.JourneyLog[0].Method == domain.MethodAIExtraction
	})).Return(nil).Once()

	_, err := suite.service.CreateShift(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftLifecycleServiceTestSuite) TestCreateShift_InvalidTime() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.StartTime = "25:00"

	shift, err := suite.service.CreateShift(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "SaveShift")
}

func (suite *ShiftLifecycleServiceTestSuite) TestCreateShift_NonPositiveDuration() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.DurationHours = decimal.Zero

	_, err := suite.service.CreateShift(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShiftLifecycleServiceTestSuite) TestAssignShift_Success() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()
	actorID := uuid.NewString()
	agencyID := uuid.NewString()

	openShift := &domain.Shift{ShiftID: shiftID, AgencyID: agencyID, RoleRequired: "nurse", Status: domain.ShiftOpen}
	staff := &domain.Staff{StaffID: staffID, AgencyID: agencyID, Role: "nurse", Active: true}
	assignedShift := &domain.Shift{ShiftID: shiftID, AgencyID: agencyID, Status: domain.ShiftAssigned, AssignedStaffID: &staffID}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(openShift, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, staffID).Return(staff, nil).Once()
	suite.mockShiftRepo.On("ApplyTransition", ctx, shiftID, domain.ShiftOpen, mock.MatchedBy(func(t domain.ShiftTransition) bool {
		return t.Status == domain.ShiftAssigned &&
			t.AssignedStaffID != nil && *t.AssignedStaffID == staffID &&
			t.Entry.State == domain.ShiftAssigned &&
			t.Entry.Method == domain.MethodOperatorAssign
	})).Return(nil).Once()
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(assignedShift, nil).Once()

	shift, err := suite.service.AssignShift(ctx, shiftID, staffID, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftAssigned, shift.Status)
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftLifecycleServiceTestSuite) TestAssignShift_AgencyMismatch() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()

	openShift := &domain.Shift{ShiftID: shiftID, AgencyID: "agency-a", RoleRequired: "nurse", Status: domain.ShiftOpen}
	staff := &domain.Staff{StaffID: staffID, AgencyID: "agency-b", Role: "nurse", Active: true}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(openShift, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, staffID).Return(staff, nil).Once()

	shift, err := suite.service.AssignShift(ctx, shiftID, staffID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "ApplyTransition")
}

func (suite *ShiftLifecycleServiceTestSuite) TestAssignShift_RoleMismatch() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()
	agencyID := uuid.NewString()

	openShift := &domain.Shift{ShiftID: shiftID, AgencyID: agencyID, RoleRequired: "nurse", Status: domain.ShiftOpen}
	staff := &domain.Staff{StaffID: staffID, AgencyID: agencyID, Role: "carer", Active: true}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(openShift, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, staffID).Return(staff, nil).Once()

	_, err := suite.service.AssignShift(ctx, shiftID, staffID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShiftLifecycleServiceTestSuite) TestAssignShift_LostRace() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()
	agencyID := uuid.NewString()

	openShift := &domain.Shift{ShiftID: shiftID, AgencyID: agencyID, RoleRequired: "nurse", Status: domain.ShiftOpen}
	staff := &domain.Staff{StaffID: staffID, AgencyID: agencyID, Role: "nurse", Active: true}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(openShift, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, staffID).Return(staff, nil).Once()
	suite.mockShiftRepo.On("ApplyTransition", ctx, shiftID, domain.ShiftOpen, mock.AnythingOfType("domain.ShiftTransition")).
		Return(apperrors.ErrInvalidTransition).Once()

	shift, err := suite.service.AssignShift(ctx, shiftID, staffID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ShiftLifecycleServiceTestSuite) TestConfirmShift_Success() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()
	actorID := uuid.NewString()

	assigned := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftAssigned, AssignedStaffID: &staffID}
	confirmed := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftConfirmed, AssignedStaffID: &staffID}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(assigned, nil).Once()
	suite.mockShiftRepo.On("ApplyTransition", ctx, shiftID, domain.ShiftAssigned, mock.MatchedBy(func(t domain.ShiftTransition) bool {
		return t.Status == domain.ShiftConfirmed && t.Entry.Method == domain.MethodStaffConfirm
	})).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingForShiftAndStaff", ctx, shiftID, staffID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(confirmed, nil).Once()

	shift, err := suite.service.ConfirmShift(ctx, shiftID, actorID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftConfirmed, shift.Status)
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftLifecycleServiceTestSuite) TestConfirmShift_UpdatesExistingBooking() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()
	actorID := uuid.NewString()
	bookingID := uuid.NewString()

	assigned := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftAssigned, AssignedStaffID: &staffID}
	booking := &domain.Booking{BookingID: bookingID, ShiftID: shiftID, StaffID: staffID, Status: domain.BookingConfirmed}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(assigned, nil).Once()
	suite.mockShiftRepo.On("ApplyTransition", ctx, shiftID, domain.ShiftAssigned, mock.AnythingOfType("domain.ShiftTransition")).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingForShiftAndStaff", ctx, shiftID, staffID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatus", ctx, bookingID, domain.BookingStaffConfirmed, actorID).Return(nil).Once()
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(assigned, nil).Once()

	_, err := suite.service.ConfirmShift(ctx, shiftID, actorID, "phone")

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *ShiftLifecycleServiceTestSuite) TestConfirmShift_NoAssignedStaff() {
	ctx := context.Background()
	shiftID := uuid.NewString()

	open := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftOpen}
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(open, nil).Once()

	shift, err := suite.service.ConfirmShift(ctx, shiftID, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShiftLifecycleServiceTestSuite) TestCancelShift_Success() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	staffID := uuid.NewString()
	actorID := uuid.NewString()

	confirmed := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftConfirmed, AssignedStaffID: &staffID}
	cancelled := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftCancelled, AssignedStaffID: &staffID, CancellationReason: "client closed the ward"}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(confirmed, nil).Once()
	suite.mockShiftRepo.On("ApplyTransition", ctx, shiftID, domain.ShiftConfirmed, mock.MatchedBy(func(t domain.ShiftTransition) bool {
		return t.Status == domain.ShiftCancelled &&
			t.CancellationReason == "client closed the ward" &&
			t.Entry.Notes == "client closed the ward" &&
			t.Entry.Method == domain.MethodOperatorCancel
	})).Return(nil).Once()
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(cancelled, nil).Once()

	shift, err := suite.service.CancelShift(ctx, shiftID, "client closed the ward", actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftCancelled, shift.Status)
	// Staff reference survives cancellation for audit.
	suite.NotNil(shift.AssignedStaffID)
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftLifecycleServiceTestSuite) TestCancelShift_ReasonRequired() {
	ctx := context.Background()

	shift, err := suite.service.CancelShift(ctx, uuid.NewString(), "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "FindShiftByID")
}

func (suite *ShiftLifecycleServiceTestSuite) TestCancelShift_AlreadyCompleted() {
	ctx := context.Background()
	shiftID := uuid.NewString()

	completed := &domain.Shift{ShiftID: shiftID, Status: domain.ShiftCompleted}
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(completed, nil).Once()

	_, err := suite.service.CancelShift(ctx, shiftID, "late cancellation", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ShiftLifecycleServiceTestSuite) TestBeginShift_FromConfirmed() {
	ctx := context.Background()
	staffID := uuid.NewString()
	shift := &domain.Shift{ShiftID: uuid.NewString(), Status: domain.ShiftConfirmed, AssignedStaffID: &staffID}

	suite.mockShiftRepo.On("ApplyTransition", ctx, shift.ShiftID, domain.ShiftConfirmed, mock.MatchedBy(func(t domain.ShiftTransition) bool {
		return t.Status == domain.ShiftInProgress && t.ShiftStartedAt != nil && t.Entry.Method == domain.MethodAppClockIn
	})).Return(nil).Once()

	err := suite.service.BeginShift(ctx, shift, staffID)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftInProgress, shift.Status)
	suite.NotNil(shift.ShiftStartedAt)
	suite.Equal(domain.ShiftInProgress, shift.JourneyLog.CurrentState())
}

func (suite *ShiftLifecycleServiceTestSuite) TestBeginShift_FromAssignedTolerated() {
	ctx := context.Background()
	staffID := uuid.NewString()
	shift := &domain.Shift{ShiftID: uuid.NewString(), Status: domain.ShiftAssigned, AssignedStaffID: &staffID}

	suite.mockShiftRepo.On("ApplyTransition", ctx, shift.ShiftID, domain.ShiftAssigned, mock.AnythingOfType("domain.ShiftTransition")).Return(nil).Once()

	err := suite.service.BeginShift(ctx, shift, staffID)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftInProgress, shift.Status)
}

func (suite *ShiftLifecycleServiceTestSuite) TestBeginShift_FromOpenRejected() {
	ctx := context.Background()
	shift := &domain.Shift{ShiftID: uuid.NewString(), Status: domain.ShiftOpen}

	err := suite.service.BeginShift(ctx, shift, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Equal(domain.ShiftOpen, shift.Status)
}

func (suite *ShiftLifecycleServiceTestSuite) TestCompleteShift_EngagesFinancialLock() {
	ctx := context.Background()
	staffID := uuid.NewString()
	shift := &domain.Shift{ShiftID: uuid.NewString(), Status: domain.ShiftInProgress, AssignedStaffID: &staffID}

	suite.mockShiftRepo.On("ApplyTransition", ctx, shift.ShiftID, domain.ShiftInProgress, mock.MatchedBy(func(t domain.ShiftTransition) bool {
		return t.Status == domain.ShiftCompleted && t.FinancialLocked && t.ShiftEndedAt != nil
	})).Return(nil).Once()

	err := suite.service.CompleteShift(ctx, shift, staffID)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftCompleted, shift.Status)
	suite.True(shift.FinancialLocked)
	suite.NotNil(shift.ShiftEndedAt)
}

func (suite *ShiftLifecycleServiceTestSuite) TestCompleteShift_NotInProgress() {
	ctx := context.Background()
	shift := &domain.Shift{ShiftID: uuid.NewString(), Status: domain.ShiftConfirmed}

	err := suite.service.CompleteShift(ctx, shift, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.False(shift.FinancialLocked)
}

func (suite *ShiftLifecycleServiceTestSuite) TestListShifts_Pagination() {
	ctx := context.Background()
	agencyID := uuid.NewString()

	shifts := make([]domain.Shift, 3)
	for i := range shifts {
		shifts[i] = domain.Shift{
			ShiftID: uuid.NewString(),
			Date:    suite.fixedNow.AddDate(0, 0, -i),
			AuditFields: domain.AuditFields{
				CreatedAt: suite.fixedNow.Add(-time.Duration(i) * time.Hour),
			},
		}
	}

	suite.mockShiftRepo.On("ListShiftsByAgency", ctx, agencyID, time.Time{}, time.Time{}, 3).Return(shifts, nil).Once()

	page, nextToken, err := suite.service.ListShifts(ctx, agencyID, "", 2)

	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.NotEmpty(nextToken)

	date, created, err := pagination.DecodeToken(nextToken)
	suite.Require().NoError(err)
	suite.True(date.Equal(page[1].Date))
	suite.True(created.Equal(page[1].CreatedAt))
}

func (suite *ShiftLifecycleServiceTestSuite) TestListShifts_LastPage() {
	ctx := context.Background()
	agencyID := uuid.NewString()
	shifts := []domain.Shift{{ShiftID: uuid.NewString()}}

	suite.mockShiftRepo.On("ListShiftsByAgency", ctx, agencyID, time.Time{}, time.Time{}, 21).Return(shifts, nil).Once()

	page, nextToken, err := suite.service.ListShifts(ctx, agencyID, "", 0)

	suite.Require().NoError(err)
	suite.Len(page, 1)
	suite.Empty(nextToken)
}

func (suite *ShiftLifecycleServiceTestSuite) TestListShifts_BadToken() {
	ctx := context.Background()

	page, nextToken, err := suite.service.ListShifts(ctx, uuid.NewString(), "not-a-token", 10)

	suite.Require().Error(err)
	suite.Nil(page)
	suite.Empty(nextToken)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "ListShiftsByAgency")
}

func (suite *ShiftLifecycleServiceTestSuite) TestGetShiftByID_NotFound() {
	ctx := context.Background()
	shiftID := uuid.NewString()

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(nil, apperrors.ErrNotFound).Once()

	shift, err := suite.service.GetShiftByID(ctx, shiftID)

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ShiftLifecycleServiceTestSuite) TestCreateShift_SaveError() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	expectedErr := assert.AnError

	suite.mockShiftRepo.On("SaveShift", ctx, mock.AnythingOfType("domain.Shift")).Return(expectedErr).Once()

	shift, err := suite.service.CreateShift(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, expectedErr)
}

func TestShiftLifecycleService(t *testing.T) {
	suite.Run(t, new(ShiftLifecycleServiceTestSuite))
}
