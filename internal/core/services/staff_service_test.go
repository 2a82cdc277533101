package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/services"
)

type StaffServiceTestSuite struct {
	suite.Suite
	mockStaffRepo *MockStaffRepository
	service       portssvc.StaffSvcFacade
	fixedNow      time.Time

	staffID string
	userID  string
}

func (suite *StaffServiceTestSuite) SetupTest() {
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.fixedNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	suite.staffID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.service = services.NewStaffService(
		suite.mockStaffRepo,
		services.WithStaffClock(func() time.Time { return suite.fixedNow }),
	)
}

func (suite *StaffServiceTestSuite) staff() *domain.Staff {
	return &domain.Staff{
		StaffID:  suite.staffID,
		UserID:   suite.userID,
		AgencyID: uuid.NewString(),
		Role:     "nurse",
		Active:   true,
	}
}

func (suite *StaffServiceTestSuite) TestGrantGPSConsent_BySelf() {
	ctx := context.Background()
	staff := suite.staff()
	consented := *staff
	consented.GPSConsent = true
	consented.GPSConsentAt = &suite.fixedNow

	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(staff, nil).Once()
	suite.mockStaffRepo.On("UpdateGPSConsent", ctx, suite.staffID, true, suite.fixedNow, suite.userID).Return(nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(&consented, nil).Once()

	result, err := suite.service.GrantGPSConsent(ctx, suite.staffID, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.GPSConsent)
	suite.Require().NotNil(result.GPSConsentAt)
	suite.Equal(suite.fixedNow, *result.GPSConsentAt)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestGrantGPSConsent_ByAnotherUser() {
	ctx := context.Background()

	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(suite.staff(), nil).Once()

	result, err := suite.service.GrantGPSConsent(ctx, suite.staffID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "UpdateGPSConsent")
}

func (suite *StaffServiceTestSuite) TestSetAvailability_Success() {
	ctx := context.Background()
	availability := domain.Availability{
		"monday":  {domain.PeriodDay},
		"tuesday": {domain.PeriodDay, domain.PeriodNight},
	}
	staff := suite.staff()
	updated := *staff
	updated.Availability = availability

	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(staff, nil).Once()
	suite.mockStaffRepo.On("UpdateAvailability", ctx, suite.staffID, availability, suite.userID, suite.fixedNow).Return(nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(&updated, nil).Once()

	result, err := suite.service.SetAvailability(ctx, suite.staffID, availability, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(availability, result.Availability)
}

func (suite *StaffServiceTestSuite) TestSetAvailability_UnknownWeekday() {
	ctx := context.Background()
	availability := domain.Availability{"funday": {domain.PeriodDay}}

	result, err := suite.service.SetAvailability(ctx, suite.staffID, availability, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "UpdateAvailability")
}

func (suite *StaffServiceTestSuite) TestSetAvailability_UnknownPeriod() {
	ctx := context.Background()
	availability := domain.Availability{"monday": {domain.ShiftPeriod("evening")}}

	result, err := suite.service.SetAvailability(ctx, suite.staffID, availability, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "UpdateAvailability")
}

func (suite *StaffServiceTestSuite) TestGetStaffByUserID_Passthrough() {
	ctx := context.Background()
	staff := suite.staff()

	suite.mockStaffRepo.On("FindStaffByUserID", ctx, suite.userID).Return(staff, nil).Once()

	result, err := suite.service.GetStaffByUserID(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.staffID, result.StaffID)
}

func TestStaffService(t *testing.T) {
	suite.Run(t, new(StaffServiceTestSuite))
}
