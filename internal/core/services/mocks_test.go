package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// --- Mock ShiftRepository ---

type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListShiftsByAgency(ctx context.Context, agencyID string, afterDate, afterCreated time.Time, limit int) ([]domain.Shift, error) {
	args := m.Called(ctx, agencyID, afterDate, afterCreated, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListOpenShiftsByAgency(ctx context.Context, agencyID string) ([]domain.Shift, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListAssignedDates(ctx context.Context, staffID string, statuses []domain.ShiftStatus) ([]time.Time, error) {
	args := m.Called(ctx, staffID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) ApplyTransition(ctx context.Context, shiftID string, expectedStatus domain.ShiftStatus, update domain.ShiftTransition) error {
	args := m.Called(ctx, shiftID, expectedStatus, update)
	return args.Error(0)
}

func (m *MockShiftRepository) ClaimShift(ctx context.Context, shiftID string, staffID string, entry domain.JourneyEntry, booking domain.Booking, now time.Time) error {
	args := m.Called(ctx, shiftID, staffID, entry, booking, now)
	return args.Error(0)
}

func (m *MockShiftRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockShiftRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockShiftRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock BookingRepository ---

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindBookingForShiftAndStaff(ctx context.Context, shiftID, staffID string) (*domain.Booking, error) {
	args := m.Called(ctx, shiftID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByStaff(ctx context.Context, staffID string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, staffID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, actorID string) error {
	args := m.Called(ctx, bookingID, status, actorID)
	return args.Error(0)
}

// --- Mock TimesheetRepository ---

type MockTimesheetRepository struct {
	mock.Mock
}

func (m *MockTimesheetRepository) FindTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	args := m.Called(ctx, timesheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindTimesheetForShiftAndStaff(ctx context.Context, shiftID, staffID string) (*domain.Timesheet, error) {
	args := m.Called(ctx, shiftID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) ListTimesheetsByStatus(ctx context.Context, agencyID string, status domain.TimesheetStatus, limit, offset int) ([]domain.Timesheet, error) {
	args := m.Called(ctx, agencyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) SaveTimesheet(ctx context.Context, timesheet domain.Timesheet) error {
	args := m.Called(ctx, timesheet)
	return args.Error(0)
}

func (m *MockTimesheetRepository) RecordClockOut(ctx context.Context, timesheet domain.Timesheet) error {
	args := m.Called(ctx, timesheet)
	return args.Error(0)
}

func (m *MockTimesheetRepository) UpdateApproval(ctx context.Context, timesheet domain.Timesheet) error {
	args := m.Called(ctx, timesheet)
	return args.Error(0)
}

func (m *MockTimesheetRepository) UpdateNonFinancial(ctx context.Context, timesheetID string, notes *string, staffSig, clientSig *bool, actorID string, now time.Time) error {
	args := m.Called(ctx, timesheetID, notes, staffSig, clientSig, actorID, now)
	return args.Error(0)
}

// --- Mock StaffRepository ---

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateGPSConsent(ctx context.Context, staffID string, consent bool, at time.Time, actorID string) error {
	args := m.Called(ctx, staffID, consent, at, actorID)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateAvailability(ctx context.Context, staffID string, availability domain.Availability, actorID string, now time.Time) error {
	args := m.Called(ctx, staffID, availability, actorID, now)
	return args.Error(0)
}

// --- Mock GeolocationSensor ---

type MockSensor struct {
	mock.Mock
}

func (m *MockSensor) CurrentLocation(ctx context.Context) (domain.LocationCapture, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LocationCapture), args.Error(1)
}

// --- Mock GeofenceValidator ---

type MockGeofence struct {
	mock.Mock
}

func (m *MockGeofence) Validate(ctx context.Context, location domain.LocationCapture, clientID string) (domain.GeofenceResult, error) {
	args := m.Called(ctx, location, clientID)
	return args.Get(0).(domain.GeofenceResult), args.Error(1)
}
