package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/scheduling"
)

// ClockSettings carries the tunable windows of the clock coordinator.
type ClockSettings struct {
	// DebounceWindow suppresses repeat attempts for the same shift, staff and
	// direction within this duration of a finished attempt.
	DebounceWindow time.Duration
	// EarlyClockInWindow is how far before the scheduled start clock-in opens.
	EarlyClockInWindow time.Duration
	// MinShiftDuration is the minimum time between clock-in and clock-out.
	MinShiftDuration time.Duration
}

// clockGuard serializes clock attempts per (shift, staff, direction) key.
// One attempt may be in flight per key, and a finished attempt shadows the
// key for the debounce window.
type clockGuard struct {
	mu       sync.Mutex
	inflight map[string]bool
	last     map[string]time.Time
	window   time.Duration
}

func newClockGuard(window time.Duration) *clockGuard {
	return &clockGuard{
		inflight: make(map[string]bool),
		last:     make(map[string]time.Time),
		window:   window,
	}
}

// tryAcquire reserves the key. Returns false when an attempt is in flight or
// the debounce window since the previous attempt has not elapsed.
func (g *clockGuard) tryAcquire(key string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[key] {
		return false
	}
	if last, ok := g.last[key]; ok && now.Sub(last) < g.window {
		return false
	}
	g.inflight[key] = true
	return true
}

// release frees the key and starts its debounce window.
func (g *clockGuard) release(key string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
	g.last[key] = now
}

// clockService coordinates GPS-verified clock-in and clock-out. Each direction
// is an at-most-once effect per (shift, staff): the in-process guard absorbs
// rapid duplicates and the database constraints backstop anything that slips
// past it across instances.
type clockService struct {
	BaseService
	shiftRepo     portsrepo.ShiftRepositoryWithTx
	bookingRepo   portsrepo.BookingRepository
	timesheetRepo portsrepo.TimesheetRepository
	staffRepo     portsrepo.StaffRepository
	lifecycle     portssvc.ShiftLifecycleSvcFacade
	sensor        portssvc.GeolocationSensor
	geofence      portssvc.GeofenceValidator
	validation    portssvc.TimesheetValidationSvcFacade
	dispatcher    portssvc.NotificationDispatcher
	settings      ClockSettings
	guard         *clockGuard
	now           func() time.Time
}

// ClockOption configures optional dependencies of the clock service.
type ClockOption func(*clockService)

// WithClockDispatcher sets the notification dispatcher.
func WithClockDispatcher(d portssvc.NotificationDispatcher) ClockOption {
	return func(s *clockService) { s.dispatcher = d }
}

// WithClockValidation sets the timesheet validation service invoked after
// clock-out.
func WithClockValidation(v portssvc.TimesheetValidationSvcFacade) ClockOption {
	return func(s *clockService) { s.validation = v }
}

// WithClockClock overrides the time source, for tests.
func WithClockClock(now func() time.Time) ClockOption {
	return func(s *clockService) { s.now = now }
}

// NewClockService creates the clock coordinator.
func NewClockService(
	shiftRepo portsrepo.ShiftRepositoryWithTx,
	bookingRepo portsrepo.BookingRepository,
	timesheetRepo portsrepo.TimesheetRepository,
	staffRepo portsrepo.StaffRepository,
	lifecycle portssvc.ShiftLifecycleSvcFacade,
	sensor portssvc.GeolocationSensor,
	geofence portssvc.GeofenceValidator,
	settings ClockSettings,
	opts ...ClockOption,
) portssvc.ClockSvcFacade {
	if settings.DebounceWindow <= 0 {
		settings.DebounceWindow = 2 * time.Second
	}
	if settings.EarlyClockInWindow <= 0 {
		settings.EarlyClockInWindow = 15 * time.Minute
	}
	if settings.MinShiftDuration <= 0 {
		settings.MinShiftDuration = 15 * time.Minute
	}
	s := &clockService{
		shiftRepo:     shiftRepo,
		bookingRepo:   bookingRepo,
		timesheetRepo: timesheetRepo,
		staffRepo:     staffRepo,
		lifecycle:     lifecycle,
		sensor:        sensor,
		geofence:      geofence,
		settings:      settings,
		guard:         newClockGuard(settings.DebounceWindow),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ClockSvcFacade = (*clockService)(nil)

func (s *clockService) notify(ctx context.Context, eventType string, payload map[string]any) {
	if s.dispatcher == nil {
		return
	}
	go s.dispatcher.Notify(context.WithoutCancel(ctx), eventType, payload)
}

// ClockIn records verified arrival for the shift. On success the staff member
// holds a draft timesheet with the clock-in stamped and the shift is
// in_progress.
func (s *clockService) ClockIn(ctx context.Context, shiftID, staffID string) (*domain.Timesheet, error) {
	key := shiftID + "|" + staffID + "|in"
	if !s.guard.tryAcquire(key, s.now()) {
		return nil, fmt.Errorf("%w: a clock-in attempt for this shift just ran", apperrors.ErrAlreadyClockedIn)
	}
	defer func() { s.guard.release(key, s.now()) }()

	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	// Clocking in is a GPS-verified act; without consent there is nothing to
	// verify. Consent is granted once through the staff profile.
	if !staff.GPSConsent {
		return nil, fmt.Errorf("%w: staff %s", apperrors.ErrGPSConsentRequired, staffID)
	}
	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.Assigned() || *shift.AssignedStaffID != staffID {
		return nil, fmt.Errorf("%w: shift %s is not assigned to this staff member", apperrors.ErrForbidden, shiftID)
	}
	if !shift.Status.CanTransitionTo(domain.ShiftInProgress) {
		return nil, fmt.Errorf("%w: cannot clock in to a shift in status %s", apperrors.ErrInvalidTransition, shift.Status)
	}

	// First idempotency check: an existing clock-in wins.
	if existing, err := s.timesheetRepo.FindTimesheetForShiftAndStaff(ctx, shiftID, staffID); err == nil {
		if existing.ClockedIn() {
			return nil, fmt.Errorf("%w: shift %s", apperrors.ErrAlreadyClockedIn, shiftID)
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	shiftStart := scheduling.ShiftStart(shift.Date, shift.StartTime, time.UTC)
	if earliest := shiftStart.Add(-s.settings.EarlyClockInWindow); now.Before(earliest) {
		return nil, &apperrors.EarlyClockInError{Wait: earliest.Sub(now)}
	}

	// The geofence gate runs before any state is written.
	capture, err := s.sensor.CurrentLocation(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.geofence.Validate(ctx, capture, shift.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Geofence validation failed", "shift_id", shiftID)
		return nil, fmt.Errorf("geofence validation unavailable: %w", err)
	}
	if !result.Validated {
		return nil, &apperrors.GeofenceError{
			DistanceMeters: result.DistanceMeters,
			RadiusMeters:   result.GeofenceRadiusMeters,
			Message:        result.Message,
		}
	}

	booking, err := s.ensureBooking(ctx, shift, staffID, now)
	if err != nil {
		return nil, err
	}

	timesheet := domain.Timesheet{
		TimesheetID:     uuid.NewString(),
		AgencyID:        shift.AgencyID,
		BookingID:       booking.BookingID,
		ShiftID:         shiftID,
		StaffID:         staffID,
		ClientID:        shift.ClientID,
		ShiftDate:       shift.Date,
		ClockInTime:     &now,
		ClockInLocation: &capture,
		ScheduledHours:  shift.DurationHours,
		ActualStartTime: scheduling.RoundToHalfHour(now),
		PayRate:         shift.PayRate,
		ChargeRate:      shift.ChargeRate,
		Status:          domain.TimesheetDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     staffID,
			LastUpdatedAt: now,
			LastUpdatedBy: staffID,
		},
	}
	timesheet.GeofenceValidated = &result.Validated
	distance := result.DistanceMeters
	timesheet.GeofenceDistanceMeters = &distance

	if err := s.timesheetRepo.SaveTimesheet(ctx, timesheet); err != nil {
		// Second idempotency check: a concurrent clock-in from another
		// instance hit the unique constraint first.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: shift %s", apperrors.ErrAlreadyClockedIn, shiftID)
		}
		s.LogError(ctx, err, "Failed to save timesheet at clock-in", "shift_id", shiftID)
		return nil, err
	}

	if err := s.lifecycle.BeginShift(ctx, shift, staffID); err != nil {
		s.LogError(ctx, err, "Failed to start shift after clock-in", "shift_id", shiftID)
		return nil, err
	}

	s.LogInfo(ctx, "Clocked in", "shift_id", shiftID, "staff_id", staffID, "timesheet_id", timesheet.TimesheetID)
	s.notify(ctx, portssvc.EventStaffClockedIn, map[string]any{
		"shift_id":     shiftID,
		"staff_id":     staffID,
		"timesheet_id": timesheet.TimesheetID,
	})

	return &timesheet, nil
}

// ensureBooking returns the existing booking for the pair or creates one with
// the app_clock_in confirmation method. Clocking in is itself a confirmation.
func (s *clockService) ensureBooking(ctx context.Context, shift *domain.Shift, staffID string, now time.Time) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingForShiftAndStaff(ctx, shift.ShiftID, staffID)
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created := domain.Booking{
		BookingID:          uuid.NewString(),
		AgencyID:           shift.AgencyID,
		ShiftID:            shift.ShiftID,
		StaffID:            staffID,
		ClientID:           shift.ClientID,
		Status:             domain.BookingConfirmed,
		ConfirmationMethod: domain.ConfirmViaAppClockIn,
		BookingDate:        now,
		ShiftDate:          shift.Date,
		StartTime:          shift.StartTime,
		EndTime:            shift.EndTime,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     staffID,
			LastUpdatedAt: now,
			LastUpdatedBy: staffID,
		},
	}
	if err := s.bookingRepo.SaveBooking(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.bookingRepo.FindBookingForShiftAndStaff(ctx, shift.ShiftID, staffID)
		}
		return nil, err
	}
	return &created, nil
}

// ClockOut records verified departure, computes hours and amounts, submits the
// timesheet and completes the shift. Validation runs afterwards off the
// request path; its failure leaves the timesheet submitted for manual review.
func (s *clockService) ClockOut(ctx context.Context, timesheetID, staffID string, confirmed bool) (*domain.Timesheet, error) {
	if !confirmed {
		return nil, apperrors.ErrConfirmationRequired
	}

	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if timesheet.StaffID != staffID {
		return nil, fmt.Errorf("%w: timesheet %s belongs to another staff member", apperrors.ErrForbidden, timesheetID)
	}
	if !timesheet.ClockedIn() {
		return nil, fmt.Errorf("%w: no clock-in recorded on timesheet %s", apperrors.ErrValidation, timesheetID)
	}
	if timesheet.ClockedOut() {
		return nil, fmt.Errorf("%w: timesheet %s", apperrors.ErrAlreadyClockedOut, timesheetID)
	}

	key := timesheet.ShiftID + "|" + staffID + "|out"
	if !s.guard.tryAcquire(key, s.now()) {
		return nil, fmt.Errorf("%w: a clock-out attempt for this shift just ran", apperrors.ErrAlreadyClockedOut)
	}
	defer func() { s.guard.release(key, s.now()) }()

	now := s.now().UTC()
	worked := now.Sub(*timesheet.ClockInTime)
	if worked < s.settings.MinShiftDuration {
		return nil, fmt.Errorf("%w: %s worked, minimum is %s",
			apperrors.ErrMinimumDurationNotMet, worked.Round(time.Minute), s.settings.MinShiftDuration)
	}

	// Departure is verified the same way as arrival: a failed capture aborts
	// before anything is written, so a timesheet never carries a clock-out
	// without its location.
	capture, err := s.sensor.CurrentLocation(ctx)
	if err != nil {
		s.LogWarn(ctx, "Clock-out location unavailable", "timesheet_id", timesheetID, "error", err.Error())
		return nil, err
	}

	raw := scheduling.HoursBetween(*timesheet.ClockInTime, now)
	scheduled := timesheet.ScheduledHours
	total := raw
	overtime := decimal.Zero
	overtimeFlag := false
	if raw.GreaterThan(scheduled) && scheduled.IsPositive() {
		// Hours beyond the schedule are capped out of pay and flagged for
		// review instead of silently billed.
		total = scheduled
		overtime = raw.Sub(scheduled).Round(2)
		overtimeFlag = true
	}
	staffPay := total.Mul(timesheet.PayRate).Round(2)
	clientCharge := total.Mul(timesheet.ChargeRate).Round(2)

	updated := *timesheet
	updated.ClockOutTime = &now
	updated.ClockOutLocation = &capture
	updated.TotalHours = &total
	updated.RawTotalHours = &raw
	updated.OvertimeHours = &overtime
	updated.OvertimeFlag = overtimeFlag
	updated.ActualEndTime = scheduling.RoundToHalfHour(now)
	if updated.ActualStartTime == "" {
		updated.ActualStartTime = scheduling.RoundToHalfHour(*timesheet.ClockInTime)
	}
	updated.StaffPayAmount = staffPay
	updated.ClientChargeAmount = clientCharge
	updated.Status = domain.TimesheetSubmitted
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = staffID

	if err := s.timesheetRepo.RecordClockOut(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to record clock-out", "timesheet_id", timesheetID)
		return nil, err
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, timesheet.ShiftID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load shift after clock-out", "shift_id", timesheet.ShiftID)
	} else if err := s.lifecycle.CompleteShift(ctx, shift, staffID); err != nil {
		// The timesheet is already submitted; a completion failure (for
		// example an operator cancelled mid-shift) is logged, not unwound.
		s.LogError(ctx, err, "Failed to complete shift after clock-out", "shift_id", timesheet.ShiftID)
	}

	s.LogInfo(ctx, "Clocked out", "timesheet_id", timesheetID, "total_hours", total.String(), "overtime", overtimeFlag)
	s.notify(ctx, portssvc.EventStaffClockedOut, map[string]any{
		"shift_id":     timesheet.ShiftID,
		"staff_id":     staffID,
		"timesheet_id": timesheetID,
		"total_hours":  total.String(),
	})

	if s.validation != nil {
		bgCtx := context.WithoutCancel(ctx)
		go func() {
			if _, err := s.validation.ProcessSubmission(bgCtx, timesheetID); err != nil {
				// Left submitted; an operator will review it.
				s.LogWarn(bgCtx, "Timesheet validation did not complete", "timesheet_id", timesheetID, "error", err.Error())
			}
		}()
	}

	return s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
}
