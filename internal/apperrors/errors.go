package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// Guard violations. These are caller errors: surfaced verbatim, never retried
// automatically.
var (
	// ErrInvalidTransition is returned when a shift status change is attempted
	// outside its guard. The shift is left unchanged.
	ErrInvalidTransition = errors.New("invalid shift status transition")

	// ErrAlreadyClockedIn is returned when a timesheet with a clock-in already
	// exists for the (shift, staff) pair.
	ErrAlreadyClockedIn = errors.New("already clocked in for this shift")

	// ErrAlreadyClockedOut is returned when the timesheet already carries a
	// clock-out time.
	ErrAlreadyClockedOut = errors.New("already clocked out of this shift")

	// ErrMinimumDurationNotMet is returned when clock-out is attempted less
	// than the minimum shift duration after clock-in.
	ErrMinimumDurationNotMet = errors.New("minimum shift duration not met")

	// ErrFinancialFieldsLocked is returned when a write attempts to change
	// hours or rate fields on a timesheet whose shift is financially locked.
	ErrFinancialFieldsLocked = errors.New("financial fields are locked")

	// ErrShiftAlreadyClaimed is returned when a marketplace acceptance loses
	// the conditional claim because another staff member got there first.
	ErrShiftAlreadyClaimed = errors.New("shift was just accepted by someone else")

	// ErrClockInTooEarly is returned when clock-in is attempted before the
	// allowed early window ahead of the scheduled start.
	ErrClockInTooEarly = errors.New("too early to clock in")

	// ErrConfirmationRequired is returned when clock-out is attempted without
	// the explicit confirmation token.
	ErrConfirmationRequired = errors.New("clock-out confirmation required")

	// ErrGPSConsentRequired is returned when clock-in is attempted by a staff
	// member who has not granted GPS consent.
	ErrGPSConsentRequired = errors.New("gps consent required before clocking in")
)

// LocationCause identifies why a location fix could not be acquired.
type LocationCause string

const (
	LocationPermissionDenied LocationCause = "permission_denied"
	LocationUnavailable      LocationCause = "unavailable"
	LocationTimeout          LocationCause = "timeout"
	LocationUnknown          LocationCause = "unknown"
)

// LocationError reports a failed location acquisition with its specific cause,
// so the caller can distinguish "enable GPS" from "try again".
type LocationError struct {
	Cause LocationCause
}

func (e *LocationError) Error() string {
	switch e.Cause {
	case LocationPermissionDenied:
		return "location permission denied"
	case LocationUnavailable:
		return "location unavailable"
	case LocationTimeout:
		return "location request timed out"
	default:
		return "unknown location error"
	}
}

// NewLocationError builds a LocationError for the given cause.
func NewLocationError(cause LocationCause) *LocationError {
	return &LocationError{Cause: cause}
}

// GeofenceError reports a rejected geofence validation. It carries the measured
// distance and the allowed radius so the user can be told how far off they are.
type GeofenceError struct {
	DistanceMeters decimal.Decimal
	RadiusMeters   decimal.Decimal
	Message        string
}

func (e *GeofenceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("outside geofence: %sm from site (allowed %sm)",
		e.DistanceMeters.StringFixed(0), e.RadiusMeters.StringFixed(0))
}

// EarlyClockInError wraps ErrClockInTooEarly with the remaining wait time.
type EarlyClockInError struct {
	Wait time.Duration
}

func (e *EarlyClockInError) Error() string {
	return fmt.Sprintf("too early to clock in, allowed in %s", e.Wait.Round(time.Minute))
}

func (e *EarlyClockInError) Unwrap() error { return ErrClockInTooEarly }

// AppError wraps an infrastructure failure with an HTTP-ish code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
