package services

import (
	"context"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// GeolocationSensor acquires the current GPS fix for the acting staff member.
// Failures are *apperrors.LocationError carrying the specific cause
// (permission denied / unavailable / timeout / unknown).
type GeolocationSensor interface {
	CurrentLocation(ctx context.Context) (domain.LocationCapture, error)
}

// GeofenceValidator checks a location against a client site's geofence.
// Distance computation happens on the other side of this contract; the core
// only consumes the result.
type GeofenceValidator interface {
	Validate(ctx context.Context, location domain.LocationCapture, clientID string) (domain.GeofenceResult, error)
}

// NotificationDispatcher delivers fire-and-forget events to downstream
// collaborators (care home verification, SMS, digests). Implementations log
// failures and never propagate them.
type NotificationDispatcher interface {
	Notify(ctx context.Context, eventType string, payload map[string]any)
}

// Notification event types dispatched by the coordination core.
const (
	EventStaffClockedIn     = "staff_clocked_in"
	EventStaffClockedOut    = "staff_clocked_out"
	EventShiftAssigned      = "shift_assigned"
	EventShiftCancelled     = "shift_cancelled"
	EventMarketplaceAccept  = "marketplace_shift_accepted"
	EventTimesheetApproved  = "timesheet_auto_approved"
	EventTimesheetForReview = "timesheet_needs_review"
)
