package services

import (
	"context"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// ClockSvcFacade captures one verified attendance event per shift per
// direction, rejecting duplicates, stale locations and out-of-geofence
// attempts. All guard and collaborator failures are typed apperrors values.
type ClockSvcFacade interface {
	// ClockIn acquires a location, validates the geofence, ensures a booking,
	// creates the draft timesheet and drives the shift to in_progress.
	ClockIn(ctx context.Context, shiftID, staffID string) (*domain.Timesheet, error)

	// ClockOut requires the confirmation token, enforces the minimum
	// duration, computes hours (capped at the scheduled duration, overtime
	// flagged), submits the timesheet and drives the shift to completed.
	// Validation runs asynchronously afterwards; its failure leaves the
	// timesheet submitted for manual review.
	ClockOut(ctx context.Context, timesheetID, staffID string, confirmed bool) (*domain.Timesheet, error)
}
