package repositories

import (
	"context"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// ShiftReader defines read operations for shifts.
type ShiftReader interface {
	FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)
	// ListShiftsByAgency returns shifts for an agency ordered by (date, created_at)
	// descending, starting after the cursor position when afterDate/afterCreated
	// are non-zero.
	ListShiftsByAgency(ctx context.Context, agencyID string, afterDate, afterCreated time.Time, limit int) ([]domain.Shift, error)
	// ListOpenShiftsByAgency returns open, unassigned shifts for an agency,
	// ordered by date descending (the marketplace preserves this order).
	ListOpenShiftsByAgency(ctx context.Context, agencyID string) ([]domain.Shift, error)
	// ListAssignedDates returns the dates on which the staff member already has
	// a shift in the given statuses (the double-booking guard input).
	ListAssignedDates(ctx context.Context, staffID string, statuses []domain.ShiftStatus) ([]time.Time, error)
}

// ShiftWriter defines write operations for shifts. All status mutations flow
// through ApplyTransition or ClaimShift so a transition and its journey entry
// are a single write.
type ShiftWriter interface {
	SaveShift(ctx context.Context, shift domain.Shift) error

	// ApplyTransition atomically moves a shift from expectedStatus to
	// update.Status and appends the journey entry. Zero rows affected means
	// the guard no longer held; implementations return
	// apperrors.ErrInvalidTransition in that case and write nothing.
	ApplyTransition(ctx context.Context, shiftID string, expectedStatus domain.ShiftStatus, update domain.ShiftTransition) error

	// ClaimShift assigns an open, unassigned shift to the staff member, moves
	// it to confirmed with the journey entry appended, and inserts the booking
	// for the pair. All writes land in one transaction. Zero rows affected on
	// the claim means someone else got there first; implementations return
	// apperrors.ErrShiftAlreadyClaimed and nothing is committed.
	ClaimShift(ctx context.Context, shiftID string, staffID string, entry domain.JourneyEntry, booking domain.Booking, now time.Time) error
}

// ShiftRepository combines shift persistence operations.
type ShiftRepository interface {
	ShiftReader
	ShiftWriter
}

// ShiftRepositoryWithTx adds transaction management for multi-entity writes.
type ShiftRepositoryWithTx interface {
	ShiftRepository
	TransactionManager
}
