package services

import (
	"context"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// MarketplaceShifts is the filtered marketplace view for one staff member.
// Urgent and critical shifts are surfaced separately from normal ones; within
// a tier the repository's date order is preserved.
type MarketplaceShifts struct {
	Urgent  []domain.Shift
	Regular []domain.Shift
}

// MarketplaceSvcFacade filters open shifts into the subset a staff member may
// accept, and performs self-acceptance.
type MarketplaceSvcFacade interface {
	// AvailableShifts applies the marketplace filter: open + unassigned, same
	// agency, matching role, no same-date assigned shift, and either operator
	// marketplace visibility or an availability match.
	AvailableShifts(ctx context.Context, staffID string) (*MarketplaceShifts, error)

	// AcceptShift claims an open shift for the staff member, jumping it to
	// confirmed in one atomic effect and creating the booking. Losing the
	// claim surfaces apperrors.ErrShiftAlreadyClaimed.
	AcceptShift(ctx context.Context, shiftID, staffID string) (*domain.Shift, error)

	// StaffBookings returns a page of the staff member's bookings, most recent
	// shift date first.
	StaffBookings(ctx context.Context, staffID string, limit, offset int) ([]domain.Booking, error)
}
