package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// BookingReader defines read operations for bookings.
type BookingReader interface {
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	// FindBookingForShiftAndStaff returns the active booking for the pair, or
	// apperrors.ErrNotFound.
	FindBookingForShiftAndStaff(ctx context.Context, shiftID, staffID string) (*domain.Booking, error)
	ListBookingsByStaff(ctx context.Context, staffID string, limit, offset int) ([]domain.Booking, error)
}

// BookingWriter defines write operations for bookings. Bookings are updated,
// never deleted; the (shift, staff) unique constraint backstops duplicates.
type BookingWriter interface {
	SaveBooking(ctx context.Context, booking domain.Booking) error
	// SaveBookingInTx inserts the booking within the caller's transaction, for
	// writes that must land together with a shift mutation.
	SaveBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, actorID string) error
}

// BookingRepository combines booking persistence operations.
type BookingRepository interface {
	BookingReader
	BookingWriter
}
