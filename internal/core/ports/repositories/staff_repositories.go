package repositories

import (
	"context"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// StaffReader defines read operations for staff profiles.
type StaffReader interface {
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
	FindStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error)
}

// StaffWriter defines the staff mutations owned by this core.
type StaffWriter interface {
	SaveStaff(ctx context.Context, staff domain.Staff) error
	UpdateGPSConsent(ctx context.Context, staffID string, consent bool, at time.Time, actorID string) error
	UpdateAvailability(ctx context.Context, staffID string, availability domain.Availability, actorID string, now time.Time) error
}

// StaffRepository combines staff persistence operations.
type StaffRepository interface {
	StaffReader
	StaffWriter
}
