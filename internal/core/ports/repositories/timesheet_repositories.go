package repositories

import (
	"context"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// TimesheetReader defines read operations for timesheets.
type TimesheetReader interface {
	FindTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error)
	// FindTimesheetForShiftAndStaff returns the timesheet for the pair, or
	// apperrors.ErrNotFound. At most one exists per pair.
	FindTimesheetForShiftAndStaff(ctx context.Context, shiftID, staffID string) (*domain.Timesheet, error)
	ListTimesheetsByStatus(ctx context.Context, agencyID string, status domain.TimesheetStatus, limit, offset int) ([]domain.Timesheet, error)
}

// TimesheetWriter defines write operations for timesheets. The clock-out
// update is guarded in the statement itself (clock_out_time IS NULL) so two
// racing clock-outs cannot both land.
type TimesheetWriter interface {
	SaveTimesheet(ctx context.Context, timesheet domain.Timesheet) error

	// RecordClockOut writes the clock-out fields and flips status to
	// submitted, only if no clock-out is recorded yet. Zero rows affected
	// surfaces as apperrors.ErrAlreadyClockedOut.
	RecordClockOut(ctx context.Context, timesheet domain.Timesheet) error

	// UpdateApproval sets status/auto-approval/rejection fields.
	UpdateApproval(ctx context.Context, timesheet domain.Timesheet) error

	// UpdateNonFinancial writes notes and signature-presence flags. Financial
	// columns are deliberately absent from the statement.
	UpdateNonFinancial(ctx context.Context, timesheetID string, notes *string, staffSig, clientSig *bool, actorID string, now time.Time) error
}

// TimesheetRepository combines timesheet persistence operations.
type TimesheetRepository interface {
	TimesheetReader
	TimesheetWriter
}
