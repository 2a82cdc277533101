package pgsql

import (
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bookingRepo := newPgxBookingRepository(dbPool)
	shiftRepo := newPgxShiftRepository(dbPool, bookingRepo)
	timesheetRepo := newPgxTimesheetRepository(dbPool)
	staffRepo := newPgxStaffRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ShiftRepo:     shiftRepo,
		BookingRepo:   bookingRepo,
		TimesheetRepo: timesheetRepo,
		StaffRepo:     staffRepo,
	}
}
