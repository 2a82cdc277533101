package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/models"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const timesheetColumns = `timesheet_id, agency_id, booking_id, shift_id, staff_id, client_id, shift_date,
	clock_in_time, clock_out_time, clock_in_location, clock_out_location,
	geofence_validated, geofence_distance_meters,
	scheduled_hours, total_hours, raw_total_hours, overtime_hours, overtime_flag,
	actual_start_time, actual_end_time,
	staff_signature_present, client_signature_present,
	pay_rate, charge_rate, staff_pay_amount, client_charge_amount,
	status, auto_approved, approved_by, approved_at, rejection_reason, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTimesheetRepository struct {
	pool *pgxpool.Pool
}

// newPgxTimesheetRepository creates a new repository for timesheet data.
func newPgxTimesheetRepository(pool *pgxpool.Pool) portsrepo.TimesheetRepository {
	return &PgxTimesheetRepository{pool: pool}
}

// Ensure PgxTimesheetRepository implements portsrepo.TimesheetRepository
var _ portsrepo.TimesheetRepository = (*PgxTimesheetRepository)(nil)

func scanTimesheetRow(row pgx.Row) (models.Timesheet, error) {
	var m models.Timesheet
	err := row.Scan(
		&m.TimesheetID,
		&m.AgencyID,
		&m.BookingID,
		&m.ShiftID,
		&m.StaffID,
		&m.ClientID,
		&m.ShiftDate,
		&m.ClockInTime,
		&m.ClockOutTime,
		&m.ClockInLocation,
		&m.ClockOutLocation,
		&m.GeofenceValidated,
		&m.GeofenceDistanceMeters,
		&m.ScheduledHours,
		&m.TotalHours,
		&m.RawTotalHours,
		&m.OvertimeHours,
		&m.OvertimeFlag,
		&m.ActualStartTime,
		&m.ActualEndTime,
		&m.StaffSignaturePresent,
		&m.ClientSignaturePresent,
		&m.PayRate,
		&m.ChargeRate,
		&m.StaffPayAmount,
		&m.ClientChargeAmount,
		&m.Status,
		&m.AutoApproved,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectionReason,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTimesheet inserts a new timesheet. The unique (shift_id, staff_id)
// constraint is the idempotency backstop for racing clock-ins.
func (r *PgxTimesheetRepository) SaveTimesheet(ctx context.Context, timesheet domain.Timesheet) error {
	m, err := mapping.ToModelTimesheet(timesheet)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO timesheets (` + timesheetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36);
	`
	_, err = r.pool.Exec(ctx, query,
		m.TimesheetID, m.AgencyID, m.BookingID, m.ShiftID, m.StaffID, m.ClientID, m.ShiftDate,
		m.ClockInTime, m.ClockOutTime, m.ClockInLocation, m.ClockOutLocation,
		m.GeofenceValidated, m.GeofenceDistanceMeters,
		m.ScheduledHours, m.TotalHours, m.RawTotalHours, m.OvertimeHours, m.OvertimeFlag,
		m.ActualStartTime, m.ActualEndTime,
		m.StaffSignaturePresent, m.ClientSignaturePresent,
		m.PayRate, m.ChargeRate, m.StaffPayAmount, m.ClientChargeAmount,
		m.Status, m.AutoApproved, m.ApprovedBy, m.ApprovedAt, m.RejectionReason, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: timesheet for shift %s and staff %s already exists", apperrors.ErrDuplicate, m.ShiftID, m.StaffID)
		}
		return fmt.Errorf("failed to save timesheet %s: %w", m.TimesheetID, err)
	}
	return nil
}

// FindTimesheetByID retrieves a timesheet by its ID.
func (r *PgxTimesheetRepository) FindTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE timesheet_id = $1;`

	m, err := scanTimesheetRow(r.pool.QueryRow(ctx, query, timesheetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find timesheet by ID %s: %w", timesheetID, err)
	}

	d, err := mapping.ToDomainTimesheet(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindTimesheetForShiftAndStaff retrieves the timesheet for the pair.
func (r *PgxTimesheetRepository) FindTimesheetForShiftAndStaff(ctx context.Context, shiftID, staffID string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE shift_id = $1 AND staff_id = $2;`

	m, err := scanTimesheetRow(r.pool.QueryRow(ctx, query, shiftID, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find timesheet for shift %s and staff %s: %w", shiftID, staffID, err)
	}

	d, err := mapping.ToDomainTimesheet(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListTimesheetsByStatus retrieves a paginated list of timesheets in the given
// status for an agency, newest shift date first.
func (r *PgxTimesheetRepository) ListTimesheetsByStatus(ctx context.Context, agencyID string, status domain.TimesheetStatus, limit, offset int) ([]domain.Timesheet, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE agency_id = $1 AND status = $2
		ORDER BY shift_date DESC, created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.pool.Query(ctx, query, agencyID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets for agency %s: %w", agencyID, err)
	}
	defer rows.Close()

	timesheets := []domain.Timesheet{}
	for rows.Next() {
		m, err := scanTimesheetRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet row for agency %s: %w", agencyID, err)
		}
		d, err := mapping.ToDomainTimesheet(m)
		if err != nil {
			return nil, err
		}
		timesheets = append(timesheets, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating timesheet rows for agency %s: %w", agencyID, rows.Err())
	}
	return timesheets, nil
}

// RecordClockOut writes the clock-out fields and moves the timesheet to
// submitted. The guard clause (clock_out_time IS NULL) makes racing clock-outs
// mutually exclusive; the loser affects zero rows.
func (r *PgxTimesheetRepository) RecordClockOut(ctx context.Context, timesheet domain.Timesheet) error {
	m, err := mapping.ToModelTimesheet(timesheet)
	if err != nil {
		return err
	}

	query := `
		UPDATE timesheets
		SET clock_out_time = $2,
			clock_out_location = $3,
			total_hours = $4,
			raw_total_hours = $5,
			overtime_hours = $6,
			overtime_flag = $7,
			actual_start_time = $8,
			actual_end_time = $9,
			staff_pay_amount = $10,
			client_charge_amount = $11,
			status = $12,
			last_updated_at = $13,
			last_updated_by = $14
		WHERE timesheet_id = $1 AND clock_out_time IS NULL;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.TimesheetID,
		m.ClockOutTime,
		m.ClockOutLocation,
		m.TotalHours,
		m.RawTotalHours,
		m.OvertimeHours,
		m.OvertimeFlag,
		m.ActualStartTime,
		m.ActualEndTime,
		m.StaffPayAmount,
		m.ClientChargeAmount,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to record clock-out on timesheet %s: %w", m.TimesheetID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindTimesheetByID(ctx, m.TimesheetID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check timesheet after clock-out attempt for %s: %w", m.TimesheetID, findErr)
		}
		return fmt.Errorf("%w: timesheet %s", apperrors.ErrAlreadyClockedOut, m.TimesheetID)
	}
	return nil
}

// UpdateApproval writes the approval outcome fields of a timesheet.
func (r *PgxTimesheetRepository) UpdateApproval(ctx context.Context, timesheet domain.Timesheet) error {
	m, err := mapping.ToModelTimesheet(timesheet)
	if err != nil {
		return err
	}

	query := `
		UPDATE timesheets
		SET status = $2,
			auto_approved = $3,
			approved_by = $4,
			approved_at = $5,
			rejection_reason = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE timesheet_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.TimesheetID,
		m.Status,
		m.AutoApproved,
		m.ApprovedBy,
		m.ApprovedAt,
		m.RejectionReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval of timesheet %s: %w", m.TimesheetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateNonFinancial writes notes and signature flags. Financial columns are
// deliberately absent from the statement, so a compromised caller cannot
// reach them through this path.
func (r *PgxTimesheetRepository) UpdateNonFinancial(ctx context.Context, timesheetID string, notes *string, staffSig, clientSig *bool, actorID string, now time.Time) error {
	query := `
		UPDATE timesheets
		SET notes = COALESCE($2, notes),
			staff_signature_present = COALESCE($3, staff_signature_present),
			client_signature_present = COALESCE($4, client_signature_present),
			last_updated_at = $5,
			last_updated_by = $6
		WHERE timesheet_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, timesheetID, notes, staffSig, clientSig, now, actorID)
	if err != nil {
		return fmt.Errorf("failed to update non-financial fields of timesheet %s: %w", timesheetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
