package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
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

const shiftColumns = `shift_id, agency_id, client_id, role_required, shift_date, start_time, end_time,
	duration_hours, pay_rate, charge_rate, status, assigned_staff_id, marketplace_visible, urgency,
	journey_log, financial_locked, shift_started_at, shift_ended_at, cancellation_reason,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxShiftRepository struct {
	BaseRepository
	bookingRepo portsrepo.BookingRepository
}

// newPgxShiftRepository creates a new repository for shift data. The booking
// repository is injected so a marketplace claim can insert its booking inside
// the claim transaction.
func newPgxShiftRepository(pool *pgxpool.Pool, bookingRepo portsrepo.BookingRepository) portsrepo.ShiftRepositoryWithTx {
	return &PgxShiftRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bookingRepo:    bookingRepo,
	}
}

// Ensure PgxShiftRepository implements portsrepo.ShiftRepositoryWithTx
var _ portsrepo.ShiftRepositoryWithTx = (*PgxShiftRepository)(nil)

func scanShiftRow(row pgx.Row) (models.Shift, error) {
	var m models.Shift
	var cancellationReason sql.NullString
	err := row.Scan(
		&m.ShiftID,
		&m.AgencyID,
		&m.ClientID,
		&m.RoleRequired,
		&m.Date,
		&m.StartTime,
		&m.EndTime,
		&m.DurationHours,
		&m.PayRate,
		&m.ChargeRate,
		&m.Status,
		&m.AssignedStaffID,
		&m.MarketplaceVisible,
		&m.Urgency,
		&m.JourneyLog,
		&m.FinancialLocked,
		&m.ShiftStartedAt,
		&m.ShiftEndedAt,
		&cancellationReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Shift{}, err
	}
	if cancellationReason.Valid {
		m.CancellationReason = &cancellationReason.String
	}
	return m, nil
}

// SaveShift inserts a new shift with its initial journey log.
func (r *PgxShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	m, err := mapping.ToModelShift(shift)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ShiftID,
		m.AgencyID,
		m.ClientID,
		m.RoleRequired,
		m.Date,
		m.StartTime,
		m.EndTime,
		m.DurationHours,
		m.PayRate,
		m.ChargeRate,
		m.Status,
		m.AssignedStaffID,
		m.MarketplaceVisible,
		m.Urgency,
		m.JourneyLog,
		m.FinancialLocked,
		m.ShiftStartedAt,
		m.ShiftEndedAt,
		m.CancellationReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: shift with ID %s already exists", apperrors.ErrDuplicate, m.ShiftID)
		}
		return fmt.Errorf("failed to save shift %s: %w", m.ShiftID, err)
	}
	return nil
}

// FindShiftByID retrieves a shift by its ID.
func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE shift_id = $1;`

	m, err := scanShiftRow(r.Pool.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shift by ID %s: %w", shiftID, err)
	}

	d, err := mapping.ToDomainShift(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListShiftsByAgency retrieves shifts for an agency ordered by (shift_date,
// created_at) descending, resuming after the cursor when one is given.
func (r *PgxShiftRepository) ListShiftsByAgency(ctx context.Context, agencyID string, afterDate, afterCreated time.Time, limit int) ([]domain.Shift, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error
	if afterDate.IsZero() {
		query := `
			SELECT ` + shiftColumns + `
			FROM shifts
			WHERE agency_id = $1
			ORDER BY shift_date DESC, created_at DESC
			LIMIT $2;
		`
		rows, err = r.Pool.Query(ctx, query, agencyID, limit)
	} else {
		query := `
			SELECT ` + shiftColumns + `
			FROM shifts
			WHERE agency_id = $1 AND (shift_date, created_at) < ($2, $3)
			ORDER BY shift_date DESC, created_at DESC
			LIMIT $4;
		`
		rows, err = r.Pool.Query(ctx, query, agencyID, afterDate, afterCreated, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for agency %s: %w", agencyID, err)
	}
	defer rows.Close()

	return collectShifts(rows, agencyID)
}

// ListOpenShiftsByAgency retrieves open, unassigned shifts for an agency.
func (r *PgxShiftRepository) ListOpenShiftsByAgency(ctx context.Context, agencyID string) ([]domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE agency_id = $1 AND status = 'open' AND assigned_staff_id IS NULL
		ORDER BY shift_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open shifts for agency %s: %w", agencyID, err)
	}
	defer rows.Close()

	return collectShifts(rows, agencyID)
}

func collectShifts(rows pgx.Rows, agencyID string) ([]domain.Shift, error) {
	shifts := []domain.Shift{}
	for rows.Next() {
		m, err := scanShiftRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift row for agency %s: %w", agencyID, err)
		}
		d, err := mapping.ToDomainShift(m)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating shift rows for agency %s: %w", agencyID, rows.Err())
	}
	return shifts, nil
}

// ListAssignedDates retrieves the distinct dates on which the staff member
// holds a shift in any of the given statuses.
func (r *PgxShiftRepository) ListAssignedDates(ctx context.Context, staffID string, statuses []domain.ShiftStatus) ([]time.Time, error) {
	if len(statuses) == 0 {
		return []time.Time{}, nil
	}
	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}

	query := `
		SELECT DISTINCT shift_date
		FROM shifts
		WHERE assigned_staff_id = $1 AND status = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, staffID, statusStrs)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned dates for staff %s: %w", staffID, err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan assigned date for staff %s: %w", staffID, err)
		}
		dates = append(dates, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating assigned dates for staff %s: %w", staffID, rows.Err())
	}
	return dates, nil
}

// ApplyTransition moves a shift to update.Status and appends the journey entry
// in one statement. The WHERE clause carries the expected current status, so a
// stale caller affects zero rows and the state is untouched.
func (r *PgxShiftRepository) ApplyTransition(ctx context.Context, shiftID string, expectedStatus domain.ShiftStatus, update domain.ShiftTransition) error {
	entryJSON, err := json.Marshal(update.Entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journey entry for shift %s: %w", shiftID, err)
	}

	query := `
		UPDATE shifts
		SET status = $3,
			journey_log = journey_log || $4::jsonb,
			assigned_staff_id = COALESCE($5, assigned_staff_id),
			financial_locked = financial_locked OR $6,
			shift_started_at = COALESCE($7, shift_started_at),
			shift_ended_at = COALESCE($8, shift_ended_at),
			cancellation_reason = COALESCE($9, cancellation_reason),
			last_updated_at = $10,
			last_updated_by = $11
		WHERE shift_id = $1 AND status = $2;
	`
	var reason *string
	if update.CancellationReason != "" {
		reason = &update.CancellationReason
	}

	cmdTag, err := r.Pool.Exec(ctx, query,
		shiftID,
		string(expectedStatus),
		string(update.Status),
		entryJSON,
		update.AssignedStaffID,
		update.FinancialLocked,
		update.ShiftStartedAt,
		update.ShiftEndedAt,
		reason,
		update.Now,
		update.ActorID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply transition %s->%s on shift %s: %w", expectedStatus, update.Status, shiftID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing shift from a lost race on the status guard.
		_, findErr := r.FindShiftByID(ctx, shiftID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check shift status after transition attempt for %s: %w", shiftID, findErr)
		}
		return fmt.Errorf("%w: shift %s is no longer %s", apperrors.ErrInvalidTransition, shiftID, expectedStatus)
	}
	return nil
}

// ClaimShift assigns an open, unassigned shift to the staff member, moves it
// straight to confirmed and inserts the booking for the pair, all in one
// transaction. The conditional WHERE makes concurrent claims mutually
// exclusive; the loser affects zero rows and commits nothing.
func (r *PgxShiftRepository) ClaimShift(ctx context.Context, shiftID string, staffID string, entry domain.JourneyEntry, booking domain.Booking, now time.Time) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journey entry for shift %s: %w", shiftID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed.
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE shifts
		SET status = 'confirmed',
			assigned_staff_id = $2,
			journey_log = journey_log || $3::jsonb,
			last_updated_at = $4,
			last_updated_by = $2
		WHERE shift_id = $1 AND status = 'open' AND assigned_staff_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, shiftID, staffID, entryJSON, now)
	if err != nil {
		return fmt.Errorf("failed to claim shift %s for staff %s: %w", shiftID, staffID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindShiftByID(ctx, shiftID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check shift status after claim attempt for %s: %w", shiftID, findErr)
		}
		// The shift exists but is no longer open and unassigned.
		return fmt.Errorf("%w: shift %s", apperrors.ErrShiftAlreadyClaimed, shiftID)
	}

	if err := r.bookingRepo.SaveBookingInTx(ctx, tx, booking); err != nil {
		return fmt.Errorf("failed to save booking for claimed shift %s: %w", shiftID, err)
	}

	return r.Commit(ctx, tx)
}
