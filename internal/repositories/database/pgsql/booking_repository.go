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

const bookingColumns = `booking_id, agency_id, shift_id, staff_id, client_id, status, confirmation_method,
	booking_date, shift_date, start_time, end_time, created_at, created_by, last_updated_at, last_updated_by`

type PgxBookingRepository struct {
	pool *pgxpool.Pool
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepository {
	return &PgxBookingRepository{pool: pool}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepository
var _ portsrepo.BookingRepository = (*PgxBookingRepository)(nil)

func scanBookingRow(row pgx.Row) (models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.AgencyID,
		&m.ShiftID,
		&m.StaffID,
		&m.ClientID,
		&m.Status,
		&m.ConfirmationMethod,
		&m.BookingDate,
		&m.ShiftDate,
		&m.StartTime,
		&m.EndTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// bookingExecer abstracts over the pool and an open transaction, so the same
// insert serves both paths.
type bookingExecer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// SaveBooking inserts a new booking. The unique (shift_id, staff_id)
// constraint turns a duplicate insert into apperrors.ErrDuplicate.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	return r.insertBooking(ctx, r.pool, booking)
}

// SaveBookingInTx inserts a new booking within the caller's transaction.
func (r *PgxBookingRepository) SaveBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	return r.insertBooking(ctx, tx, booking)
}

func (r *PgxBookingRepository) insertBooking(ctx context.Context, db bookingExecer, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := db.Exec(ctx, query,
		m.BookingID,
		m.AgencyID,
		m.ShiftID,
		m.StaffID,
		m.ClientID,
		m.Status,
		m.ConfirmationMethod,
		m.BookingDate,
		m.ShiftDate,
		m.StartTime,
		m.EndTime,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: booking for shift %s and staff %s already exists", apperrors.ErrDuplicate, m.ShiftID, m.StaffID)
		}
		return fmt.Errorf("failed to save booking %s: %w", m.BookingID, err)
	}
	return nil
}

// FindBookingByID retrieves a booking by its ID.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`

	m, err := scanBookingRow(r.pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID %s: %w", bookingID, err)
	}

	d := mapping.ToDomainBooking(m)
	return &d, nil
}

// FindBookingForShiftAndStaff retrieves the booking for the pair.
func (r *PgxBookingRepository) FindBookingForShiftAndStaff(ctx context.Context, shiftID, staffID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE shift_id = $1 AND staff_id = $2;`

	m, err := scanBookingRow(r.pool.QueryRow(ctx, query, shiftID, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking for shift %s and staff %s: %w", shiftID, staffID, err)
	}

	d := mapping.ToDomainBooking(m)
	return &d, nil
}

// ListBookingsByStaff retrieves a paginated list of bookings for a staff
// member, newest shift date first.
func (r *PgxBookingRepository) ListBookingsByStaff(ctx context.Context, staffID string, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE staff_id = $1
		ORDER BY shift_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, staffID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for staff %s: %w", staffID, err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		m, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row for staff %s: %w", staffID, err)
		}
		bookings = append(bookings, mapping.ToDomainBooking(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating booking rows for staff %s: %w", staffID, rows.Err())
	}
	return bookings, nil
}

// UpdateBookingStatus updates the status of an existing booking.
func (r *PgxBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, actorID string) error {
	query := `
		UPDATE bookings
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE booking_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, bookingID, string(status), time.Now().UTC(), actorID)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", bookingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
