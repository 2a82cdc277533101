package pgsql

import (
	"context"
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

const staffColumns = `staff_id, agency_id, user_id, first_name, last_name, role, gps_consent, gps_consent_at,
	availability, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxStaffRepository struct {
	pool *pgxpool.Pool
}

// newPgxStaffRepository creates a new repository for staff data.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepository {
	return &PgxStaffRepository{pool: pool}
}

// Ensure PgxStaffRepository implements portsrepo.StaffRepository
var _ portsrepo.StaffRepository = (*PgxStaffRepository)(nil)

func scanStaffRow(row pgx.Row) (models.Staff, error) {
	var m models.Staff
	err := row.Scan(
		&m.StaffID,
		&m.AgencyID,
		&m.UserID,
		&m.FirstName,
		&m.LastName,
		&m.Role,
		&m.GPSConsent,
		&m.GPSConsentAt,
		&m.Availability,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveStaff inserts a new staff profile.
func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	m, err := mapping.ToModelStaff(staff)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = r.pool.Exec(ctx, query,
		m.StaffID,
		m.AgencyID,
		m.UserID,
		m.FirstName,
		m.LastName,
		m.Role,
		m.GPSConsent,
		m.GPSConsentAt,
		m.Availability,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: staff with ID %s already exists", apperrors.ErrDuplicate, m.StaffID)
		}
		return fmt.Errorf("failed to save staff %s: %w", m.StaffID, err)
	}
	return nil
}

// FindStaffByID retrieves a staff profile by its ID.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE staff_id = $1;`

	m, err := scanStaffRow(r.pool.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff by ID %s: %w", staffID, err)
	}

	d, err := mapping.ToDomainStaff(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindStaffByUserID retrieves a staff profile by the linked user ID.
func (r *PgxStaffRepository) FindStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE user_id = $1;`

	m, err := scanStaffRow(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff by user ID %s: %w", userID, err)
	}

	d, err := mapping.ToDomainStaff(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateGPSConsent records the staff member's location consent decision.
func (r *PgxStaffRepository) UpdateGPSConsent(ctx context.Context, staffID string, consent bool, at time.Time, actorID string) error {
	query := `
		UPDATE staff
		SET gps_consent = $2, gps_consent_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE staff_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, staffID, consent, at, actorID)
	if err != nil {
		return fmt.Errorf("failed to update GPS consent of staff %s: %w", staffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAvailability replaces the staff member's weekly availability calendar.
func (r *PgxStaffRepository) UpdateAvailability(ctx context.Context, staffID string, availability domain.Availability, actorID string, now time.Time) error {
	raw, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("failed to marshal availability for staff %s: %w", staffID, err)
	}

	query := `
		UPDATE staff
		SET availability = $2, last_updated_at = $3, last_updated_by = $4
		WHERE staff_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, staffID, raw, now, actorID)
	if err != nil {
		return fmt.Errorf("failed to update availability of staff %s: %w", staffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
