package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus mirrors the lifecycle states stored in the shifts table.
type ShiftStatus string

const (
	ShiftOpen       ShiftStatus = "open"
	ShiftAssigned   ShiftStatus = "assigned"
	ShiftConfirmed  ShiftStatus = "confirmed"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
)

// Shift represents a row in the shifts table. JourneyLog is stored as a jsonb
// column and appended to in the same statement as status changes.
type Shift struct {
	ShiftID            string          `db:"shift_id"`
	AgencyID           string          `db:"agency_id"`
	ClientID           string          `db:"client_id"`
	RoleRequired       string          `db:"role_required"`
	Date               time.Time       `db:"shift_date"`
	StartTime          string          `db:"start_time"`
	EndTime            string          `db:"end_time"`
	DurationHours      decimal.Decimal `db:"duration_hours"`
	PayRate            decimal.Decimal `db:"pay_rate"`
	ChargeRate         decimal.Decimal `db:"charge_rate"`
	Status             ShiftStatus     `db:"status"`
	AssignedStaffID    *string         `db:"assigned_staff_id"` // Nullable
	MarketplaceVisible bool            `db:"marketplace_visible"`
	Urgency            string          `db:"urgency"`
	JourneyLog         []byte          `db:"journey_log"` // jsonb
	FinancialLocked    bool            `db:"financial_locked"`
	ShiftStartedAt     *time.Time      `db:"shift_started_at"`
	ShiftEndedAt       *time.Time      `db:"shift_ended_at"`
	CancellationReason *string         `db:"cancellation_reason"`
	AuditFields
}
