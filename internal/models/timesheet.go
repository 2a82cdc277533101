package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetStatus mirrors the approval states stored in the timesheets table.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
	TimesheetPaid      TimesheetStatus = "paid"
)

// Timesheet represents a row in the timesheets table. Clock locations are
// stored as jsonb; financial columns are written once at clock-out and locked
// afterwards.
type Timesheet struct {
	TimesheetID string    `db:"timesheet_id"`
	AgencyID    string    `db:"agency_id"`
	BookingID   string    `db:"booking_id"`
	ShiftID     string    `db:"shift_id"`
	StaffID     string    `db:"staff_id"`
	ClientID    string    `db:"client_id"`
	ShiftDate   time.Time `db:"shift_date"`

	ClockInTime      *time.Time `db:"clock_in_time"`
	ClockOutTime     *time.Time `db:"clock_out_time"`
	ClockInLocation  []byte     `db:"clock_in_location"`  // jsonb, nullable
	ClockOutLocation []byte     `db:"clock_out_location"` // jsonb, nullable

	GeofenceValidated      *bool            `db:"geofence_validated"`
	GeofenceDistanceMeters *decimal.Decimal `db:"geofence_distance_meters"`

	ScheduledHours decimal.Decimal  `db:"scheduled_hours"`
	TotalHours     *decimal.Decimal `db:"total_hours"`
	RawTotalHours  *decimal.Decimal `db:"raw_total_hours"`
	OvertimeHours  *decimal.Decimal `db:"overtime_hours"`
	OvertimeFlag   bool             `db:"overtime_flag"`

	ActualStartTime *string `db:"actual_start_time"`
	ActualEndTime   *string `db:"actual_end_time"`

	StaffSignaturePresent  bool `db:"staff_signature_present"`
	ClientSignaturePresent bool `db:"client_signature_present"`

	PayRate            decimal.Decimal `db:"pay_rate"`
	ChargeRate         decimal.Decimal `db:"charge_rate"`
	StaffPayAmount     decimal.Decimal `db:"staff_pay_amount"`
	ClientChargeAmount decimal.Decimal `db:"client_charge_amount"`

	Status          TimesheetStatus `db:"status"`
	AutoApproved    bool            `db:"auto_approved"`
	ApprovedBy      *string         `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	RejectionReason *string         `db:"rejection_reason"`
	Notes           *string         `db:"notes"`
	AuditFields
}
