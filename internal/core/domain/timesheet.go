package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetStatus is the approval state of a timesheet.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
	TimesheetPaid      TimesheetStatus = "paid"
)

// Timesheet is the record of actual attendance and its approval state.
// Created in draft when a booking is confirmed at clock-in, submitted at
// clock-out, then approved/rejected by the validation engine or an operator.
type Timesheet struct {
	TimesheetID string `json:"timesheetID"`
	AgencyID    string `json:"agencyID"`
	BookingID   string `json:"bookingID"`
	ShiftID     string `json:"shiftID"`
	StaffID     string `json:"staffID"`
	ClientID    string `json:"clientID"`
	ShiftDate   time.Time `json:"shiftDate"`

	ClockInTime      *time.Time       `json:"clockInTime,omitempty"`
	ClockOutTime     *time.Time       `json:"clockOutTime,omitempty"`
	ClockInLocation  *LocationCapture `json:"clockInLocation,omitempty"`
	ClockOutLocation *LocationCapture `json:"clockOutLocation,omitempty"`

	GeofenceValidated      *bool            `json:"geofenceValidated,omitempty"`
	GeofenceDistanceMeters *decimal.Decimal `json:"geofenceDistanceMeters,omitempty"`

	ScheduledHours decimal.Decimal  `json:"scheduledHours"`
	TotalHours     *decimal.Decimal `json:"totalHours,omitempty"` // capped, 2dp
	RawTotalHours  *decimal.Decimal `json:"rawTotalHours,omitempty"`
	OvertimeHours  *decimal.Decimal `json:"overtimeHours,omitempty"`
	OvertimeFlag   bool             `json:"overtimeFlag"`

	ActualStartTime string `json:"actualStartTime,omitempty"` // "HH:MM", half-hour rounded
	ActualEndTime   string `json:"actualEndTime,omitempty"`

	StaffSignaturePresent  bool `json:"staffSignaturePresent"`
	ClientSignaturePresent bool `json:"clientSignaturePresent"`

	PayRate            decimal.Decimal `json:"payRate"`
	ChargeRate         decimal.Decimal `json:"chargeRate"`
	StaffPayAmount     decimal.Decimal `json:"staffPayAmount"`
	ClientChargeAmount decimal.Decimal `json:"clientChargeAmount"`

	Status          TimesheetStatus `json:"status"`
	AutoApproved    bool            `json:"autoApproved"`
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	AuditFields
}

// ClockedIn reports whether the timesheet carries a clock-in.
func (t *Timesheet) ClockedIn() bool { return t.ClockInTime != nil }

// ClockedOut reports whether the timesheet carries a clock-out.
func (t *Timesheet) ClockedOut() bool { return t.ClockOutTime != nil }
