package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// --- Timesheet DTOs ---

// UpdateTimesheetRequest carries the fields a client may ask to change.
// Only notes and signature flags are writable; the financial fields are
// present so an attempt to change them can be rejected explicitly instead of
// silently dropped.
type UpdateTimesheetRequest struct {
	Notes                  *string          `json:"notes"`
	StaffSignaturePresent  *bool            `json:"staffSignaturePresent"`
	ClientSignaturePresent *bool            `json:"clientSignaturePresent"`
	TotalHours             *decimal.Decimal `json:"totalHours"`
	PayRate                *decimal.Decimal `json:"payRate"`
	ChargeRate             *decimal.Decimal `json:"chargeRate"`
	StaffPayAmount         *decimal.Decimal `json:"staffPayAmount"`
	ClientChargeAmount     *decimal.Decimal `json:"clientChargeAmount"`
}

// TouchesFinancials reports whether the request asks to change any field that
// feeds pay or billing.
func (r UpdateTimesheetRequest) TouchesFinancials() bool {
	return r.TotalHours != nil || r.PayRate != nil || r.ChargeRate != nil ||
		r.StaffPayAmount != nil || r.ClientChargeAmount != nil
}

// RejectTimesheetRequest rejects a submitted timesheet with a reason.
type RejectTimesheetRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TimesheetResponse defines data returned for a timesheet.
type TimesheetResponse struct {
	TimesheetID            string           `json:"timesheetID"`
	ShiftID                string           `json:"shiftID"`
	StaffID                string           `json:"staffID"`
	AgencyID               string           `json:"agencyID"`
	ClockInTime            *time.Time       `json:"clockInTime,omitempty"`
	ClockOutTime           *time.Time       `json:"clockOutTime,omitempty"`
	GeofenceValidated      *bool            `json:"geofenceValidated,omitempty"`
	GeofenceDistanceMeters *decimal.Decimal `json:"geofenceDistanceMeters,omitempty"`
	ScheduledHours         decimal.Decimal  `json:"scheduledHours"`
	TotalHours             *decimal.Decimal `json:"totalHours,omitempty"`
	RawTotalHours          *decimal.Decimal `json:"rawTotalHours,omitempty"`
	OvertimeHours          *decimal.Decimal `json:"overtimeHours,omitempty"`
	OvertimeFlag           bool             `json:"overtimeFlag"`
	ActualStartTime        string           `json:"actualStartTime,omitempty"`
	ActualEndTime          string           `json:"actualEndTime,omitempty"`
	StaffSignaturePresent  bool             `json:"staffSignaturePresent"`
	ClientSignaturePresent bool             `json:"clientSignaturePresent"`
	PayRate                decimal.Decimal  `json:"payRate"`
	ChargeRate             decimal.Decimal  `json:"chargeRate"`
	StaffPayAmount         decimal.Decimal  `json:"staffPayAmount"`
	ClientChargeAmount     decimal.Decimal  `json:"clientChargeAmount"`
	Status                 string           `json:"status"`
	AutoApproved           bool             `json:"autoApproved"`
	ApprovedBy             string           `json:"approvedBy,omitempty"`
	ApprovedAt             *time.Time       `json:"approvedAt,omitempty"`
	RejectionReason        string           `json:"rejectionReason,omitempty"`
	Notes                  string           `json:"notes,omitempty"`
	CreatedAt              time.Time        `json:"createdAt"`
}

// ToTimesheetResponse converts domain.Timesheet to DTO.
func ToTimesheetResponse(t *domain.Timesheet) TimesheetResponse {
	return TimesheetResponse{
		TimesheetID:            t.TimesheetID,
		ShiftID:                t.ShiftID,
		StaffID:                t.StaffID,
		AgencyID:               t.AgencyID,
		ClockInTime:            t.ClockInTime,
		ClockOutTime:           t.ClockOutTime,
		GeofenceValidated:      t.GeofenceValidated,
		GeofenceDistanceMeters: t.GeofenceDistanceMeters,
		ScheduledHours:         t.ScheduledHours,
		TotalHours:             t.TotalHours,
		RawTotalHours:          t.RawTotalHours,
		OvertimeHours:          t.OvertimeHours,
		OvertimeFlag:           t.OvertimeFlag,
		ActualStartTime:        t.ActualStartTime,
		ActualEndTime:          t.ActualEndTime,
		StaffSignaturePresent:  t.StaffSignaturePresent,
		ClientSignaturePresent: t.ClientSignaturePresent,
		PayRate:                t.PayRate,
		ChargeRate:             t.ChargeRate,
		StaffPayAmount:         t.StaffPayAmount,
		ClientChargeAmount:     t.ClientChargeAmount,
		Status:                 string(t.Status),
		AutoApproved:           t.AutoApproved,
		ApprovedBy:             t.ApprovedBy,
		ApprovedAt:             t.ApprovedAt,
		RejectionReason:        t.RejectionReason,
		Notes:                  t.Notes,
		CreatedAt:              t.CreatedAt,
	}
}

// ListTimesheetsResponse wraps a list of timesheets.
type ListTimesheetsResponse struct {
	Timesheets []TimesheetResponse `json:"timesheets"`
}

// ToListTimesheetsResponse converts a slice of domain.Timesheet to DTO.
func ToListTimesheetsResponse(timesheets []domain.Timesheet) ListTimesheetsResponse {
	list := make([]TimesheetResponse, len(timesheets))
	for i := range timesheets {
		list[i] = ToTimesheetResponse(&timesheets[i])
	}
	return ListTimesheetsResponse{Timesheets: list}
}
