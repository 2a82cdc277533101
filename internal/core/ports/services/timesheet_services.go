package services

import (
	"context"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
)

// ApprovalCriteria is the per-criterion breakdown of an auto-approval
// evaluation.
type ApprovalCriteria struct {
	SignaturesPresent bool `json:"signaturesPresent"`
	GPSVerified       bool `json:"gpsVerified"`
	HoursWithinRange  bool `json:"hoursWithinRange"`
}

// ApprovalEvaluation is the outcome of scoring a timesheet for auto-approval.
type ApprovalEvaluation struct {
	Eligible        bool             `json:"eligible"`
	Criteria        ApprovalCriteria `json:"criteria"`
	FailingCriteria []string         `json:"failingCriteria,omitempty"`
}

// TimesheetValidationSvcFacade scores completed timesheets for automatic
// approval and enforces the financial lock on every timesheet write.
type TimesheetValidationSvcFacade interface {
	// Evaluate is a pure function of its inputs: identical inputs always
	// produce the identical evaluation.
	Evaluate(timesheet *domain.Timesheet, shift *domain.Shift, staff *domain.Staff) ApprovalEvaluation

	// ProcessSubmission evaluates a submitted timesheet and either
	// auto-approves it (stamping the auto-approval marker) or leaves it
	// submitted for manual review.
	ProcessSubmission(ctx context.Context, timesheetID string) (*ApprovalEvaluation, error)

	// ApproveManually approves a submitted timesheet on an operator's
	// authority.
	ApproveManually(ctx context.Context, timesheetID, actorID string) (*domain.Timesheet, error)

	// Reject moves a submitted timesheet to rejected with a reason.
	Reject(ctx context.Context, timesheetID, actorID, reason string) (*domain.Timesheet, error)

	// MarkPaid moves an approved timesheet to paid (settlement itself is
	// external).
	MarkPaid(ctx context.Context, timesheetID, actorID string) (*domain.Timesheet, error)

	// UpdateTimesheet writes non-financial fields (notes, signature-presence
	// flags). Any attempt to touch financial fields on a locked shift fails
	// with apperrors.ErrFinancialFieldsLocked.
	UpdateTimesheet(ctx context.Context, timesheetID string, req dto.UpdateTimesheetRequest, actorID string) (*domain.Timesheet, error)

	GetTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error)
	ListTimesheetsByStatus(ctx context.Context, agencyID string, status domain.TimesheetStatus, limit, offset int) ([]domain.Timesheet, error)
}
