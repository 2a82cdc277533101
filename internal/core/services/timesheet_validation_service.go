package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
)

// AutoApprovalActor is recorded as the approver on auto-approved timesheets.
const AutoApprovalActor = "auto_approval"

// Criterion names reported in FailingCriteria.
const (
	CriterionSignatures = "signatures"
	CriterionGPS        = "gps_verification"
	CriterionHours      = "hours_within_range"
)

// timesheetValidationService scores submitted timesheets against the
// auto-approval criteria and owns every approval-state write.
type timesheetValidationService struct {
	BaseService
	timesheetRepo  portsrepo.TimesheetRepository
	shiftRepo      portsrepo.ShiftRepositoryWithTx
	staffRepo      portsrepo.StaffRepository
	dispatcher     portssvc.NotificationDispatcher
	hoursTolerance decimal.Decimal
	now            func() time.Time
}

// ValidationOption configures optional dependencies of the validation service.
type ValidationOption func(*timesheetValidationService)

// WithValidationDispatcher sets the notification dispatcher.
func WithValidationDispatcher(d portssvc.NotificationDispatcher) ValidationOption {
	return func(s *timesheetValidationService) { s.dispatcher = d }
}

// WithHoursTolerance overrides the allowed deviation between actual and
// scheduled hours, in hours.
func WithHoursTolerance(tolerance decimal.Decimal) ValidationOption {
	return func(s *timesheetValidationService) { s.hoursTolerance = tolerance }
}

// WithValidationClock overrides the time source, for tests.
func WithValidationClock(now func() time.Time) ValidationOption {
	return func(s *timesheetValidationService) { s.now = now }
}

// NewTimesheetValidationService creates the validation service. The default
// hours tolerance is a quarter hour.
func NewTimesheetValidationService(timesheetRepo portsrepo.TimesheetRepository, shiftRepo portsrepo.ShiftRepositoryWithTx, staffRepo portsrepo.StaffRepository, opts ...ValidationOption) portssvc.TimesheetValidationSvcFacade {
	s := &timesheetValidationService{
		timesheetRepo:  timesheetRepo,
		shiftRepo:      shiftRepo,
		staffRepo:      staffRepo,
		hoursTolerance: decimal.NewFromFloat(0.25),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TimesheetValidationSvcFacade = (*timesheetValidationService)(nil)

// Evaluate scores a timesheet against the auto-approval criteria. Pure:
// identical inputs always yield the identical evaluation.
func (s *timesheetValidationService) Evaluate(timesheet *domain.Timesheet, shift *domain.Shift, staff *domain.Staff) portssvc.ApprovalEvaluation {
	criteria := portssvc.ApprovalCriteria{
		SignaturesPresent: timesheet.StaffSignaturePresent && timesheet.ClientSignaturePresent,
	}

	// GPS verification is only demanded of staff who consented to location
	// capture. Without consent there is nothing to verify.
	if staff.GPSConsent {
		criteria.GPSVerified = timesheet.GeofenceValidated != nil && *timesheet.GeofenceValidated
	} else {
		criteria.GPSVerified = true
	}

	if timesheet.TotalHours != nil {
		diff := timesheet.TotalHours.Sub(timesheet.ScheduledHours).Abs()
		criteria.HoursWithinRange = diff.LessThanOrEqual(s.hoursTolerance)
	}

	eval := portssvc.ApprovalEvaluation{Criteria: criteria}
	if !criteria.SignaturesPresent {
		eval.FailingCriteria = append(eval.FailingCriteria, CriterionSignatures)
	}
	if !criteria.GPSVerified {
		eval.FailingCriteria = append(eval.FailingCriteria, CriterionGPS)
	}
	if !criteria.HoursWithinRange {
		eval.FailingCriteria = append(eval.FailingCriteria, CriterionHours)
	}
	eval.Eligible = len(eval.FailingCriteria) == 0
	return eval
}

// ProcessSubmission evaluates a submitted timesheet and auto-approves it when
// every criterion holds. A timesheet that fails any criterion stays submitted
// for manual review.
func (s *timesheetValidationService) ProcessSubmission(ctx context.Context, timesheetID string) (*portssvc.ApprovalEvaluation, error) {
	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if timesheet.Status != domain.TimesheetSubmitted {
		return nil, fmt.Errorf("%w: timesheet %s is %s, not submitted", apperrors.ErrValidation, timesheetID, timesheet.Status)
	}
	shift, err := s.shiftRepo.FindShiftByID(ctx, timesheet.ShiftID)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.FindStaffByID(ctx, timesheet.StaffID)
	if err != nil {
		return nil, err
	}

	eval := s.Evaluate(timesheet, shift, staff)
	if !eval.Eligible {
		s.LogInfo(ctx, "Timesheet held for manual review", "timesheet_id", timesheetID, "failing", eval.FailingCriteria)
		s.notify(ctx, portssvc.EventTimesheetForReview, map[string]any{
			"timesheet_id":     timesheetID,
			"failing_criteria": eval.FailingCriteria,
		})
		return &eval, nil
	}

	now := s.now().UTC()
	updated := *timesheet
	updated.Status = domain.TimesheetApproved
	updated.AutoApproved = true
	updated.ApprovedBy = AutoApprovalActor
	updated.ApprovedAt = &now
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = AutoApprovalActor
	if err := s.timesheetRepo.UpdateApproval(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to auto-approve timesheet", "timesheet_id", timesheetID)
		return nil, err
	}

	s.LogInfo(ctx, "Timesheet auto-approved", "timesheet_id", timesheetID)
	s.notify(ctx, portssvc.EventTimesheetApproved, map[string]any{
		"timesheet_id": timesheetID,
		"staff_id":     timesheet.StaffID,
	})
	return &eval, nil
}

// ApproveManually approves a submitted timesheet on an operator's authority.
func (s *timesheetValidationService) ApproveManually(ctx context.Context, timesheetID, actorID string) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if timesheet.Status != domain.TimesheetSubmitted {
		return nil, fmt.Errorf("%w: only submitted timesheets can be approved, %s is %s", apperrors.ErrValidation, timesheetID, timesheet.Status)
	}

	now := s.now().UTC()
	updated := *timesheet
	updated.Status = domain.TimesheetApproved
	updated.AutoApproved = false
	updated.ApprovedBy = actorID
	updated.ApprovedAt = &now
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID
	if err := s.timesheetRepo.UpdateApproval(ctx, updated); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Timesheet approved manually", "timesheet_id", timesheetID, "approved_by", actorID)
	return s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
}

// Reject moves a submitted timesheet to rejected with a reason.
func (s *timesheetValidationService) Reject(ctx context.Context, timesheetID, actorID, reason string) (*domain.Timesheet, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if timesheet.Status != domain.TimesheetSubmitted {
		return nil, fmt.Errorf("%w: only submitted timesheets can be rejected, %s is %s", apperrors.ErrValidation, timesheetID, timesheet.Status)
	}

	now := s.now().UTC()
	updated := *timesheet
	updated.Status = domain.TimesheetRejected
	updated.RejectionReason = reason
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID
	if err := s.timesheetRepo.UpdateApproval(ctx, updated); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Timesheet rejected", "timesheet_id", timesheetID, "reason", reason)
	return s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
}

// MarkPaid moves an approved timesheet to paid. Settlement itself happens in
// the payroll system; this only records the fact.
func (s *timesheetValidationService) MarkPaid(ctx context.Context, timesheetID, actorID string) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if timesheet.Status != domain.TimesheetApproved {
		return nil, fmt.Errorf("%w: only approved timesheets can be marked paid, %s is %s", apperrors.ErrValidation, timesheetID, timesheet.Status)
	}

	now := s.now().UTC()
	updated := *timesheet
	updated.Status = domain.TimesheetPaid
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID
	if err := s.timesheetRepo.UpdateApproval(ctx, updated); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Timesheet marked paid", "timesheet_id", timesheetID)
	return s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
}

// UpdateTimesheet writes notes and signature flags. Requests that touch pay or
// billing fields are rejected: once the shift completes those are locked, and
// before that they only exist as clock-out computations.
func (s *timesheetValidationService) UpdateTimesheet(ctx context.Context, timesheetID string, req dto.UpdateTimesheetRequest, actorID string) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}

	if req.TouchesFinancials() {
		shift, err := s.shiftRepo.FindShiftByID(ctx, timesheet.ShiftID)
		if err != nil {
			return nil, err
		}
		if shift.FinancialLocked {
			return nil, fmt.Errorf("%w: shift %s is completed", apperrors.ErrFinancialFieldsLocked, timesheet.ShiftID)
		}
		return nil, fmt.Errorf("%w: hours and rates are computed at clock-out", apperrors.ErrValidation)
	}

	if timesheet.Status == domain.TimesheetPaid {
		return nil, fmt.Errorf("%w: paid timesheets are immutable", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	if err := s.timesheetRepo.UpdateNonFinancial(ctx, timesheetID, req.Notes, req.StaffSignaturePresent, req.ClientSignaturePresent, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to update timesheet", "timesheet_id", timesheetID)
		return nil, err
	}
	return s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
}

// GetTimesheetByID returns the timesheet or apperrors.ErrNotFound.
func (s *timesheetValidationService) GetTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	return s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
}

// ListTimesheetsByStatus returns a page of the agency's timesheets in status.
func (s *timesheetValidationService) ListTimesheetsByStatus(ctx context.Context, agencyID string, status domain.TimesheetStatus, limit, offset int) ([]domain.Timesheet, error) {
	return s.timesheetRepo.ListTimesheetsByStatus(ctx, agencyID, status, limit, offset)
}

func (s *timesheetValidationService) notify(ctx context.Context, eventType string, payload map[string]any) {
	if s.dispatcher == nil {
		return
	}
	go s.dispatcher.Notify(context.WithoutCancel(ctx), eventType, payload)
}
