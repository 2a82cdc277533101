package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/pagination"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/scheduling"
)

// shiftLifecycleService owns the shift status state machine. Every transition
// goes through the repository's guarded write, so the journey entry and the
// status change land together or not at all.
type shiftLifecycleService struct {
	BaseService
	shiftRepo   portsrepo.ShiftRepositoryWithTx
	bookingRepo portsrepo.BookingRepository
	staffRepo   portsrepo.StaffRepository
	dispatcher  portssvc.NotificationDispatcher
	now         func() time.Time
}

// LifecycleOption configures optional dependencies of the lifecycle service.
type LifecycleOption func(*shiftLifecycleService)

// WithLifecycleDispatcher sets the notification dispatcher.
func WithLifecycleDispatcher(d portssvc.NotificationDispatcher) LifecycleOption {
	return func(s *shiftLifecycleService) { s.dispatcher = d }
}

// WithLifecycleClock overrides the time source, for tests.
func WithLifecycleClock(now func() time.Time) LifecycleOption {
	return func(s *shiftLifecycleService) { s.now = now }
}

// NewShiftLifecycleService creates the lifecycle service.
func NewShiftLifecycleService(shiftRepo portsrepo.ShiftRepositoryWithTx, bookingRepo portsrepo.BookingRepository, staffRepo portsrepo.StaffRepository, opts ...LifecycleOption) portssvc.ShiftLifecycleSvcFacade {
	s := &shiftLifecycleService{
		shiftRepo:   shiftRepo,
		bookingRepo: bookingRepo,
		staffRepo:   staffRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ShiftLifecycleSvcFacade = (*shiftLifecycleService)(nil)

func (s *shiftLifecycleService) notify(ctx context.Context, eventType string, payload map[string]any) {
	if s.dispatcher == nil {
		return
	}
	go s.dispatcher.Notify(context.WithoutCancel(ctx), eventType, payload)
}

// CreateShift posts a new shift in the open state with its creation recorded
// as the first journey entry.
func (s *shiftLifecycleService) CreateShift(ctx context.Context, req dto.CreateShiftRequest, actorID string) (*domain.Shift, error) {
	if !scheduling.ValidHHMM(req.StartTime) || !scheduling.ValidHHMM(req.EndTime) {
		return nil, fmt.Errorf("%w: start and end times must be HH:MM", apperrors.ErrValidation)
	}
	if !req.DurationHours.IsPositive() {
		return nil, fmt.Errorf("%w: duration must be positive", apperrors.ErrValidation)
	}
	if req.PayRate.IsNegative() || req.ChargeRate.IsNegative() {
		return nil, fmt.Errorf("%w: rates must not be negative", apperrors.ErrValidation)
	}

	urgency := domain.UrgencyTier(req.Urgency)
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	method := req.Method
	if method == "" {
		method = domain.MethodOperatorAssign
	}

	now := s.now().UTC()
	shift := domain.Shift{
		ShiftID:            uuid.NewString(),
		AgencyID:           req.AgencyID,
		ClientID:           req.ClientID,
		RoleRequired:       req.RoleRequired,
		Date:               req.Date,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DurationHours:      req.DurationHours,
		PayRate:            req.PayRate,
		ChargeRate:         req.ChargeRate,
		Status:             domain.ShiftOpen,
		MarketplaceVisible: req.MarketplaceVisible,
		Urgency:            urgency,
		JourneyLog: domain.JourneyLog{{
			State:     domain.ShiftOpen,
			Timestamp: now,
			ActorID:   actorID,
			Method:    method,
		}},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.shiftRepo.SaveShift(ctx, shift); err != nil {
		s.LogError(ctx, err, "Failed to create shift", "agency_id", req.AgencyID)
		return nil, err
	}

	s.LogInfo(ctx, "Shift created", "shift_id", shift.ShiftID, "agency_id", shift.AgencyID, "urgency", string(urgency))
	return &shift, nil
}

// AssignShift moves an open shift to assigned and attaches the staff member.
func (s *shiftLifecycleService) AssignShift(ctx context.Context, shiftID, staffID, actorID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.AgencyID != shift.AgencyID {
		return nil, fmt.Errorf("%w: staff %s belongs to a different agency", apperrors.ErrForbidden, staffID)
	}
	if !staff.Active {
		return nil, fmt.Errorf("%w: staff %s is not active", apperrors.ErrValidation, staffID)
	}
	if staff.Role != shift.RoleRequired {
		return nil, fmt.Errorf("%w: staff role %q does not match required role %q", apperrors.ErrValidation, staff.Role, shift.RoleRequired)
	}

	now := s.now().UTC()
	transition := domain.ShiftTransition{
		Status: domain.ShiftAssigned,
		Entry: domain.JourneyEntry{
			State:     domain.ShiftAssigned,
			Timestamp: now,
			ActorID:   actorID,
			Method:    domain.MethodOperatorAssign,
		},
		AssignedStaffID: &staffID,
		Now:             now,
		ActorID:         actorID,
	}
	if err := s.shiftRepo.ApplyTransition(ctx, shiftID, domain.ShiftOpen, transition); err != nil {
		s.LogError(ctx, err, "Failed to assign shift", "shift_id", shiftID, "staff_id", staffID)
		return nil, err
	}

	s.LogInfo(ctx, "Shift assigned", "shift_id", shiftID, "staff_id", staffID)
	s.notify(ctx, portssvc.EventShiftAssigned, map[string]any{
		"shift_id": shiftID,
		"staff_id": staffID,
		"date":     shift.Date.Format("2006-01-02"),
	})

	return s.shiftRepo.FindShiftByID(ctx, shiftID)
}

// ConfirmShift moves an assigned shift to confirmed. A staff assignment must
// exist; confirmation is meaningless without someone to confirm.
func (s *shiftLifecycleService) ConfirmShift(ctx context.Context, shiftID, actorID string, method string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.Assigned() {
		return nil, fmt.Errorf("%w: cannot confirm a shift with no assigned staff", apperrors.ErrValidation)
	}
	if !shift.Status.CanTransitionTo(domain.ShiftConfirmed) {
		return nil, fmt.Errorf("%w: cannot confirm a shift in status %s", apperrors.ErrInvalidTransition, shift.Status)
	}
	if method == "" {
		method = domain.MethodStaffConfirm
	}

	now := s.now().UTC()
	transition := domain.ShiftTransition{
		Status: domain.ShiftConfirmed,
		Entry: domain.JourneyEntry{
			State:     domain.ShiftConfirmed,
			Timestamp: now,
			ActorID:   actorID,
			Method:    method,
		},
		Now:     now,
		ActorID: actorID,
	}
	if err := s.shiftRepo.ApplyTransition(ctx, shiftID, shift.Status, transition); err != nil {
		s.LogError(ctx, err, "Failed to confirm shift", "shift_id", shiftID)
		return nil, err
	}

	// Bring the booking along if one already exists for the pair.
	booking, err := s.bookingRepo.FindBookingForShiftAndStaff(ctx, shiftID, *shift.AssignedStaffID)
	if err == nil {
		if err := s.bookingRepo.UpdateBookingStatus(ctx, booking.BookingID, domain.BookingStaffConfirmed, actorID); err != nil {
			s.LogError(ctx, err, "Failed to update booking on confirmation", "booking_id", booking.BookingID)
		}
	}

	s.LogInfo(ctx, "Shift confirmed", "shift_id", shiftID, "method", method)
	return s.shiftRepo.FindShiftByID(ctx, shiftID)
}

// CancelShift moves any non-terminal shift to cancelled. The staff reference
// and journey log survive cancellation for audit.
func (s *shiftLifecycleService) CancelShift(ctx context.Context, shiftID, reason, actorID string) (*domain.Shift, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}
	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status.Terminal() {
		return nil, fmt.Errorf("%w: shift %s is already %s", apperrors.ErrInvalidTransition, shiftID, shift.Status)
	}

	now := s.now().UTC()
	transition := domain.ShiftTransition{
		Status: domain.ShiftCancelled,
		Entry: domain.JourneyEntry{
			State:     domain.ShiftCancelled,
			Timestamp: now,
			ActorID:   actorID,
			Method:    domain.MethodOperatorCancel,
			Notes:     reason,
		},
		CancellationReason: reason,
		Now:                now,
		ActorID:            actorID,
	}
	if err := s.shiftRepo.ApplyTransition(ctx, shiftID, shift.Status, transition); err != nil {
		s.LogError(ctx, err, "Failed to cancel shift", "shift_id", shiftID)
		return nil, err
	}

	s.LogInfo(ctx, "Shift cancelled", "shift_id", shiftID, "reason", reason)
	s.notify(ctx, portssvc.EventShiftCancelled, map[string]any{
		"shift_id": shiftID,
		"reason":   reason,
	})

	return s.shiftRepo.FindShiftByID(ctx, shiftID)
}

// BeginShift moves the shift to in_progress at clock-in and stamps the actual
// start instant. Clocking in from assigned (unconfirmed) is tolerated.
func (s *shiftLifecycleService) BeginShift(ctx context.Context, shift *domain.Shift, actorID string) error {
	if !shift.Status.CanTransitionTo(domain.ShiftInProgress) {
		return fmt.Errorf("%w: cannot start a shift in status %s", apperrors.ErrInvalidTransition, shift.Status)
	}

	now := s.now().UTC()
	entry := domain.JourneyEntry{
		State:     domain.ShiftInProgress,
		Timestamp: now,
		ActorID:   actorID,
		Method:    domain.MethodAppClockIn,
	}
	transition := domain.ShiftTransition{
		Status:         domain.ShiftInProgress,
		Entry:          entry,
		ShiftStartedAt: &now,
		Now:            now,
		ActorID:        actorID,
	}
	if err := s.shiftRepo.ApplyTransition(ctx, shift.ShiftID, shift.Status, transition); err != nil {
		return err
	}

	shift.Status = domain.ShiftInProgress
	shift.ShiftStartedAt = &now
	shift.JourneyLog = shift.JourneyLog.Append(entry)
	return nil
}

// CompleteShift moves the shift to completed at clock-out and engages the
// financial lock. After this, hours and rates on the timesheet are immutable.
func (s *shiftLifecycleService) CompleteShift(ctx context.Context, shift *domain.Shift, actorID string) error {
	if shift.Status != domain.ShiftInProgress {
		return fmt.Errorf("%w: cannot complete a shift in status %s", apperrors.ErrInvalidTransition, shift.Status)
	}

	now := s.now().UTC()
	entry := domain.JourneyEntry{
		State:     domain.ShiftCompleted,
		Timestamp: now,
		ActorID:   actorID,
		Method:    domain.MethodAppClockOut,
	}
	transition := domain.ShiftTransition{
		Status:          domain.ShiftCompleted,
		Entry:           entry,
		FinancialLocked: true,
		ShiftEndedAt:    &now,
		Now:             now,
		ActorID:         actorID,
	}
	if err := s.shiftRepo.ApplyTransition(ctx, shift.ShiftID, domain.ShiftInProgress, transition); err != nil {
		return err
	}

	shift.Status = domain.ShiftCompleted
	shift.FinancialLocked = true
	shift.ShiftEndedAt = &now
	shift.JourneyLog = shift.JourneyLog.Append(entry)
	return nil
}

// GetShiftByID returns the shift or apperrors.ErrNotFound.
func (s *shiftLifecycleService) GetShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	return s.shiftRepo.FindShiftByID(ctx, shiftID)
}

// ListShifts returns a page of the agency's shifts with the next cursor.
func (s *shiftLifecycleService) ListShifts(ctx context.Context, agencyID string, pageToken string, limit int) ([]domain.Shift, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var afterDate, afterCreated time.Time
	if pageToken != "" {
		var err error
		afterDate, afterCreated, err = pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	shifts, err := s.shiftRepo.ListShiftsByAgency(ctx, agencyID, afterDate, afterCreated, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shifts", "agency_id", agencyID)
		return nil, "", err
	}

	nextToken := ""
	if len(shifts) > limit {
		shifts = shifts[:limit]
		last := shifts[limit-1]
		nextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return shifts, nextToken, nil
}
