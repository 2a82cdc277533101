package services

import (
	"context"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
)

// ShiftReaderSvc exposes shift reads to handlers and sibling services.
type ShiftReaderSvc interface {
	GetShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)
	ListShifts(ctx context.Context, agencyID string, pageToken string, limit int) ([]domain.Shift, string, error)
}

// ShiftLifecycleSvcFacade owns the shift status state machine. Every
// transition is guarded, atomic with its journey-log append, and fails with
// apperrors.ErrInvalidTransition outside its guard.
type ShiftLifecycleSvcFacade interface {
	ShiftReaderSvc

	CreateShift(ctx context.Context, req dto.CreateShiftRequest, actorID string) (*domain.Shift, error)

	// AssignShift moves open -> assigned and sets the staff reference.
	AssignShift(ctx context.Context, shiftID, staffID, actorID string) (*domain.Shift, error)

	// ConfirmShift moves open/assigned -> confirmed; requires a staff
	// assignment to exist.
	ConfirmShift(ctx context.Context, shiftID, actorID string, method string) (*domain.Shift, error)

	// CancelShift moves any non-completed shift to cancelled, preserving the
	// staff reference for audit.
	CancelShift(ctx context.Context, shiftID, reason, actorID string) (*domain.Shift, error)

	// BeginShift moves confirmed (or assigned, a tolerated edge) ->
	// in_progress. Invoked by the clock coordinator, not handlers.
	BeginShift(ctx context.Context, shift *domain.Shift, actorID string) error

	// CompleteShift moves in_progress -> completed and engages the financial
	// lock. Invoked by the clock coordinator.
	CompleteShift(ctx context.Context, shift *domain.Shift, actorID string) error
}
