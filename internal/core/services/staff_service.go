package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
)

var validPeriods = map[domain.ShiftPeriod]bool{
	domain.PeriodDay:   true,
	domain.PeriodNight: true,
}

var validWeekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// staffService owns the staff attributes this core cares about: GPS consent
// and the availability calendar feeding marketplace matching.
type staffService struct {
	BaseService
	staffRepo portsrepo.StaffRepository
	now       func() time.Time
}

// StaffOption configures optional dependencies of the staff service.
type StaffOption func(*staffService)

// WithStaffClock overrides the time source, for tests.
func WithStaffClock(now func() time.Time) StaffOption {
	return func(s *staffService) { s.now = now }
}

// NewStaffService creates the staff service.
func NewStaffService(staffRepo portsrepo.StaffRepository, opts ...StaffOption) portssvc.StaffSvcFacade {
	s := &staffService{staffRepo: staffRepo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.StaffSvcFacade = (*staffService)(nil)

func (s *staffService) GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	return s.staffRepo.FindStaffByID(ctx, staffID)
}

func (s *staffService) GetStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error) {
	return s.staffRepo.FindStaffByUserID(ctx, userID)
}

// GrantGPSConsent records the staff member's location consent with its
// timestamp. Consent can only be granted by the staff member themselves.
func (s *staffService) GrantGPSConsent(ctx context.Context, staffID, actorID string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.UserID != actorID && staff.StaffID != actorID {
		return nil, fmt.Errorf("%w: GPS consent can only be granted by the staff member", apperrors.ErrForbidden)
	}

	now := s.now().UTC()
	if err := s.staffRepo.UpdateGPSConsent(ctx, staffID, true, now, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record GPS consent", "staff_id", staffID)
		return nil, err
	}

	s.LogInfo(ctx, "GPS consent granted", "staff_id", staffID)
	return s.staffRepo.FindStaffByID(ctx, staffID)
}

// SetAvailability replaces the weekly availability calendar.
func (s *staffService) SetAvailability(ctx context.Context, staffID string, availability domain.Availability, actorID string) (*domain.Staff, error) {
	for day, periods := range availability {
		if !validWeekdays[day] {
			return nil, fmt.Errorf("%w: unknown weekday %q", apperrors.ErrValidation, day)
		}
		for _, p := range periods {
			if !validPeriods[p] {
				return nil, fmt.Errorf("%w: unknown period %q", apperrors.ErrValidation, p)
			}
		}
	}

	if _, err := s.staffRepo.FindStaffByID(ctx, staffID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.staffRepo.UpdateAvailability(ctx, staffID, availability, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to update availability", "staff_id", staffID)
		return nil, err
	}

	s.LogInfo(ctx, "Availability updated", "staff_id", staffID)
	return s.staffRepo.FindStaffByID(ctx, staffID)
}
