package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/scheduling"
)

// activeStatuses are the shift statuses that count as "already booked" for the
// double-booking guard.
var activeStatuses = []domain.ShiftStatus{
	domain.ShiftAssigned,
	domain.ShiftConfirmed,
	domain.ShiftInProgress,
}

// marketplaceService filters open shifts for self-service acceptance and
// performs the claim. The claim itself is a conditional write; this service
// never holds a lock across the read-check-write sequence.
type marketplaceService struct {
	BaseService
	shiftRepo   portsrepo.ShiftRepositoryWithTx
	bookingRepo portsrepo.BookingRepository
	staffRepo   portsrepo.StaffRepository
	dispatcher  portssvc.NotificationDispatcher
	now         func() time.Time
}

// MarketplaceOption configures optional dependencies of the marketplace service.
type MarketplaceOption func(*marketplaceService)

// WithMarketplaceDispatcher sets the notification dispatcher.
func WithMarketplaceDispatcher(d portssvc.NotificationDispatcher) MarketplaceOption {
	return func(s *marketplaceService) { s.dispatcher = d }
}

// WithMarketplaceClock overrides the time source, for tests.
func WithMarketplaceClock(now func() time.Time) MarketplaceOption {
	return func(s *marketplaceService) { s.now = now }
}

// NewMarketplaceService creates the marketplace service.
func NewMarketplaceService(shiftRepo portsrepo.ShiftRepositoryWithTx, bookingRepo portsrepo.BookingRepository, staffRepo portsrepo.StaffRepository, opts ...MarketplaceOption) portssvc.MarketplaceSvcFacade {
	s := &marketplaceService{
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

var _ portssvc.MarketplaceSvcFacade = (*marketplaceService)(nil)

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// eligible applies the per-shift marketplace filter for one staff member.
// Role must always match; beyond that the shift must either be flagged
// marketplace-visible by an operator or fall inside the staff member's
// availability calendar.
func eligible(shift *domain.Shift, staff *domain.Staff, bookedDates map[string]bool) bool {
	if shift.RoleRequired != staff.Role {
		return false
	}
	if bookedDates[dayKey(shift.Date)] {
		return false
	}
	if shift.MarketplaceVisible {
		return true
	}
	period := scheduling.ClassifyPeriod(shift.StartTime)
	return staff.Availability.Includes(scheduling.WeekdayKey(shift.Date), period)
}

// AvailableShifts returns the open shifts the staff member may claim, split
// into urgent and regular tiers. Repository date order is preserved within
// each tier.
func (s *marketplaceService) AvailableShifts(ctx context.Context, staffID string) (*portssvc.MarketplaceShifts, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, fmt.Errorf("%w: staff %s is not active", apperrors.ErrForbidden, staffID)
	}

	shifts, err := s.shiftRepo.ListOpenShiftsByAgency(ctx, staff.AgencyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open shifts", "agency_id", staff.AgencyID)
		return nil, err
	}

	dates, err := s.shiftRepo.ListAssignedDates(ctx, staffID, activeStatuses)
	if err != nil {
		s.LogError(ctx, err, "Failed to list booked dates", "staff_id", staffID)
		return nil, err
	}
	bookedDates := make(map[string]bool, len(dates))
	for _, d := range dates {
		bookedDates[dayKey(d)] = true
	}

	result := &portssvc.MarketplaceShifts{Urgent: []domain.Shift{}, Regular: []domain.Shift{}}
	for i := range shifts {
		if !eligible(&shifts[i], staff, bookedDates) {
			continue
		}
		switch shifts[i].Urgency {
		case domain.UrgencyUrgent, domain.UrgencyCritical:
			result.Urgent = append(result.Urgent, shifts[i])
		default:
			result.Regular = append(result.Regular, shifts[i])
		}
	}
	return result, nil
}

// AcceptShift claims an open shift for the staff member. The shift jumps
// straight to confirmed with the claim recorded in the journey log, and the
// booking for the pair lands in the same transaction as the claim. Both sides
// of a race see a consistent outcome: exactly one winner, the loser gets
// ErrShiftAlreadyClaimed.
func (s *marketplaceService) AcceptShift(ctx context.Context, shiftID, staffID string) (*domain.Shift, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if staff.AgencyID != shift.AgencyID {
		return nil, fmt.Errorf("%w: shift belongs to a different agency", apperrors.ErrForbidden)
	}
	if !staff.Active {
		return nil, fmt.Errorf("%w: staff %s is not active", apperrors.ErrForbidden, staffID)
	}

	// Re-run the marketplace filter so a hand-crafted request can't bypass it.
	dates, err := s.shiftRepo.ListAssignedDates(ctx, staffID, activeStatuses)
	if err != nil {
		return nil, err
	}
	bookedDates := make(map[string]bool, len(dates))
	for _, d := range dates {
		bookedDates[dayKey(d)] = true
	}
	if !eligible(shift, staff, bookedDates) {
		return nil, fmt.Errorf("%w: shift %s is not available to this staff member", apperrors.ErrForbidden, shiftID)
	}

	now := s.now().UTC()
	entry := domain.JourneyEntry{
		State:     domain.ShiftConfirmed,
		Timestamp: now,
		ActorID:   staffID,
		Method:    domain.MethodMarketplaceAccept,
	}
	booking := domain.Booking{
		BookingID:          uuid.NewString(),
		AgencyID:           shift.AgencyID,
		ShiftID:            shiftID,
		StaffID:            staffID,
		ClientID:           shift.ClientID,
		Status:             domain.BookingStaffConfirmed,
		ConfirmationMethod: domain.ConfirmViaMarketplace,
		BookingDate:        now,
		ShiftDate:          shift.Date,
		StartTime:          shift.StartTime,
		EndTime:            shift.EndTime,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     staffID,
			LastUpdatedAt: now,
			LastUpdatedBy: staffID,
		},
	}
	if err := s.shiftRepo.ClaimShift(ctx, shiftID, staffID, entry, booking, now); err != nil {
		if errors.Is(err, apperrors.ErrShiftAlreadyClaimed) {
			s.LogInfo(ctx, "Marketplace claim lost", "shift_id", shiftID, "staff_id", staffID)
		} else {
			s.LogError(ctx, err, "Failed to claim shift", "shift_id", shiftID, "staff_id", staffID)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Marketplace shift accepted", "shift_id", shiftID, "staff_id", staffID)
	if s.dispatcher != nil {
		go s.dispatcher.Notify(context.WithoutCancel(ctx), portssvc.EventMarketplaceAccept, map[string]any{
			"shift_id": shiftID,
			"staff_id": staffID,
			"date":     dayKey(shift.Date),
		})
	}

	return s.shiftRepo.FindShiftByID(ctx, shiftID)
}

// StaffBookings returns a page of the staff member's bookings.
func (s *marketplaceService) StaffBookings(ctx context.Context, staffID string, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.ListBookingsByStaff(ctx, staffID, limit, offset)
}
