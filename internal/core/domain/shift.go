package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus is the lifecycle state of a shift.
type ShiftStatus string

const (
	ShiftOpen       ShiftStatus = "open"
	ShiftAssigned   ShiftStatus = "assigned"
	ShiftConfirmed  ShiftStatus = "confirmed"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s ShiftStatus) Terminal() bool {
	return s == ShiftCompleted || s == ShiftCancelled
}

// CanTransitionTo reports whether the status graph permits s -> target.
// Cancellation is reachable from any non-completed state. Clock-in from
// "assigned" (skipping "confirmed") is a deliberate relaxation: some staff
// clock in before confirming, and blocking them at the door helps nobody.
func (s ShiftStatus) CanTransitionTo(target ShiftStatus) bool {
	if s.Terminal() {
		return false
	}
	switch target {
	case ShiftAssigned:
		return s == ShiftOpen
	case ShiftConfirmed:
		// Marketplace self-acceptance jumps open -> confirmed in one effect.
		return s == ShiftOpen || s == ShiftAssigned
	case ShiftInProgress:
		return s == ShiftConfirmed || s == ShiftAssigned
	case ShiftCompleted:
		return s == ShiftInProgress
	case ShiftCancelled:
		return true
	default:
		return false
	}
}

// UrgencyTier classifies how urgently a shift needs cover. Urgent and critical
// shifts are surfaced separately from normal ones in the marketplace.
type UrgencyTier string

const (
	UrgencyNormal   UrgencyTier = "normal"
	UrgencyUrgent   UrgencyTier = "urgent"
	UrgencyCritical UrgencyTier = "critical"
)

// Shift is a unit of work requested by a client site. A shift is never
// physically deleted; cancellation is a terminal state, not removal.
// Date carries day precision; StartTime and EndTime are "HH:MM" wall times.
type Shift struct {
	ShiftID            string          `json:"shiftID"`
	AgencyID           string          `json:"agencyID"`
	ClientID           string          `json:"clientID"`
	RoleRequired       string          `json:"roleRequired"`
	Date               time.Time       `json:"date"`
	StartTime          string          `json:"startTime"`
	EndTime            string          `json:"endTime"`
	DurationHours      decimal.Decimal `json:"durationHours"`
	PayRate            decimal.Decimal `json:"payRate"`
	ChargeRate         decimal.Decimal `json:"chargeRate"`
	Status             ShiftStatus     `json:"status"`
	AssignedStaffID    *string         `json:"assignedStaffID,omitempty"`
	MarketplaceVisible bool            `json:"marketplaceVisible"`
	Urgency            UrgencyTier     `json:"urgency"`
	JourneyLog         JourneyLog      `json:"journeyLog"`
	FinancialLocked    bool            `json:"financialLocked"`
	ShiftStartedAt     *time.Time      `json:"shiftStartedAt,omitempty"`
	ShiftEndedAt       *time.Time      `json:"shiftEndedAt,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	AuditFields
}

// Assigned reports whether a staff member is attached to the shift.
func (s *Shift) Assigned() bool {
	return s.AssignedStaffID != nil && *s.AssignedStaffID != ""
}

// ShiftTransition describes one status change together with the journey entry
// recording it. The pair is applied as a single write so a transition without
// a log entry cannot exist.
type ShiftTransition struct {
	Status             ShiftStatus
	Entry              JourneyEntry
	AssignedStaffID    *string    // set on assignment; nil leaves the column untouched
	FinancialLocked    bool       // set true on completion
	ShiftStartedAt     *time.Time // stamped on clock-in
	ShiftEndedAt       *time.Time // stamped on clock-out
	CancellationReason string
	Now                time.Time
	ActorID            string
}
