package domain

import "time"

// JourneyEntry records one shift state transition in the append-only journey
// log. Entries are never mutated or removed.
type JourneyEntry struct {
	State     ShiftStatus `json:"state"`
	Timestamp time.Time   `json:"timestamp"`
	ActorID   string      `json:"actor_id"`
	Method    string      `json:"method"`
	Notes     string      `json:"notes,omitempty"`
}

// Transition methods recorded in journey entries.
const (
	MethodOperatorAssign    = "operator_assign"
	MethodMarketplaceAccept = "marketplace_accept"
	MethodStaffConfirm      = "staff_confirm"
	MethodAppClockIn        = "app_clock_in"
	MethodAppClockOut       = "app_clock_out"
	MethodOperatorCancel    = "operator_cancel"
	MethodAIExtraction      = "ai_extraction"
)

// JourneyLog is the ordered, append-only audit trail of a shift. The current
// status is derivable as a projection of the last entry, which gives a
// redundancy check against the status column.
type JourneyLog []JourneyEntry

// Append returns a new log with the entry added. The receiver is not mutated.
func (l JourneyLog) Append(entry JourneyEntry) JourneyLog {
	out := make(JourneyLog, len(l), len(l)+1)
	copy(out, l)
	return append(out, entry)
}

// CurrentState projects the status from the last entry. The zero value
// projects ShiftOpen, matching a freshly created shift with no transitions.
func (l JourneyLog) CurrentState() ShiftStatus {
	if len(l) == 0 {
		return ShiftOpen
	}
	return l[len(l)-1].State
}

// ValidPath reports whether every consecutive pair of entries is a legal edge
// of the status graph, starting from ShiftOpen. A single leading "open" entry
// is allowed: it records creation, not a transition.
func (l JourneyLog) ValidPath() bool {
	prev := ShiftOpen
	for i, e := range l {
		if e.State == ShiftOpen {
			if i != 0 {
				return false
			}
			continue
		}
		if !prev.CanTransitionTo(e.State) {
			return false
		}
		prev = e.State
	}
	return true
}
