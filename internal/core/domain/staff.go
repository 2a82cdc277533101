package domain

import "time"

// ShiftPeriod is a day or night slot in a staff availability calendar.
type ShiftPeriod string

const (
	PeriodDay   ShiftPeriod = "day"
	PeriodNight ShiftPeriod = "night"
)

// Availability maps a lowercase weekday name ("monday".."sunday") to the
// periods the staff member is willing to work that day.
type Availability map[string][]ShiftPeriod

// Includes reports whether the calendar covers the given weekday/period.
func (a Availability) Includes(weekday string, period ShiftPeriod) bool {
	for _, p := range a[weekday] {
		if p == period {
			return true
		}
	}
	return false
}

// Staff holds the staff attributes the coordination core cares about. The
// rest of the profile (compliance documents, training, payroll details) lives
// with external systems.
type Staff struct {
	StaffID      string       `json:"staffID"`
	AgencyID     string       `json:"agencyID"`
	UserID       string       `json:"userID"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Role         string       `json:"role"`
	GPSConsent   bool         `json:"gpsConsent"`
	GPSConsentAt *time.Time   `json:"gpsConsentAt,omitempty"`
	Availability Availability `json:"availability"`
	Active       bool         `json:"active"`
	AuditFields
}
