package models

import "time"

// Staff represents a row in the staff table. Availability is stored as jsonb
// keyed by lowercase weekday name.
type Staff struct {
	StaffID      string     `db:"staff_id"`
	AgencyID     string     `db:"agency_id"`
	UserID       string     `db:"user_id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Role         string     `db:"role"`
	GPSConsent   bool       `db:"gps_consent"`
	GPSConsentAt *time.Time `db:"gps_consent_at"`
	Availability []byte     `db:"availability"` // jsonb
	Active       bool       `db:"is_active"`
	AuditFields
}
