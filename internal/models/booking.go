package models

import "time"

// Booking represents a row in the bookings table. A partial unique index on
// (shift_id, staff_id) keeps the pair to one active booking.
type Booking struct {
	BookingID          string    `db:"booking_id"`
	AgencyID           string    `db:"agency_id"`
	ShiftID            string    `db:"shift_id"`
	StaffID            string    `db:"staff_id"`
	ClientID           string    `db:"client_id"`
	Status             string    `db:"status"`
	ConfirmationMethod string    `db:"confirmation_method"`
	BookingDate        time.Time `db:"booking_date"`
	ShiftDate          time.Time `db:"shift_date"`
	StartTime          string    `db:"start_time"`
	EndTime            string    `db:"end_time"`
	AuditFields
}
