package domain

import "time"

// BookingStatus is the state of a staff member's commitment to a shift.
type BookingStatus string

const (
	BookingConfirmed      BookingStatus = "confirmed"
	BookingStaffConfirmed BookingStatus = "staff_confirmed"
)

// ConfirmationMethod records how the booking came to exist.
type ConfirmationMethod string

const (
	ConfirmViaApp         ConfirmationMethod = "app"
	ConfirmViaAppClockIn  ConfirmationMethod = "app_clock_in"
	ConfirmViaMarketplace ConfirmationMethod = "marketplace_accept"
	ConfirmViaPhone       ConfirmationMethod = "phone"
	ConfirmViaEmail       ConfirmationMethod = "email"
)

// Booking is the record of a staff member's commitment to a shift. At most one
// active booking exists per (shift, staff) pair; bookings are updated, never
// deleted.
type Booking struct {
	BookingID          string             `json:"bookingID"`
	AgencyID           string             `json:"agencyID"`
	ShiftID            string             `json:"shiftID"`
	StaffID            string             `json:"staffID"`
	ClientID           string             `json:"clientID"`
	Status             BookingStatus      `json:"status"`
	ConfirmationMethod ConfirmationMethod `json:"confirmationMethod"`
	BookingDate        time.Time          `json:"bookingDate"`
	ShiftDate          time.Time          `json:"shiftDate"`
	StartTime          string             `json:"startTime"`
	EndTime            string             `json:"endTime"`
	AuditFields
}
