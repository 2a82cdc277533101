package dto

import (
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// BookingResponse defines data returned for a booking.
type BookingResponse struct {
	BookingID          string    `json:"bookingID"`
	ShiftID            string    `json:"shiftID"`
	StaffID            string    `json:"staffID"`
	AgencyID           string    `json:"agencyID"`
	ClientID           string    `json:"clientID"`
	Status             string    `json:"status"`
	ConfirmationMethod string    `json:"confirmationMethod"`
	BookingDate        time.Time `json:"bookingDate"`
	ShiftDate          time.Time `json:"shiftDate"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToBookingResponse converts domain.Booking to DTO.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:          b.BookingID,
		ShiftID:            b.ShiftID,
		StaffID:            b.StaffID,
		AgencyID:           b.AgencyID,
		ClientID:           b.ClientID,
		Status:             string(b.Status),
		ConfirmationMethod: string(b.ConfirmationMethod),
		BookingDate:        b.BookingDate,
		ShiftDate:          b.ShiftDate,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		CreatedAt:          b.CreatedAt,
	}
}
