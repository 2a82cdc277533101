package mapping

import (
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking.
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:          d.BookingID,
		AgencyID:           d.AgencyID,
		ShiftID:            d.ShiftID,
		StaffID:            d.StaffID,
		ClientID:           d.ClientID,
		Status:             string(d.Status),
		ConfirmationMethod: string(d.ConfirmationMethod),
		BookingDate:        d.BookingDate,
		ShiftDate:          d.ShiftDate,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainBooking converts a model Booking to a domain Booking.
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:          m.BookingID,
		AgencyID:           m.AgencyID,
		ShiftID:            m.ShiftID,
		StaffID:            m.StaffID,
		ClientID:           m.ClientID,
		Status:             domain.BookingStatus(m.Status),
		ConfirmationMethod: domain.ConfirmationMethod(m.ConfirmationMethod),
		BookingDate:        m.BookingDate,
		ShiftDate:          m.ShiftDate,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
