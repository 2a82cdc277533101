package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/models"
)

// ToModelShift converts a domain Shift to a model Shift.
func ToModelShift(d domain.Shift) (models.Shift, error) {
	journey, err := json.Marshal(d.JourneyLog)
	if err != nil {
		return models.Shift{}, fmt.Errorf("failed to marshal journey log for shift %s: %w", d.ShiftID, err)
	}
	var reason *string
	if d.CancellationReason != "" {
		reason = &d.CancellationReason
	}
	return models.Shift{
		ShiftID:            d.ShiftID,
		AgencyID:           d.AgencyID,
		ClientID:           d.ClientID,
		RoleRequired:       d.RoleRequired,
		Date:               d.Date,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		DurationHours:      d.DurationHours,
		PayRate:            d.PayRate,
		ChargeRate:         d.ChargeRate,
		Status:             models.ShiftStatus(d.Status),
		AssignedStaffID:    d.AssignedStaffID,
		MarketplaceVisible: d.MarketplaceVisible,
		Urgency:            string(d.Urgency),
		JourneyLog:         journey,
		FinancialLocked:    d.FinancialLocked,
		ShiftStartedAt:     d.ShiftStartedAt,
		ShiftEndedAt:       d.ShiftEndedAt,
		CancellationReason: reason,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// ToDomainShift converts a model Shift to a domain Shift.
func ToDomainShift(m models.Shift) (domain.Shift, error) {
	var journey domain.JourneyLog
	if len(m.JourneyLog) > 0 {
		if err := json.Unmarshal(m.JourneyLog, &journey); err != nil {
			return domain.Shift{}, fmt.Errorf("failed to unmarshal journey log for shift %s: %w", m.ShiftID, err)
		}
	}
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}
	return domain.Shift{
		ShiftID:            m.ShiftID,
		AgencyID:           m.AgencyID,
		ClientID:           m.ClientID,
		RoleRequired:       m.RoleRequired,
		Date:               m.Date,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		DurationHours:      m.DurationHours,
		PayRate:            m.PayRate,
		ChargeRate:         m.ChargeRate,
		Status:             domain.ShiftStatus(m.Status),
		AssignedStaffID:    m.AssignedStaffID,
		MarketplaceVisible: m.MarketplaceVisible,
		Urgency:            domain.UrgencyTier(m.Urgency),
		JourneyLog:         journey,
		FinancialLocked:    m.FinancialLocked,
		ShiftStartedAt:     m.ShiftStartedAt,
		ShiftEndedAt:       m.ShiftEndedAt,
		CancellationReason: reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// ToDomainShiftSlice converts a slice of model Shifts to domain Shifts.
func ToDomainShiftSlice(ms []models.Shift) ([]domain.Shift, error) {
	ds := make([]domain.Shift, len(ms))
	for i, m := range ms {
		d, err := ToDomainShift(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
