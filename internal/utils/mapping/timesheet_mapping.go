package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/models"
)

func marshalLocation(loc *domain.LocationCapture) ([]byte, error) {
	if loc == nil {
		return nil, nil
	}
	return json.Marshal(loc)
}

func unmarshalLocation(raw []byte) (*domain.LocationCapture, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var loc domain.LocationCapture
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ToModelTimesheet converts a domain Timesheet to a model Timesheet.
func ToModelTimesheet(d domain.Timesheet) (models.Timesheet, error) {
	inLoc, err := marshalLocation(d.ClockInLocation)
	if err != nil {
		return models.Timesheet{}, fmt.Errorf("failed to marshal clock-in location for timesheet %s: %w", d.TimesheetID, err)
	}
	outLoc, err := marshalLocation(d.ClockOutLocation)
	if err != nil {
		return models.Timesheet{}, fmt.Errorf("failed to marshal clock-out location for timesheet %s: %w", d.TimesheetID, err)
	}
	return models.Timesheet{
		TimesheetID:            d.TimesheetID,
		AgencyID:               d.AgencyID,
		BookingID:              d.BookingID,
		ShiftID:                d.ShiftID,
		StaffID:                d.StaffID,
		ClientID:               d.ClientID,
		ShiftDate:              d.ShiftDate,
		ClockInTime:            d.ClockInTime,
		ClockOutTime:           d.ClockOutTime,
		ClockInLocation:        inLoc,
		ClockOutLocation:       outLoc,
		GeofenceValidated:      d.GeofenceValidated,
		GeofenceDistanceMeters: d.GeofenceDistanceMeters,
		ScheduledHours:         d.ScheduledHours,
		TotalHours:             d.TotalHours,
		RawTotalHours:          d.RawTotalHours,
		OvertimeHours:          d.OvertimeHours,
		OvertimeFlag:           d.OvertimeFlag,
		ActualStartTime:        strOrNil(d.ActualStartTime),
		ActualEndTime:          strOrNil(d.ActualEndTime),
		StaffSignaturePresent:  d.StaffSignaturePresent,
		ClientSignaturePresent: d.ClientSignaturePresent,
		PayRate:                d.PayRate,
		ChargeRate:             d.ChargeRate,
		StaffPayAmount:         d.StaffPayAmount,
		ClientChargeAmount:     d.ClientChargeAmount,
		Status:                 models.TimesheetStatus(d.Status),
		AutoApproved:           d.AutoApproved,
		ApprovedBy:             strOrNil(d.ApprovedBy),
		ApprovedAt:             d.ApprovedAt,
		RejectionReason:        strOrNil(d.RejectionReason),
		Notes:                  strOrNil(d.Notes),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// ToDomainTimesheet converts a model Timesheet to a domain Timesheet.
func ToDomainTimesheet(m models.Timesheet) (domain.Timesheet, error) {
	inLoc, err := unmarshalLocation(m.ClockInLocation)
	if err != nil {
		return domain.Timesheet{}, fmt.Errorf("failed to unmarshal clock-in location for timesheet %s: %w", m.TimesheetID, err)
	}
	outLoc, err := unmarshalLocation(m.ClockOutLocation)
	if err != nil {
		return domain.Timesheet{}, fmt.Errorf("failed to unmarshal clock-out location for timesheet %s: %w", m.TimesheetID, err)
	}
	return domain.Timesheet{
		TimesheetID:            m.TimesheetID,
		AgencyID:               m.AgencyID,
		BookingID:              m.BookingID,
		ShiftID:                m.ShiftID,
		StaffID:                m.StaffID,
		ClientID:               m.ClientID,
		ShiftDate:              m.ShiftDate,
		ClockInTime:            m.ClockInTime,
		ClockOutTime:           m.ClockOutTime,
		ClockInLocation:        inLoc,
		ClockOutLocation:       outLoc,
		GeofenceValidated:      m.GeofenceValidated,
		GeofenceDistanceMeters: m.GeofenceDistanceMeters,
		ScheduledHours:         m.ScheduledHours,
		TotalHours:             m.TotalHours,
		RawTotalHours:          m.RawTotalHours,
		OvertimeHours:          m.OvertimeHours,
		OvertimeFlag:           m.OvertimeFlag,
		ActualStartTime:        strOrEmpty(m.ActualStartTime),
		ActualEndTime:          strOrEmpty(m.ActualEndTime),
		StaffSignaturePresent:  m.StaffSignaturePresent,
		ClientSignaturePresent: m.ClientSignaturePresent,
		PayRate:                m.PayRate,
		ChargeRate:             m.ChargeRate,
		StaffPayAmount:         m.StaffPayAmount,
		ClientChargeAmount:     m.ClientChargeAmount,
		Status:                 domain.TimesheetStatus(m.Status),
		AutoApproved:           m.AutoApproved,
		ApprovedBy:             strOrEmpty(m.ApprovedBy),
		ApprovedAt:             m.ApprovedAt,
		RejectionReason:        strOrEmpty(m.RejectionReason),
		Notes:                  strOrEmpty(m.Notes),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// ToDomainTimesheetSlice converts a slice of model Timesheets to domain ones.
func ToDomainTimesheetSlice(ms []models.Timesheet) ([]domain.Timesheet, error) {
	ds := make([]domain.Timesheet, len(ms))
	for i, m := range ms {
		d, err := ToDomainTimesheet(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
