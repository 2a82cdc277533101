package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/models"
)

// ToModelStaff converts a domain Staff to a model Staff.
func ToModelStaff(d domain.Staff) (models.Staff, error) {
	availability, err := json.Marshal(d.Availability)
	if err != nil {
		return models.Staff{}, fmt.Errorf("failed to marshal availability for staff %s: %w", d.StaffID, err)
	}
	return models.Staff{
		StaffID:      d.StaffID,
		AgencyID:     d.AgencyID,
		UserID:       d.UserID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Role:         d.Role,
		GPSConsent:   d.GPSConsent,
		GPSConsentAt: d.GPSConsentAt,
		Availability: availability,
		Active:       d.Active,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// ToDomainStaff converts a model Staff to a domain Staff.
func ToDomainStaff(m models.Staff) (domain.Staff, error) {
	var availability domain.Availability
	if len(m.Availability) > 0 {
		if err := json.Unmarshal(m.Availability, &availability); err != nil {
			return domain.Staff{}, fmt.Errorf("failed to unmarshal availability for staff %s: %w", m.StaffID, err)
		}
	}
	return domain.Staff{
		StaffID:      m.StaffID,
		AgencyID:     m.AgencyID,
		UserID:       m.UserID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         m.Role,
		GPSConsent:   m.GPSConsent,
		GPSConsentAt: m.GPSConsentAt,
		Availability: availability,
		Active:       m.Active,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}
