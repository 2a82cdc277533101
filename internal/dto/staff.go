package dto

import (
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// --- Staff DTOs ---

// SetAvailabilityRequest replaces the staff member's weekly availability.
// Keys are lowercase weekday names, values are the periods worked that day.
type SetAvailabilityRequest struct {
	Availability map[string][]string `json:"availability" binding:"required"`
}

// ToDomainAvailability converts the request map to the domain type.
func (r SetAvailabilityRequest) ToDomainAvailability() domain.Availability {
	availability := make(domain.Availability, len(r.Availability))
	for day, periods := range r.Availability {
		ps := make([]domain.ShiftPeriod, len(periods))
		for i, p := range periods {
			ps[i] = domain.ShiftPeriod(p)
		}
		availability[day] = ps
	}
	return availability
}

// StaffResponse defines data returned for a staff member.
type StaffResponse struct {
	StaffID      string              `json:"staffID"`
	UserID       string              `json:"userID"`
	AgencyID     string              `json:"agencyID"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Role         string              `json:"role"`
	GPSConsent   bool                `json:"gpsConsent"`
	GPSConsentAt *time.Time          `json:"gpsConsentAt,omitempty"`
	Availability map[string][]string `json:"availability"`
	Active       bool                `json:"active"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToStaffResponse converts domain.Staff to DTO.
func ToStaffResponse(s *domain.Staff) StaffResponse {
	availability := make(map[string][]string, len(s.Availability))
	for day, periods := range s.Availability {
		ps := make([]string, len(periods))
		for i, p := range periods {
			ps[i] = string(p)
		}
		availability[day] = ps
	}
	return StaffResponse{
		StaffID:      s.StaffID,
		UserID:       s.UserID,
		AgencyID:     s.AgencyID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Role:         s.Role,
		GPSConsent:   s.GPSConsent,
		GPSConsentAt: s.GPSConsentAt,
		Availability: availability,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
	}
}
