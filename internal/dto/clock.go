package dto

import (
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// --- Clock DTOs ---

// ClockInRequest starts attendance for a shift. The location capture is
// supplied by the mobile client alongside the request; a client whose
// acquisition failed on-device sends the failure cause instead, so the server
// can answer with the matching typed error.
type ClockInRequest struct {
	ShiftID         string           `json:"shiftID" binding:"required"`
	Location        *LocationCapture `json:"location"`
	LocationFailure string           `json:"locationFailure" binding:"omitempty,oneof=permission_denied unavailable timeout unknown"`
}

// ClockOutRequest ends attendance for a timesheet. Confirmed carries the
// explicit confirmation the client gathered before sending.
type ClockOutRequest struct {
	TimesheetID     string           `json:"timesheetID" binding:"required"`
	Location        *LocationCapture `json:"location"`
	LocationFailure string           `json:"locationFailure" binding:"omitempty,oneof=permission_denied unavailable timeout unknown"`
	Confirmed       bool             `json:"confirmed"`
}

// LocationCapture is a device GPS fix as submitted by the client.
type LocationCapture struct {
	Latitude       float64   `json:"latitude" binding:"required"`
	Longitude      float64   `json:"longitude" binding:"required"`
	AccuracyMeters float64   `json:"accuracyMeters"`
	CapturedAt     time.Time `json:"capturedAt" binding:"required"`
}

// ToDomainLocation converts the request capture to the domain type.
func (l LocationCapture) ToDomainLocation() domain.LocationCapture {
	return domain.LocationCapture{
		Latitude:       l.Latitude,
		Longitude:      l.Longitude,
		AccuracyMeters: l.AccuracyMeters,
		CapturedAt:     l.CapturedAt,
	}
}
