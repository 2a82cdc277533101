package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationCapture is a single GPS fix taken at clock-in or clock-out.
// Location is only captured at those two moments, never tracked continuously.
type LocationCapture struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracyMeters"`
	CapturedAt     time.Time `json:"capturedAt"`
}

// GeofenceResult is the outcome of validating a location against a client
// site's geofence. Distance and radius are reported in meters.
type GeofenceResult struct {
	Validated            bool            `json:"validated"`
	DistanceMeters       decimal.Decimal `json:"distanceMeters"`
	GeofenceRadiusMeters decimal.Decimal `json:"geofenceRadiusMeters"`
	Message              string          `json:"message"`
}
