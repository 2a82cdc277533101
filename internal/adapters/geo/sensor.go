package geo

import (
	"context"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
)

type captureCtxKey struct{}
type failureCtxKey struct{}

// ContextWithCapture stores the client-submitted GPS fix on the context for
// the sensor to pick up downstream.
func ContextWithCapture(ctx context.Context, capture domain.LocationCapture) context.Context {
	return context.WithValue(ctx, captureCtxKey{}, capture)
}

// ContextWithFailure stores a device-reported location failure cause, for
// clients whose location acquisition failed before the request was sent.
func ContextWithFailure(ctx context.Context, cause apperrors.LocationCause) context.Context {
	return context.WithValue(ctx, failureCtxKey{}, cause)
}

// CaptureSensor resolves the acting user's location from the request context.
// The fix is taken on the device and submitted with the request; this adapter
// enforces freshness so a cached or replayed fix is rejected.
type CaptureSensor struct {
	maxAge time.Duration
}

// NewCaptureSensor builds a sensor that rejects fixes older than maxAge.
func NewCaptureSensor(maxAge time.Duration) *CaptureSensor {
	return &CaptureSensor{maxAge: maxAge}
}

var _ portssvc.GeolocationSensor = (*CaptureSensor)(nil)

// CurrentLocation returns the request's location capture, or a typed
// *apperrors.LocationError describing why none is usable.
func (s *CaptureSensor) CurrentLocation(ctx context.Context) (domain.LocationCapture, error) {
	if cause, ok := ctx.Value(failureCtxKey{}).(apperrors.LocationCause); ok {
		return domain.LocationCapture{}, apperrors.NewLocationError(cause)
	}
	capture, ok := ctx.Value(captureCtxKey{}).(domain.LocationCapture)
	if !ok {
		return domain.LocationCapture{}, apperrors.NewLocationError(apperrors.LocationUnavailable)
	}
	if capture.CapturedAt.IsZero() {
		return domain.LocationCapture{}, apperrors.NewLocationError(apperrors.LocationUnknown)
	}
	if s.maxAge > 0 && time.Since(capture.CapturedAt) > s.maxAge {
		return domain.LocationCapture{}, apperrors.NewLocationError(apperrors.LocationTimeout)
	}
	return capture, nil
}
