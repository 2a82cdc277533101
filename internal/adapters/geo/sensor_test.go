package geo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/adapters/geo"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

func TestCurrentLocation_ReturnsStagedCapture(t *testing.T) {
	sensor := geo.NewCaptureSensor(time.Minute)
	capture := domain.LocationCapture{Latitude: 51.5, Longitude: -0.12, AccuracyMeters: 8, CapturedAt: time.Now()}
	ctx := geo.ContextWithCapture(context.Background(), capture)

	got, err := sensor.CurrentLocation(ctx)

	require.NoError(t, err)
	assert.Equal(t, capture, got)
}

func TestCurrentLocation_DeviceReportedFailure(t *testing.T) {
	causes := []apperrors.LocationCause{
		apperrors.LocationPermissionDenied,
		apperrors.LocationUnavailable,
		apperrors.LocationTimeout,
		apperrors.LocationUnknown,
	}
	sensor := geo.NewCaptureSensor(time.Minute)

	for _, cause := range causes {
		ctx := geo.ContextWithFailure(context.Background(), cause)

		_, err := sensor.CurrentLocation(ctx)

		var locErr *apperrors.LocationError
		require.ErrorAs(t, err, &locErr)
		assert.Equal(t, cause, locErr.Cause)
	}
}

func TestCurrentLocation_NoCaptureStaged(t *testing.T) {
	sensor := geo.NewCaptureSensor(time.Minute)

	_, err := sensor.CurrentLocation(context.Background())

	var locErr *apperrors.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, apperrors.LocationUnavailable, locErr.Cause)
}

func TestCurrentLocation_StaleCaptureRejected(t *testing.T) {
	sensor := geo.NewCaptureSensor(time.Minute)
	stale := domain.LocationCapture{Latitude: 51.5, Longitude: -0.12, CapturedAt: time.Now().Add(-5 * time.Minute)}
	ctx := geo.ContextWithCapture(context.Background(), stale)

	_, err := sensor.CurrentLocation(ctx)

	var locErr *apperrors.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, apperrors.LocationTimeout, locErr.Cause)
}

func TestCurrentLocation_ZeroTimestampRejected(t *testing.T) {
	sensor := geo.NewCaptureSensor(time.Minute)
	ctx := geo.ContextWithCapture(context.Background(), domain.LocationCapture{Latitude: 51.5, Longitude: -0.12})

	_, err := sensor.CurrentLocation(ctx)

	var locErr *apperrors.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, apperrors.LocationUnknown, locErr.Cause)
}
