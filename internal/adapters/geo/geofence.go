package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
)

// HTTPGeofenceClient validates locations against the geofence service, which
// owns client site coordinates and radius configuration. Distance math lives
// on that side; this client only relays the verdict.
type HTTPGeofenceClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGeofenceClient builds a geofence client with the given endpoint and
// per-request timeout.
func NewHTTPGeofenceClient(baseURL string, timeout time.Duration) *HTTPGeofenceClient {
	return &HTTPGeofenceClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

var _ portssvc.GeofenceValidator = (*HTTPGeofenceClient)(nil)

type geofenceRequest struct {
	ClientID       string  `json:"client_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_meters"`
}

// Validate posts the location to the geofence service and returns its verdict.
// Transport failures are returned as errors; a clean "outside the fence"
// verdict is a valid result, not an error.
func (c *HTTPGeofenceClient) Validate(ctx context.Context, location domain.LocationCapture, clientID string) (domain.GeofenceResult, error) {
	body, err := json.Marshal(geofenceRequest{
		ClientID:       clientID,
		Latitude:       location.Latitude,
		Longitude:      location.Longitude,
		AccuracyMeters: location.AccuracyMeters,
	})
	if err != nil {
		return domain.GeofenceResult{}, fmt.Errorf("failed to marshal geofence request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		return domain.GeofenceResult{}, fmt.Errorf("failed to build geofence request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.GeofenceResult{}, fmt.Errorf("geofence validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GeofenceResult{}, fmt.Errorf("geofence service returned status %d", resp.StatusCode)
	}

	var result domain.GeofenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.GeofenceResult{}, fmt.Errorf("failed to decode geofence response: %w", err)
	}
	return result, nil
}
