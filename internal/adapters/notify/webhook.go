package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
)

// WebhookDispatcher posts coordination events to a downstream webhook (care
// home verification, SMS fan-out, digests). Delivery is best-effort: failures
// are logged and swallowed so a flaky webhook can never fail a clock event.
type WebhookDispatcher struct {
	url    string
	client *http.Client
}

// NewWebhookDispatcher builds a dispatcher for the given webhook URL. An empty
// URL disables dispatching entirely.
func NewWebhookDispatcher(url string) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.NotificationDispatcher = (*WebhookDispatcher)(nil)

type event struct {
	Event   string         `json:"event"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload"`
}

// Notify delivers one event. Never returns an error; see type doc.
func (d *WebhookDispatcher) Notify(ctx context.Context, eventType string, payload map[string]any) {
	if d.url == "" {
		return
	}

	body, err := json.Marshal(event{Event: eventType, At: time.Now().UTC(), Payload: payload})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal notification event", "event", eventType, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build notification request", "event", eventType, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "Notification delivery failed", "event", eventType, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "Notification rejected by webhook", "event", eventType, "status", resp.StatusCode)
	}
}
