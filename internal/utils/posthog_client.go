package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const posthogEndpoint = "https://eu.i.posthog.com"

// AnalyticsClient wraps an optional posthog.Client. When no API key is
// configured every method is a no-op, so callers never nil-check.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewAnalyticsClient builds the product analytics client. An empty API key
// yields a disabled client rather than an error; shift tracking is optional.
func NewAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("Analytics API key not set, event tracking disabled")
		return &AnalyticsClient{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	if err != nil {
		logger.Error("Failed to initialize analytics client", slog.String("error", err.Error()))
		return &AnalyticsClient{}
	}
	return &AnalyticsClient{client: client, logger: logger}
}

// Enabled reports whether events will actually be sent.
func (a *AnalyticsClient) Enabled() bool {
	return a.client != nil
}

// Capture queues one event for the given user. Failures are logged and
// swallowed; analytics never affects a request.
func (a *AnalyticsClient) Capture(distinctID, event string, properties map[string]any) {
	if a.client == nil {
		return
	}
	err := a.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && a.logger != nil {
		a.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events. Safe on a disabled client.
func (a *AnalyticsClient) Close() {
	if a.client == nil {
		return
	}
	if err := a.client.Close(); err != nil && a.logger != nil {
		a.logger.Warn("Failed to close analytics client", slog.String("error", err.Error()))
	}
}
