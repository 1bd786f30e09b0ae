// Package notify delivers monitor alerts to external systems.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
)

// Publisher sends alerts somewhere outside the process.
type Publisher interface {
	// Name identifies the publisher in logs and metrics.
	Name() string

	// Publish delivers one alert. A failure must not crash the process.
	Publish(ctx context.Context, alert monitor.Alert) error

	// Close releases the connection.
	Close() error
}

// Payload is the JSON message body shared by all publishers.
type Payload struct {
	Sump AlertPayload `json:"sump"`
}

// AlertPayload contains the alert details.
type AlertPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Headline  string `json:"headline"`
	Healthy   bool   `json:"healthy"`
}

// FormatPayload creates the JSON payload for an alert.
func FormatPayload(alert monitor.Alert) ([]byte, error) {
	payload := Payload{
		Sump: AlertPayload{
			Timestamp: alert.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(alert.Kind),
			Severity:  string(alert.Severity),
			Message:   alert.Message,
			Headline:  alert.Headline,
			Healthy:   alert.Healthy,
		},
	}
	return json.Marshal(payload)
}
