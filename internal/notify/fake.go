package notify

import (
	"context"
	"sync"

	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
)

// FakePublisher records published alerts for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	// Alerts contains all alerts that were published.
	Alerts []monitor.Alert

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Name implements Publisher.
func (f *FakePublisher) Name() string { return "fake" }

// Publish records the alert.
func (f *FakePublisher) Publish(_ context.Context, alert monitor.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatPayload(alert)
	if err != nil {
		return err
	}
	f.Alerts = append(f.Alerts, alert)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// Published returns a copy of the recorded alerts.
func (f *FakePublisher) Published() []monitor.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]monitor.Alert(nil), f.Alerts...)
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
