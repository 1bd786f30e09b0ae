package notify

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
)

// Multi fans an alert out to every publisher. A failing publisher is logged
// and counted; the others still receive the alert.
type Multi struct {
	publishers []Publisher
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

// NewMulti creates a fan-out over publishers. m may be nil.
func NewMulti(logger *logrus.Logger, m *metrics.Metrics, publishers ...Publisher) *Multi {
	return &Multi{publishers: publishers, logger: logger, metrics: m}
}

// Name implements Publisher.
func (m *Multi) Name() string { return "multi" }

// Len returns the number of publishers.
func (m *Multi) Len() int { return len(m.publishers) }

// Publish delivers alert to all publishers and joins their errors.
func (m *Multi) Publish(ctx context.Context, alert monitor.Alert) error {
	var errs []error
	for _, p := range m.publishers {
		err := p.Publish(ctx, alert)
		m.metrics.RecordPublish(p.Name(), err)
		if err != nil {
			m.logger.WithFields(logrus.Fields{
				"publisher": p.Name(),
				"kind":      alert.Kind,
				"error":     err,
			}).Error("Failed to publish alert")
			errs = append(errs, err)
			continue
		}
		m.logger.WithFields(logrus.Fields{
			"publisher": p.Name(),
			"kind":      alert.Kind,
			"severity":  alert.Severity,
		}).Info("Published alert")
	}
	return errors.Join(errs...)
}

// Close closes every publisher.
func (m *Multi) Close() error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
