package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sumpwatch/internal/api"
	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
	"github.com/tejusbharadwaj/sumpwatch/internal/models"
	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
	"github.com/tejusbharadwaj/sumpwatch/internal/notify"
)

// Config holds the job intervals.
type Config struct {
	HealthInterval  time.Duration
	SummaryInterval time.Duration
	// JobTimeout bounds a single run of either job.
	JobTimeout time.Duration
}

// DefaultConfig polls health every 30 seconds and refreshes today's
// summary every 5 minutes.
func DefaultConfig() Config {
	return Config{
		HealthInterval:  30 * time.Second,
		SummaryInterval: 5 * time.Minute,
		JobTimeout:      time.Minute,
	}
}

type Scheduler struct {
	ctx       context.Context
	cfg       Config
	dashboard *api.Dashboard
	tracker   *monitor.Tracker
	publisher notify.Publisher
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	cron      *cron.Cron
	clock     func() time.Time
}

// NewScheduler wires the jobs. publisher and m may be nil.
func NewScheduler(
	ctx context.Context,
	cfg Config,
	dashboard *api.Dashboard,
	tracker *monitor.Tracker,
	publisher notify.Publisher,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *Scheduler {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultConfig().JobTimeout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		ctx:       ctx,
		cfg:       cfg,
		dashboard: dashboard,
		tracker:   tracker,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		cron:      cron.New(cron.WithChain(jobWrappers(logger)...)),
		clock:     time.Now,
	}
}

// jobWrappers recover job panics and skip a run while the previous one is
// still going, reporting both through the service logger.
func jobWrappers(logger *logrus.Logger) []cron.JobWrapper {
	l := cron.PrintfLogger(logger)
	return []cron.JobWrapper{
		cron.Recover(l),
		cron.SkipIfStillRunning(l),
	}
}

// Start registers both jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.cfg.HealthInterval < time.Second || s.cfg.SummaryInterval < time.Second {
		return fmt.Errorf("job intervals must be at least 1s, got %s and %s",
			s.cfg.HealthInterval, s.cfg.SummaryInterval)
	}
	if _, err := s.cron.AddFunc(every(s.cfg.HealthInterval), s.pollHealth); err != nil {
		return fmt.Errorf("schedule health poll: %w", err)
	}
	if _, err := s.cron.AddFunc(every(s.cfg.SummaryInterval), s.refreshSummary); err != nil {
		return fmt.Errorf("schedule summary refresh: %w", err)
	}
	s.cron.Start()
	s.logger.WithFields(logrus.Fields{
		"health_interval":  s.cfg.HealthInterval.String(),
		"summary_interval": s.cfg.SummaryInterval.String(),
	}).Info("Scheduler started")
	return nil
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

func (s *Scheduler) pollHealth() {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.JobTimeout)
	defer cancel()
	if _, err := s.PollHealth(ctx); err != nil {
		s.logger.WithError(err).Error("Health poll failed")
	}
}

func (s *Scheduler) refreshSummary() {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.JobTimeout)
	defer cancel()
	if err := s.RefreshSummary(ctx); err != nil {
		s.logger.WithError(err).Error("Daily summary refresh failed")
	}
}

// PollHealth evaluates the newest reading, updates the gauges and the
// tracker, and publishes any alerts the tracker raised. Publish failures
// are logged by the publisher and do not fail the poll.
func (s *Scheduler) PollHealth(ctx context.Context) ([]monitor.Alert, error) {
	now := s.clock()
	report, err := s.dashboard.Health(ctx, now)
	if err != nil {
		return nil, err
	}
	if !report.HasData {
		s.logger.Debug("No readings yet")
		return nil, nil
	}

	s.metrics.ObserveHealth(report.Status)
	alerts := s.tracker.Observe(report.Status, now)
	for _, alert := range alerts {
		s.logger.WithFields(logrus.Fields{
			"kind":     alert.Kind,
			"severity": alert.Severity,
			"headline": alert.Headline,
		}).Warn("Health changed")
		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, alert)
		}
	}
	return alerts, nil
}

// RefreshSummary recomputes today's daily summary. The first run after
// local midnight also closes out the previous day, whose last minutes
// arrived after its final refresh.
func (s *Scheduler) RefreshSummary(ctx context.Context) error {
	now := s.clock()
	loc := s.dashboard.Config().Location

	var errs []error
	if prev := models.DateOf(now.Add(-s.cfg.SummaryInterval), loc); prev.Before(models.DateOf(now, loc)) {
		if _, err := s.dashboard.RefreshDay(ctx, prev); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := s.dashboard.RefreshDailySummary(ctx, now); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	s.metrics.RecordSummaryRefresh(err)
	return err
}

// Stop the scheduler and wait for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
