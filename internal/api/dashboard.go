// Package api assembles the dashboard views from the telemetry store and the
// analytics engine. It owns the reference clock and zone for every request;
// the engine itself is pure.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sumpwatch/internal/analytics"
	"github.com/tejusbharadwaj/sumpwatch/internal/database"
	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// ErrNoData is returned when an operation needs a reading and none exists.
var ErrNoData = errors.New("no sensor data")

// Config controls the dashboard views.
type Config struct {
	Thresholds        analytics.Thresholds
	Location          *time.Location
	WeekDays          int
	HeatmapDays       int
	IntervalWindow    time.Duration
	AlertLimit        int
	GallonsPerCycle   float64
	PumpTriggerInches float64
}

// DefaultConfig returns the standard dashboard layout in UTC.
func DefaultConfig() Config {
	return Config{
		Thresholds:        analytics.DefaultThresholds(),
		Location:          time.UTC,
		WeekDays:          7,
		HeatmapDays:       30,
		IntervalWindow:    7 * 24 * time.Hour,
		AlertLimit:        10,
		GallonsPerCycle:   5,
		PumpTriggerInches: 4.5,
	}
}

// FixedVolume estimates every pump cycle at the same volume, in gallons.
type FixedVolume float64

func (v FixedVolume) CycleGallons(models.Event) float64 {
	return float64(v)
}

// Dashboard serves health, history and statistics views.
type Dashboard struct {
	store   database.TelemetryStore
	cfg     Config
	gallons analytics.GallonsEstimator
	logger  *logrus.Logger
}

// NewDashboard creates a Dashboard. A nil logger falls back to the logrus
// standard logger.
func NewDashboard(store database.TelemetryStore, cfg Config, logger *logrus.Logger) *Dashboard {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Dashboard{
		store:   store,
		cfg:     cfg,
		gallons: FixedVolume(cfg.GallonsPerCycle),
		logger:  logger,
	}
}

// Config returns the effective configuration.
func (d *Dashboard) Config() Config {
	return d.cfg
}

// HealthReport is the live status. HasData is false when the store holds no
// reading at all; Status is then the zero value.
type HealthReport struct {
	HasData bool
	Status  analytics.Status
}

// Health evaluates the newest reading as seen at now.
func (d *Dashboard) Health(ctx context.Context, now time.Time) (HealthReport, error) {
	latest, err := d.store.LatestReading(ctx)
	if err != nil {
		return HealthReport{}, fmt.Errorf("load latest reading: %w", err)
	}
	status, ok := analytics.EvaluateLatest(latest, now, d.cfg.Thresholds)
	return HealthReport{HasData: ok, Status: status}, nil
}

// History is the water level chart with its reference lines.
type History struct {
	Anchor            time.Time
	Points            []models.Reading
	PumpTriggerInches float64
	HighAlarmInches   float64
}

// History returns the readings in the window that ends at the newest
// reading. An empty store yields an empty history.
func (d *Dashboard) History(ctx context.Context, window time.Duration) (History, error) {
	h := History{
		PumpTriggerInches: d.cfg.PumpTriggerInches,
		HighAlarmInches:   d.cfg.Thresholds.HighWaterInches,
	}

	latest, err := d.store.LatestReading(ctx)
	if err != nil {
		return h, fmt.Errorf("load latest reading: %w", err)
	}
	if latest == nil {
		return h, nil
	}

	readings, err := d.store.Readings(ctx, latest.Timestamp.Add(-window))
	if err != nil {
		return h, fmt.Errorf("load readings: %w", err)
	}

	w := analytics.FilterWindow(readings, window)
	h.Anchor = w.Anchor()
	h.Points = w.Collect()
	return h, nil
}

// Stats is the statistics page. Sections whose data could not be loaded
// are left empty and named in Degraded.
type Stats struct {
	Today             models.Date
	Week              analytics.WeekSummary
	Heatmap           analytics.Heatmap
	Intervals         []models.IntervalResult
	WeeklyAvgInterval *float64
	Totals            analytics.Totals
	RecentAlerts      []models.Event
	Degraded          []string
}

// Stats computes every statistics section as of now.
func (d *Dashboard) Stats(ctx context.Context, now time.Time) Stats {
	loc := d.cfg.Location
	today := models.DateOf(now, loc)
	st := Stats{Today: today}

	degrade := func(section string, err error) {
		d.logger.WithFields(logrus.Fields{
			"section": section,
			"error":   err,
		}).Error("Failed to load statistics section")
		st.Degraded = append(st.Degraded, section)
	}

	week, err := d.store.DailySummaries(ctx, today.AddDays(1-d.cfg.WeekDays), today)
	if err != nil {
		degrade("weekly", err)
		week = nil
	}
	st.Week = analytics.SummarizeWeek(week)

	month, err := d.store.DailySummaries(ctx, today.AddDays(-d.cfg.HeatmapDays), today)
	if err != nil {
		degrade("heatmap", err)
		month = nil
	}
	st.Heatmap = analytics.BuildHeatmap(month, d.cfg.HeatmapDays, now, loc)

	since := now.Add(-d.cfg.IntervalWindow)
	cycles, err := d.store.Events(ctx, database.EventQuery{
		Types:     []models.EventType{models.EventPumpCycleEnd},
		Since:     &since,
		Ascending: true,
	})
	if err != nil {
		degrade("intervals", err)
		cycles = nil
	}
	st.Intervals = analytics.AnalyzeIntervals(cycles, d.cfg.IntervalWindow, now, loc)
	st.WeeklyAvgInterval = analytics.WeeklyAverageInterval(st.Intervals)

	all, err := d.store.DailySummaries(ctx, models.Date{}, models.Date{})
	if err != nil {
		degrade("records", err)
		all = nil
	}
	st.Totals = analytics.Rollup(all)

	alerts, err := d.store.Events(ctx, database.EventQuery{
		Types: models.AlertEventTypes,
		Limit: d.cfg.AlertLimit,
	})
	if err != nil {
		degrade("alerts", err)
		alerts = nil
	}
	st.RecentAlerts = analytics.RecentAlerts(alerts, d.cfg.AlertLimit)

	return st
}

// RefreshDailySummary recomputes the summary of the local day containing
// now and stores it.
func (d *Dashboard) RefreshDailySummary(ctx context.Context, now time.Time) (models.DailySummary, error) {
	return d.RefreshDay(ctx, models.DateOf(now, d.cfg.Location))
}

// RefreshDay recomputes and stores the summary of one local day.
func (d *Dashboard) RefreshDay(ctx context.Context, day models.Date) (models.DailySummary, error) {
	start := day.Start(d.cfg.Location)

	readings, err := d.store.Readings(ctx, start)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("load readings for %s: %w", day, err)
	}
	events, err := d.store.Events(ctx, database.EventQuery{
		Types:     []models.EventType{models.EventPumpCycleEnd},
		Since:     &start,
		Ascending: true,
	})
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("load events for %s: %w", day, err)
	}
	env, err := d.store.EnvSamples(ctx, start)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("load env samples for %s: %w", day, err)
	}

	in := analytics.DayInput{Date: day, Gallons: d.gallons}
	for _, split := range analytics.SplitByDay(readings, events, env, d.cfg.Location, d.gallons) {
		if split.Date == day {
			in = split
			break
		}
	}

	summary := analytics.AggregateDay(in)
	if err := d.store.UpsertDailySummary(ctx, summary); err != nil {
		return summary, fmt.Errorf("store summary for %s: %w", day, err)
	}

	d.logger.WithFields(logrus.Fields{
		"date":    day.String(),
		"cycles":  summary.TotalCycles,
		"gallons": summary.TotalGallons,
	}).Debug("Daily summary refreshed")
	return summary, nil
}
