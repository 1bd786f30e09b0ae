// Package metrics holds the Prometheus collectors exported by sumpwatch.
//
// Collectors are registered against a caller-supplied registry so tests and
// the daemon do not share global state. A nil *Metrics is valid and records
// nothing.
package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tejusbharadwaj/sumpwatch/internal/analytics"
)

const namespace = "sumpwatch"

// Metrics groups every collector of the service.
type Metrics struct {
	// RPC metrics
	RPCRequests *prometheus.CounterVec
	RPCLatency  *prometheus.HistogramVec

	// Database metrics
	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge

	// Pit metrics, refreshed by the health poll
	SystemHealthy       prometheus.Gauge
	Online              prometheus.Gauge
	WaterLevelInches    prometheus.Gauge
	BatteryVoltage      prometheus.Gauge
	MinutesSinceReading prometheus.Gauge
	AlertsPublished     *prometheus.CounterVec
	SummaryRefreshes    *prometheus.CounterVec

	// AppStartTime records when the process started
	AppStartTime prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Total number of gRPC requests by method and status code",
		}, []string{"method", "code"}),
		RPCLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "Duration of gRPC requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		DBQueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries executed",
		}, []string{"query_type", "table", "status"}),
		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of database queries in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query_type", "table"}),
		DBConnectionsOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_open",
			Help:      "Number of established connections both in use and idle",
		}),
		DBConnectionsInUse: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Number of connections currently in use",
		}),
		SystemHealthy: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "system_healthy",
			Help:      "1 when the pit reports no risk factor, 0 otherwise",
		}),
		Online: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sensor_online",
			Help:      "1 when the latest reading is fresh",
		}),
		WaterLevelInches: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "water_level_inches",
			Help:      "Water level of the latest reading",
		}),
		BatteryVoltage: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_voltage",
			Help:      "Backup battery voltage of the latest reading",
		}),
		MinutesSinceReading: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "minutes_since_last_reading",
			Help:      "Age of the latest reading in whole minutes",
		}),
		AlertsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_published_total",
			Help:      "Alerts handed to a publisher, by publisher and status",
		}, []string{"publisher", "status"}),
		SummaryRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_refreshes_total",
			Help:      "Daily summary refresh runs by status",
		}, []string{"status"}),
		AppStartTime: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_start_time_seconds",
			Help:      "Unix timestamp of when the application started",
		}),
	}
	m.AppStartTime.SetToCurrentTime()
	return m
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordDBQuery records a database query execution.
func (m *Metrics) RecordDBQuery(queryType, table string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(queryType, table, status(err)).Inc()
	m.DBQueryDuration.WithLabelValues(queryType, table).Observe(duration.Seconds())
}

// UpdateDBConnectionStats copies the connection pool statistics.
func (m *Metrics) UpdateDBConnectionStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
	m.DBConnectionsInUse.Set(float64(stats.InUse))
}

// RecordRPC records one finished unary call.
func (m *Metrics) RecordRPC(method, code string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(method, code).Inc()
	m.RPCLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveHealth publishes an evaluated status on the pit gauges.
func (m *Metrics) ObserveHealth(s analytics.Status) {
	if m == nil {
		return
	}
	m.SystemHealthy.Set(boolGauge(s.IsSystemHealthy))
	m.Online.Set(boolGauge(s.IsOnline))
	m.WaterLevelInches.Set(s.Reading.WaterLevelInches)
	m.BatteryVoltage.Set(s.Reading.BatteryVoltage)
	m.MinutesSinceReading.Set(float64(s.MinutesSinceLastReading))
}

// RecordPublish counts one alert delivery attempt.
func (m *Metrics) RecordPublish(publisher string, err error) {
	if m == nil {
		return
	}
	m.AlertsPublished.WithLabelValues(publisher, status(err)).Inc()
}

// RecordSummaryRefresh counts one daily summary refresh run.
func (m *Metrics) RecordSummaryRefresh(err error) {
	if m == nil {
		return
	}
	m.SummaryRefreshes.WithLabelValues(status(err)).Inc()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
