package web

import (
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
)

// StatusJSON is the JSON representation of the monitor state.
type StatusJSON struct {
	Baselined     bool           `json:"baselined"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	StartTime     string         `json:"start_time"`
	Timestamp     string         `json:"timestamp"`
	LastObserved  string         `json:"last_observed,omitempty"`
	Health        *HealthJSON    `json:"health,omitempty"`
	LastAlert     *monitor.Alert `json:"last_alert,omitempty"`
	AlertCount    int            `json:"alert_count"`
}

// HealthJSON is the last evaluated status.
type HealthJSON struct {
	Headline         string   `json:"headline"`
	Healthy          bool     `json:"healthy"`
	Reasons          []string `json:"reasons"`
	Online           bool     `json:"online"`
	HighWater        bool     `json:"high_water"`
	PumpRunning      bool     `json:"pump_running"`
	MainsPowerOn     bool     `json:"mains_power_on"`
	BatteryState     string   `json:"battery_state"`
	WaterLevelInches float64  `json:"water_level_inches"`
	BatteryVoltage   float64  `json:"battery_voltage"`
	MinutesSince     int      `json:"minutes_since_last_reading"`
	SignalDBm        int      `json:"signal_dbm"`
}

func formatStatus(snap monitor.Snapshot) StatusJSON {
	out := StatusJSON{
		Baselined:     snap.Baselined,
		UptimeSeconds: int64(snap.Uptime().Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		LastAlert:     snap.LastAlert,
		AlertCount:    snap.AlertCount,
	}
	if !snap.HasData {
		return out
	}

	s := snap.Last
	reasons := s.Reasons()
	if reasons == nil {
		reasons = []string{}
	}
	out.LastObserved = snap.LastObserved.UTC().Format(time.RFC3339)
	out.Health = &HealthJSON{
		Headline:         s.Headline(),
		Healthy:          s.IsSystemHealthy,
		Reasons:          reasons,
		Online:           s.IsOnline,
		HighWater:        s.IsHighWater,
		PumpRunning:      s.IsPumpRunning,
		MainsPowerOn:     s.MainsPowerOn,
		BatteryState:     string(s.BatteryState),
		WaterLevelInches: s.Reading.WaterLevelInches,
		BatteryVoltage:   s.Reading.BatteryVoltage,
		MinutesSince:     s.MinutesSinceLastReading,
		SignalDBm:        s.SignalDBm(),
	}
	return out
}
