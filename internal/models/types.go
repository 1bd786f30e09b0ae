package models

import "time"

// EventType tags a discrete device event.
type EventType string

const (
	EventPumpCycleStart EventType = "pump_cycle_start"
	EventPumpCycleEnd   EventType = "pump_cycle_end"
	EventPowerOutage    EventType = "power_outage"
	EventPowerRestored  EventType = "power_restored"
	EventBackupAlarmOn  EventType = "backup_alarm_on"
	EventBackupAlarmOff EventType = "backup_alarm_off"
	EventSensorError    EventType = "sensor_error"
	EventSensorRestored EventType = "sensor_restored"
	EventHighWater      EventType = "high_water"
	EventLowBattery     EventType = "low_battery"
)

// AlertEventTypes lists the event types shown as alerts. Pump cycle
// markers are routine and never appear here.
var AlertEventTypes = []EventType{
	EventPowerOutage,
	EventPowerRestored,
	EventBackupAlarmOn,
	EventBackupAlarmOff,
	EventSensorError,
	EventSensorRestored,
	EventHighWater,
	EventLowBattery,
}

// IsCycleMarker reports whether the event bounds a pump cycle.
func (t EventType) IsCycleMarker() bool {
	return t == EventPumpCycleStart || t == EventPumpCycleEnd
}

// Reading represents a single telemetry sample from the pit sensor
type Reading struct {
	Timestamp        time.Time `json:"created_at"`
	WaterLevelInches float64   `json:"water_level_inches"`
	BatteryVoltage   float64   `json:"battery_voltage"`
	MainsPowerOn     bool      `json:"ac_power_on"`
	PumpRunning      bool      `json:"pump_running"`
	WifiSignalDBm    *int      `json:"wifi_rssi,omitempty"`
}

// Event represents a single entry of the device event log
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"event_type"`
	Timestamp time.Time `json:"created_at"`
	Message   string    `json:"message,omitempty"`
}

// EnvSample is an optional environmental measurement taken near the pit.
type EnvSample struct {
	Timestamp    time.Time `json:"created_at"`
	TemperatureF *float64  `json:"temperature_f,omitempty"`
	HumidityPct  *float64  `json:"humidity_pct,omitempty"`
}

// DailySummary holds the per-day pump statistics for one local calendar day.
type DailySummary struct {
	Date            Date     `json:"date"`
	TotalCycles     int      `json:"total_cycles"`
	TotalGallons    float64  `json:"total_gallons"`
	MaxWaterLevel   float64  `json:"max_water_level"`
	AvgTemperatureF *float64 `json:"avg_temperature_f"`
	AvgHumidityPct  *float64 `json:"avg_humidity_pct"`
}

// HeatmapCell is one day of the calendar activity grid.
type HeatmapCell struct {
	Date    Date    `json:"date"`
	Cycles  int     `json:"cycles"`
	Gallons float64 `json:"gallons"`
	IsEmpty bool    `json:"is_empty"`
}

// IntervalResult is the mean gap between pump cycles on one local day.
// AvgMinutesBetweenCycles is nil when the day had fewer than two cycles.
type IntervalResult struct {
	Date                    Date     `json:"date"`
	AvgMinutesBetweenCycles *float64 `json:"avg_minutes_between_cycles"`
}

// HealthState is derived from the latest reading and is never stored.
type HealthState struct {
	IsOnline        bool `json:"is_online"`
	IsHighWater     bool `json:"is_high_water"`
	IsPumpRunning   bool `json:"is_pump_running"`
	IsCharging      bool `json:"is_charging"`
	IsLowBattery    bool `json:"is_low_battery"`
	IsSystemHealthy bool `json:"is_system_healthy"`
}
