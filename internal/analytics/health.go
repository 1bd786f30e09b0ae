package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// NoSignalDBm is displayed when a reading carries no WiFi strength.
const NoSignalDBm = -99

// goodSignalDBm is the strength above which the link is considered good.
const goodSignalDBm = -70

// Thresholds holds the named limits used to derive health flags.
type Thresholds struct {
	// OfflineAfterMinutes marks the sensor offline once the latest reading
	// is at least this many minutes old.
	OfflineAfterMinutes int `mapstructure:"offline_after_minutes" yaml:"offline_after_minutes"`
	// HighWaterInches is the level above which the pit is flooding.
	HighWaterInches float64 `mapstructure:"high_water_inches" yaml:"high_water_inches"`
	// ChargingVolts is the battery voltage above which the charger is active.
	ChargingVolts float64 `mapstructure:"charging_volts" yaml:"charging_volts"`
	// LowBatteryVolts is the voltage below which the backup battery needs attention.
	LowBatteryVolts float64 `mapstructure:"low_battery_volts" yaml:"low_battery_volts"`
}

// maxHighWaterInches is the highest alarm level any deployed pit used.
const maxHighWaterInches = 10.0

// DefaultThresholds returns the thresholds used by the current sensor firmware.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OfflineAfterMinutes: 15,
		HighWaterInches:     6.0,
		ChargingVolts:       13.0,
		LowBatteryVolts:     11.5,
	}
}

// Validate checks that the thresholds describe a usable configuration.
func (t Thresholds) Validate() error {
	if t.OfflineAfterMinutes <= 0 {
		return fmt.Errorf("offline_after_minutes must be positive, got %d", t.OfflineAfterMinutes)
	}
	if t.HighWaterInches <= 0 || t.HighWaterInches > maxHighWaterInches {
		return fmt.Errorf("high_water_inches must be in (0, %.1f], got %.2f", maxHighWaterInches, t.HighWaterInches)
	}
	if t.LowBatteryVolts >= t.ChargingVolts {
		return fmt.Errorf("low_battery_volts (%.2f) must be below charging_volts (%.2f)", t.LowBatteryVolts, t.ChargingVolts)
	}
	return nil
}

// BatteryState is the display state of the backup battery.
type BatteryState string

const (
	BatteryCharging    BatteryState = "charging"
	BatteryLow         BatteryState = "low"
	BatteryDischarging BatteryState = "discharging"
)

// Status is the evaluated health of the system at a given instant.
type Status struct {
	models.HealthState
	Reading                 models.Reading
	MinutesSinceLastReading int
	BatteryState            BatteryState
	MainsPowerOn            bool
}

// Evaluate derives the health flags of r as seen at now.
func Evaluate(r models.Reading, now time.Time, th Thresholds) Status {
	minutes := minutesSince(r.Timestamp, now)

	state := models.HealthState{
		IsOnline:      minutes < th.OfflineAfterMinutes,
		IsHighWater:   r.WaterLevelInches > th.HighWaterInches,
		IsPumpRunning: r.PumpRunning,
		IsCharging:    r.BatteryVoltage > th.ChargingVolts,
		IsLowBattery:  r.BatteryVoltage < th.LowBatteryVolts,
	}
	// Any single risk factor makes the whole system unhealthy.
	state.IsSystemHealthy = state.IsOnline &&
		!state.IsHighWater &&
		r.MainsPowerOn &&
		!state.IsLowBattery

	return Status{
		HealthState:             state,
		Reading:                 r,
		MinutesSinceLastReading: minutes,
		BatteryState:            batteryState(state),
		MainsPowerOn:            r.MainsPowerOn,
	}
}

// EvaluateLatest is Evaluate for an optional reading. The boolean is false
// when no reading was ever received.
func EvaluateLatest(r *models.Reading, now time.Time, th Thresholds) (Status, bool) {
	if r == nil {
		return Status{}, false
	}
	return Evaluate(*r, now, th), true
}

// minutesSince floors the elapsed minutes; readings stamped in the future count as fresh.
func minutesSince(ts, now time.Time) int {
	elapsed := now.Sub(ts)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed.Minutes()))
}

func batteryState(s models.HealthState) BatteryState {
	switch {
	case s.IsCharging:
		return BatteryCharging
	case s.IsLowBattery:
		return BatteryLow
	default:
		return BatteryDischarging
	}
}

// Headline is the banner text for the status.
func (s Status) Headline() string {
	if s.IsSystemHealthy {
		return "SYSTEM NORMAL"
	}
	return "ATTENTION REQUIRED"
}

// Reasons lists the risk factors currently failing, in a stable order.
func (s Status) Reasons() []string {
	var reasons []string
	if !s.IsOnline {
		reasons = append(reasons, "offline")
	}
	if s.IsHighWater {
		reasons = append(reasons, "high_water")
	}
	if !s.MainsPowerOn {
		reasons = append(reasons, "power_outage")
	}
	if s.IsLowBattery {
		reasons = append(reasons, "low_battery")
	}
	return reasons
}

// SignalDBm returns the WiFi strength for display, or NoSignalDBm when the
// reading did not report one. Never used for health.
func (s Status) SignalDBm() int {
	if s.Reading.WifiSignalDBm == nil {
		return NoSignalDBm
	}
	return *s.Reading.WifiSignalDBm
}

// SignalGood reports whether the WiFi link is strong.
func (s Status) SignalGood() bool {
	return s.SignalDBm() > goodSignalDBm
}
