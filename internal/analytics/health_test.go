package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

var testNow = time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC)

func normalReading(age time.Duration) models.Reading {
	return models.Reading{
		Timestamp:        testNow.Add(-age),
		WaterLevelInches: 3.1,
		BatteryVoltage:   12.6,
		MainsPowerOn:     true,
	}
}

func TestEvaluate_HighWaterAndLowBattery(t *testing.T) {
	r := models.Reading{
		Timestamp:        testNow.Add(-5 * time.Minute),
		WaterLevelInches: 7.2,
		BatteryVoltage:   11.0,
		MainsPowerOn:     true,
	}

	s := Evaluate(r, testNow, DefaultThresholds())

	assert.True(t, s.IsHighWater)
	assert.True(t, s.IsLowBattery)
	assert.True(t, s.IsOnline)
	assert.False(t, s.IsSystemHealthy)
	assert.Equal(t, 5, s.MinutesSinceLastReading)
	assert.Equal(t, "ATTENTION REQUIRED", s.Headline())
	assert.Equal(t, []string{"high_water", "low_battery"}, s.Reasons())
}

func TestEvaluate_Normal(t *testing.T) {
	s := Evaluate(normalReading(2*time.Minute), testNow, DefaultThresholds())

	assert.True(t, s.IsSystemHealthy)
	assert.Equal(t, "SYSTEM NORMAL", s.Headline())
	assert.Empty(t, s.Reasons())
	assert.Equal(t, BatteryDischarging, s.BatteryState)
}

func TestEvaluate_SingleRiskFactor(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Reading)
		reason string
	}{
		{"stale reading", func(r *models.Reading) { r.Timestamp = testNow.Add(-time.Hour) }, "offline"},
		{"high water", func(r *models.Reading) { r.WaterLevelInches = 6.01 }, "high_water"},
		{"power outage", func(r *models.Reading) { r.MainsPowerOn = false }, "power_outage"},
		{"low battery", func(r *models.Reading) { r.BatteryVoltage = 11.49 }, "low_battery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := normalReading(time.Minute)
			tt.mutate(&r)

			s := Evaluate(r, testNow, DefaultThresholds())

			assert.False(t, s.IsSystemHealthy)
			assert.Equal(t, []string{tt.reason}, s.Reasons())
		})
	}
}

func TestEvaluate_PowerOffIsAlwaysUnhealthy(t *testing.T) {
	levels := []float64{-1, 0, 2.5, 6, 9}
	volts := []float64{10.9, 11.5, 12.4, 13.0, 13.8}
	ages := []time.Duration{0, 3 * time.Minute, 14 * time.Minute, 30 * time.Minute}

	for _, level := range levels {
		for _, v := range volts {
			for _, age := range ages {
				r := models.Reading{
					Timestamp:        testNow.Add(-age),
					WaterLevelInches: level,
					BatteryVoltage:   v,
					MainsPowerOn:     false,
				}
				s := Evaluate(r, testNow, DefaultThresholds())
				require.False(t, s.IsSystemHealthy, "level=%v volts=%v age=%v", level, v, age)
			}
		}
	}
}

func TestEvaluate_OfflineBoundary(t *testing.T) {
	th := DefaultThresholds()

	s := Evaluate(normalReading(15*time.Minute), testNow, th)
	assert.False(t, s.IsOnline, "a reading exactly offline_after_minutes old is offline")
	assert.Equal(t, 15, s.MinutesSinceLastReading)

	s = Evaluate(normalReading(15*time.Minute-time.Second), testNow, th)
	assert.True(t, s.IsOnline)
	assert.Equal(t, 14, s.MinutesSinceLastReading)
}

func TestEvaluate_FutureReadingCountsAsFresh(t *testing.T) {
	s := Evaluate(normalReading(-2*time.Minute), testNow, DefaultThresholds())
	assert.Equal(t, 0, s.MinutesSinceLastReading)
	assert.True(t, s.IsOnline)
}

func TestEvaluate_EmptyPitIsValid(t *testing.T) {
	r := normalReading(time.Minute)
	r.WaterLevelInches = -0.4

	s := Evaluate(r, testNow, DefaultThresholds())
	assert.False(t, s.IsHighWater)
	assert.True(t, s.IsSystemHealthy)
}

func TestEvaluate_StricterHighWaterVariant(t *testing.T) {
	th := DefaultThresholds()
	th.HighWaterInches = 10.0
	r := normalReading(time.Minute)
	r.WaterLevelInches = 7.2

	s := Evaluate(r, testNow, th)
	assert.False(t, s.IsHighWater)
}

func TestEvaluate_BatteryStates(t *testing.T) {
	tests := []struct {
		volts float64
		want  BatteryState
	}{
		{13.4, BatteryCharging},
		{13.0, BatteryDischarging},
		{12.2, BatteryDischarging},
		{11.5, BatteryDischarging},
		{11.2, BatteryLow},
	}
	for _, tt := range tests {
		r := normalReading(time.Minute)
		r.BatteryVoltage = tt.volts
		s := Evaluate(r, testNow, DefaultThresholds())
		assert.Equal(t, tt.want, s.BatteryState, "volts=%v", tt.volts)
	}
}

func TestStatus_SignalDBm(t *testing.T) {
	r := normalReading(time.Minute)
	s := Evaluate(r, testNow, DefaultThresholds())
	assert.Equal(t, NoSignalDBm, s.SignalDBm())
	assert.False(t, s.SignalGood())
	assert.True(t, s.IsSystemHealthy, "missing signal must not affect health")

	rssi := -61
	r.WifiSignalDBm = &rssi
	s = Evaluate(r, testNow, DefaultThresholds())
	assert.Equal(t, -61, s.SignalDBm())
	assert.True(t, s.SignalGood())
}

func TestEvaluateLatest_NoData(t *testing.T) {
	_, ok := EvaluateLatest(nil, testNow, DefaultThresholds())
	assert.False(t, ok)

	r := normalReading(time.Minute)
	s, ok := EvaluateLatest(&r, testNow, DefaultThresholds())
	assert.True(t, ok)
	assert.True(t, s.IsSystemHealthy)
}

func TestEvaluate_RepeatedCallsAreIdempotent(t *testing.T) {
	r := normalReading(time.Minute)
	first := Evaluate(r, testNow, DefaultThresholds())
	second := Evaluate(r, testNow, DefaultThresholds())
	assert.Equal(t, first, second)

	later := Evaluate(r, testNow.Add(20*time.Minute), DefaultThresholds())
	assert.False(t, later.IsOnline)
	assert.Equal(t, 21, later.MinutesSinceLastReading)
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Thresholds)
		wantErr bool
	}{
		{"defaults", func(*Thresholds) {}, false},
		{"strict high water", func(th *Thresholds) { th.HighWaterInches = 10 }, false},
		{"zero offline", func(th *Thresholds) { th.OfflineAfterMinutes = 0 }, true},
		{"high water above range", func(th *Thresholds) { th.HighWaterInches = 12 }, true},
		{"high water zero", func(th *Thresholds) { th.HighWaterInches = 0 }, true},
		{"low above charging", func(th *Thresholds) { th.LowBatteryVolts = 13.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
