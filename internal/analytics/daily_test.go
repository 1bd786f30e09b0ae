package analytics

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

func ptr[T any](v T) *T { return &v }

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func fixedGallons(g float64) GallonsEstimator {
	return GallonsFunc(func(models.Event) float64 { return g })
}

func TestAggregateDay_NoData(t *testing.T) {
	d := models.MustParseDate("2024-01-05")

	got := AggregateDay(DayInput{Date: d})

	assert.Equal(t, models.DailySummary{Date: d}, got)
	assert.Nil(t, got.AvgTemperatureF)
	assert.Nil(t, got.AvgHumidityPct)
}

func TestAggregateDay(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	in := DayInput{
		Date: models.DateOf(day, time.UTC),
		Readings: []models.Reading{
			readingAt(day.Add(1*time.Hour), 2.0),
			readingAt(day.Add(2*time.Hour), 5.5),
			readingAt(day.Add(3*time.Hour), 3.25),
		},
		Events: []models.Event{
			{Type: models.EventPumpCycleStart, Timestamp: day.Add(time.Hour)},
			{Type: models.EventPumpCycleEnd, Timestamp: day.Add(time.Hour + 2*time.Minute)},
			{Type: models.EventPumpCycleEnd, Timestamp: day.Add(5 * time.Hour)},
			{Type: models.EventPowerOutage, Timestamp: day.Add(6 * time.Hour)},
			{Type: models.EventPumpCycleEnd, Timestamp: day.Add(9 * time.Hour)},
		},
		Env: []models.EnvSample{
			{TemperatureF: ptr(60.0), HumidityPct: ptr(40.0)},
			{TemperatureF: ptr(64.0)},
			{HumidityPct: ptr(60.0)},
		},
		Gallons: fixedGallons(12),
	}

	got := AggregateDay(in)

	assert.Equal(t, 3, got.TotalCycles)
	assert.InDelta(t, 36.0, got.TotalGallons, 1e-9)
	assert.Equal(t, 5.5, got.MaxWaterLevel)
	require.NotNil(t, got.AvgTemperatureF)
	assert.InDelta(t, 62.0, *got.AvgTemperatureF, 1e-9)
	require.NotNil(t, got.AvgHumidityPct)
	assert.InDelta(t, 50.0, *got.AvgHumidityPct, 1e-9)
}

func TestAggregateDay_NegativeEstimatesIgnored(t *testing.T) {
	in := DayInput{
		Date:    models.MustParseDate("2024-01-05"),
		Events:  []models.Event{{Type: models.EventPumpCycleEnd}, {Type: models.EventPumpCycleEnd}},
		Gallons: fixedGallons(-3),
	}

	got := AggregateDay(in)
	assert.Equal(t, 2, got.TotalCycles)
	assert.Zero(t, got.TotalGallons)
}

func TestAggregateDay_BelowSensorLevels(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	in := DayInput{
		Date: models.DateOf(day, time.UTC),
		Readings: []models.Reading{
			readingAt(day.Add(time.Hour), -0.8),
			readingAt(day.Add(2*time.Hour), -0.2),
		},
	}

	got := AggregateDay(in)
	assert.Equal(t, -0.2, got.MaxWaterLevel)
}

func TestSplitByDay_UsesLocalDays(t *testing.T) {
	loc := newYork(t)
	// 03:00 UTC on the 15th is still the 14th in New York.
	late := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	noon := time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)

	days := SplitByDay(
		[]models.Reading{readingAt(noon, 2), readingAt(late, 4)},
		[]models.Event{{Type: models.EventPumpCycleEnd, Timestamp: late}},
		[]models.EnvSample{{Timestamp: noon, TemperatureF: ptr(58.0)}},
		loc,
		fixedGallons(10),
	)

	require.Len(t, days, 2)
	assert.Equal(t, models.MustParseDate("2024-01-14"), days[0].Date)
	assert.Len(t, days[0].Readings, 1)
	assert.Len(t, days[0].Events, 1)
	assert.Empty(t, days[0].Env)
	assert.Equal(t, models.MustParseDate("2024-01-15"), days[1].Date)
	assert.Len(t, days[1].Env, 1)

	s := AggregateDay(days[0])
	assert.Equal(t, 1, s.TotalCycles)
	assert.Equal(t, 10.0, s.TotalGallons)
}

func TestSummarizeWeek(t *testing.T) {
	days := []models.DailySummary{
		{Date: models.MustParseDate("2024-01-01"), TotalCycles: 4, TotalGallons: 40, AvgTemperatureF: ptr(60.0), AvgHumidityPct: ptr(45.0)},
		{Date: models.MustParseDate("2024-01-02"), TotalCycles: 6, TotalGallons: 80, AvgHumidityPct: ptr(72.0)},
		{Date: models.MustParseDate("2024-01-03"), TotalCycles: 2, TotalGallons: 0, AvgTemperatureF: ptr(66.0)},
	}

	w := SummarizeWeek(days)

	assert.Equal(t, 12, w.TotalCycles)
	assert.Equal(t, 120.0, w.TotalGallons)
	assert.InDelta(t, 4.0, w.AvgCyclesPerDay, 1e-9)
	assert.InDelta(t, 40.0, w.AvgGallonsPerDay, 1e-9)
	require.NotNil(t, w.Temperature)
	assert.Equal(t, Range{Avg: 63, Min: 60, Max: 66}, *w.Temperature)
	require.NotNil(t, w.Humidity)
	assert.Equal(t, 72.0, w.Humidity.Max)
	assert.Equal(t, HumidityHigh, w.HumidityLevel())
}

func TestSummarizeWeek_Empty(t *testing.T) {
	w := SummarizeWeek(nil)

	assert.Zero(t, w.TotalCycles)
	assert.Zero(t, w.AvgCyclesPerDay)
	assert.Nil(t, w.Temperature)
	assert.Equal(t, HumidityLevel(""), w.HumidityLevel())
}

func TestWeekSummary_HumidityLevel(t *testing.T) {
	tests := []struct {
		max  float64
		want HumidityLevel
	}{
		{35, HumidityNormal},
		{50, HumidityNormal},
		{50.5, HumidityElevated},
		{70, HumidityElevated},
		{70.1, HumidityHigh},
	}
	for _, tt := range tests {
		w := WeekSummary{Humidity: &Range{Max: tt.max}}
		assert.Equal(t, tt.want, w.HumidityLevel(), "max=%v", tt.max)
	}
}
