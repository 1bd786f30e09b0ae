package analytics

import (
	"sort"
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// GallonsEstimator converts one completed pump cycle into an estimated
// pumped volume. The conversion belongs to the caller; the aggregator only
// sums what it returns.
type GallonsEstimator interface {
	CycleGallons(end models.Event) float64
}

// GallonsFunc adapts a function to GallonsEstimator.
type GallonsFunc func(end models.Event) float64

func (f GallonsFunc) CycleGallons(end models.Event) float64 {
	return f(end)
}

// DayInput is everything observed on one local calendar day.
type DayInput struct {
	Date     models.Date
	Readings []models.Reading
	Events   []models.Event
	Env      []models.EnvSample
	Gallons  GallonsEstimator
}

// AggregateDay reduces one day of telemetry into its summary. A day with no
// data yields zero counts and nil averages; absence of data is not an error.
//
// Cycles are counted on pump_cycle_end markers so that a cycle still running
// at the end of the day is attributed to the day it finished.
func AggregateDay(in DayInput) models.DailySummary {
	summary := models.DailySummary{Date: in.Date}

	for _, ev := range in.Events {
		if ev.Type != models.EventPumpCycleEnd {
			continue
		}
		summary.TotalCycles++
		if in.Gallons != nil {
			if g := in.Gallons.CycleGallons(ev); g > 0 {
				summary.TotalGallons += g
			}
		}
	}

	for i, r := range in.Readings {
		if i == 0 || r.WaterLevelInches > summary.MaxWaterLevel {
			summary.MaxWaterLevel = r.WaterLevelInches
		}
	}

	var temps, hums []float64
	for _, s := range in.Env {
		if s.TemperatureF != nil {
			temps = append(temps, *s.TemperatureF)
		}
		if s.HumidityPct != nil {
			hums = append(hums, *s.HumidityPct)
		}
	}
	summary.AvgTemperatureF = meanOrNil(temps)
	summary.AvgHumidityPct = meanOrNil(hums)

	return summary
}

// SplitByDay groups raw series into one DayInput per local calendar day in
// loc, ordered by date. Days with no data at all are not emitted.
func SplitByDay(readings []models.Reading, events []models.Event, env []models.EnvSample, loc *time.Location, gallons GallonsEstimator) []DayInput {
	days := make(map[models.Date]*DayInput)
	get := func(t time.Time) *DayInput {
		d := models.DateOf(t, loc)
		in, ok := days[d]
		if !ok {
			in = &DayInput{Date: d, Gallons: gallons}
			days[d] = in
		}
		return in
	}

	for _, r := range readings {
		in := get(r.Timestamp)
		in.Readings = append(in.Readings, r)
	}
	for _, ev := range events {
		in := get(ev.Timestamp)
		in.Events = append(in.Events, ev)
	}
	for _, s := range env {
		in := get(s.Timestamp)
		in.Env = append(in.Env, s)
	}

	out := make([]DayInput, 0, len(days))
	for _, in := range days {
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// HumidityLevel classifies the weekly peak humidity.
type HumidityLevel string

const (
	HumidityNormal   HumidityLevel = "normal"
	HumidityElevated HumidityLevel = "elevated"
	HumidityHigh     HumidityLevel = "high"
)

// Range summarizes a set of daily averages.
type Range struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// WeekSummary is the rollup shown for the trailing week.
type WeekSummary struct {
	Days             []models.DailySummary
	TotalCycles      int
	TotalGallons     float64
	AvgCyclesPerDay  float64
	AvgGallonsPerDay float64
	Temperature      *Range
	Humidity         *Range
}

// HumidityLevel grades the week's peak humidity. Returns "" when the week
// has no humidity samples.
func (w WeekSummary) HumidityLevel() HumidityLevel {
	if w.Humidity == nil {
		return ""
	}
	switch {
	case w.Humidity.Max > 70:
		return HumidityHigh
	case w.Humidity.Max > 50:
		return HumidityElevated
	default:
		return HumidityNormal
	}
}

// SummarizeWeek totals a run of daily summaries. Averages per day divide by
// the number of summaries present; an empty run yields zeros.
func SummarizeWeek(days []models.DailySummary) WeekSummary {
	w := WeekSummary{Days: days}
	var temps, hums []float64
	for _, d := range days {
		w.TotalCycles += d.TotalCycles
		w.TotalGallons += d.TotalGallons
		if d.AvgTemperatureF != nil {
			temps = append(temps, *d.AvgTemperatureF)
		}
		if d.AvgHumidityPct != nil {
			hums = append(hums, *d.AvgHumidityPct)
		}
	}
	if n := len(days); n > 0 {
		w.AvgCyclesPerDay = float64(w.TotalCycles) / float64(n)
		w.AvgGallonsPerDay = w.TotalGallons / float64(n)
	}
	w.Temperature = rangeOrNil(temps)
	w.Humidity = rangeOrNil(hums)
	return w
}

func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

func rangeOrNil(values []float64) *Range {
	if len(values) == 0 {
		return nil
	}
	r := Range{Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	r.Avg = sum / float64(len(values))
	return &r
}
