package analytics

import (
	"sort"
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// AnalyzeIntervals computes, for each local day in loc, the mean number of
// minutes between consecutive pump_cycle_end events. Only events within
// [now-window, now] are considered; other event types are ignored.
//
// Days are taken in loc, not UTC, so that they line up with the daily
// summaries. A day with a single cycle reports nil: one cycle has no
// interval, and reporting 0 would read as a pump that never stops.
func AnalyzeIntervals(events []models.Event, window time.Duration, now time.Time, loc *time.Location) []models.IntervalResult {
	from := now.Add(-window)

	byDay := make(map[models.Date][]time.Time)
	for _, ev := range events {
		if ev.Type != models.EventPumpCycleEnd {
			continue
		}
		if ev.Timestamp.Before(from) || ev.Timestamp.After(now) {
			continue
		}
		d := models.DateOf(ev.Timestamp, loc)
		byDay[d] = append(byDay[d], ev.Timestamp)
	}

	results := make([]models.IntervalResult, 0, len(byDay))
	for d, stamps := range byDay {
		results = append(results, models.IntervalResult{
			Date:                    d,
			AvgMinutesBetweenCycles: meanGapMinutes(stamps),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date.Before(results[j].Date) })
	return results
}

func meanGapMinutes(stamps []time.Time) *float64 {
	if len(stamps) < 2 {
		return nil
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })
	var total time.Duration
	for i := 1; i < len(stamps); i++ {
		total += stamps[i].Sub(stamps[i-1])
	}
	avg := total.Minutes() / float64(len(stamps)-1)
	return &avg
}

// WeeklyAverageInterval averages the days that have an interval. Days with
// nil are left out of both the sum and the count; nil when no day qualifies.
func WeeklyAverageInterval(results []models.IntervalResult) *float64 {
	var values []float64
	for _, r := range results {
		if r.AvgMinutesBetweenCycles != nil {
			values = append(values, *r.AvgMinutesBetweenCycles)
		}
	}
	return meanOrNil(values)
}
