package analytics

import (
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// minMaxGallons keeps the intensity denominator well above zero.
const minMaxGallons = 1.0

// Heatmap is a week-aligned calendar grid, Sunday first, seven cells per row.
type Heatmap struct {
	Cells []models.HeatmapCell
	// MaxGallons is the busiest in-range day, never below 1.
	MaxGallons float64
	// First and Last bound the in-range dates.
	First models.Date
	Last  models.Date
}

// BuildHeatmap lays out the local dates from today-windowDays through today
// (in loc), both inclusive, on a grid that starts on the Sunday on or before
// the first date. Cells outside the range pad the grid to whole weeks and
// are marked empty. Summaries are matched by exact date; missing days count
// as zero.
//
// The grid holds 7*ceil((windowDays+1+offset)/7) cells, where offset is the
// weekday of the first in-range date, so the last row always reaches today.
func BuildHeatmap(summaries []models.DailySummary, windowDays int, now time.Time, loc *time.Location) Heatmap {
	if windowDays < 0 {
		windowDays = 0
	}
	last := models.DateOf(now, loc)
	first := last.AddDays(-windowDays)
	offset := int(first.Weekday())
	gridStart := first.AddDays(-offset)

	weeks := (windowDays + 1 + offset + 6) / 7

	byDate := make(map[models.Date]models.DailySummary, len(summaries))
	for _, s := range summaries {
		if _, seen := byDate[s.Date]; !seen {
			byDate[s.Date] = s
		}
	}

	h := Heatmap{
		Cells:      make([]models.HeatmapCell, 0, weeks*7),
		MaxGallons: minMaxGallons,
		First:      first,
		Last:       last,
	}
	for i := 0; i < weeks*7; i++ {
		d := gridStart.AddDays(i)
		cell := models.HeatmapCell{
			Date:    d,
			IsEmpty: d.Before(first) || d.After(last),
		}
		if !cell.IsEmpty {
			s := byDate[d]
			cell.Cycles = s.TotalCycles
			cell.Gallons = s.TotalGallons
			if cell.Gallons > h.MaxGallons {
				h.MaxGallons = cell.Gallons
			}
		}
		h.Cells = append(h.Cells, cell)
	}
	return h
}

// Intensity returns the cell's share of the busiest day in [0, 1]. Empty
// padding cells have no intensity.
func (h Heatmap) Intensity(c models.HeatmapCell) float64 {
	if c.IsEmpty || c.Gallons <= 0 {
		return 0
	}
	max := h.MaxGallons
	if max < minMaxGallons {
		max = minMaxGallons
	}
	v := c.Gallons / max
	if v > 1 {
		return 1
	}
	return v
}

// HeatLevel buckets an intensity into the six steps of the colour scale:
// 0 for no activity, then 1..5 in fifths.
func HeatLevel(intensity float64) int {
	switch {
	case intensity <= 0:
		return 0
	case intensity < 0.2:
		return 1
	case intensity < 0.4:
		return 2
	case intensity < 0.6:
		return 3
	case intensity < 0.8:
		return 4
	default:
		return 5
	}
}
