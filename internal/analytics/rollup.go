package analytics

import (
	"strings"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// Totals is the all-time rollup over the summary history.
type Totals struct {
	TotalCycles   int
	TotalGallons  float64
	BusiestDay    *models.DailySummary
	MostCyclesDay *models.DailySummary
}

// Rollup sums the history and picks the record days. On ties the first
// summary in input order wins.
func Rollup(summaries []models.DailySummary) Totals {
	var t Totals
	for _, s := range summaries {
		t.TotalCycles += s.TotalCycles
		t.TotalGallons += s.TotalGallons
		if t.BusiestDay == nil || s.TotalGallons > t.BusiestDay.TotalGallons {
			t.BusiestDay = &s
		}
		if t.MostCyclesDay == nil || s.TotalCycles > t.MostCyclesDay.TotalCycles {
			t.MostCyclesDay = &s
		}
	}
	return t
}

// RecentAlerts drops pump cycle markers and keeps at most limit events in
// input order. limit <= 0 keeps everything.
func RecentAlerts(events []models.Event, limit int) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if ev.Type.IsCycleMarker() {
			continue
		}
		out = append(out, ev)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// EventTitle turns an event tag into a display title, "power_outage"
// becoming "Power Outage".
func EventTitle(t models.EventType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
