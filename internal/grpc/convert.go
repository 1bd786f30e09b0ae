package server

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tejusbharadwaj/sumpwatch/internal/analytics"
	"github.com/tejusbharadwaj/sumpwatch/internal/api"
	"github.com/tejusbharadwaj/sumpwatch/internal/models"
	pb "github.com/tejusbharadwaj/sumpwatch/proto"
)

const noDataHeadline = "NO SENSOR DATA"

func toHealthResponse(report api.HealthReport) *pb.HealthResponse {
	if !report.HasData {
		return &pb.HealthResponse{
			HasData:   false,
			Headline:  noDataHeadline,
			SignalDbm: analytics.NoSignalDBm,
		}
	}
	s := report.Status
	return &pb.HealthResponse{
		HasData:                 true,
		Online:                  s.IsOnline,
		HighWater:               s.IsHighWater,
		PumpRunning:             s.IsPumpRunning,
		Charging:                s.IsCharging,
		LowBattery:              s.IsLowBattery,
		Healthy:                 s.IsSystemHealthy,
		Headline:                s.Headline(),
		Reasons:                 s.Reasons(),
		MinutesSinceLastReading: int32(s.MinutesSinceLastReading),
		BatteryState:            string(s.BatteryState),
		SignalDbm:               int32(s.SignalDBm()),
		SignalGood:              s.SignalGood(),
		WaterLevelInches:        s.Reading.WaterLevelInches,
		BatteryVoltage:          s.Reading.BatteryVoltage,
		MainsPowerOn:            s.MainsPowerOn,
		LastReadingAt:           timestamppb.New(s.Reading.Timestamp),
	}
}

func toHistoryResponse(h api.History) *pb.HistoryResponse {
	resp := &pb.HistoryResponse{
		Points:            make([]*pb.HistoryPoint, 0, len(h.Points)),
		PumpTriggerInches: h.PumpTriggerInches,
		HighAlarmInches:   h.HighAlarmInches,
	}
	if !h.Anchor.IsZero() {
		resp.Anchor = timestamppb.New(h.Anchor)
	}
	for _, r := range h.Points {
		resp.Points = append(resp.Points, &pb.HistoryPoint{
			Time:             timestamppb.New(r.Timestamp),
			WaterLevelInches: r.WaterLevelInches,
		})
	}
	return resp
}

func toDaySummary(d *models.DailySummary) *pb.DaySummary {
	if d == nil {
		return nil
	}
	return &pb.DaySummary{
		Date:            d.Date.String(),
		TotalCycles:     int32(d.TotalCycles),
		TotalGallons:    d.TotalGallons,
		MaxWaterLevel:   d.MaxWaterLevel,
		AvgTemperatureF: d.AvgTemperatureF,
		AvgHumidityPct:  d.AvgHumidityPct,
	}
}

func toRange(r *analytics.Range) *pb.Range {
	if r == nil {
		return nil
	}
	return &pb.Range{Avg: r.Avg, Min: r.Min, Max: r.Max}
}

func toStatsResponse(st api.Stats) *pb.StatsResponse {
	weekly := &pb.WeeklyStats{
		Days:             make([]*pb.DaySummary, 0, len(st.Week.Days)),
		TotalCycles:      int32(st.Week.TotalCycles),
		TotalGallons:     st.Week.TotalGallons,
		AvgCyclesPerDay:  st.Week.AvgCyclesPerDay,
		AvgGallonsPerDay: st.Week.AvgGallonsPerDay,
		Temperature:      toRange(st.Week.Temperature),
		Humidity:         toRange(st.Week.Humidity),
		HumidityLevel:    string(st.Week.HumidityLevel()),
	}
	for i := range st.Week.Days {
		weekly.Days = append(weekly.Days, toDaySummary(&st.Week.Days[i]))
	}

	heatmap := &pb.Heatmap{
		Cells:      make([]*pb.HeatmapCell, 0, len(st.Heatmap.Cells)),
		MaxGallons: st.Heatmap.MaxGallons,
		First:      st.Heatmap.First.String(),
		Last:       st.Heatmap.Last.String(),
	}
	for _, c := range st.Heatmap.Cells {
		intensity := st.Heatmap.Intensity(c)
		heatmap.Cells = append(heatmap.Cells, &pb.HeatmapCell{
			Date:      c.Date.String(),
			Cycles:    int32(c.Cycles),
			Gallons:   c.Gallons,
			Empty:     c.IsEmpty,
			Intensity: intensity,
			Level:     int32(analytics.HeatLevel(intensity)),
		})
	}

	intervals := make([]*pb.IntervalDay, 0, len(st.Intervals))
	for _, r := range st.Intervals {
		intervals = append(intervals, &pb.IntervalDay{
			Date:                    r.Date.String(),
			AvgMinutesBetweenCycles: r.AvgMinutesBetweenCycles,
		})
	}

	alerts := make([]*pb.Alert, 0, len(st.RecentAlerts))
	for _, ev := range st.RecentAlerts {
		alerts = append(alerts, &pb.Alert{
			Id:        ev.ID,
			Type:      string(ev.Type),
			Title:     analytics.EventTitle(ev.Type),
			Message:   ev.Message,
			CreatedAt: timestampOrNil(ev.Timestamp),
		})
	}

	return &pb.StatsResponse{
		Today:             st.Today.String(),
		Weekly:            weekly,
		Heatmap:           heatmap,
		Intervals:         intervals,
		WeeklyAvgInterval: st.WeeklyAvgInterval,
		Records: &pb.Records{
			TotalCycles:   int32(st.Totals.TotalCycles),
			TotalGallons:  st.Totals.TotalGallons,
			BusiestDay:    toDaySummary(st.Totals.BusiestDay),
			MostCyclesDay: toDaySummary(st.Totals.MostCyclesDay),
		},
		RecentAlerts: alerts,
		Degraded:     st.Degraded,
	}
}

func timestampOrNil(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}
