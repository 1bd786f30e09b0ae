// Package pb declares the sumpwatch.v1 dashboard service.
//
// Messages are plain Go structs carried over gRPC with the JSON codec
// registered in codec.go. Timestamps use the well-known protobuf type so
// clients in other languages can map them directly.
package pb

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type HealthRequest struct {
	// Now overrides the server clock; unset means the current time.
	Now *timestamppb.Timestamp `json:"now,omitempty"`
}

func (x *HealthRequest) GetNow() *timestamppb.Timestamp {
	if x == nil {
		return nil
	}
	return x.Now
}

type HealthResponse struct {
	HasData                 bool                   `json:"has_data"`
	Online                  bool                   `json:"online"`
	HighWater               bool                   `json:"high_water"`
	PumpRunning             bool                   `json:"pump_running"`
	Charging                bool                   `json:"charging"`
	LowBattery              bool                   `json:"low_battery"`
	Healthy                 bool                   `json:"healthy"`
	Headline                string                 `json:"headline"`
	Reasons                 []string               `json:"reasons,omitempty"`
	MinutesSinceLastReading int32                  `json:"minutes_since_last_reading"`
	BatteryState            string                 `json:"battery_state"`
	SignalDbm               int32                  `json:"signal_dbm"`
	SignalGood              bool                   `json:"signal_good"`
	WaterLevelInches        float64                `json:"water_level_inches"`
	BatteryVoltage          float64                `json:"battery_voltage"`
	MainsPowerOn            bool                   `json:"mains_power_on"`
	LastReadingAt           *timestamppb.Timestamp `json:"last_reading_at,omitempty"`
}

type HistoryRequest struct {
	WindowHours int32 `json:"window_hours"`
}

func (x *HistoryRequest) GetWindowHours() int32 {
	if x == nil {
		return 0
	}
	return x.WindowHours
}

type HistoryPoint struct {
	Time             *timestamppb.Timestamp `json:"time"`
	WaterLevelInches float64                `json:"water_level_inches"`
}

type HistoryResponse struct {
	Anchor            *timestamppb.Timestamp `json:"anchor,omitempty"`
	Points            []*HistoryPoint        `json:"points"`
	PumpTriggerInches float64                `json:"pump_trigger_inches"`
	HighAlarmInches   float64                `json:"high_alarm_inches"`
}

type StatsRequest struct {
	Now *timestamppb.Timestamp `json:"now,omitempty"`
}

func (x *StatsRequest) GetNow() *timestamppb.Timestamp {
	if x == nil {
		return nil
	}
	return x.Now
}

type DaySummary struct {
	Date            string   `json:"date"`
	TotalCycles     int32    `json:"total_cycles"`
	TotalGallons    float64  `json:"total_gallons"`
	MaxWaterLevel   float64  `json:"max_water_level"`
	AvgTemperatureF *float64 `json:"avg_temperature_f,omitempty"`
	AvgHumidityPct  *float64 `json:"avg_humidity_pct,omitempty"`
}

type Range struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type WeeklyStats struct {
	Days             []*DaySummary `json:"days"`
	TotalCycles      int32         `json:"total_cycles"`
	TotalGallons     float64       `json:"total_gallons"`
	AvgCyclesPerDay  float64       `json:"avg_cycles_per_day"`
	AvgGallonsPerDay float64       `json:"avg_gallons_per_day"`
	Temperature      *Range        `json:"temperature,omitempty"`
	Humidity         *Range        `json:"humidity,omitempty"`
	HumidityLevel    string        `json:"humidity_level,omitempty"`
}

type HeatmapCell struct {
	Date      string  `json:"date"`
	Cycles    int32   `json:"cycles"`
	Gallons   float64 `json:"gallons"`
	Empty     bool    `json:"empty"`
	Intensity float64 `json:"intensity"`
	Level     int32   `json:"level"`
}

type Heatmap struct {
	Cells      []*HeatmapCell `json:"cells"`
	MaxGallons float64        `json:"max_gallons"`
	First      string         `json:"first"`
	Last       string         `json:"last"`
}

type IntervalDay struct {
	Date                    string   `json:"date"`
	AvgMinutesBetweenCycles *float64 `json:"avg_minutes_between_cycles,omitempty"`
}

type Records struct {
	TotalCycles   int32       `json:"total_cycles"`
	TotalGallons  float64     `json:"total_gallons"`
	BusiestDay    *DaySummary `json:"busiest_day,omitempty"`
	MostCyclesDay *DaySummary `json:"most_cycles_day,omitempty"`
}

type Alert struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message,omitempty"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type StatsResponse struct {
	Today             string         `json:"today"`
	Weekly            *WeeklyStats   `json:"weekly"`
	Heatmap           *Heatmap       `json:"heatmap"`
	Intervals         []*IntervalDay `json:"intervals"`
	WeeklyAvgInterval *float64       `json:"weekly_avg_interval,omitempty"`
	Records           *Records       `json:"records"`
	RecentAlerts      []*Alert       `json:"recent_alerts"`
	Degraded          []string       `json:"degraded,omitempty"`
}
