// Package monitor follows the evaluated health of the pit between polls and
// turns state changes into alerts. The tracker is read by the ops HTTP
// handlers while the scheduler writes to it.
package monitor

import (
	"sync"
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/analytics"
)

// Kind names what changed.
type Kind string

const (
	KindOffline       Kind = "offline"
	KindOnline        Kind = "online"
	KindHighWater     Kind = "high_water"
	KindWaterNormal   Kind = "water_normal"
	KindPowerOutage   Kind = "power_outage"
	KindPowerRestored Kind = "power_restored"
	KindLowBattery    Kind = "low_battery"
	KindBatteryOK     Kind = "battery_ok"
	KindHeadline      Kind = "headline"
)

// Severity is either "critical" or "info".
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityInfo     Severity = "info"
)

// Alert is a single transition observed by the tracker.
type Alert struct {
	Kind      Kind      `json:"kind"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Headline  string    `json:"headline"`
	Healthy   bool      `json:"healthy"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is a point-in-time view of the tracker.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Baselined    bool             `json:"baselined"`
	HasData      bool             `json:"has_data"`
	Last         analytics.Status `json:"-"`
	LastObserved time.Time        `json:"last_observed"`
	LastAlert    *Alert           `json:"last_alert,omitempty"`
	AlertCount   int              `json:"alert_count"`
	StartTime    time.Time        `json:"start_time"`
	Now          time.Time        `json:"now"`
}

// Uptime returns the duration since the tracker was created.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds the last evaluated status behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker. It emits nothing until it has a baseline.
func NewTracker(startTime time.Time) *Tracker {
	return &Tracker{
		snap: Snapshot{StartTime: startTime},
		now:  time.Now,
	}
}

// Observe records status as seen at at and returns the alerts for every
// factor that changed since the previous observation. The first observation
// only sets the baseline.
func (t *Tracker) Observe(status analytics.Status, at time.Time) []Alert {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.snap.Last
	baselined := t.snap.Baselined

	t.snap.Last = status
	t.snap.HasData = true
	t.snap.LastObserved = at
	t.snap.Baselined = true

	if !baselined {
		return nil
	}

	alerts := diff(prev, status, at)
	if len(alerts) > 0 {
		last := alerts[len(alerts)-1]
		t.snap.LastAlert = &last
		t.snap.AlertCount += len(alerts)
	}
	return alerts
}

// Snapshot returns a copy of the tracker state with Now set to the current time.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	if s.LastAlert != nil {
		a := *s.LastAlert
		s.LastAlert = &a
	}
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}

type factor struct {
	failing      func(analytics.Status) bool
	raise, clear Kind
	raiseMsg     string
	clearMsg     string
}

// Ordered as Status.Reasons reports them.
var factors = []factor{
	{
		failing:  func(s analytics.Status) bool { return !s.IsOnline },
		raise:    KindOffline,
		clear:    KindOnline,
		raiseMsg: "sensor stopped reporting",
		clearMsg: "sensor reporting again",
	},
	{
		failing:  func(s analytics.Status) bool { return s.IsHighWater },
		raise:    KindHighWater,
		clear:    KindWaterNormal,
		raiseMsg: "water level above alarm threshold",
		clearMsg: "water level back below alarm threshold",
	},
	{
		failing:  func(s analytics.Status) bool { return !s.MainsPowerOn },
		raise:    KindPowerOutage,
		clear:    KindPowerRestored,
		raiseMsg: "mains power lost, running on battery",
		clearMsg: "mains power restored",
	},
	{
		failing:  func(s analytics.Status) bool { return s.IsLowBattery },
		raise:    KindLowBattery,
		clear:    KindBatteryOK,
		raiseMsg: "backup battery low",
		clearMsg: "backup battery recovered",
	},
}

func diff(prev, cur analytics.Status, at time.Time) []Alert {
	var alerts []Alert
	headline := cur.Headline()

	for _, f := range factors {
		was, is := f.failing(prev), f.failing(cur)
		if was == is {
			continue
		}
		a := Alert{
			Headline:  headline,
			Healthy:   cur.IsSystemHealthy,
			Timestamp: at,
		}
		if is {
			a.Kind, a.Severity, a.Message = f.raise, SeverityCritical, f.raiseMsg
		} else {
			a.Kind, a.Severity, a.Message = f.clear, SeverityInfo, f.clearMsg
		}
		alerts = append(alerts, a)
	}

	if prev.Headline() != headline {
		sev := SeverityInfo
		if !cur.IsSystemHealthy {
			sev = SeverityCritical
		}
		alerts = append(alerts, Alert{
			Kind:      KindHeadline,
			Severity:  sev,
			Message:   headline,
			Headline:  headline,
			Healthy:   cur.IsSystemHealthy,
			Timestamp: at,
		})
	}
	return alerts
}
