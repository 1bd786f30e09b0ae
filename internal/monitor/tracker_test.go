package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/sumpwatch/internal/analytics"
	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

var t0 = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func evaluate(level, volts float64, mains bool, age time.Duration) analytics.Status {
	r := models.Reading{
		Timestamp:        t0.Add(-age),
		WaterLevelInches: level,
		BatteryVoltage:   volts,
		MainsPowerOn:     mains,
	}
	return analytics.Evaluate(r, t0, analytics.DefaultThresholds())
}

func kinds(alerts []Alert) []Kind {
	out := make([]Kind, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Kind)
	}
	return out
}

func TestTracker_BaselineEmitsNothing(t *testing.T) {
	tr := NewTracker(t0)

	alerts := tr.Observe(evaluate(9, 10, false, time.Hour), t0)

	assert.Empty(t, alerts)
	snap := tr.Snapshot()
	assert.True(t, snap.Baselined)
	assert.True(t, snap.HasData)
	assert.Zero(t, snap.AlertCount)
	assert.Nil(t, snap.LastAlert)
}

func TestTracker_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from, to analytics.Status
		want     []Kind
	}{
		{
			name: "steady state",
			from: evaluate(2, 12.8, true, time.Minute),
			to:   evaluate(2.5, 12.9, true, time.Minute),
			want: []Kind{},
		},
		{
			name: "water rises",
			from: evaluate(2, 12.8, true, time.Minute),
			to:   evaluate(7.2, 12.8, true, time.Minute),
			want: []Kind{KindHighWater, KindHeadline},
		},
		{
			name: "power lost while already high",
			from: evaluate(7.2, 12.8, true, time.Minute),
			to:   evaluate(7.2, 12.8, false, time.Minute),
			want: []Kind{KindPowerOutage},
		},
		{
			name: "everything recovers",
			from: evaluate(7.2, 11.0, false, time.Hour),
			to:   evaluate(2, 12.8, true, time.Minute),
			want: []Kind{KindOnline, KindWaterNormal, KindPowerRestored, KindBatteryOK, KindHeadline},
		},
		{
			name: "sensor goes quiet",
			from: evaluate(2, 12.8, true, time.Minute),
			to:   evaluate(2, 12.8, true, 20*time.Minute),
			want: []Kind{KindOffline, KindHeadline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(t0)
			tr.Observe(tt.from, t0)

			alerts := tr.Observe(tt.to, t0.Add(time.Minute))

			assert.Equal(t, tt.want, kinds(alerts))
			assert.Equal(t, len(tt.want), tr.Snapshot().AlertCount)
		})
	}
}

func TestTracker_PumpRunningDoesNotAlert(t *testing.T) {
	tr := NewTracker(t0)
	idle := evaluate(4, 12.8, true, time.Minute)
	running := idle
	running.IsPumpRunning = true

	tr.Observe(idle, t0)

	assert.Empty(t, tr.Observe(running, t0.Add(time.Minute)))
}

func TestTracker_Severity(t *testing.T) {
	tr := NewTracker(t0)
	tr.Observe(evaluate(2, 12.8, true, time.Minute), t0)

	raised := tr.Observe(evaluate(7.2, 12.8, true, time.Minute), t0.Add(time.Minute))
	require.Len(t, raised, 2)
	assert.Equal(t, SeverityCritical, raised[0].Severity)
	assert.Equal(t, "ATTENTION REQUIRED", raised[1].Message)
	assert.False(t, raised[1].Healthy)

	cleared := tr.Observe(evaluate(2, 12.8, true, time.Minute), t0.Add(2*time.Minute))
	require.Len(t, cleared, 2)
	assert.Equal(t, SeverityInfo, cleared[0].Severity)
	assert.Equal(t, "SYSTEM NORMAL", cleared[1].Headline)

	snap := tr.Snapshot()
	assert.Equal(t, 4, snap.AlertCount)
	require.NotNil(t, snap.LastAlert)
	assert.Equal(t, KindHeadline, snap.LastAlert.Kind)
	assert.Equal(t, t0.Add(2*time.Minute), snap.LastObserved)
}

func TestTracker_SnapshotIsACopy(t *testing.T) {
	tr := NewTracker(t0)
	tr.now = func() time.Time { return t0.Add(time.Hour) }
	tr.Observe(evaluate(2, 12.8, true, time.Minute), t0)
	tr.Observe(evaluate(7.2, 12.8, true, time.Minute), t0)

	snap := tr.Snapshot()
	snap.LastAlert.Message = "changed"

	assert.NotEqual(t, "changed", tr.Snapshot().LastAlert.Message)
	assert.Equal(t, time.Hour, snap.Uptime())
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker(t0)
	statuses := []analytics.Status{
		evaluate(2, 12.8, true, time.Minute),
		evaluate(7.2, 11.0, false, time.Minute),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tr.Observe(statuses[(i+j)%2], t0)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = tr.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.True(t, tr.Snapshot().Baselined)
}
