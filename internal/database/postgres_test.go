package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

func TestSummariesQuery(t *testing.T) {
	tests := []struct {
		name      string
		from, to  models.Date
		wantWhere string
		wantArgs  int
	}{
		{"unbounded", models.Date{}, models.Date{}, "", 0},
		{"from only", models.MustParseDate("2024-01-01"), models.Date{}, " WHERE date >= $1", 1},
		{"to only", models.Date{}, models.MustParseDate("2024-01-31"), " WHERE date <= $1", 1},
		{"both", models.MustParseDate("2024-01-01"), models.MustParseDate("2024-01-31"), " WHERE date >= $1 AND date <= $2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := summariesQuery(tt.from, tt.to)

			assert.Contains(t, query, "FROM daily_summaries"+tt.wantWhere+" ORDER BY date ASC")
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestEventsQuery(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args := eventsQuery(EventQuery{
		Types: []models.EventType{models.EventPowerOutage, models.EventHighWater},
		Since: &since,
		Limit: 10,
	})

	assert.Contains(t, query, "WHERE event_type = ANY($1) AND created_at >= $2")
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $3")
	if assert.Len(t, args, 3) {
		assert.Equal(t, pq.Array([]string{"power_outage", "high_water"}), args[0])
		assert.Equal(t, since, args[1])
		assert.Equal(t, 10, args[2])
	}
}

func TestEventsQuery_Defaults(t *testing.T) {
	query, args := eventsQuery(EventQuery{Ascending: true})

	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.Contains(t, query, "ORDER BY created_at ASC")
	assert.Empty(t, args)
}

func TestInsert_ClosedPool(t *testing.T) {
	// sql.Open is lazy, nothing dials until the first query.
	db, err := sql.Open("postgres", "host=localhost dbname=sumpwatch sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	m := metrics.New(prometheus.NewRegistry())
	repo := NewPostgresRepoFromDB(db, m)
	ctx := context.Background()

	err = repo.InsertReadings(ctx, []models.Reading{{Timestamp: time.Now()}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin readings batch: ")
	assert.Contains(t, err.Error(), "database is closed")

	err = repo.InsertEvents(ctx, []models.Event{{Type: models.EventPumpCycleEnd, Timestamp: time.Now()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin events batch: ")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("insert", "readings", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("insert", "events", "error")))
}
