package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
server:
  port: 50052
  host: "127.0.0.1"
  cache_ttl: 10s

database:
  host: "localhost"
  port: 5432
  name: "testdb"
  user: "testuser"
  password: "testpass"
  ssl_mode: "disable"
  max_connections: 10
  connection_timeout: 5

logging:
  level: "debug"
  format: "json"

thresholds:
  high_water_inches: 10.0

analytics:
  timezone: "America/Chicago"
  heatmap_days: 60

mqtt:
  enabled: true
  broker: "tcp://mqtt.local:1883"
`)

	config, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify loaded values
	assert.Equal(t, 50052, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 10*time.Second, config.Server.CacheTTL)
	assert.Equal(t, "testdb", config.Database.Name)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 10.0, config.Thresholds.HighWaterInches)
	assert.Equal(t, 60, config.Analytics.HeatmapDays)
	assert.True(t, config.MQTT.Enabled)
	assert.Equal(t, "tcp://mqtt.local:1883", config.MQTT.Broker)

	// Untouched keys keep their defaults.
	assert.Equal(t, 15, config.Thresholds.OfflineAfterMinutes)
	assert.Equal(t, 11.5, config.Thresholds.LowBatteryVolts)
	assert.Equal(t, 7, config.Analytics.WeekDays)
	assert.Equal(t, 30*time.Second, config.Scheduler.HealthInterval)
	assert.Equal(t, 5*time.Minute, config.Scheduler.SummaryInterval)
	assert.False(t, config.Redis.Enabled)

	loc, err := config.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}

func TestLoadWithEnvExpansion(t *testing.T) {
	// Set environment variables
	t.Setenv("APP_DATABASE_HOST", "envhost")
	t.Setenv("APP_DATABASE_PORT", "5433")

	configPath := writeConfig(t, `
database:
  host: $APP_DATABASE_HOST
  port: $APP_DATABASE_PORT
  name: "testdb"
  user: "testuser"
  password: "testpass"
`)

	config, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "envhost", config.Database.Host)
	assert.Equal(t, 5433, config.Database.Port)
}

func TestLoadWithPrefixedEnvOverride(t *testing.T) {
	t.Setenv("SUMPWATCH_DATABASE_HOST", "db.internal")
	t.Setenv("SUMPWATCH_SCHEDULER_HEALTH_INTERVAL", "10s")
	t.Setenv("SUMPWATCH_REDIS_ENABLED", "true")

	configPath := writeConfig(t, `
database:
  host: "localhost"
`)

	config, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", config.Database.Host)
	assert.Equal(t, 10*time.Second, config.Scheduler.HealthInterval)
	assert.True(t, config.Redis.Enabled)
}

func TestLoadDefaultsOnly(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50051, config.Server.Port)
	assert.Equal(t, "America/New_York", config.Analytics.Timezone)
	assert.Equal(t, "json", config.Logging.Format)
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "invalid yaml",
			content: "server:\n  port: [1",
			want:    "failed to parse config",
		},
		{
			name:    "unknown timezone",
			content: "analytics:\n  timezone: Mars/Olympus",
			want:    "analytics.timezone",
		},
		{
			name:    "high water above limit",
			content: "thresholds:\n  high_water_inches: 12",
			want:    "high_water_inches",
		},
		{
			name:    "mqtt without broker",
			content: "mqtt:\n  enabled: true\n  broker: \"\"",
			want:    "mqtt.broker",
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml",
			want:    "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:              "db",
		Port:              5432,
		Name:              "sump",
		User:              "app",
		Password:          "p@ss",
		SSLMode:           "require",
		ConnectionTimeout: 5,
	}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/sump?connect_timeout=5&sslmode=require", d.DSN())

	d.URL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", d.DSN())
}

func TestDerivedConfigs(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	dash, err := config.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", dash.Location.String())
	assert.Equal(t, 7*24*time.Hour, dash.IntervalWindow)
	assert.Equal(t, 10, dash.AlertLimit)
	assert.Equal(t, 4.5, dash.PumpTriggerInches)

	srv := config.GRPCServer()
	assert.Equal(t, 1000, srv.CacheSize)
	assert.Equal(t, 30*time.Second, srv.CacheTTL)

	jobs := config.Jobs()
	assert.Equal(t, time.Minute, jobs.JobTimeout)

	assert.Equal(t, "0.0.0.0:50051", config.GRPCAddr())
	assert.Equal(t, "0.0.0.0:9090", config.HTTPAddr())
}

func TestYAMLMasksSecrets(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	config.Database.Password = "hunter2"
	config.Redis.Password = "hunter3"

	out, err := config.YAML()
	require.NoError(t, err)

	assert.NotContains(t, string(out), "hunter2")
	assert.NotContains(t, string(out), "hunter3")
	assert.Contains(t, string(out), "health_interval: 30s")

	var decoded map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "America/New_York", decoded["analytics"]["timezone"])
	assert.Equal(t, "hunter2", config.Database.Password, "the receiver is untouched")
}
