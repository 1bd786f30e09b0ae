package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tejusbharadwaj/sumpwatch/internal/analytics"
	"github.com/tejusbharadwaj/sumpwatch/internal/api"
	server "github.com/tejusbharadwaj/sumpwatch/internal/grpc"
	"github.com/tejusbharadwaj/sumpwatch/internal/notify"
	"github.com/tejusbharadwaj/sumpwatch/internal/scheduler"
)

// EnvPrefix prefixes environment overrides, e.g. SUMPWATCH_DATABASE_HOST.
const EnvPrefix = "SUMPWATCH"

// Config holds all configuration for our application
type Config struct {
	Server     ServerConfig         `mapstructure:"server" yaml:"server"`
	HTTP       HTTPConfig           `mapstructure:"http" yaml:"http"`
	Database   DatabaseConfig       `mapstructure:"database" yaml:"database"`
	Logging    LoggingConfig        `mapstructure:"logging" yaml:"logging"`
	Thresholds analytics.Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
	Analytics  AnalyticsConfig      `mapstructure:"analytics" yaml:"analytics"`
	Scheduler  SchedulerConfig      `mapstructure:"scheduler" yaml:"scheduler"`
	MQTT       MQTTConfig           `mapstructure:"mqtt" yaml:"mqtt"`
	Redis      RedisConfig          `mapstructure:"redis" yaml:"redis"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" yaml:"port"`
	Host           string        `mapstructure:"host" yaml:"host"`
	CacheSize      int           `mapstructure:"cache_size" yaml:"cache_size"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	RateLimit      float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
}

type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Host    string `mapstructure:"host" yaml:"host"`
	Port    int    `mapstructure:"port" yaml:"port"`
}

// DatabaseConfig describes the Postgres connection. URL, when set, wins
// over the individual fields.
type DatabaseConfig struct {
	URL               string `mapstructure:"url" yaml:"url"`
	Host              string `mapstructure:"host" yaml:"host"`
	Port              int    `mapstructure:"port" yaml:"port"`
	Name              string `mapstructure:"name" yaml:"name"`
	User              string `mapstructure:"user" yaml:"user"`
	Password          string `mapstructure:"password" yaml:"password"`
	SSLMode           string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
	MaxConnections    int    `mapstructure:"max_connections" yaml:"max_connections"`
	ConnectionTimeout int    `mapstructure:"connection_timeout" yaml:"connection_timeout"`
	Migrate           bool   `mapstructure:"migrate" yaml:"migrate"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AnalyticsConfig controls the dashboard views.
type AnalyticsConfig struct {
	Timezone          string  `mapstructure:"timezone" yaml:"timezone"`
	WeekDays          int     `mapstructure:"week_days" yaml:"week_days"`
	HeatmapDays       int     `mapstructure:"heatmap_days" yaml:"heatmap_days"`
	IntervalDays      int     `mapstructure:"interval_days" yaml:"interval_days"`
	AlertLimit        int     `mapstructure:"alert_limit" yaml:"alert_limit"`
	GallonsPerCycle   float64 `mapstructure:"gallons_per_cycle" yaml:"gallons_per_cycle"`
	PumpTriggerInches float64 `mapstructure:"pump_trigger_inches" yaml:"pump_trigger_inches"`
}

type SchedulerConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	HealthInterval  time.Duration `mapstructure:"health_interval" yaml:"health_interval"`
	SummaryInterval time.Duration `mapstructure:"summary_interval" yaml:"summary_interval"`
	JobTimeout      time.Duration `mapstructure:"job_timeout" yaml:"job_timeout"`
}

type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Broker   string `mapstructure:"broker" yaml:"broker"`
	ClientID string `mapstructure:"client_id" yaml:"client_id"`
	Topic    string `mapstructure:"topic" yaml:"topic"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Stream   string `mapstructure:"stream" yaml:"stream"`
	MaxLen   int64  `mapstructure:"max_len" yaml:"max_len"`
}

// Load reads configuration from file and environment variables.
//
// $VAR references in the file are expanded first. SUMPWATCH_* variables
// then override individual keys (SUMPWATCH_DATABASE_HOST for
// database.host). An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewReader([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.cache_size", 1000)
	v.SetDefault("server.cache_ttl", "30s")
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.rate_limit_burst", 10)

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 9090)

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "sumpwatch")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.connection_timeout", 5)
	v.SetDefault("database.migrate", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	th := analytics.DefaultThresholds()
	v.SetDefault("thresholds.offline_after_minutes", th.OfflineAfterMinutes)
	v.SetDefault("thresholds.high_water_inches", th.HighWaterInches)
	v.SetDefault("thresholds.charging_volts", th.ChargingVolts)
	v.SetDefault("thresholds.low_battery_volts", th.LowBatteryVolts)

	v.SetDefault("analytics.timezone", "America/New_York")
	v.SetDefault("analytics.week_days", 7)
	v.SetDefault("analytics.heatmap_days", 30)
	v.SetDefault("analytics.interval_days", 7)
	v.SetDefault("analytics.alert_limit", 10)
	v.SetDefault("analytics.gallons_per_cycle", 5.0)
	v.SetDefault("analytics.pump_trigger_inches", 4.5)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.health_interval", "30s")
	v.SetDefault("scheduler.summary_interval", "5m")
	v.SetDefault("scheduler.job_timeout", "1m")

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "sumpwatch")
	v.SetDefault("mqtt.topic", notify.DefaultTopic)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stream", notify.DefaultStream)
	v.SetDefault("redis.max_len", 10000)
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("server.cache_size must be positive, got %d", c.Server.CacheSize))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must be positive, got %v", c.Server.RateLimit))
	}
	if c.HTTP.Enabled && (c.HTTP.Port <= 0 || c.HTTP.Port > 65535) {
		errs = append(errs, fmt.Errorf("http.port out of range: %d", c.HTTP.Port))
	}
	if err := c.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("thresholds: %w", err))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Analytics.WeekDays < 1 || c.Analytics.HeatmapDays < 1 || c.Analytics.IntervalDays < 1 {
		errs = append(errs, errors.New("analytics day windows must be at least 1"))
	}
	if c.Analytics.GallonsPerCycle < 0 {
		errs = append(errs, fmt.Errorf("analytics.gallons_per_cycle must not be negative, got %v", c.Analytics.GallonsPerCycle))
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		errs = append(errs, errors.New("mqtt.broker is required when mqtt is enabled"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Location loads the reference time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Analytics.Timezone)
	if err != nil {
		return nil, fmt.Errorf("analytics.timezone: %w", err)
	}
	return loc, nil
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.ConnectionTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprint(d.ConnectionTimeout))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Dashboard builds the dashboard configuration.
func (c *Config) Dashboard() (api.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return api.Config{}, err
	}
	return api.Config{
		Thresholds:        c.Thresholds,
		Location:          loc,
		WeekDays:          c.Analytics.WeekDays,
		HeatmapDays:       c.Analytics.HeatmapDays,
		IntervalWindow:    time.Duration(c.Analytics.IntervalDays) * 24 * time.Hour,
		AlertLimit:        c.Analytics.AlertLimit,
		GallonsPerCycle:   c.Analytics.GallonsPerCycle,
		PumpTriggerInches: c.Analytics.PumpTriggerInches,
	}, nil
}

// GRPCServer builds the gRPC middleware configuration.
func (c *Config) GRPCServer() server.ServerConfig {
	return server.ServerConfig{
		CacheSize:      c.Server.CacheSize,
		CacheTTL:       c.Server.CacheTTL,
		RateLimit:      c.Server.RateLimit,
		RateLimitBurst: c.Server.RateLimitBurst,
	}
}

// Jobs builds the scheduler configuration.
func (c *Config) Jobs() scheduler.Config {
	return scheduler.Config{
		HealthInterval:  c.Scheduler.HealthInterval,
		SummaryInterval: c.Scheduler.SummaryInterval,
		JobTimeout:      c.Scheduler.JobTimeout,
	}
}

// GRPCAddr is the gRPC listen address.
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HTTPAddr is the ops HTTP listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

const redacted = "********"

// YAML renders the effective configuration with secrets masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = redacted
	}
	if out.Redis.Password != "" {
		out.Redis.Password = redacted
	}
	if out.Database.URL != "" {
		if u, err := url.Parse(out.Database.URL); err == nil {
			out.Database.URL = u.Redacted()
		}
	}
	return yaml.Marshal(out)
}
