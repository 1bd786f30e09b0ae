package notify

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
)

// DefaultStream is the Redis stream alerts are appended to.
const DefaultStream = "sump_alerts"

// RedisConfig configures the stream publisher.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	// MaxLen caps the stream length approximately. Zero leaves it unbounded.
	MaxLen int64
}

// streamAdder is the part of redis.Client the publisher uses.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisStreamPublisher appends alerts to a Redis stream.
type RedisStreamPublisher struct {
	client streamAdder
	stream string
	maxLen int64
}

// NewRedisStreamPublisher creates a client and checks it with PING.
func NewRedisStreamPublisher(ctx context.Context, cfg RedisConfig) (*RedisStreamPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return newRedisStreamPublisher(client, cfg), nil
}

func newRedisStreamPublisher(client streamAdder, cfg RedisConfig) *RedisStreamPublisher {
	stream := cfg.Stream
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: cfg.MaxLen}
}

// Name implements Publisher.
func (p *RedisStreamPublisher) Name() string { return "redis" }

// Publish appends the alert as a single "data" field holding the JSON payload.
func (p *RedisStreamPublisher) Publish(ctx context.Context, alert monitor.Alert) error {
	data, err := FormatPayload(alert)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"kind": string(alert.Kind),
			"data": string(data),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish to redis stream %s: %w", p.stream, err)
	}
	return nil
}

// Close closes the client.
func (p *RedisStreamPublisher) Close() error {
	return p.client.Close()
}
