package middleware

// The response cache is in-memory; golang-lru evicts the least recently used
// entries once the size is reached. golang-lru has no expiry, so the key
// carries the current TTL bucket and entries age out by becoming unreachable.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"google.golang.org/grpc"
)

// ResponseCache caches successful unary responses.
type ResponseCache struct {
	entries *lru.Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewResponseCache creates a cache holding at most size responses, each
// served for at most ttl. A zero ttl never expires entries.
func NewResponseCache(size int, ttl time.Duration) (*ResponseCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}
	return &ResponseCache{entries: entries, ttl: ttl, now: time.Now}, nil
}

// Len returns the number of cached responses.
func (c *ResponseCache) Len() int {
	return c.entries.Len()
}

// Interceptor returns the caching middleware. Errors are never cached.
// When services are given, only their methods are cached; calls to other
// services (the health service, for one) pass through.
func (c *ResponseCache) Interceptor(services ...string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if !cacheable(info.FullMethod, services) {
			return handler(ctx, req)
		}
		key := c.key(info.FullMethod, req)

		if cached, ok := c.entries.Get(key); ok {
			return cached, nil
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return nil, err
		}

		c.entries.Add(key, resp)
		return resp, nil
	}
}

func cacheable(fullMethod string, services []string) bool {
	if len(services) == 0 {
		return true
	}
	for _, svc := range services {
		if strings.HasPrefix(fullMethod, "/"+svc+"/") {
			return true
		}
	}
	return false
}

// key identifies a request by method, serialized body and TTL bucket.
func (c *ResponseCache) key(method string, req interface{}) string {
	reqBytes, _ := json.Marshal(req)
	var bucket int64
	if c.ttl > 0 {
		bucket = c.now().UnixNano() / int64(c.ttl)
	}
	return fmt.Sprintf("%s:%d:%s", method, bucket, reqBytes)
}
