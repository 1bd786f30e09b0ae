package middleware

import (
	"context"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
)

// NewMetricsInterceptor records request counts and latency per method.
func NewMetricsInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		m.RecordRPC(path.Base(info.FullMethod), status.Code(err).String(), time.Since(start))

		return resp, err
	}
}
