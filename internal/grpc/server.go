package server

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/tejusbharadwaj/sumpwatch/internal/api"
	middleware "github.com/tejusbharadwaj/sumpwatch/internal/grpc/middlewares"
	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
	pb "github.com/tejusbharadwaj/sumpwatch/proto"
)

// ServerConfig holds configuration options for the gRPC server
type ServerConfig struct {
	CacheSize      int           // Size of the LRU cache
	CacheTTL       time.Duration // How long a cached response is served
	RateLimit      float64       // Requests per second
	RateLimitBurst int           // Maximum burst size for rate limiting
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		CacheSize:      1000,
		CacheTTL:       30 * time.Second,
		RateLimit:      5.0, // 5 requests per second
		RateLimitBurst: 10,  // Burst of 10 requests
	}
}

// DashboardService exposes the dashboard views over gRPC.
type DashboardService struct {
	pb.UnimplementedDashboardServer
	dashboard *api.Dashboard
	validator *RequestValidator
	clock     func() time.Time
}

// NewDashboardService creates a new service instance. A nil clock uses
// time.Now.
func NewDashboardService(d *api.Dashboard, clock func() time.Time) *DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{
		dashboard: d,
		validator: NewRequestValidator(),
		clock:     clock,
	}
}

func toStatus(err error) error {
	if errors.Is(err, ErrInvalidRequest) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Errorf(codes.Internal, "query failed: %v", err)
}

// GetHealth implements the gRPC service method
func (s *DashboardService) GetHealth(ctx context.Context, req *pb.HealthRequest) (*pb.HealthResponse, error) {
	now, err := s.validator.ResolveNow(req.GetNow(), s.clock())
	if err != nil {
		return nil, toStatus(err)
	}

	report, err := s.dashboard.Health(ctx, now)
	if err != nil {
		return nil, toStatus(err)
	}
	return toHealthResponse(report), nil
}

// GetHistory implements the gRPC service method
func (s *DashboardService) GetHistory(ctx context.Context, req *pb.HistoryRequest) (*pb.HistoryResponse, error) {
	window, err := s.validator.WindowHours(req.GetWindowHours())
	if err != nil {
		return nil, toStatus(err)
	}

	h, err := s.dashboard.History(ctx, window)
	if err != nil {
		return nil, toStatus(err)
	}
	return toHistoryResponse(h), nil
}

// GetStats implements the gRPC service method. Store failures degrade
// individual sections instead of failing the call.
func (s *DashboardService) GetStats(ctx context.Context, req *pb.StatsRequest) (*pb.StatsResponse, error) {
	now, err := s.validator.ResolveNow(req.GetNow(), s.clock())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStatsResponse(s.dashboard.Stats(ctx, now)), nil
}

// ConfigureGRPCServer registers the service without middleware (for development and debug only)
func ConfigureGRPCServer(d *api.Dashboard, opts ...grpc.ServerOption) *grpc.Server {
	srv := grpc.NewServer(opts...)
	pb.RegisterDashboardServer(srv, NewDashboardService(d, nil))
	return srv
}

// SetupServer initializes and configures the gRPC server with all middleware.
// The returned HealthChecker already reports SERVING for the dashboard.
func SetupServer(d *api.Dashboard, config ServerConfig, logger *logrus.Logger, m *metrics.Metrics) (*grpc.Server, *HealthChecker, error) {
	cache, err := middleware.NewResponseCache(config.CacheSize, config.CacheTTL)
	if err != nil {
		return nil, nil, err
	}

	// Request ID first, rate limit early, cache last to avoid caching errors.
	server := grpc.NewServer(
		grpc.UnaryInterceptor(
			chainUnaryInterceptors(
				middleware.ContextMiddleware,
				middleware.NewRateLimitingInterceptor(config.RateLimit, config.RateLimitBurst),
				middleware.NewLoggingInterceptor(logger),
				middleware.NewMetricsInterceptor(m),
				cache.Interceptor(pb.Dashboard_ServiceName),
			),
		),
	)

	pb.RegisterDashboardServer(server, NewDashboardService(d, nil))

	health := NewHealthChecker()
	health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	health.SetServingStatus(pb.Dashboard_ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(server, health)

	return server, health, nil
}

// chainUnaryInterceptors creates a single interceptor from multiple interceptors
func chainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		chain := handler
		for i := len(interceptors) - 1; i >= 0; i-- {
			interceptor := interceptors[i]
			chainedInterceptor := chain
			chain = func(currentCtx context.Context, currentReq interface{}) (interface{}, error) {
				return interceptor(currentCtx, currentReq, info, chainedInterceptor)
			}
		}
		return chain(ctx, req)
	}
}
