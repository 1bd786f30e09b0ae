// Package sumpwatch implements a telemetry service for a battery-backed sump pit.
//
// # Architecture
//
// The service is structured into several key packages:
//   - analytics: pure health evaluation, windowing, daily aggregation,
//     heatmap, pump interval and rollup computations
//   - api: the dashboard views assembled from the store and analytics
//   - database: Postgres integration for readings, events and daily summaries
//   - grpc: gRPC service implementation and middleware
//   - models: Shared data structures and the civil Date type
//   - monitor, notify: health transition tracking and alert publishing
//   - scheduler: Background health polling and summary refresh
//   - web: Prometheus metrics and ops endpoints
//
// Key Features
//
//   - Live Health:
//     Any single risk factor (offline sensor, high water, mains outage,
//     low backup battery) flips the headline to ATTENTION REQUIRED.
//
//   - Statistics:
//     Daily pump cycles and gallons, a weekly rollup, a calendar heatmap
//     aligned to whole weeks and the average time between pump cycles, all
//     bucketed by the local calendar day of a configured time zone.
//
//   - Performance:
//     Daily summaries are materialized by the scheduler and responses
//     are cached for a short TTL.
//
// Example Usage
//
//	client := pb.NewDashboardClient(conn)
//	resp, err := client.GetHealth(ctx, &pb.HealthRequest{})
//
// For more information about specific packages, see their respective
// documentation.
package sumpwatch
