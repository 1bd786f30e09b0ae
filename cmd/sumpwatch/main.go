// Command sumpwatch monitors a sump pit from the telemetry its sensor
// writes to Postgres.
//
// It serves:
//   - live health, water level history and pump statistics over gRPC
//   - Prometheus metrics, liveness and monitor status over HTTP
//   - alerts on health transitions to MQTT and a Redis stream
//
// Usage:
//
//	sumpwatch [command] [flags]
//
// The commands are:
//
//	serve    run the gRPC server, ops HTTP server and background jobs
//	status   print the current health once and exit
//	config   print the effective configuration
//	migrate  create the database tables
package main

import (
	"os"

	_ "time/tzdata"
)

func main() {
	os.Exit(execute())
}
