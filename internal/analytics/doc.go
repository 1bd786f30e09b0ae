// Package analytics turns sump-pit telemetry into health state and
// calendar-aligned statistics.
//
// The package has no I/O and no clock: every function takes the reference
// time ("now") and the reference time zone as explicit arguments, so the
// same inputs always produce the same outputs and callers may re-invoke it
// as often as they like.
//
// Components:
//   - Evaluate: instantaneous health flags from the latest reading
//   - FilterWindow: trailing window anchored to the newest reading
//   - AggregateDay / SummarizeWeek: per-day and per-week rollups
//   - BuildHeatmap: week-aligned calendar grid of daily activity
//   - AnalyzeIntervals: mean minutes between pump cycles per local day
//   - Rollup: all-time totals and record days
package analytics
