package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tejusbharadwaj/sumpwatch/internal/api"
)

// exitAttention is returned when the pit needs attention or has no data.
const exitAttention = 2

func newStatusCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the current health once and exit",
		Long: `Evaluates the newest reading and prints the status banner.

Exits 0 when the system is normal and 2 when attention is required or no
reading has been received yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := setupLogging(cfg.Logging, os.Stderr)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			repo, err := openStore(ctx, cfg.Database, nil, logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			dashCfg, err := cfg.Dashboard()
			if err != nil {
				return err
			}
			report, err := api.NewDashboard(repo, dashCfg, logger).Health(ctx, time.Now())
			if err != nil {
				return err
			}

			if code := printStatus(cmd.OutOrStdout(), report); code != 0 {
				return exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "database timeout")
	return cmd
}

// printStatus writes a short report and returns the exit code for it.
func printStatus(w io.Writer, report api.HealthReport) int {
	if !report.HasData {
		fmt.Fprintln(w, "NO SENSOR DATA")
		return exitAttention
	}

	s := report.Status
	fmt.Fprintln(w, s.Headline())
	if reasons := s.Reasons(); len(reasons) > 0 {
		fmt.Fprintf(w, "  reasons:      %s\n", strings.Join(reasons, ", "))
	}
	fmt.Fprintf(w, "  water level:  %.2f in\n", s.Reading.WaterLevelInches)
	fmt.Fprintf(w, "  battery:      %.2f V (%s)\n", s.Reading.BatteryVoltage, s.BatteryState)
	fmt.Fprintf(w, "  mains power:  %s\n", onOff(s.MainsPowerOn))
	fmt.Fprintf(w, "  pump:         %s\n", runningIdle(s.IsPumpRunning))
	fmt.Fprintf(w, "  last reading: %d min ago\n", s.MinutesSinceLastReading)

	if !s.IsSystemHealthy {
		return exitAttention
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func runningIdle(b bool) string {
	if b {
		return "running"
	}
	return "idle"
}
