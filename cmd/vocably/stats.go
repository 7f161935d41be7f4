// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/vocably/vocably/internal/stats"
)

// Default timeout for stats command.
const defaultStatsTimeout = 30 * time.Second

// statsConfig holds configuration for the stats command.
type statsConfig struct {
	from    string
	to      string
	asJSON  bool
	timeout time.Duration
}

// NewStatsCmd creates the stats subcommand.
func NewStatsCmd() *cobra.Command {
	cfg := &statsConfig{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report user signups and word creation by month",
		Long: `Prints month-bucketed counts of user signups and word creation
over the given range. Months without rows are omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.from, "from", "", "start month (YYYY-MM, default 5 months ago)")
	cmd.Flags().StringVar(&cfg.to, "to", "", "end month inclusive (YYYY-MM, default current month)")
	cmd.Flags().BoolVar(&cfg.asJSON, "json", false, "emit the report as JSON")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultStatsTimeout, "timeout for database operations")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string, cfg *statsConfig) error {
	from, to, err := monthRange(cfg.from, cfg.to, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.stats.MonthlyReport(ctx, from, to)
	if err != nil {
		return err
	}

	if cfg.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return oops.Code("STATS_ENCODE_FAILED").Wrap(err)
		}
		return nil
	}

	printCurve(cmd, "Users", report.Users)
	printCurve(cmd, "Words", report.Words)
	return nil
}

func printCurve(cmd *cobra.Command, title string, buckets []stats.MonthBucket) {
	cmd.Printf("%s:\n", title)
	if len(buckets) == 0 {
		cmd.Println("  (none)")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	for _, b := range buckets {
		fmt.Fprintf(w, "  %s\t%d\n", b.Month, b.Count)
	}
	_ = w.Flush()
}

// monthRange resolves the from/to flags into month-start bounds. Both ends
// are inclusive: the report covers the whole of each named month.
func monthRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if toStr != "" {
		parsed, err := time.Parse("2006-01", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, oops.Code("STATS_INVALID_RANGE").
				With("to", toStr).
				Errorf("end month must look like 2026-03")
		}
		to = parsed
	}

	from := to.AddDate(0, -5, 0)
	if fromStr != "" {
		parsed, err := time.Parse("2006-01", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, oops.Code("STATS_INVALID_RANGE").
				With("from", fromStr).
				Errorf("start month must look like 2026-03")
		}
		from = parsed
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, oops.Code("STATS_INVALID_RANGE").
			Errorf("start month must not follow end month")
	}
	return from, to, nil
}
