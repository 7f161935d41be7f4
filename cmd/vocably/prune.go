// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// Reset tokens older than this stop working; pruning clears their digests
// so stale reset requests cannot linger in storage.
const defaultResetMaxAge = 2 * time.Hour

// Default timeout for prune command.
const defaultPruneTimeout = 30 * time.Second

// pruneConfig holds configuration for the prune command.
type pruneConfig struct {
	maxAge  time.Duration
	timeout time.Duration
}

// NewPruneCmd creates the prune subcommand.
func NewPruneCmd() *cobra.Command {
	cfg := &pruneConfig{}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Clear expired password-reset digests",
		Long: `Clears the stored reset digest and issue time for every user whose
reset request is older than the maximum age. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd, args, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.maxAge, "max-age", defaultResetMaxAge, "age beyond which reset requests expire")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultPruneTimeout, "timeout for database operations")

	return cmd
}

func runPrune(cmd *cobra.Command, _ []string, cfg *pruneConfig) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	n, err := a.accounts.PruneResetDigests(ctx, cfg.maxAge)
	if err != nil {
		return err
	}

	cmd.Printf("Cleared %d expired reset digest(s)\n", n)
	return nil
}
