// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the vocably CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocably",
		Short: "Vocably - vocabulary learning data maintenance",
		Long: `Vocably maintains the persistence layer of a vocabulary-learning
application: user accounts with a follow graph, and quiz words with
validated answer sets. These commands cover operational maintenance;
they are not a web surface.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewPruneCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
