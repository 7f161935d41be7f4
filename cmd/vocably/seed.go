// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package main

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/vocably/vocably/internal/account"
	"github.com/vocably/vocably/internal/quiz"
	"github.com/vocably/vocably/internal/validate"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// Fixed IDs make reruns upsert instead of duplicate.
// ULIDs must be exactly 26 characters (Crockford's base32 alphabet).
const (
	seedCategoryID  = "01J9V0SEEDCATEG0RY00000000"
	seedAppleWordID = "01J9V0SEEDW0RDAPP1E0000000"
	seedRiverWordID = "01J9V0SEEDW0RDR1VER0000000"
)

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed sample users and words",
		Long: `Creates a small set of sample users and quiz words through the
domain services, so every row passes the same validation as production
writes. This command is idempotent: reruns skip existing users and
upsert the fixed-ID words.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := seedUsers(ctx, cmd, a.accounts); err != nil {
		return err
	}
	return seedWords(ctx, cmd, a.words)
}

func seedUsers(ctx context.Context, cmd *cobra.Command, accounts *account.Service) error {
	users := []account.CreateParams{
		{Name: "Anna", Email: "anna@example.com", Phone: "0123456789", Address: "12 Elm Street", Password: "password123"},
		{Name: "Bob", Email: "bob@example.com", Phone: "0198765432", Address: "7 Oak Avenue", Password: "password123"},
		{Name: "Diana", Email: "diana@example.com", Phone: "0111222333", Address: "3 Pine Road", Password: "password123"},
	}

	for _, p := range users {
		_, err := accounts.Create(ctx, p)
		if err != nil {
			var errs *validate.Errors
			if errors.As(err, &errs) && taken(errs) {
				cmd.Printf("User %s already exists, skipping\n", p.Email)
				continue
			}
			return oops.Code("SEED_FAILED").
				With("operation", "create user").
				With("email", p.Email).
				Wrap(err)
		}
		cmd.Printf("Created user %s\n", p.Email)
	}
	return nil
}

// taken reports whether the only reason creation failed is the email
// uniqueness rule.
func taken(errs *validate.Errors) bool {
	for _, msg := range errs.On("email") {
		if msg == "has already been taken" {
			return true
		}
	}
	return false
}

func seedWords(ctx context.Context, cmd *cobra.Command, words *quiz.Service) error {
	categoryID, err := ulid.Parse(seedCategoryID)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "parse category id").Wrap(err)
	}

	samples := []struct {
		id      string
		content string
		answers []quiz.Answer
	}{
		{
			id:      seedAppleWordID,
			content: "apple",
			answers: []quiz.Answer{
				{Content: "a fruit", IsCorrect: true},
				{Content: "a vegetable"},
				{Content: "an animal"},
				{Content: "a mineral"},
			},
		},
		{
			id:      seedRiverWordID,
			content: "river",
			answers: []quiz.Answer{
				{Content: "flowing water", IsCorrect: true},
				{Content: "a mountain"},
				{Content: "a desert"},
				{Content: "a forest"},
			},
		},
	}

	for _, s := range samples {
		id, err := ulid.Parse(s.id)
		if err != nil {
			return oops.Code("SEED_FAILED").
				With("operation", "parse word id").
				With("id", s.id).
				Wrap(err)
		}
		word := &quiz.Word{
			ID:         id,
			CategoryID: categoryID,
			Content:    s.content,
			Answers:    s.answers,
			CreatedAt:  time.Now().UTC(),
		}
		if err := words.Save(ctx, word); err != nil {
			return oops.Code("SEED_FAILED").
				With("operation", "save word").
				With("content", s.content).
				Wrap(err)
		}
		cmd.Printf("Saved word %q with %d answers\n", s.content, len(word.Answers))
	}
	return nil
}
