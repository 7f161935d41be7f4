// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/account"
	accountpg "github.com/vocably/vocably/internal/account/postgres"
	"github.com/vocably/vocably/internal/config"
	"github.com/vocably/vocably/internal/logging"
	"github.com/vocably/vocably/internal/messages"
	"github.com/vocably/vocably/internal/quiz"
	quizpg "github.com/vocably/vocably/internal/quiz/postgres"
	"github.com/vocably/vocably/internal/stats"
	"github.com/vocably/vocably/internal/storage"
)

// app bundles the wired services a subcommand works with.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	accounts *account.Service
	words    *quiz.Service
	stats    *stats.Service
	close    func()
}

// newApp loads configuration, connects the database, and wires the domain
// services. Callers must call close when done.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return nil, err
	}

	dsn := cfg.Database.URL
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, oops.Code("CONFIG_INVALID").
			Errorf("database URL is required (config database.url or DATABASE_URL)")
	}

	logger := logging.Setup(logging.Options{
		Service: "vocably",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   cfg.Log.Level,
	})

	pool, err := storage.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	userRepo := accountpg.NewUserRepository(pool)
	relRepo := accountpg.NewRelationshipRepository(pool)
	wordRepo := quizpg.NewWordRepository(pool)

	accounts, err := account.NewServiceWithLogger(
		userRepo, relRepo, account.NewBcryptHasher(cfg.Auth.MinCost), logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	validator, err := quiz.NewValidator(
		cfg.Quiz.CorrectAnswersLimit, cfg.Quiz.MinAnswers, messages.Default)
	if err != nil {
		pool.Close()
		return nil, err
	}
	words, err := quiz.NewServiceWithLogger(wordRepo, validator, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	reports, err := stats.NewService(userRepo, wordRepo)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		accounts: accounts,
		words:    words,
		stats:    reports,
		close:    pool.Close,
	}, nil
}
