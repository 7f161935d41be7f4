// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package config loads runtime configuration from an optional YAML file and
// command-line flags. Domain packages never read configuration ambiently;
// the loaded values are injected into the services that need them.
package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/vocably/vocably/internal/quiz"
)

// Defaults applied before any provider is loaded. The quiz limits come from
// the domain package, which owns the rule semantics.
const (
	DefaultCorrectAnswersLimit = quiz.DefaultCorrectAnswersLimit
	DefaultMinAnswers          = quiz.DefaultMinAnswers
	DefaultLogFormat           = "json"
	DefaultLogLevel            = "info"
)

// Config is the root configuration tree.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Quiz     QuizConfig     `koanf:"quiz"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// QuizConfig carries the answer-integrity limits injected into the word
// validator.
type QuizConfig struct {
	// CorrectAnswersLimit is the exact number of answers that must be
	// flagged correct for a word to be valid.
	CorrectAnswersLimit int `koanf:"correct_answers_limit"`
	// MinAnswers is the minimum total number of answers per word.
	MinAnswers int `koanf:"min_answers"`
}

// AuthConfig carries credential-hashing settings.
type AuthConfig struct {
	// MinCost lowers the bcrypt cost factor to the library minimum.
	// Intended for test and development environments only.
	MinCost bool `koanf:"min_cost"`
}

// LogConfig holds structured-logging settings.
type LogConfig struct {
	Format string `koanf:"format"` // "json" or "text"
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
}

// defaults returns a Config populated with default values.
func defaults() Config {
	return Config{
		Quiz: QuizConfig{
			CorrectAnswersLimit: DefaultCorrectAnswersLimit,
			MinAnswers:          DefaultMinAnswers,
		},
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
	}
}

// Load builds a Config from defaults, then the YAML file at path (when
// non-empty), then the given flag set (when non-nil). Later sources win.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Quiz.CorrectAnswersLimit < 1 {
		return oops.Code("CONFIG_INVALID").
			With("quiz.correct_answers_limit", c.Quiz.CorrectAnswersLimit).
			Errorf("quiz.correct_answers_limit must be at least 1")
	}
	if c.Quiz.MinAnswers < 1 {
		return oops.Code("CONFIG_INVALID").
			With("quiz.min_answers", c.Quiz.MinAnswers).
			Errorf("quiz.min_answers must be at least 1")
	}
	if c.Quiz.CorrectAnswersLimit > c.Quiz.MinAnswers {
		return oops.Code("CONFIG_INVALID").
			Errorf("quiz.correct_answers_limit cannot exceed quiz.min_answers")
	}
	switch c.Log.Format {
	case "", "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log.format", c.Log.Format).
			Errorf("log.format must be \"json\" or \"text\"")
	}
	return nil
}
