// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/stats"
	"github.com/vocably/vocably/internal/validate"
)

// Service coordinates answer normalization, rule validation, and the atomic
// persistence of words with their answers.
type Service struct {
	words     WordRepository
	validator *Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a Service with a discarded logger.
func NewService(words WordRepository, validator *Validator) (*Service, error) {
	return NewServiceWithLogger(words, validator, slog.New(slog.DiscardHandler))
}

// NewServiceWithLogger creates a Service logging through the given logger.
func NewServiceWithLogger(words WordRepository, validator *Validator, logger *slog.Logger) (*Service, error) {
	if words == nil {
		return nil, oops.Code("QUIZ_INVALID_DEPS").Errorf("word repository is required")
	}
	if validator == nil {
		return nil, oops.Code("QUIZ_INVALID_DEPS").Errorf("validator is required")
	}
	if logger == nil {
		return nil, oops.Code("QUIZ_INVALID_DEPS").Errorf("logger is required")
	}
	return &Service{
		words:     words,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Save normalizes the word's answers, runs the validation rules, and
// persists the word with its answers atomically. A zero ID marks a new
// word. Validation failures come back as *validate.Errors listing every
// broken rule; nothing is written in that case.
func (s *Service) Save(ctx context.Context, word *Word) error {
	word.NormalizeAnswers()

	var errs validate.Errors
	s.validator.Validate(word, &errs)
	if errs.Any() {
		return &errs
	}

	now := s.now()
	if word.ID == (ulid.ULID{}) {
		word.ID = ulid.Make()
		word.CreatedAt = now
	}
	word.UpdatedAt = now
	for i := range word.Answers {
		if word.Answers[i].ID == (ulid.ULID{}) {
			word.Answers[i].ID = ulid.Make()
		}
		word.Answers[i].WordID = word.ID
	}

	if err := s.words.SaveWithAnswers(ctx, word); err != nil {
		return oops.Code("QUIZ_SAVE_FAILED").
			With("word_id", word.ID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "word saved",
		"word_id", word.ID.String(),
		"answers", len(word.Answers))
	return nil
}

// Get retrieves a word with its answers.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Word, error) {
	word, err := s.words.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return word, nil
}

// Delete removes the word and its dependent rows.
func (s *Service) Delete(ctx context.Context, id ulid.ULID) error {
	if err := s.words.Delete(ctx, id); err != nil {
		return oops.Code("QUIZ_DELETE_FAILED").
			With("word_id", id.String()).
			Wrap(err)
	}
	return nil
}

// Learned returns the words userID has answered correctly in a lesson.
func (s *Service) Learned(ctx context.Context, userID ulid.ULID) ([]*Word, error) {
	words, err := s.words.Learned(ctx, userID)
	if err != nil {
		return nil, oops.Code("QUIZ_LEARNED_FAILED").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return words, nil
}

// NotLearned returns the words userID has not answered correctly yet.
func (s *Service) NotLearned(ctx context.Context, userID ulid.ULID) ([]*Word, error) {
	words, err := s.words.NotLearned(ctx, userID)
	if err != nil {
		return nil, oops.Code("QUIZ_NOT_LEARNED_FAILED").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return words, nil
}

// CountByMonth exposes the word repository's month buckets.
func (s *Service) CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error) {
	buckets, err := s.words.CountByMonth(ctx, from, to)
	if err != nil {
		return nil, oops.Code("QUIZ_STATS_FAILED").Wrap(err)
	}
	return buckets, nil
}
