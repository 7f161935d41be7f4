// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vocably/vocably/internal/stats"
)

// WordRepository persists words with their nested answers.
type WordRepository interface {
	// SaveWithAnswers upserts the word and replaces its answers in one
	// transaction. Either everything lands or nothing does.
	SaveWithAnswers(ctx context.Context, word *Word) error

	// GetByID retrieves a word and its answers. Returns ErrNotFound when
	// the word does not exist.
	GetByID(ctx context.Context, id ulid.ULID) (*Word, error)

	// Delete removes the word together with its answers and the results
	// referencing them, in one transaction.
	Delete(ctx context.Context, id ulid.ULID) error

	// Learned returns the words the given user has answered correctly in
	// one of their lessons.
	Learned(ctx context.Context, userID ulid.ULID) ([]*Word, error)

	// NotLearned returns the words the given user has not answered
	// correctly yet.
	NotLearned(ctx context.Context, userID ulid.ULID) ([]*Word, error)

	// CountByMonth buckets word creation by calendar month over the
	// inclusive [from, to] month range, ordered ascending.
	CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error)
}
