// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vocably/vocably/internal/quiz"
	"github.com/vocably/vocably/internal/quiz/mocks"
	"github.com/vocably/vocably/internal/stats"
	"github.com/vocably/vocably/internal/validate"
)

func newTestService(t *testing.T) (*quiz.Service, *mocks.MockWordRepository) {
	t.Helper()
	words := mocks.NewMockWordRepository(t)
	validator, err := quiz.NewValidator(quiz.DefaultCorrectAnswersLimit, quiz.DefaultMinAnswers, nil)
	require.NoError(t, err)
	svc, err := quiz.NewService(words, validator)
	require.NoError(t, err)
	return svc, words
}

func validWord() *quiz.Word {
	return &quiz.Word{
		CategoryID: ulid.Make(),
		Content:    "apple",
		Answers: []quiz.Answer{
			{Content: "fruit", IsCorrect: true},
			{Content: "vegetable"},
			{Content: "animal"},
			{Content: "mineral"},
		},
	}
}

func TestNewService_NilDeps(t *testing.T) {
	words := mocks.NewMockWordRepository(t)
	validator, err := quiz.NewValidator(1, 4, nil)
	require.NoError(t, err)

	svc, err := quiz.NewService(nil, validator)
	assert.Error(t, err)
	assert.Nil(t, svc)

	svc, err = quiz.NewService(words, nil)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns ids and persists atomically", func(t *testing.T) {
		svc, words := newTestService(t)

		var saved *quiz.Word
		words.On("SaveWithAnswers", ctx, mock.AnythingOfType("*quiz.Word")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*quiz.Word) }).
			Return(nil)

		word := validWord()
		require.NoError(t, svc.Save(ctx, word))
		require.NotNil(t, saved)
		assert.NotEqual(t, ulid.ULID{}, word.ID)
		assert.False(t, word.CreatedAt.IsZero())
		for _, a := range word.Answers {
			assert.NotEqual(t, ulid.ULID{}, a.ID)
			assert.Equal(t, word.ID, a.WordID)
		}
	})

	t.Run("keeps the id and created time of an existing word", func(t *testing.T) {
		svc, words := newTestService(t)
		words.On("SaveWithAnswers", ctx, mock.AnythingOfType("*quiz.Word")).Return(nil)

		word := validWord()
		word.ID = ulid.Make()
		created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		word.CreatedAt = created

		require.NoError(t, svc.Save(ctx, word))
		assert.Equal(t, created, word.CreatedAt)
		assert.True(t, word.UpdatedAt.After(created))
	})

	t.Run("normalizes answers before validating", func(t *testing.T) {
		svc, words := newTestService(t)
		words.On("SaveWithAnswers", ctx, mock.AnythingOfType("*quiz.Word")).Return(nil)

		word := validWord()
		word.Answers = append(word.Answers,
			quiz.Answer{Content: ""},
			quiz.Answer{Content: "stale", Destroy: true},
		)

		require.NoError(t, svc.Save(ctx, word))
		assert.Len(t, word.Answers, 4)
	})

	t.Run("any broken rule blocks the write", func(t *testing.T) {
		svc, _ := newTestService(t)

		word := validWord()
		word.Answers[0].IsCorrect = false

		err := svc.Save(ctx, word)
		var errs *validate.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, []string{"must choose a correct answer"}, errs.On("answers"))
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		svc, words := newTestService(t)
		words.On("SaveWithAnswers", ctx, mock.AnythingOfType("*quiz.Word")).
			Return(errors.New("connection reset"))

		err := svc.Save(ctx, validWord())
		require.Error(t, err)
		var errs *validate.Errors
		assert.False(t, errors.As(err, &errs))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, words := newTestService(t)

	id := ulid.Make()
	words.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.Delete(ctx, id))
}

func TestService_LearnedPartition(t *testing.T) {
	ctx := context.Background()
	svc, words := newTestService(t)

	userID := ulid.Make()
	learned := []*quiz.Word{{Content: "apple"}}
	rest := []*quiz.Word{{Content: "pear"}, {Content: "plum"}}
	words.On("Learned", ctx, userID).Return(learned, nil)
	words.On("NotLearned", ctx, userID).Return(rest, nil)

	got, err := svc.Learned(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, learned, got)

	got, err = svc.NotLearned(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, rest, got)
}

func TestService_CountByMonth(t *testing.T) {
	ctx := context.Background()
	svc, words := newTestService(t)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	buckets := []stats.MonthBucket{{Month: "2026-01", Count: 12}}
	words.On("CountByMonth", ctx, from, to).Return(buckets, nil)

	got, err := svc.CountByMonth(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, buckets, got)
}
