// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocably/vocably/internal/quiz"
	"github.com/vocably/vocably/internal/validate"
)

func newValidator(t *testing.T, correctLimit, minAnswers int) *quiz.Validator {
	t.Helper()
	v, err := quiz.NewValidator(correctLimit, minAnswers, nil)
	require.NoError(t, err)
	return v
}

func answers(contents []string, correct ...int) []quiz.Answer {
	isCorrect := make(map[int]bool, len(correct))
	for _, i := range correct {
		isCorrect[i] = true
	}
	out := make([]quiz.Answer, len(contents))
	for i, c := range contents {
		out[i] = quiz.Answer{Content: c, IsCorrect: isCorrect[i]}
	}
	return out
}

func runRules(v *quiz.Validator, word *quiz.Word) *validate.Errors {
	word.NormalizeAnswers()
	var errs validate.Errors
	v.Validate(word, &errs)
	return &errs
}

func TestNewValidator(t *testing.T) {
	t.Run("rejects non-positive limits", func(t *testing.T) {
		_, err := quiz.NewValidator(0, 4, nil)
		assert.Error(t, err)
		_, err = quiz.NewValidator(1, 0, nil)
		assert.Error(t, err)
	})
}

func TestValidator_Validate(t *testing.T) {
	v := newValidator(t, 1, 4)

	tests := []struct {
		name string
		word quiz.Word
		want map[string][]string // field -> expected messages, nil means valid
	}{
		{
			name: "one correct among four distinct answers",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "b", "c", "d"}, 0),
			},
		},
		{
			name: "no correct answer",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "b", "c", "d"}),
			},
			want: map[string][]string{
				"answers": {"must choose a correct answer"},
			},
		},
		{
			name: "two correct answers",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "b", "c", "d"}, 0, 2),
			},
			want: map[string][]string{
				"answers": {"must choose a correct answer"},
			},
		},
		{
			name: "too few answers",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "b", "c"}, 0),
			},
			want: map[string][]string{
				"answers": {"must choose minimum 4 answers"},
			},
		},
		{
			name: "duplicate listed once regardless of multiplicity",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "a", "a", "b"}, 3),
			},
			want: map[string][]string{
				"answers": {"has duplicate answer: a"},
			},
		},
		{
			name: "multiple duplicates joined by comma in first-seen order",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "b", "a", "b", "c"}, 4),
			},
			want: map[string][]string{
				"answers": {"has duplicate answer: a, b"},
			},
		},
		{
			name: "duplicate matching is case-sensitive",
			word: quiz.Word{
				Content: "apple",
				Answers: answers([]string{"a", "A", "b", "c"}, 0),
			},
		},
		{
			name: "every broken rule is reported at once",
			word: quiz.Word{
				Content: "",
				Answers: answers([]string{"a", "a"}),
			},
			want: map[string][]string{
				"answers": {
					"must choose a correct answer",
					"must choose minimum 4 answers",
					"has duplicate answer: a",
				},
				"content": {"can't be blank"},
			},
		},
		{
			name: "word content too long",
			word: quiz.Word{
				Content: strings.Repeat("a", quiz.MaxContentLength+1),
				Answers: answers([]string{"a", "b", "c", "d"}, 0),
			},
			want: map[string][]string{
				"content": {"is too long (maximum is 255 characters)"},
			},
		},
		{
			name: "multibyte content at the limit passes",
			word: quiz.Word{
				Content: strings.Repeat("é", quiz.MaxContentLength),
				Answers: answers([]string{"a", "b", "c", "d"}, 0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := runRules(v, &tt.word)
			if tt.want == nil {
				assert.False(t, errs.Any(), "unexpected errors: %v", errs.All())
				return
			}
			for field, msgs := range tt.want {
				assert.Equal(t, msgs, errs.On(field))
			}
		})
	}
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	v := newValidator(t, 2, 3)

	word := quiz.Word{
		Content: "apple",
		Answers: answers([]string{"a", "b", "c"}, 0, 1),
	}
	errs := runRules(v, &word)
	assert.False(t, errs.Any(), "two correct among three should satisfy limit 2/min 3")

	short := quiz.Word{
		Content: "apple",
		Answers: answers([]string{"a", "b"}, 0, 1),
	}
	errs = runRules(v, &short)
	assert.Equal(t, []string{"must choose minimum 3 answers"}, errs.On("answers"))
}

func TestWord_NormalizeAnswers(t *testing.T) {
	t.Run("drops blank and destroy-marked answers", func(t *testing.T) {
		word := quiz.Word{
			Content: "apple",
			Answers: []quiz.Answer{
				{Content: "keep", IsCorrect: true},
				{Content: ""},
				{Content: "   "},
				{Content: "gone", Destroy: true},
				{Content: "also kept"},
			},
		}
		word.NormalizeAnswers()
		require.Len(t, word.Answers, 2)
		assert.Equal(t, "keep", word.Answers[0].Content)
		assert.Equal(t, "also kept", word.Answers[1].Content)
	})

	t.Run("dropped answers do not count toward the limits", func(t *testing.T) {
		v := newValidator(t, 1, 4)
		word := quiz.Word{
			Content: "apple",
			Answers: []quiz.Answer{
				{Content: "a", IsCorrect: true},
				{Content: "b"},
				{Content: "c"},
				{Content: "", IsCorrect: false},
			},
		}
		errs := runRules(v, &word)
		assert.Equal(t, []string{"must choose minimum 4 answers"}, errs.On("answers"))
	})
}
