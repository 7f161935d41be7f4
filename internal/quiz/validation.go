// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/messages"
	"github.com/vocably/vocably/internal/validate"
)

// Default rule limits, used when the caller does not configure its own.
const (
	DefaultCorrectAnswersLimit = 1
	DefaultMinAnswers          = 4
)

// Validator runs the answer-integrity rules against a word. The rules run
// in order and never short-circuit; each appends to the shared collection
// so one failed save reports every broken rule.
type Validator struct {
	correctAnswersLimit int
	minAnswers          int
	translate           messages.Translator
}

// NewValidator creates a Validator with the given rule limits.
func NewValidator(correctAnswersLimit, minAnswers int, translate messages.Translator) (*Validator, error) {
	if correctAnswersLimit < 1 {
		return nil, oops.Code("QUIZ_INVALID_LIMITS").Errorf("correct answers limit must be at least 1, got %d", correctAnswersLimit)
	}
	if minAnswers < 1 {
		return nil, oops.Code("QUIZ_INVALID_LIMITS").Errorf("minimum answers must be at least 1, got %d", minAnswers)
	}
	if translate == nil {
		translate = messages.Default
	}
	return &Validator{
		correctAnswersLimit: correctAnswersLimit,
		minAnswers:          minAnswers,
		translate:           translate,
	}, nil
}

// Validate appends every broken rule to errs. Callers normalize the word's
// answers first; discarded answers must not count toward the limits.
func (v *Validator) Validate(word *Word, errs *validate.Errors) {
	v.checkCorrectCount(word, errs)
	v.checkMinAnswers(word, errs)
	v.checkDuplicates(word, errs)
	v.checkContent(word, errs)
}

func (v *Validator) checkCorrectCount(word *Word, errs *validate.Errors) {
	correct := 0
	for _, a := range word.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != v.correctAnswersLimit {
		errs.Add("answers", v.translate(messages.KeyMustChooseCorrectAnswer))
	}
}

func (v *Validator) checkMinAnswers(word *Word, errs *validate.Errors) {
	if len(word.Answers) < v.minAnswers {
		errs.Add("answers", v.translate(messages.KeyMustChooseMinAnswers, v.minAnswers))
	}
}

// checkDuplicates reports each duplicated content value once, in first-seen
// order, regardless of how many times it repeats. Matching is exact and
// case-sensitive.
func (v *Validator) checkDuplicates(word *Word, errs *validate.Errors) {
	seen := make(map[string]int, len(word.Answers))
	var dups []string
	for _, a := range word.Answers {
		seen[a.Content]++
		if seen[a.Content] == 2 {
			dups = append(dups, a.Content)
		}
	}
	if len(dups) > 0 {
		errs.Add("answers", v.translate(messages.KeyHasDuplicateAnswer, strings.Join(dups, ", ")))
	}
}

func (v *Validator) checkContent(word *Word, errs *validate.Errors) {
	if word.Content == "" {
		errs.Add("content", "can't be blank")
	} else if utf8.RuneCountInString(word.Content) > MaxContentLength {
		errs.Addf("content", "is too long (maximum is %d characters)", MaxContentLength)
	}
}
