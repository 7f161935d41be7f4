// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// MaxContentLength bounds word content.
const MaxContentLength = 255

// Word is a vocabulary entry belonging to a category, owning its answers.
type Word struct {
	ID         ulid.ULID
	CategoryID ulid.ULID
	Content    string
	Answers    []Answer
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Answer is a nested candidate answer for a word. Destroy marks an answer
// for removal on the next save; it is never persisted.
type Answer struct {
	ID        ulid.ULID
	WordID    ulid.ULID
	Content   string
	IsCorrect bool
	Destroy   bool
}

// Result records a quiz attempt: which answer was picked in which lesson.
// Only the shape needed by the learned-word queries and cascade deletes.
type Result struct {
	ID       ulid.ULID
	LessonID ulid.ULID
	AnswerID ulid.ULID
}

// NormalizeAnswers drops destroy-marked and blank-content answers in place.
// Runs before validation, so discarded answers neither count toward the
// limits nor reach storage.
func (w *Word) NormalizeAnswers() {
	kept := w.Answers[:0]
	for _, a := range w.Answers {
		if a.Destroy || strings.TrimSpace(a.Content) == "" {
			continue
		}
		kept = append(kept, a)
	}
	w.Answers = kept
}
