// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package messages renders human-readable validation messages from stable
// keys. It is the message-formatting collaborator consumed by the domain
// validators; swapping in a catalog-backed implementation is a caller
// concern.
package messages

import "fmt"

// Message keys understood by the default translator.
const (
	KeyMustChooseCorrectAnswer = "must_choose_a_correct_answer"
	KeyMustChooseMinAnswers    = "must_choose_min_answer"
	KeyHasDuplicateAnswer      = "have_duplicate_answer"
)

// Translator renders a message key with positional parameters.
type Translator func(key string, args ...any) string

// templates maps keys to fmt templates for the default translator.
var templates = map[string]string{
	KeyMustChooseCorrectAnswer: "must choose a correct answer",
	KeyMustChooseMinAnswers:    "must choose minimum %v answers",
	KeyHasDuplicateAnswer:      "has duplicate answer: %v",
}

// Default renders built-in English messages. Unknown keys are returned
// verbatim so a missing template is visible rather than silent.
func Default(key string, args ...any) string {
	tmpl, ok := templates[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
