// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package validate provides the accumulating error collection used by the
// domain validation pipelines. Validators append to a shared collection and
// never short-circuit, so a single failed save can report every broken rule
// at once.
package validate

import (
	"fmt"
	"strings"
)

// FieldError is a single validation failure. Field may be empty for
// whole-entity errors.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Errors collects validation failures for one entity. The zero value is
// ready to use.
type Errors struct {
	list []FieldError
}

// Add appends a field-scoped error. Use field "" for entity-level errors.
func (e *Errors) Add(field, message string) {
	e.list = append(e.list, FieldError{Field: field, Message: message})
}

// Addf appends a formatted field-scoped error.
func (e *Errors) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// Any reports whether at least one error has been collected.
func (e *Errors) Any() bool {
	return e != nil && len(e.list) > 0
}

// All returns the collected errors in insertion order.
func (e *Errors) All() []FieldError {
	if e == nil {
		return nil
	}
	return e.list
}

// On returns the messages collected for the given field.
func (e *Errors) On(field string) []string {
	if e == nil {
		return nil
	}
	var msgs []string
	for _, fe := range e.list {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

// Error implements the error interface, joining all messages.
func (e *Errors) Error() string {
	if !e.Any() {
		return "validation passed"
	}
	parts := make([]string, 0, len(e.list))
	for _, fe := range e.list {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrOrNil returns e as an error when any failure was collected, nil
// otherwise. Callers return this directly from validation entry points.
func (e *Errors) ErrOrNil() error {
	if e.Any() {
		return e
	}
	return nil
}
