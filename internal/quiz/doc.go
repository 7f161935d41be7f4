// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package quiz holds the vocabulary quiz domain: words with nested answers,
// the answer-integrity validation rules that gate every save, and the
// learned/not-learned word partition per user.
//
// A word and its answers are saved atomically; any broken validation rule
// blocks the whole write. The rule limits (how many answers must be flagged
// correct, how many answers a word needs) are injected, not hard-coded, so
// deployments can tune them through configuration.
package quiz
