// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package quiz

import "errors"

// ErrNotFound is returned when a requested word does not exist.
var ErrNotFound = errors.New("not found")
