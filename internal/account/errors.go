// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account

import "errors"

// ErrNotFound is returned when a requested user or relationship does not exist.
var ErrNotFound = errors.New("not found")
