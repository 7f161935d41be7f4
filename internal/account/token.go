// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/samber/oops"
)

// TokenBytes is the entropy of a bearer token: 16 bytes = 128 bits.
const TokenBytes = 16

// DigestKind selects which stored digest Authenticated checks a token
// against.
type DigestKind string

// Digest kinds.
const (
	DigestRemember DigestKind = "remember"
	DigestReset    DigestKind = "reset"
)

// NewToken creates a URL-safe random bearer token. The plaintext token is
// handed to the caller (typically placed in a client cookie or reset link);
// only its digest is ever persisted.
func NewToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", oops.Code("ACCOUNT_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", TokenBytes).
			Wrap(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
