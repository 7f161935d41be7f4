// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account

import (
	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty value.
var ErrEmptyPassword = oops.Code("ACCOUNT_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher produces and verifies one-way digests of secrets. It is
// used both for passwords and for remember/reset tokens.
type PasswordHasher interface {
	// Hash produces a salted digest of the plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the digest. It fails closed:
	// an empty or malformed digest never matches and never panics.
	Verify(digest, plaintext string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt's adaptive cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. With minCost true the library
// minimum cost is used, which is only acceptable in test and development
// environments; otherwise the library default applies.
func NewBcryptHasher(minCost bool) *BcryptHasher {
	cost := bcrypt.DefaultCost
	if minCost {
		cost = bcrypt.MinCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted bcrypt digest of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", oops.Code("ACCOUNT_HASH_FAILED").Wrap(err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the bcrypt digest. Any
// comparison error, including a malformed digest, reports false.
func (h *BcryptHasher) Verify(digest, plaintext string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
