// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vocably/vocably/internal/stats"
)

// Repository manages user persistence. All queries are parameterized.
type Repository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates the identity fields and password digest of an
	// existing user.
	Update(ctx context.Context, user *User) error

	// UpdateRememberDigest writes only the remember digest; nil clears it.
	UpdateRememberDigest(ctx context.Context, id ulid.ULID, digest *string) error

	// UpdateResetDigest writes the reset digest and its issue timestamp in
	// one atomic update; nil for both clears the pending reset.
	UpdateResetDigest(ctx context.Context, id ulid.ULID, digest *string, sentAt *time.Time) error

	// UpdatePasswordDigest writes only the password digest.
	UpdatePasswordDigest(ctx context.Context, id ulid.ULID, digest string) error

	// Delete removes a user and cascades to its activities, lessons (with
	// their results), and relationship rows on both sides, atomically.
	Delete(ctx context.Context, id ulid.ULID) error

	// SearchByName returns users whose name contains the given substring,
	// case-insensitively. A nil name returns all users.
	SearchByName(ctx context.Context, name *string) ([]*User, error)

	// CountByMonth buckets user creations by calendar month over the
	// inclusive [from, to] month range, ordered ascending.
	CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error)

	// ClearResetDigestsBefore clears reset digests issued before the cutoff
	// and returns the number of users affected.
	ClearResetDigestsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RelationshipRepository manages the follow graph.
type RelationshipRepository interface {
	// Follow records that follower follows followed. Idempotent: following
	// an already-followed user is a no-op.
	Follow(ctx context.Context, followerID, followedID ulid.ULID) error

	// Unfollow removes the relationship; a no-op when absent.
	Unfollow(ctx context.Context, followerID, followedID ulid.ULID) error

	// Exists reports whether follower currently follows followed.
	Exists(ctx context.Context, followerID, followedID ulid.ULID) (bool, error)

	// Following returns the users the given user follows.
	Following(ctx context.Context, userID ulid.ULID) ([]*User, error)

	// Followers returns the users following the given user.
	Followers(ctx context.Context, userID ulid.ULID) ([]*User, error)
}
