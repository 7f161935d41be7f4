// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package postgres

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/account"
	"github.com/vocably/vocably/internal/storage"
)

// RelationshipRepository implements account.RelationshipRepository using
// PostgreSQL. The (follower_id, followed_id) pair is unique in the table,
// which is what makes Follow idempotent.
type RelationshipRepository struct {
	pool storage.Pool
}

// NewRelationshipRepository creates a new RelationshipRepository.
func NewRelationshipRepository(pool storage.Pool) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

// Follow records that follower follows followed. Repeating an existing
// follow is a no-op.
func (r *RelationshipRepository) Follow(ctx context.Context, followerID, followedID ulid.ULID) error {
	q := storage.QuerierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO relationships (follower_id, followed_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`, followerID.String(), followedID.String(), time.Now())
	if err != nil {
		return oops.Code("RELATIONSHIP_FOLLOW_FAILED").
			With("operation", "insert relationship").
			With("follower_id", followerID.String()).
			With("followed_id", followedID.String()).
			Wrap(err)
	}
	return nil
}

// Unfollow removes the relationship; absent rows are a no-op.
func (r *RelationshipRepository) Unfollow(ctx context.Context, followerID, followedID ulid.ULID) error {
	q := storage.QuerierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, `
		DELETE FROM relationships
		WHERE follower_id = $1 AND followed_id = $2
	`, followerID.String(), followedID.String())
	if err != nil {
		return oops.Code("RELATIONSHIP_UNFOLLOW_FAILED").
			With("operation", "delete relationship").
			With("follower_id", followerID.String()).
			With("followed_id", followedID.String()).
			Wrap(err)
	}
	return nil
}

// Exists reports whether follower currently follows followed.
func (r *RelationshipRepository) Exists(ctx context.Context, followerID, followedID ulid.ULID) (bool, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM relationships
			WHERE follower_id = $1 AND followed_id = $2
		)
	`, followerID.String(), followedID.String()).Scan(&exists)
	if err != nil {
		return false, oops.Code("RELATIONSHIP_EXISTS_FAILED").
			With("operation", "check relationship").
			With("follower_id", followerID.String()).
			With("followed_id", followedID.String()).
			Wrap(err)
	}
	return exists, nil
}

// Following returns the users that userID follows, most recent follow first.
func (r *RelationshipRepository) Following(ctx context.Context, userID ulid.ULID) ([]*account.User, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT u.id, u.name, u.email, u.phone, u.address, u.password_digest,
		       u.remember_digest, u.reset_digest, u.reset_sent_at, u.created_at, u.updated_at
		FROM users u
		JOIN relationships r ON r.followed_id = u.id
		WHERE r.follower_id = $1
		ORDER BY r.created_at DESC
	`, userID.String())
	if err != nil {
		return nil, oops.Code("RELATIONSHIP_FOLLOWING_FAILED").
			With("operation", "list following").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Followers returns the users that follow userID, most recent follow first.
func (r *RelationshipRepository) Followers(ctx context.Context, userID ulid.ULID) ([]*account.User, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT u.id, u.name, u.email, u.phone, u.address, u.password_digest,
		       u.remember_digest, u.reset_digest, u.reset_sent_at, u.created_at, u.updated_at
		FROM users u
		JOIN relationships r ON r.follower_id = u.id
		WHERE r.followed_id = $1
		ORDER BY r.created_at DESC
	`, userID.String())
	if err != nil {
		return nil, oops.Code("RELATIONSHIP_FOLLOWERS_FAILED").
			With("operation", "list followers").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Compile-time interface check.
var _ account.RelationshipRepository = (*RelationshipRepository)(nil)
