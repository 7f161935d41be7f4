// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package postgres implements the account repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/account"
	"github.com/vocably/vocably/internal/stats"
	"github.com/vocably/vocably/internal/storage"
)

// UserRepository implements account.Repository using PostgreSQL.
type UserRepository struct {
	pool storage.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool storage.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, phone, address, password_digest,
	       remember_digest, reset_digest, reset_sent_at, created_at, updated_at`

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *account.User) error {
	q := storage.QuerierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO users (
			id, name, email, phone, address, password_digest,
			remember_digest, reset_digest, reset_sent_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		user.ID.String(),
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.PasswordDigest,
		user.RememberDigest,
		user.ResetDigest,
		user.ResetSentAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return err //nolint:wrapcheck // callers classify unique violations
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*account.User, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// Update updates an existing user.
func (r *UserRepository) Update(ctx context.Context, user *account.User) error {
	q := storage.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, `
		UPDATE users SET
			name = $2,
			email = $3,
			phone = $4,
			address = $5,
			password_digest = $6,
			updated_at = $7
		WHERE id = $1
	`,
		user.ID.String(),
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.PasswordDigest,
		user.UpdatedAt,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return err //nolint:wrapcheck // callers classify unique violations
		}
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", user.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", user.ID.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// UpdateRememberDigest overwrites only the remember digest; nil clears it.
func (r *UserRepository) UpdateRememberDigest(ctx context.Context, id ulid.ULID, digest *string) error {
	q := storage.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, `
		UPDATE users SET remember_digest = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), digest, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_REMEMBER_FAILED").
			With("operation", "update remember digest").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// UpdateResetDigest overwrites the reset digest and its issue time in a
// single statement; nils clear a pending reset.
func (r *UserRepository) UpdateResetDigest(ctx context.Context, id ulid.ULID, digest *string, sentAt *time.Time) error {
	q := storage.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, `
		UPDATE users SET reset_digest = $2, reset_sent_at = $3, updated_at = $4
		WHERE id = $1
	`, id.String(), digest, sentAt, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_RESET_FAILED").
			With("operation", "update reset digest").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// UpdatePasswordDigest overwrites only the password digest.
func (r *UserRepository) UpdatePasswordDigest(ctx context.Context, id ulid.ULID, digest string) error {
	q := storage.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, `
		UPDATE users SET password_digest = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), digest, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_PASSWORD_FAILED").
			With("operation", "update password digest").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// Delete removes a user together with its dependent rows: the follow
// relationships on both sides, activities, lesson results, and lessons.
// All deletes run in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	idStr := id.String()
	cascade := []string{
		`DELETE FROM relationships WHERE follower_id = $1 OR followed_id = $1`,
		`DELETE FROM activities WHERE user_id = $1`,
		`DELETE FROM results WHERE lesson_id IN (SELECT id FROM lessons WHERE user_id = $1)`,
		`DELETE FROM lessons WHERE user_id = $1`,
	}
	for _, stmt := range cascade {
		if _, err := tx.Exec(ctx, stmt, idStr); err != nil {
			return oops.Code("USER_DELETE_FAILED").
				With("operation", "delete dependent rows").
				With("id", idStr).
				Wrap(err)
		}
	}

	result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, idStr)
	if err != nil {
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "delete user").
			With("id", idStr).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", idStr).
			Wrap(account.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "commit transaction").
			With("id", idStr).
			Wrap(err)
	}
	return nil
}

// SearchByName returns users whose name contains the given substring,
// case-insensitively; a nil name returns all users. The substring is always
// passed as a bind parameter.
func (r *UserRepository) SearchByName(ctx context.Context, name *string) ([]*account.User, error) {
	q := storage.QuerierFrom(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if name == nil {
		rows, err = q.Query(ctx, `
			SELECT `+userColumns+`
			FROM users
			ORDER BY name, id
		`)
	} else {
		rows, err = q.Query(ctx, `
			SELECT `+userColumns+`
			FROM users
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY name, id
		`, *name)
	}
	if err != nil {
		return nil, oops.Code("USER_SEARCH_FAILED").
			With("operation", "search users by name").
			Wrap(err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// CountByMonth buckets user signups by calendar month of created_at. The
// bounds are truncated to their month, so both endpoint months are counted.
func (r *UserRepository) CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COUNT(*) AS count
		FROM users
		WHERE date_trunc('month', created_at) >= date_trunc('month', $1::timestamptz)
		  AND date_trunc('month', created_at) <= date_trunc('month', $2::timestamptz)
		GROUP BY month
		ORDER BY month
	`, from, to)
	if err != nil {
		return nil, oops.Code("USER_COUNT_BY_MONTH_FAILED").
			With("operation", "count users by month").
			Wrap(err)
	}
	defer rows.Close()

	var buckets []stats.MonthBucket
	for rows.Next() {
		var b stats.MonthBucket
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, oops.Code("USER_COUNT_BY_MONTH_FAILED").
				With("operation", "scan month bucket").
				Wrap(err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_COUNT_BY_MONTH_FAILED").
			With("operation", "iterate month buckets").
			Wrap(err)
	}
	return buckets, nil
}

// ClearResetDigestsBefore clears pending resets issued before cutoff and
// returns the number of users affected.
func (r *UserRepository) ClearResetDigestsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, `
		UPDATE users SET reset_digest = NULL, reset_sent_at = NULL, updated_at = $2
		WHERE reset_digest IS NOT NULL AND reset_sent_at < $1
	`, cutoff, time.Now())
	if err != nil {
		return 0, oops.Code("USER_CLEAR_RESETS_FAILED").
			With("operation", "clear expired reset digests").
			Wrap(err)
	}
	return result.RowsAffected(), nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*account.User, error) {
	var (
		idStr          string
		name           string
		email          string
		phone          string
		address        string
		passwordDigest string
		rememberDigest *string
		resetDigest    *string
		resetSentAt    *time.Time
		createdAt      time.Time
		updatedAt      time.Time
	)

	err := row.Scan(
		&idStr,
		&name,
		&email,
		&phone,
		&address,
		&passwordDigest,
		&rememberDigest,
		&resetDigest,
		&resetSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}

	return &account.User{
		ID:             id,
		Name:           name,
		Email:          email,
		Phone:          phone,
		Address:        address,
		PasswordDigest: passwordDigest,
		RememberDigest: rememberDigest,
		ResetDigest:    resetDigest,
		ResetSentAt:    resetSentAt,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// collectUsers drains rows into a slice of users.
func collectUsers(rows pgx.Rows) ([]*account.User, error) {
	var users []*account.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "iterate users").
			Wrap(err)
	}
	return users, nil
}

// Compile-time interface check.
var _ account.Repository = (*UserRepository)(nil)
