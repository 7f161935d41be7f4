// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/stats"
	"github.com/vocably/vocably/internal/storage"
	"github.com/vocably/vocably/internal/validate"
)

// Service coordinates user validation, credential hashing, and persistence.
type Service struct {
	users  Repository
	rels   RelationshipRepository
	hasher PasswordHasher
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service with a discarded logger.
func NewService(users Repository, rels RelationshipRepository, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(users, rels, hasher, slog.New(slog.DiscardHandler))
}

// NewServiceWithLogger creates a Service logging through the given logger.
func NewServiceWithLogger(users Repository, rels RelationshipRepository, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Code("ACCOUNT_INVALID_DEPS").Errorf("users repository is required")
	}
	if rels == nil {
		return nil, oops.Code("ACCOUNT_INVALID_DEPS").Errorf("relationships repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("ACCOUNT_INVALID_DEPS").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("ACCOUNT_INVALID_DEPS").Errorf("logger is required")
	}
	return &Service{
		users:  users,
		rels:   rels,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}, nil
}

// CreateParams carries the attributes of a new user.
type CreateParams struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// Create validates and persists a new user. The email is stored lower-cased.
// Validation failures come back as *validate.Errors with every broken rule;
// a storage-level email uniqueness violation is reported the same way.
func (s *Service) Create(ctx context.Context, p CreateParams) (*User, error) {
	user := &User{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}

	var errs validate.Errors
	user.ValidateFields(&errs)
	ValidatePassword(p.Password, true, &errs)
	if errs.Any() {
		return nil, &errs
	}

	digest, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").With("operation", "hash password").Wrap(err)
	}

	now := s.now()
	user.ID = ulid.Make()
	user.Email = NormalizeEmail(user.Email)
	user.PasswordDigest = digest
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.users.Create(ctx, user); err != nil {
		if storage.IsUniqueViolation(err) {
			errs.Add("email", "has already been taken")
			return nil, &errs
		}
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").With("operation", "insert user").Wrap(err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID.String())
	return user, nil
}

// UpdateParams carries updatable attributes. A nil Password leaves the
// stored credential untouched; a non-nil one is validated and re-hashed.
type UpdateParams struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password *string
}

// Update validates and persists changes to an existing user.
func (s *Service) Update(ctx context.Context, user *User, p UpdateParams) error {
	updated := *user
	updated.Name = p.Name
	updated.Email = p.Email
	updated.Phone = p.Phone
	updated.Address = p.Address

	var errs validate.Errors
	updated.ValidateFields(&errs)
	if p.Password != nil {
		ValidatePassword(*p.Password, true, &errs)
	}
	if errs.Any() {
		return &errs
	}

	if p.Password != nil {
		digest, err := s.hasher.Hash(*p.Password)
		if err != nil {
			return oops.Code("ACCOUNT_UPDATE_FAILED").With("operation", "hash password").Wrap(err)
		}
		updated.PasswordDigest = digest
	}

	updated.Email = NormalizeEmail(updated.Email)
	updated.UpdatedAt = s.now()

	if err := s.users.Update(ctx, &updated); err != nil {
		if storage.IsUniqueViolation(err) {
			errs.Add("email", "has already been taken")
			return &errs
		}
		return oops.Code("ACCOUNT_UPDATE_FAILED").With("operation", "update user").Wrap(err)
	}

	*user = updated
	return nil
}

// dummyPasswordDigest is a syntactically valid bcrypt digest that matches no
// password. Verification still runs against it when the email is unknown so
// response time stays uniform.
//
//nolint:gosec // G101: intentionally fake digest, not a credential
const dummyPasswordDigest = "$2a$10$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Authenticate verifies an email/password pair and returns the matching
// user. Failure is uniform across unknown email and wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.hasher.Verify(dummyPasswordDigest, password)
			return nil, false, nil
		}
		return nil, false, oops.Code("ACCOUNT_AUTH_FAILED").With("operation", "get user by email").Wrap(err)
	}
	if !s.hasher.Verify(user.PasswordDigest, password) {
		return nil, false, nil
	}
	return user, true, nil
}

// Remember issues a new remember token, persists its digest on the user,
// and returns the plaintext token for the caller's cookie.
func (s *Service) Remember(ctx context.Context, user *User) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	digest, err := s.hasher.Hash(token)
	if err != nil {
		return "", oops.Code("ACCOUNT_REMEMBER_FAILED").With("operation", "hash token").Wrap(err)
	}
	if err := s.users.UpdateRememberDigest(ctx, user.ID, &digest); err != nil {
		return "", oops.Code("ACCOUNT_REMEMBER_FAILED").With("operation", "store digest").Wrap(err)
	}
	user.RememberDigest = &digest
	return token, nil
}

// Forget clears the stored remember digest; tokens issued earlier stop
// authenticating immediately.
func (s *Service) Forget(ctx context.Context, user *User) error {
	if err := s.users.UpdateRememberDigest(ctx, user.ID, nil); err != nil {
		return oops.Code("ACCOUNT_FORGET_FAILED").Wrap(err)
	}
	user.RememberDigest = nil
	return nil
}

// StartReset issues a new password-reset token, persisting its digest and
// issue time in one atomic write, and returns the plaintext token for the
// caller's delivery channel.
func (s *Service) StartReset(ctx context.Context, user *User) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	digest, err := s.hasher.Hash(token)
	if err != nil {
		return "", oops.Code("ACCOUNT_RESET_FAILED").With("operation", "hash token").Wrap(err)
	}
	sentAt := s.now()
	if err := s.users.UpdateResetDigest(ctx, user.ID, &digest, &sentAt); err != nil {
		return "", oops.Code("ACCOUNT_RESET_FAILED").With("operation", "store digest").Wrap(err)
	}
	user.ResetDigest = &digest
	user.ResetSentAt = &sentAt
	return token, nil
}

// ResetPassword completes a reset: the token must authenticate against the
// stored reset digest, the new password must validate, and the pending
// reset is cleared after the credential is replaced.
func (s *Service) ResetPassword(ctx context.Context, user *User, token, newPassword string) error {
	if !s.Authenticated(user, DigestReset, token) {
		return oops.Code("ACCOUNT_RESET_TOKEN_INVALID").Errorf("reset token does not match")
	}

	var errs validate.Errors
	ValidatePassword(newPassword, true, &errs)
	if errs.Any() {
		return &errs
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("ACCOUNT_RESET_FAILED").With("operation", "hash password").Wrap(err)
	}
	if err := s.users.UpdatePasswordDigest(ctx, user.ID, digest); err != nil {
		return oops.Code("ACCOUNT_RESET_FAILED").With("operation", "store password digest").Wrap(err)
	}
	user.PasswordDigest = digest

	// Clearing the pending reset is cleanup; the credential is already
	// replaced if this write fails.
	if err := s.users.UpdateResetDigest(ctx, user.ID, nil, nil); err != nil {
		s.logger.WarnContext(ctx, "failed to clear reset digest", "user_id", user.ID.String(), "error", err)
		return nil
	}
	user.ResetDigest = nil
	user.ResetSentAt = nil
	return nil
}

// Authenticated reports whether the token matches the user's stored digest
// of the given kind. An absent digest or unknown kind fails closed.
func (s *Service) Authenticated(user *User, kind DigestKind, token string) bool {
	var digest *string
	switch kind {
	case DigestRemember:
		digest = user.RememberDigest
	case DigestReset:
		digest = user.ResetDigest
	default:
		return false
	}
	if digest == nil {
		return false
	}
	return s.hasher.Verify(*digest, token)
}

// Follow makes user follow other. Idempotent.
func (s *Service) Follow(ctx context.Context, user, other *User) error {
	if err := s.rels.Follow(ctx, user.ID, other.ID); err != nil {
		return oops.Code("ACCOUNT_FOLLOW_FAILED").
			With("follower_id", user.ID.String()).
			With("followed_id", other.ID.String()).
			Wrap(err)
	}
	return nil
}

// Unfollow removes other from user's following set; a no-op when absent.
func (s *Service) Unfollow(ctx context.Context, user, other *User) error {
	if err := s.rels.Unfollow(ctx, user.ID, other.ID); err != nil {
		return oops.Code("ACCOUNT_UNFOLLOW_FAILED").
			With("follower_id", user.ID.String()).
			With("followed_id", other.ID.String()).
			Wrap(err)
	}
	return nil
}

// Following returns the users that user follows.
func (s *Service) Following(ctx context.Context, user *User) ([]*User, error) {
	users, err := s.rels.Following(ctx, user.ID)
	if err != nil {
		return nil, oops.Code("ACCOUNT_FOLLOWING_FAILED").
			With("user_id", user.ID.String()).
			Wrap(err)
	}
	return users, nil
}

// Followers returns the users that follow user.
func (s *Service) Followers(ctx context.Context, user *User) ([]*User, error) {
	users, err := s.rels.Followers(ctx, user.ID)
	if err != nil {
		return nil, oops.Code("ACCOUNT_FOLLOWERS_FAILED").
			With("user_id", user.ID.String()).
			Wrap(err)
	}
	return users, nil
}

// IsFollowing reports whether user currently follows other.
func (s *Service) IsFollowing(ctx context.Context, user, other *User) (bool, error) {
	following, err := s.rels.Exists(ctx, user.ID, other.ID)
	if err != nil {
		return false, oops.Code("ACCOUNT_FOLLOW_CHECK_FAILED").Wrap(err)
	}
	return following, nil
}

// Delete removes the user together with its dependent rows.
func (s *Service) Delete(ctx context.Context, user *User) error {
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return oops.Code("ACCOUNT_DELETE_FAILED").With("user_id", user.ID.String()).Wrap(err)
	}
	return nil
}

// SearchByName returns users whose name contains the given substring,
// case-insensitively; a nil name returns everyone.
func (s *Service) SearchByName(ctx context.Context, name *string) ([]*User, error) {
	users, err := s.users.SearchByName(ctx, name)
	if err != nil {
		return nil, oops.Code("ACCOUNT_SEARCH_FAILED").Wrap(err)
	}
	return users, nil
}

// CountByMonth exposes the user repository's month buckets.
func (s *Service) CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error) {
	buckets, err := s.users.CountByMonth(ctx, from, to)
	if err != nil {
		return nil, oops.Code("ACCOUNT_STATS_FAILED").Wrap(err)
	}
	return buckets, nil
}

// PruneResetDigests clears reset digests older than maxAge and returns the
// number of users affected.
func (s *Service) PruneResetDigests(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge)
	n, err := s.users.ClearResetDigestsBefore(ctx, cutoff)
	if err != nil {
		return 0, oops.Code("ACCOUNT_PRUNE_FAILED").With("cutoff", cutoff).Wrap(err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "pruned expired reset digests", "count", n)
	}
	return n, nil
}
