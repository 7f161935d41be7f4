// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package mocks provides testify mocks for the account domain interfaces.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/vocably/vocably/internal/account"
	"github.com/vocably/vocably/internal/stats"
)

// MockRepository mocks account.Repository.
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a MockRepository that asserts its expectations
// at test cleanup.
func NewMockRepository(t *testing.T) *MockRepository {
	t.Helper()
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Create(ctx context.Context, user *account.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id ulid.ULID) (*account.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*account.User)
	return user, args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*account.User)
	return user, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, user *account.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockRepository) UpdateRememberDigest(ctx context.Context, id ulid.ULID, digest *string) error {
	return m.Called(ctx, id, digest).Error(0)
}

func (m *MockRepository) UpdateResetDigest(ctx context.Context, id ulid.ULID, digest *string, sentAt *time.Time) error {
	return m.Called(ctx, id, digest, sentAt).Error(0)
}

func (m *MockRepository) UpdatePasswordDigest(ctx context.Context, id ulid.ULID, digest string) error {
	return m.Called(ctx, id, digest).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) SearchByName(ctx context.Context, name *string) ([]*account.User, error) {
	args := m.Called(ctx, name)
	users, _ := args.Get(0).([]*account.User)
	return users, args.Error(1)
}

func (m *MockRepository) CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error) {
	args := m.Called(ctx, from, to)
	buckets, _ := args.Get(0).([]stats.MonthBucket)
	return buckets, args.Error(1)
}

func (m *MockRepository) ClearResetDigestsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockRelationshipRepository mocks account.RelationshipRepository.
type MockRelationshipRepository struct {
	mock.Mock
}

// NewMockRelationshipRepository creates a MockRelationshipRepository that
// asserts its expectations at test cleanup.
func NewMockRelationshipRepository(t *testing.T) *MockRelationshipRepository {
	t.Helper()
	m := &MockRelationshipRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRelationshipRepository) Follow(ctx context.Context, followerID, followedID ulid.ULID) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *MockRelationshipRepository) Unfollow(ctx context.Context, followerID, followedID ulid.ULID) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *MockRelationshipRepository) Exists(ctx context.Context, followerID, followedID ulid.ULID) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipRepository) Following(ctx context.Context, userID ulid.ULID) ([]*account.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]*account.User)
	return users, args.Error(1)
}

func (m *MockRelationshipRepository) Followers(ctx context.Context, userID ulid.ULID) ([]*account.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]*account.User)
	return users, args.Error(1)
}

// MockPasswordHasher mocks account.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations at test cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	t.Helper()
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(digest, plaintext string) bool {
	return m.Called(digest, plaintext).Bool(0)
}
