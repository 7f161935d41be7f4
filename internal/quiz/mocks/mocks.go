// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package mocks provides testify mocks for the quiz interfaces.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/vocably/vocably/internal/quiz"
	"github.com/vocably/vocably/internal/stats"
)

// MockWordRepository mocks quiz.WordRepository.
type MockWordRepository struct {
	mock.Mock
}

// NewMockWordRepository creates a MockWordRepository bound to the test's
// lifecycle; expectations are asserted on cleanup.
func NewMockWordRepository(t *testing.T) *MockWordRepository {
	t.Helper()
	m := &MockWordRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWordRepository) SaveWithAnswers(ctx context.Context, word *quiz.Word) error {
	return m.Called(ctx, word).Error(0)
}

func (m *MockWordRepository) GetByID(ctx context.Context, id ulid.ULID) (*quiz.Word, error) {
	args := m.Called(ctx, id)
	word, _ := args.Get(0).(*quiz.Word)
	return word, args.Error(1)
}

func (m *MockWordRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWordRepository) Learned(ctx context.Context, userID ulid.ULID) ([]*quiz.Word, error) {
	args := m.Called(ctx, userID)
	words, _ := args.Get(0).([]*quiz.Word)
	return words, args.Error(1)
}

func (m *MockWordRepository) NotLearned(ctx context.Context, userID ulid.ULID) ([]*quiz.Word, error) {
	args := m.Called(ctx, userID)
	words, _ := args.Get(0).([]*quiz.Word)
	return words, args.Error(1)
}

func (m *MockWordRepository) CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error) {
	args := m.Called(ctx, from, to)
	buckets, _ := args.Get(0).([]stats.MonthBucket)
	return buckets, args.Error(1)
}

// Compile-time interface check.
var _ quiz.WordRepository = (*MockWordRepository)(nil)
