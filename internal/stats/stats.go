// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package stats provides month-bucketed creation statistics shared by the
// account and quiz domains.
package stats

import (
	"context"
	"time"

	"github.com/samber/oops"
)

// MonthBucket is one month's worth of created rows, keyed by a "YYYY-MM"
// label. Buckets are always ordered ascending by month; months without rows
// are absent rather than zero.
type MonthBucket struct {
	Month string
	Count int64
}

// MonthCounter counts entity creations bucketed by calendar month over the
// inclusive [from, to] month range.
type MonthCounter interface {
	CountByMonth(ctx context.Context, from, to time.Time) ([]MonthBucket, error)
}

// Report pairs the user and word signup curves for one range.
type Report struct {
	From  time.Time
	To    time.Time
	Users []MonthBucket
	Words []MonthBucket
}

// Service produces creation reports across both domains.
type Service struct {
	users MonthCounter
	words MonthCounter
}

// NewService creates a stats Service.
func NewService(users, words MonthCounter) (*Service, error) {
	if users == nil {
		return nil, oops.Code("STATS_INVALID_DEPS").Errorf("users counter is required")
	}
	if words == nil {
		return nil, oops.Code("STATS_INVALID_DEPS").Errorf("words counter is required")
	}
	return &Service{users: users, words: words}, nil
}

// MonthlyReport collects user and word creation buckets for the inclusive
// month range [from, to].
func (s *Service) MonthlyReport(ctx context.Context, from, to time.Time) (*Report, error) {
	if to.Before(from) {
		return nil, oops.Code("STATS_INVALID_RANGE").
			With("from", from).
			With("to", to).
			Errorf("end month precedes start month")
	}

	users, err := s.users.CountByMonth(ctx, from, to)
	if err != nil {
		return nil, oops.Code("STATS_REPORT_FAILED").With("operation", "count users").Wrap(err)
	}
	words, err := s.words.CountByMonth(ctx, from, to)
	if err != nil {
		return nil, oops.Code("STATS_REPORT_FAILED").With("operation", "count words").Wrap(err)
	}

	return &Report{From: from, To: to, Users: users, Words: words}, nil
}
