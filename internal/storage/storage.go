// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package storage provides the PostgreSQL storage collaborator: pool
// construction with retry, a querier abstraction shared by pool and
// transaction, and error classification helpers.
//
// Schema management is not owned here; the repositories assume the tables
// already exist.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Connect retry tuning.
const (
	connectRetryBase = 500 * time.Millisecond
	connectMaxWait   = 30 * time.Second
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so
// repository helpers work inside and outside transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is the pool surface consumed by repositories and the Transactor.
// Satisfied by *pgxpool.Pool and by pgxmock.PgxPoolIface in tests.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Open connects a pgx pool to the given DSN, retrying the initial ping with
// fibonacci backoff until connectMaxWait elapses.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").Wrap(err)
	}

	backoff := retry.WithMaxDuration(connectMaxWait, retry.NewFibonacci(connectRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}

	return pool, nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
