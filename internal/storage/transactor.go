// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package storage

import (
	"context"

	"github.com/samber/oops"
)

// txKey is the context key carrying an active pgx.Tx.
type txKey struct{}

// Transactor runs functions inside a database transaction. The active
// transaction travels in the context so repository methods called from fn
// participate in the same transaction.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a Transactor backed by the given pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// InTransaction begins a transaction, stores it in context, and calls fn.
// If fn returns nil, the transaction is committed. Otherwise it is rolled back.
func (t *Transactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// QuerierFrom returns the transaction stored in ctx when present, falling
// back to the given querier otherwise.
func QuerierFrom(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(Querier); ok {
		return tx
	}
	return fallback
}
