// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vocably/vocably/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestOpen_InvalidDSN(t *testing.T) {
	_, err := storage.Open(context.Background(), "not a dsn")
	require.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: true,
		},
		{
			name: "wrapped unique violation",
			err:  errors.Join(errors.New("outer"), &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			want: true,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.IsUniqueViolation(tt.err))
		})
	}
}

func TestTransactor_CommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO words`).WithArgs("w1").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tr := storage.NewTransactor(mock)
	err = tr.InTransaction(context.Background(), func(ctx context.Context) error {
		q := storage.QuerierFrom(ctx, mock)
		_, execErr := q.Exec(ctx, `INSERT INTO words (id) VALUES ($1)`, "w1")
		return execErr
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tr := storage.NewTransactor(mock)
	sentinel := errors.New("boom")
	err = tr.InTransaction(context.Background(), func(context.Context) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_BeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	tr := storage.NewTransactor(mock)
	err = tr.InTransaction(context.Background(), func(context.Context) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool exhausted")
}

func TestQuerierFrom_FallsBackToPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	q := storage.QuerierFrom(context.Background(), mock)
	assert.Equal(t, storage.Querier(mock), q)
}
