package database_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"promo_store_server/database"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":              {nil, false},
		"no rows":          {sql.ErrNoRows, false},
		"canceled":         {fmt.Errorf("query: %w", context.Canceled), false},
		"unique violation": {&pgconn.PgError{Code: "23505"}, false},
		"undefined table":  {&pgconn.PgError{Code: "42P01"}, false},
		"deadlock":         {&pgconn.PgError{Code: "40P01"}, true},
		"connection class": {fmt.Errorf("exec: %w", &pgconn.PgError{Code: "08006"}), true},
		"too many conns":   {&pgconn.PgError{Code: "53300"}, true},
		"sqlite busy":      {errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		"plain error":      {errors.New("boom"), false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, database.IsRetryable(tc.err))
		})
	}
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := database.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
	transient := &pgconn.PgError{Code: "40001"}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := database.RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := database.RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return transient
		})
		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		calls := 0
		permanent := &pgconn.PgError{Code: "23505"}
		err := database.RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := database.RetryWithBackoff(ctx, cfg, func() error { return transient })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
