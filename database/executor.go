package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// run applies the builder timeout and wraps fn with retries. Statements inside
// a transaction are not retried: a failed statement aborts the transaction.
func (q *QueryBuilder[T]) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	if _, inTx := q.db.(bun.Tx); inTx {
		return fn(ctx)
	}

	return WithRetry(ctx, func() error {
		return fn(ctx)
	})
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	err := q.run(ctx, func(ctx context.Context) error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First executes the query and returns the first matching record with
// automatic retry. A missing row is reported as (nil, nil).
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	err := q.run(ctx, func(ctx context.Context) error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	err := q.run(ctx, func(ctx context.Context) error {
		var err error
		count, err = q.buildSelect((*T)(nil)).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with automatic retry
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	err := q.run(ctx, func(ctx context.Context) error {
		_, err := q.db.NewInsert().Model(data).Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records with automatic retry
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	err := q.run(ctx, func(ctx context.Context) error {
		_, err := q.db.NewInsert().Model(&data).Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update sets the given columns on every row matching the query and returns
// the number of affected rows.
func (q *QueryBuilder[T]) Update(ctx context.Context, values map[string]any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	if len(values) == 0 {
		return 0, fmt.Errorf("failed to execute update query: no columns to update")
	}

	err := q.run(ctx, func(ctx context.Context) error {
		query := q.db.NewUpdate().Model((*T)(nil))

		for key, value := range values {
			query = query.Set("? = ?", bun.Ident(key), value)
		}

		query = applyWheres(query, q.wheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query with automatic retry
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var rowsAffected int64

	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("failed to execute delete query: refusing to delete without conditions")
	}

	err := q.run(ctx, func(ctx context.Context) error {
		query := applyWheres(q.db.NewDelete().Model((*T)(nil)), q.wheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// UpdateModel writes data back to its row, matched by primary key. Only the
// listed columns are written when columns is not empty.
func (q *QueryBuilder[T]) UpdateModel(ctx context.Context, data *T, columns ...string) (int, error) {
	start := time.Now()
	var rowsAffected int64

	err := q.run(ctx, func(ctx context.Context) error {
		query := q.db.NewUpdate().Model(data).WherePK()
		if len(columns) > 0 {
			query = query.Column(columns...)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
