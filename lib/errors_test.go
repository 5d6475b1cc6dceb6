package lib

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"pgx foreign key violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), ErrNotFound},
		{"sqlite unique violation", errors.New("constraint failed: UNIQUE constraint failed: categories.slug (2067)"), ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapDBError(tt.err)
			assert.ErrorIs(t, mapped, tt.want)
			assert.ErrorIs(t, mapped, tt.err)
		})
	}
}

func TestMapDBErrorPassesThroughUnknown(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, MapDBError(err))
	assert.NoError(t, MapDBError(nil))
	assert.Empty(t, SQLState(err))
}
