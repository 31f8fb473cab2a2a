package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/hero-flashcards/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	generic := errors.New("generic error")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, wantIs: store.ErrDuplicate},
		{
			name:   "check violation",
			err:    &pgconn.PgError{Code: "23514", ConstraintName: "characters_name_check"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not null violation",
			err:    fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502", ColumnName: "name"}),
			wantIs: store.ErrInvalidEntity,
		},
		{name: "unmapped postgres code", err: &pgconn.PgError{Code: "40001"}, wantIs: nil},
		{name: "generic", err: generic, wantIs: generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("generic")))
	assert.False(t, IsUniqueViolation(nil))
}
