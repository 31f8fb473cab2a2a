package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newMockCharacterStore(t *testing.T) (*PostgresCharacterStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewPostgresCharacterStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func sampleCharacters() []domain.Character {
	return []domain.Character{
		{ID: 1009610, Name: "Spider-Man", ImageURL: "https://img/spidey.jpg",
			RealName: "Peter Parker", Powers: "Wall-crawling", FirstAppearance: "Amazing Fantasy #15"},
		{ID: 1009368, Name: "Iron Man", RealName: "Tony Stark",
			Powers: "Powered armor", FirstAppearance: "Tales of Suspense #39"},
	}
}

func TestPostgresCharacterStore_ReplaceAll(t *testing.T) {
	t.Parallel()

	insert := regexp.QuoteMeta("INSERT INTO characters")

	t.Run("replaces in order", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockCharacterStore(t)
		chars := sampleCharacters()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM characters")).
			WillReturnResult(sqlmock.NewResult(0, 5))
		for i, c := range chars {
			mock.ExpectExec(insert).
				WithArgs(c.ID, i, c.Name, c.Description, c.ImageURL,
					c.RealName, c.Powers, c.FirstAppearance, fixedNow).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		require.NoError(t, s.ReplaceAll(context.Background(), chars))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid character touches nothing", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockCharacterStore(t)

		err := s.ReplaceAll(context.Background(), []domain.Character{{ID: 1, Name: " "}})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id maps to store error", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockCharacterStore(t)
		chars := sampleCharacters()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM characters")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(insert).WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := s.ReplaceAll(context.Background(), chars)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		var storeErr *store.StoreError
		assert.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "replace", storeErr.Operation)
	})
}

func TestPostgresCharacterStore_ListFresh(t *testing.T) {
	t.Parallel()

	selectQuery := regexp.QuoteMeta("SELECT id, name, description, image_url")
	columns := []string{"id", "name", "description", "image_url", "real_name", "powers", "first_appearance"}

	t.Run("hit keeps stored order", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockCharacterStore(t)
		chars := sampleCharacters()

		rows := sqlmock.NewRows(columns)
		for _, c := range chars {
			rows.AddRow(c.ID, c.Name, c.Description, c.ImageURL, c.RealName, c.Powers, c.FirstAppearance)
		}
		mock.ExpectQuery(selectQuery).WithArgs(fixedNow.Add(-time.Hour)).WillReturnRows(rows)

		got, err := s.ListFresh(context.Background(), time.Hour)
		require.NoError(t, err)
		assert.Equal(t, chars, got)
	})

	t.Run("empty cache is a miss", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockCharacterStore(t)
		mock.ExpectQuery(selectQuery).WillReturnRows(sqlmock.NewRows(columns))

		_, err := s.ListFresh(context.Background(), time.Hour)
		assert.ErrorIs(t, err, store.ErrCacheMiss)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("query failure", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockCharacterStore(t)
		mock.ExpectQuery(selectQuery).WillReturnError(errors.New("connection reset"))

		_, err := s.ListFresh(context.Background(), time.Hour)
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrCacheMiss)
	})
}

func TestPostgresCharacterStore_WithTx(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresCharacterStore(db, nil)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM characters")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).ReplaceAll(ctx, nil)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
