package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"agendabooking/internal/domain"
)

func TestGuestRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, created_at\s+FROM external_guests\s+WHERE email = \$1`).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow("guest-1", "Ada", "ada@example.com", now))

		repo := NewGuestRepository(db)
		g, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "guest-1", g.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, created_at\s+FROM external_guests\s+WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewGuestRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGuestRepository_Search(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, created_at\s+FROM external_guests\s+WHERE name ILIKE \$1 OR email ILIKE \$1`).
		WithArgs("%ada%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("guest-1", "Ada", "ada@example.com", now))

	repo := NewGuestRepository(db)
	guests, err := repo.Search(ctx, "ada", 20)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	require.Equal(t, "Ada", guests[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
