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

func TestInviteRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO invites \(event_id, from_user, to_user, anonymous, status, created_at\)`).
		WithArgs("ev-1", "user-1", "user-2", true, domain.InvitePending, created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inv-1"))

	repo := NewInviteRepository(db)
	inv := &domain.Invite{EventID: "ev-1", FromUser: "user-1", ToUser: "user-2", Anonymous: true, Status: domain.InvitePending, CreatedAt: created}
	require.NoError(t, repo.Create(ctx, inv))
	require.Equal(t, "inv-1", inv.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteRepository_GetByIDForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("not the invitee", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, from_user, to_user, anonymous, status, created_at\s+FROM invites`).
			WithArgs("inv-1", "user-3").
			WillReturnError(sql.ErrNoRows)

		repo := NewInviteRepository(db)
		_, err = repo.GetByIDForUser(ctx, "inv-1", "user-3")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInviteRepository_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("accept links participant and updates status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO event_participants \(event_id, user_id, role\)\s+SELECT event_id, to_user, \$3\s+FROM invites`).
			WithArgs("inv-1", "user-2", domain.ParticipantRole).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE invites SET status = \$1 WHERE id = \$2 AND to_user = \$3`).
			WithArgs(domain.InviteAccepted, "inv-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewInviteRepository(db)
		require.NoError(t, repo.Respond(ctx, "inv-1", "user-2", domain.InviteAccepted))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reject skips the link insert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE invites SET status = \$1 WHERE id = \$2 AND to_user = \$3`).
			WithArgs(domain.InviteRejected, "inv-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewInviteRepository(db)
		require.NoError(t, repo.Respond(ctx, "inv-1", "user-2", domain.InviteRejected))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching invite rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE invites SET status = \$1 WHERE id = \$2 AND to_user = \$3`).
			WithArgs(domain.InviteRejected, "inv-missing", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewInviteRepository(db)
		err = repo.Respond(ctx, "inv-missing", "user-2", domain.InviteRejected)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInviteRepository_ListByToUser(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "event_id", "from_user", "to_user", "anonymous", "status", "created_at",
		"title", "start_time", "end_time", "description", "anonymous"}
	mock.ExpectQuery(`SELECT i.id, i.event_id, i.from_user, i.to_user, i.anonymous, i.status, i.created_at,\s+e.title, e.start_time, e.end_time, e.description, e.anonymous\s+FROM invites i\s+JOIN events e`).
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("inv-2", "ev-2", "user-3", "user-2", true, domain.InvitePending, start, "Secret", start, end, "", true).
			AddRow("inv-1", "ev-1", "user-1", "user-2", false, domain.InviteAccepted, start.Add(-time.Hour), "Kickoff", start, end, "notes", false))

	repo := NewInviteRepository(db)
	rows, err := repo.ListByToUser(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.True(t, rows[0].Anonymous)
	require.True(t, rows[0].EventAnonymous)
	require.Equal(t, "Kickoff", rows[1].Title)
	require.Equal(t, domain.InviteAccepted, rows[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
