package postgres

import (
	"context"
	"database/sql"
	"errors"

	"agendabooking/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{DB: db}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO invites (event_id, from_user, to_user, anonymous, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.EventID, inv.FromUser, inv.ToUser, inv.Anonymous, inv.Status, inv.CreatedAt).Scan(&inv.ID)
}

func (r *inviteRepository) GetByIDForUser(ctx context.Context, inviteID, toUserID string) (*domain.Invite, error) {
	query := `
		SELECT id, event_id, from_user, to_user, anonymous, status, created_at
		FROM invites
		WHERE id = $1 AND to_user = $2
	`
	inv := &domain.Invite{}
	err := r.DB.QueryRowContext(ctx, query, inviteID, toUserID).Scan(
		&inv.ID, &inv.EventID, &inv.FromUser, &inv.ToUser, &inv.Anonymous, &inv.Status, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

// Respond updates the invite status; an acceptance inserts the participant
// link in the same transaction, so the invitee is never marked accepted
// without being linked. The link insert tolerates an existing row so a
// repeated acceptance stays idempotent.
func (r *inviteRepository) Respond(ctx context.Context, inviteID, toUserID, status string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if status == domain.InviteAccepted {
		link := `
			INSERT INTO event_participants (event_id, user_id, role)
			SELECT event_id, to_user, $3
			FROM invites
			WHERE id = $1 AND to_user = $2
			ON CONFLICT (event_id, user_id) DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, link, inviteID, toUserID, domain.ParticipantRole); err != nil {
			return err
		}
	}

	update := `UPDATE invites SET status = $1 WHERE id = $2 AND to_user = $3`
	result, err := tx.ExecContext(ctx, update, status, inviteID, toUserID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

func (r *inviteRepository) ListByToUser(ctx context.Context, toUserID string) ([]*domain.InviteWithEvent, error) {
	query := `
		SELECT i.id, i.event_id, i.from_user, i.to_user, i.anonymous, i.status, i.created_at,
		       e.title, e.start_time, e.end_time, e.description, e.anonymous
		FROM invites i
		JOIN events e ON e.id = i.event_id
		WHERE i.to_user = $1
		ORDER BY i.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, toUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invites := make([]*domain.InviteWithEvent, 0)
	for rows.Next() {
		iv := &domain.InviteWithEvent{}
		if err := rows.Scan(
			&iv.ID, &iv.EventID, &iv.FromUser, &iv.ToUser, &iv.Anonymous, &iv.Status, &iv.CreatedAt,
			&iv.Title, &iv.StartTime, &iv.EndTime, &iv.Description, &iv.EventAnonymous,
		); err != nil {
			return nil, err
		}
		invites = append(invites, iv)
	}
	return invites, rows.Err()
}
