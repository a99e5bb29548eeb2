package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"agendabooking/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// CreateWithLinks persists an event and every participant/guest link in one
// transaction. It takes a per-participant advisory lock (sorted order, to
// avoid lock cycles between concurrent creates) and re-runs the overlap check
// under those locks: the caller's read-only pre-check can race with another
// create, this one cannot. On overlap nothing is written and *ConflictError
// identifies the busy participant.
//
// internalUserIDs must be deduplicated with the owner first; newGuests are
// upserted by email so a concurrent create of the same address reuses the row.
func (r *eventRepository) CreateWithLinks(ctx context.Context, e *domain.Event, internalUserIDs []string, guestIDs []string, newGuests []domain.NewGuest) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sorted := append([]string(nil), internalUserIDs...)
	sort.Strings(sorted)
	for _, uid := range sorted {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, uid); err != nil {
			return err
		}
	}

	for _, uid := range internalUserIDs {
		var id string
		err := tx.QueryRowContext(ctx, overlapQuery, uid, e.StartTime, e.EndTime).Scan(&id)
		if err == nil {
			return &domain.ConflictError{UserID: uid}
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	insertEvent := `
		INSERT INTO events (title, start_time, end_time, owner_id, description, anonymous, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, insertEvent, e.Title, e.StartTime, e.EndTime, e.OwnerID, e.Description, e.Anonymous, e.CreatedAt).Scan(&e.ID); err != nil {
		return err
	}

	insertParticipant := `
		INSERT INTO event_participants (event_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, insertParticipant, e.ID, e.OwnerID, domain.ParticipantOwner); err != nil {
		return err
	}
	for _, uid := range internalUserIDs {
		if uid == e.OwnerID {
			continue
		}
		if _, err := tx.ExecContext(ctx, insertParticipant, e.ID, uid, domain.ParticipantRole); err != nil {
			return err
		}
	}

	allGuestIDs := append([]string(nil), guestIDs...)
	upsertGuest := `
		INSERT INTO external_guests (name, email, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO UPDATE SET name = external_guests.name
		RETURNING id
	`
	for _, ng := range newGuests {
		var gid string
		if err := tx.QueryRowContext(ctx, upsertGuest, ng.Name, ng.Email).Scan(&gid); err != nil {
			return err
		}
		allGuestIDs = append(allGuestIDs, gid)
	}
	insertGuestLink := `
		INSERT INTO event_guests (event_id, guest_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, guest_id) DO NOTHING
	`
	for _, gid := range allGuestIDs {
		if _, err := tx.ExecContext(ctx, insertGuestLink, e.ID, gid); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, start_time, end_time, owner_id, description, anonymous, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.OwnerID, &e.Description, &e.Anonymous, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.start_time, e.end_time, e.owner_id, e.description, e.anonymous, e.created_at
		FROM events e
		JOIN event_participants p ON p.event_id = e.id
		WHERE p.user_id = $1
		ORDER BY e.start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.OwnerID, &e.Description, &e.Anonymous, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
