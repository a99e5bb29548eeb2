package postgres

import (
	"context"
	"database/sql"
	"time"

	"agendabooking/internal/domain"
)

// overlapQuery finds events linked to a user whose half-open interval
// overlaps [$2, $3). Back-to-back events (end == start) do not match.
const overlapQuery = `
	SELECT e.id
	FROM events e
	JOIN event_participants p ON p.event_id = e.id
	WHERE p.user_id = $1 AND NOT (e.end_time <= $2 OR e.start_time >= $3)
	LIMIT 1
`

type participantRepository struct {
	DB *sql.DB
}

// NewParticipantRepository returns the read-only conflict checker backed by
// the participant link table.
func NewParticipantRepository(db *sql.DB) domain.ConflictChecker {
	return &participantRepository{DB: db}
}

func (r *participantRepository) HasConflict(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	var id string
	err := r.DB.QueryRowContext(ctx, overlapQuery, userID, start, end).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
