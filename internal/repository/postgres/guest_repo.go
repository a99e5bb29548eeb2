package postgres

import (
	"context"
	"database/sql"
	"errors"

	"agendabooking/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

// GetByEmail matches the stored email exactly (case-sensitive).
func (r *guestRepository) GetByEmail(ctx context.Context, email string) (*domain.ExternalGuest, error) {
	query := `
		SELECT id, name, email, created_at
		FROM external_guests
		WHERE email = $1
	`
	g := &domain.ExternalGuest{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&g.ID, &g.Name, &g.Email, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *guestRepository) Search(ctx context.Context, query string, limit int) ([]*domain.ExternalGuest, error) {
	q := `
		SELECT id, name, email, created_at
		FROM external_guests
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]*domain.ExternalGuest, 0)
	for rows.Next() {
		g := &domain.ExternalGuest{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.CreatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
