package domain

import (
	"context"
	"time"
)

// ExternalGuest is an invitee known only by name and email. Guests hold no
// credentials and are never subject to conflict checking. A guest row is
// created lazily the first time its email is invited; identity is keyed by
// email and the row is immutable after creation.
// swagger:model ExternalGuest
type ExternalGuest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestRepository defines read access to the guest directory. Guest creation
// happens inside the event write transaction (see EventRepository) so that a
// failed booking leaves no stray guest rows behind.
type GuestRepository interface {
	GetByEmail(ctx context.Context, email string) (*ExternalGuest, error)
	Search(ctx context.Context, query string, limit int) ([]*ExternalGuest, error)
}
