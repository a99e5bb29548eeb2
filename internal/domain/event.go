package domain

import (
	"context"
	"time"
)

// Participant roles on an event. Exactly one owner row exists per event and
// it always matches Event.OwnerID.
const (
	ParticipantOwner = "owner"
	ParticipantRole  = "participant"
)

// Event represents a calendar event over the half-open interval
// [StartTime, EndTime). Events are immutable once created.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	Anonymous   bool      `json:"anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title string, start, end time.Time, ownerID, description string, anonymous bool, createdAt time.Time) *Event {
	return &Event{
		Title:       title,
		StartTime:   start,
		EndTime:     end,
		OwnerID:     ownerID,
		Description: description,
		Anonymous:   anonymous,
		CreatedAt:   createdAt,
	}
}

// Participant links an internal user to an event with a role.
// swagger:model Participant
type Participant struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

// ConflictChecker reports whether a user already has a commitment overlapping
// the half-open interval [start, end). Two intervals [s1,e1) and [s2,e2)
// overlap iff NOT (e1 <= s2 OR s1 >= e2); back-to-back events never conflict.
// The check is read-only.
type ConflictChecker interface {
	HasConflict(ctx context.Context, userID string, start, end time.Time) (bool, error)
}

// EventRepository defines event storage. CreateWithLinks persists the event
// together with all participant links, guest upserts, and guest links in one
// transaction, re-checking conflicts under per-participant serialization; on
// a detected overlap it returns *ConflictError and writes nothing.
type EventRepository interface {
	CreateWithLinks(ctx context.Context, event *Event, internalUserIDs []string, guestIDs []string, newGuests []NewGuest) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByParticipant(ctx context.Context, userID string) ([]*Event, error)
}

// ScheduleService is the event-creation and conflict-detection engine.
type ScheduleService interface {
	CreateEvent(ctx context.Context, ownerID, title string, start, end time.Time, invitees []Invitee, description string, anonymous bool) (eventID string, err error)
	ListEventsFor(ctx context.Context, userID string) ([]*Event, error)
}
