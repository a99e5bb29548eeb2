package domain

import (
	"context"
	"time"
)

// Invite statuses. Pending is initial; accepted and rejected are terminal.
// Accepting materializes a participant link for the invitee.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteRejected = "rejected"
)

// Invite asks one internal user to join an event. Its Anonymous flag is
// independent of the event's own flag and governs what the invite listing
// reveals before the invitee responds.
// swagger:model Invite
type Invite struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	FromUser  string    `json:"from_user"`
	ToUser    string    `json:"to_user"`
	Anonymous bool      `json:"anonymous"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteWithEvent is an invite joined with the fields of its event, as read
// for the invitee's listing. The visibility filter decides which of the event
// fields survive projection.
type InviteWithEvent struct {
	Invite
	Title          string    `json:"title"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Description    string    `json:"description"`
	EventAnonymous bool      `json:"event_anonymous"`
}

// InviteView is the projection of an invite for its viewer. For anonymous
// invites only ID, EventID, Status, FromUser, and Note are populated.
// swagger:model InviteView
type InviteView struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Status      string     `json:"status"`
	FromUser    string     `json:"from_user"`
	Note        string     `json:"note,omitempty"`
	Title       string     `json:"title,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Description string     `json:"description,omitempty"`
}

// InviteRepository defines invite storage. Respond updates the status and,
// for an acceptance, inserts the participant link in the same transaction.
type InviteRepository interface {
	Create(ctx context.Context, invite *Invite) error
	GetByIDForUser(ctx context.Context, inviteID, toUserID string) (*Invite, error)
	Respond(ctx context.Context, inviteID, toUserID, status string) error
	ListByToUser(ctx context.Context, toUserID string) ([]*InviteWithEvent, error)
}

// InviteService drives the invite lifecycle: pending on creation, then a
// single accept/reject response from the invitee.
type InviteService interface {
	CreateInvite(ctx context.Context, fromUserID, eventID, toUserID string, anonymous bool) (inviteID string, err error)
	RespondToInvite(ctx context.Context, inviteID, userID, status string) error
	ListInvitesFor(ctx context.Context, userID string) ([]*InviteView, error)
}
