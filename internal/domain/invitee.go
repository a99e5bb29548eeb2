package domain

// InviteeType discriminates the three shapes an event invitee can take.
type InviteeType string

const (
	// InviteeUser references an internal user by id.
	InviteeUser InviteeType = "user"
	// InviteeGuest references an existing external guest by id.
	InviteeGuest InviteeType = "guest"
	// InviteeNew carries an email (required) and optional name for a guest
	// that may not exist yet.
	InviteeNew InviteeType = "new"
)

// Invitee is one entry of the raw invitee list on event creation. Which
// fields are meaningful depends on Type; the resolver validates exhaustively.
// swagger:model Invitee
type Invitee struct {
	Type    InviteeType `json:"type"`
	UserID  string      `json:"id,omitempty"`
	GuestID string      `json:"guest_id,omitempty"`
	Email   string      `json:"email,omitempty"`
	Name    string      `json:"name,omitempty"`
}

// NewGuest describes an external guest to be created during event persistence.
// Name falls back to the email when none was supplied.
type NewGuest struct {
	Email string
	Name  string
}

// ResolvedInvitees is the resolver's classification of a raw invitee list.
// InternalUserIDs is deduplicated and ordered: owner first, then internal
// invitees in request order. That order decides which participant a conflict
// is reported for.
type ResolvedInvitees struct {
	InternalUserIDs []string
	GuestIDs        []string
	NewGuests       []NewGuest
}
