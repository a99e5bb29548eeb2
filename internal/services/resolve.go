package services

import (
	"context"
	"errors"
	"fmt"

	"agendabooking/internal/domain"
)

// resolveInvitees classifies the raw invitee list into internal user ids,
// existing guest ids, and guests to create. The owner is always the first
// internal id; internal ids are deduplicated preserving request order.
// New-guest entries are resolved against the guest directory by email so an
// already-known address reuses its guest id instead of creating a duplicate.
func (s *scheduleService) resolveInvitees(ctx context.Context, ownerID string, invitees []domain.Invitee) (*domain.ResolvedInvitees, error) {
	resolved := &domain.ResolvedInvitees{
		InternalUserIDs: []string{ownerID},
	}
	seenUsers := map[string]struct{}{ownerID: {}}

	for _, inv := range invitees {
		switch inv.Type {
		case domain.InviteeUser:
			if inv.UserID == "" {
				return nil, domain.NewValidationError("invitee of type \"user\" requires an id")
			}
			if _, ok := seenUsers[inv.UserID]; ok {
				continue
			}
			seenUsers[inv.UserID] = struct{}{}
			resolved.InternalUserIDs = append(resolved.InternalUserIDs, inv.UserID)
		case domain.InviteeGuest:
			if inv.GuestID == "" {
				return nil, domain.NewValidationError("invitee of type \"guest\" requires a guest_id")
			}
			resolved.GuestIDs = append(resolved.GuestIDs, inv.GuestID)
		case domain.InviteeNew:
			if inv.Email == "" {
				return nil, domain.NewValidationError("invitee of type \"new\" requires an email")
			}
			existing, err := s.guestRepo.GetByEmail(ctx, inv.Email)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("look up guest by email: %w", err)
			}
			if existing != nil {
				resolved.GuestIDs = append(resolved.GuestIDs, existing.ID)
				continue
			}
			name := inv.Name
			if name == "" {
				name = inv.Email
			}
			resolved.NewGuests = append(resolved.NewGuests, domain.NewGuest{Email: inv.Email, Name: name})
		default:
			return nil, domain.NewValidationError(fmt.Sprintf("unknown invitee type %q", inv.Type))
		}
	}
	return resolved, nil
}
