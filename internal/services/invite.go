package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendabooking/internal/domain"
)

type inviteService struct {
	inviteRepo     domain.InviteRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	conflicts      domain.ConflictChecker
	contextTimeout time.Duration
}

// NewInviteService creates the invite lifecycle service.
func NewInviteService(inviteRepo domain.InviteRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository, conflicts domain.ConflictChecker, timeout time.Duration) domain.InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		conflicts:      conflicts,
		contextTimeout: timeout,
	}
}

// CreateInvite stores a pending invite after checking that the sender may
// invite (event owner or admin) and that the invitee is free during the
// event's interval. No participant link is created until the invitee accepts.
func (s *inviteService) CreateInvite(ctx context.Context, fromUserID, eventID, toUserID string, anonymous bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}

	if event.OwnerID != fromUserID {
		caller, err := s.userRepo.GetByID(ctx, fromUserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return "", domain.ErrForbidden
			}
			return "", fmt.Errorf("get caller: %w", err)
		}
		if !caller.IsAdmin() {
			return "", domain.ErrForbidden
		}
	}

	busy, err := s.conflicts.HasConflict(ctx, toUserID, event.StartTime, event.EndTime)
	if err != nil {
		return "", fmt.Errorf("conflict check for user %s: %w", toUserID, err)
	}
	if busy {
		return "", &domain.ConflictError{UserID: toUserID}
	}

	invite := &domain.Invite{
		EventID:   eventID,
		FromUser:  fromUserID,
		ToUser:    toUserID,
		Anonymous: anonymous,
		Status:    domain.InvitePending,
		CreatedAt: time.Now(),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return "", fmt.Errorf("create invite: %w", err)
	}
	return invite.ID, nil
}

// RespondToInvite records the invitee's accept/reject decision. Acceptance
// materializes the participant link atomically with the status update;
// rejection only updates the status. Responses are not guarded against
// re-response: a later call overwrites the stored status.
func (s *inviteService) RespondToInvite(ctx context.Context, inviteID, userID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.InviteAccepted && status != domain.InviteRejected {
		return domain.NewValidationError("status must be \"accepted\" or \"rejected\"")
	}

	if _, err := s.inviteRepo.GetByIDForUser(ctx, inviteID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invite: %w", err)
	}
	if err := s.inviteRepo.Respond(ctx, inviteID, userID, status); err != nil {
		return fmt.Errorf("respond to invite: %w", err)
	}
	return nil
}

// ListInvitesFor returns the user's invites, each passed through the
// visibility filter.
func (s *inviteService) ListInvitesFor(ctx context.Context, userID string) ([]*domain.InviteView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rows, err := s.inviteRepo.ListByToUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	views := make([]*domain.InviteView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ProjectInviteForViewer(row))
	}
	return views, nil
}
