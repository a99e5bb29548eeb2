package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agendabooking/internal/domain"
)

type scheduleService struct {
	eventRepo      domain.EventRepository
	guestRepo      domain.GuestRepository
	conflicts      domain.ConflictChecker
	contextTimeout time.Duration
}

// NewScheduleService creates the event-creation engine over the given
// repositories and conflict checker.
func NewScheduleService(eventRepo domain.EventRepository, guestRepo domain.GuestRepository, conflicts domain.ConflictChecker, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		guestRepo:      guestRepo,
		conflicts:      conflicts,
		contextTimeout: timeout,
	}
}

// CreateEvent validates the request, resolves invitees, conflict-checks every
// internal participant (owner first, then request order), and only then
// persists the event with all its links. A conflict or validation failure
// happens strictly before any write, so a rejected request leaves no partial
// state behind. The first conflicting participant found is the one reported.
func (s *scheduleService) CreateEvent(ctx context.Context, ownerID, title string, start, end time.Time, invitees []domain.Invitee, description string, anonymous bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var msgs []string
	if strings.TrimSpace(title) == "" {
		msgs = append(msgs, "title is required")
	}
	if start.IsZero() {
		msgs = append(msgs, "start_time is required")
	}
	if end.IsZero() {
		msgs = append(msgs, "end_time is required")
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		msgs = append(msgs, "end_time must be after start_time")
	}
	if len(msgs) > 0 {
		return "", &domain.ValidationError{Messages: msgs}
	}

	resolved, err := s.resolveInvitees(ctx, ownerID, invitees)
	if err != nil {
		return "", err
	}

	for _, uid := range resolved.InternalUserIDs {
		busy, err := s.conflicts.HasConflict(ctx, uid, start, end)
		if err != nil {
			return "", fmt.Errorf("conflict check for user %s: %w", uid, err)
		}
		if busy {
			return "", &domain.ConflictError{UserID: uid}
		}
	}

	event := domain.NewEvent(strings.TrimSpace(title), start, end, ownerID, description, anonymous, time.Now())
	if err := s.eventRepo.CreateWithLinks(ctx, event, resolved.InternalUserIDs, resolved.GuestIDs, resolved.NewGuests); err != nil {
		return "", err
	}
	return event.ID, nil
}

func (s *scheduleService) ListEventsFor(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
