package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"agendabooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConflictChecker holds busy intervals per user and applies the half-open
// overlap rule. It records the order of checks.
type fakeConflictChecker struct {
	busy    map[string][][2]time.Time // userID -> [start, end) intervals
	err     error
	checked []string
}

func newFakeConflictChecker() *fakeConflictChecker {
	return &fakeConflictChecker{busy: make(map[string][][2]time.Time)}
}

func (f *fakeConflictChecker) addBusy(userID string, start, end time.Time) {
	f.busy[userID] = append(f.busy[userID], [2]time.Time{start, end})
}

func (f *fakeConflictChecker) HasConflict(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.checked = append(f.checked, userID)
	for _, iv := range f.busy[userID] {
		if end.After(iv[0]) && start.Before(iv[1]) {
			return true, nil
		}
	}
	return false, nil
}

// fakeEventRepo is an in-memory EventRepository for tests. It records what
// CreateWithLinks was asked to persist.
type fakeEventRepo struct {
	byID          map[string]*domain.Event
	userLinks     map[string][]string
	guestLinks    map[string][]string
	createdGuests []domain.NewGuest
	participants  map[string][]string // userID -> eventIDs, for ListByParticipant
	nextID        int
	createErr     error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:         make(map[string]*domain.Event),
		userLinks:    make(map[string][]string),
		guestLinks:   make(map[string][]string),
		participants: make(map[string][]string),
		nextID:       1,
	}
}

func (f *fakeEventRepo) CreateWithLinks(ctx context.Context, event *domain.Event, internalUserIDs, guestIDs []string, newGuests []domain.NewGuest) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[event.ID] = event
	f.userLinks[event.ID] = internalUserIDs
	f.guestLinks[event.ID] = guestIDs
	f.createdGuests = append(f.createdGuests, newGuests...)
	for _, uid := range internalUserIDs {
		f.participants[uid] = append(f.participants[uid], event.ID)
	}
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByParticipant(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range f.participants[userID] {
		out = append(out, f.byID[id])
	}
	return out, nil
}

// fakeGuestRepo is an in-memory GuestRepository for tests.
type fakeGuestRepo struct {
	byEmail map[string]*domain.ExternalGuest
	err     error
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{byEmail: make(map[string]*domain.ExternalGuest)}
}

func (f *fakeGuestRepo) addGuest(id, name, email string) {
	f.byEmail[email] = &domain.ExternalGuest{ID: id, Name: name, Email: email}
}

func (f *fakeGuestRepo) GetByEmail(ctx context.Context, email string) (*domain.ExternalGuest, error) {
	if f.err != nil {
		return nil, f.err
	}
	if g, ok := f.byEmail[email]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) Search(ctx context.Context, query string, limit int) ([]*domain.ExternalGuest, error) {
	if f.err != nil {
		return nil, f.err
	}
	q := strings.ToLower(query)
	var out []*domain.ExternalGuest
	for _, g := range f.byEmail {
		if strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(strings.ToLower(g.Email), q) {
			out = append(out, g)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestScheduleService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		setup    func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker)
		ownerID  string
		title    string
		start    time.Time
		end      time.Time
		invitees []domain.Invitee
		wantErr  bool
		assert   func(t *testing.T, eventRepo *fakeEventRepo, checker *fakeConflictChecker, eventID string, err error)
	}{
		{
			name: "success owner only",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				return newFakeEventRepo(), newFakeGuestRepo(), newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "Standup",
			start:   start,
			end:     end,
			assert: func(t *testing.T, eventRepo *fakeEventRepo, _ *fakeConflictChecker, eventID string, _ error) {
				require.NotEmpty(t, eventID)
				ev, ok := eventRepo.byID[eventID]
				require.True(t, ok)
				assert.Equal(t, "user-1", ev.OwnerID)
				assert.Equal(t, []string{"user-1"}, eventRepo.userLinks[eventID])
			},
		},
		{
			name: "back-to-back events do not conflict",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				cc := newFakeConflictChecker()
				// Existing commitment ends exactly when the new event starts.
				cc.addBusy("user-1", start.Add(-time.Hour), start)
				return newFakeEventRepo(), newFakeGuestRepo(), cc
			},
			ownerID: "user-1",
			title:   "Followup",
			start:   start,
			end:     end,
			assert: func(t *testing.T, eventRepo *fakeEventRepo, _ *fakeConflictChecker, eventID string, _ error) {
				require.NotEmpty(t, eventID)
			},
		},
		{
			name: "owner implicitly included and deduplicated",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				return newFakeEventRepo(), newFakeGuestRepo(), newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "Planning",
			start:   start,
			end:     end,
			invitees: []domain.Invitee{
				{Type: domain.InviteeUser, UserID: "user-1"}, // owner listed explicitly
				{Type: domain.InviteeUser, UserID: "user-2"},
				{Type: domain.InviteeUser, UserID: "user-2"}, // duplicate
			},
			assert: func(t *testing.T, eventRepo *fakeEventRepo, checker *fakeConflictChecker, eventID string, _ error) {
				assert.Equal(t, []string{"user-1", "user-2"}, eventRepo.userLinks[eventID])
				assert.Equal(t, []string{"user-1", "user-2"}, checker.checked)
			},
		},
		{
			name: "new guest with known email reuses guest id",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				gr := newFakeGuestRepo()
				gr.addGuest("guest-7", "Ada", "ada@example.com")
				return newFakeEventRepo(), gr, newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "Review",
			start:   start,
			end:     end,
			invitees: []domain.Invitee{
				{Type: domain.InviteeNew, Email: "ada@example.com", Name: "Ada"},
				{Type: domain.InviteeNew, Email: "new@example.com"},
			},
			assert: func(t *testing.T, eventRepo *fakeEventRepo, _ *fakeConflictChecker, eventID string, _ error) {
				assert.Equal(t, []string{"guest-7"}, eventRepo.guestLinks[eventID])
				require.Len(t, eventRepo.createdGuests, 1)
				assert.Equal(t, "new@example.com", eventRepo.createdGuests[0].Email)
				// Name falls back to email when absent.
				assert.Equal(t, "new@example.com", eventRepo.createdGuests[0].Name)
			},
		},
		{
			name: "conflict reports first busy participant and writes nothing",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				cc := newFakeConflictChecker()
				cc.addBusy("user-2", start.Add(30*time.Minute), end.Add(time.Hour))
				cc.addBusy("user-3", start, end)
				return newFakeEventRepo(), newFakeGuestRepo(), cc
			},
			ownerID: "user-1",
			title:   "Sync",
			start:   start,
			end:     end,
			invitees: []domain.Invitee{
				{Type: domain.InviteeUser, UserID: "user-2"},
				{Type: domain.InviteeUser, UserID: "user-3"},
			},
			wantErr: true,
			assert: func(t *testing.T, eventRepo *fakeEventRepo, _ *fakeConflictChecker, _ string, err error) {
				var conflict *domain.ConflictError
				require.True(t, errors.As(err, &conflict))
				assert.Equal(t, "user-2", conflict.UserID)
				assert.Empty(t, eventRepo.byID, "no event should be written on conflict")
				assert.Empty(t, eventRepo.createdGuests)
			},
		},
		{
			name: "busy owner blocks creation",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				cc := newFakeConflictChecker()
				cc.addBusy("user-1", start, end)
				return newFakeEventRepo(), newFakeGuestRepo(), cc
			},
			ownerID: "user-1",
			title:   "Busy",
			start:   start,
			end:     end,
			wantErr: true,
			assert: func(t *testing.T, _ *fakeEventRepo, _ *fakeConflictChecker, _ string, err error) {
				var conflict *domain.ConflictError
				require.True(t, errors.As(err, &conflict))
				assert.Equal(t, "user-1", conflict.UserID)
			},
		},
		{
			name: "missing title and inverted interval",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				return newFakeEventRepo(), newFakeGuestRepo(), newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "  ",
			start:   end,
			end:     start,
			wantErr: true,
			assert: func(t *testing.T, _ *fakeEventRepo, _ *fakeConflictChecker, _ string, err error) {
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Messages, "title is required")
				assert.Contains(t, verr.Messages, "end_time must be after start_time")
			},
		},
		{
			name: "zero-length interval rejected",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				return newFakeEventRepo(), newFakeGuestRepo(), newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "Instant",
			start:   start,
			end:     start,
			wantErr: true,
			assert: func(t *testing.T, _ *fakeEventRepo, _ *fakeConflictChecker, _ string, err error) {
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
			},
		},
		{
			name: "invitee missing required field",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				return newFakeEventRepo(), newFakeGuestRepo(), newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "Bad invitee",
			start:   start,
			end:     end,
			invitees: []domain.Invitee{
				{Type: domain.InviteeNew}, // no email
			},
			wantErr: true,
			assert: func(t *testing.T, eventRepo *fakeEventRepo, _ *fakeConflictChecker, _ string, err error) {
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Empty(t, eventRepo.byID)
			},
		},
		{
			name: "repo error surfaces",
			setup: func() (*fakeEventRepo, *fakeGuestRepo, *fakeConflictChecker) {
				er := newFakeEventRepo()
				er.createErr = errors.New("db down")
				return er, newFakeGuestRepo(), newFakeConflictChecker()
			},
			ownerID: "user-1",
			title:   "Doomed",
			start:   start,
			end:     end,
			wantErr: true,
			assert:  func(t *testing.T, _ *fakeEventRepo, _ *fakeConflictChecker, _ string, _ error) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo, guestRepo, checker := tt.setup()
			svc := NewScheduleService(eventRepo, guestRepo, checker, timeout)
			eventID, err := svc.CreateEvent(ctx, tt.ownerID, tt.title, tt.start, tt.end, tt.invitees, "", false)
			if tt.wantErr {
				require.Error(t, err)
				require.Empty(t, eventID)
			} else {
				require.NoError(t, err)
			}
			tt.assert(t, eventRepo, checker, eventID, err)
		})
	}
}

func TestScheduleService_ListEventsFor(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	eventRepo := newFakeEventRepo()
	svc := NewScheduleService(eventRepo, newFakeGuestRepo(), newFakeConflictChecker(), timeout)

	_, err := svc.CreateEvent(ctx, "user-1", "Mine", start, start.Add(time.Hour), nil, "", false)
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, "user-2", "Shared", start.Add(2*time.Hour), start.Add(3*time.Hour),
		[]domain.Invitee{{Type: domain.InviteeUser, UserID: "user-1"}}, "", false)
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, "user-3", "Other", start.Add(4*time.Hour), start.Add(5*time.Hour), nil, "", false)
	require.NoError(t, err)

	events, err := svc.ListEventsFor(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2, "owned and participated events both count")

	empty, err := svc.ListEventsFor(ctx, "user-none")
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Len(t, empty, 0)
}
