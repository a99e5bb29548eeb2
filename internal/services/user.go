package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agendabooking/internal/domain"
)

const searchResultLimit = 20

type adminService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	contextTimeout time.Duration
}

// NewAdminService creates the admin-only user management service.
func NewAdminService(userRepo domain.UserRepository, hasher domain.PasswordHasher, timeout time.Duration) domain.AdminService {
	return &adminService{
		userRepo:       userRepo,
		hasher:         hasher,
		contextTimeout: timeout,
	}
}

// requireAdmin loads the caller from the store and checks the admin role.
// The store is the source of truth here, not the token, so a demoted or
// deleted user loses access immediately.
func (s *adminService) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get caller: %w", err)
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (s *adminService) ListUsers(ctx context.Context, callerID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *adminService) CreateUser(ctx context.Context, callerID, name, email, password, role string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.NewValidationError("invalid email format")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	role = strings.TrimSpace(strings.ToLower(role))
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(strings.TrimSpace(name), email, hash, salt, role, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *adminService) UpdateRole(ctx context.Context, callerID, userID, role string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return domain.NewValidationError("role must be \"user\" or \"admin\"")
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (s *adminService) UpdateActive(ctx context.Context, callerID, userID string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateActive(ctx, userID, active); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update active flag: %w", err)
	}
	return nil
}

type directoryService struct {
	userRepo       domain.UserRepository
	guestRepo      domain.GuestRepository
	contextTimeout time.Duration
}

// NewDirectoryService creates the participant autocomplete service merging
// internal users and external guests.
func NewDirectoryService(userRepo domain.UserRepository, guestRepo domain.GuestRepository, timeout time.Duration) domain.DirectoryService {
	return &directoryService{
		userRepo:       userRepo,
		guestRepo:      guestRepo,
		contextTimeout: timeout,
	}
}

// SearchParticipants matches users and guests by name or email substring.
// Queries shorter than two characters return an empty result; the caller is
// excluded from the user half so people cannot invite themselves twice.
func (s *directoryService) SearchParticipants(ctx context.Context, query, excludeUserID string) ([]*domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []*domain.SearchResult{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, excludeUserID, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	guests, err := s.guestRepo.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search guests: %w", err)
	}

	results := make([]*domain.SearchResult, 0, len(users)+len(guests))
	for _, u := range users {
		results = append(results, &domain.SearchResult{ID: u.ID, Name: u.Name, Email: u.Email, Type: "user"})
	}
	for _, g := range guests {
		results = append(results, &domain.SearchResult{ID: g.ID, Name: g.Name, Email: g.Email, Type: "guest"})
	}
	return results, nil
}
