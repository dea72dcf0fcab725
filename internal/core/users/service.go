package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type userService struct {
	repo   Repository
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{repo: repo, logger: logger}
}

// CreateUser creates a new user row. Registration proper (credentials,
// sessions) is handled by an external collaborator; this only persists
// the identity the rest of the system references.
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	user := &User{
		ID:   uuid.NewString(),
		Name: name,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ToggleFollow flips the follow edge caller→target.
// Self-follow is rejected before any store access. The target is
// checked for existence so a missing user surfaces as NotFound rather
// than a bare foreign key failure. Both sides of the relationship are
// maintained in one repository transaction.
func (s *userService) ToggleFollow(ctx context.Context, callerID, targetID string) (*ToggleFollowResponse, error) {
	if callerID == targetID {
		return nil, ErrSelfFollow
	}

	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	state, err := s.repo.ToggleFollow(ctx, callerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle follow: %w", err)
	}

	message := "User unfollowed"
	if state.Followed {
		message = "User followed"
	}

	s.logger.Info("follow toggled",
		"caller", callerID,
		"target", targetID,
		"followed", state.Followed)

	return &ToggleFollowResponse{
		Message:   message,
		Following: state.Following,
		Followers: state.Followers,
	}, nil
}
