package service

import (
	"context"
	"fmt"
	"time"

	"anandam/internal/model"
	"anandam/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	repo   repository.UserRepository
	audit  AuditService
	logger zerolog.Logger
}

// NewUserService creates a new account record service.
func NewUserService(repo repository.UserRepository, audit AuditService, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// GetByID retrieves a user.
func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, model.ErrUserNotFound
	}

	return u, nil
}

// Upsert inserts or refreshes a user's profile. New accounts default to the
// customer role; role changes go through SetRole only.
func (s *userService) Upsert(ctx context.Context, u *model.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	if u.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}

	existing, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		u.Role = existing.Role
		u.CreatedAt = existing.CreatedAt
	} else {
		u.Role = model.RoleUser
		u.CreatedAt = time.Now()
	}

	return s.repo.Upsert(ctx, u)
}

// List retrieves all users.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetRole changes a user's role and records the change in the audit trail.
func (s *userService) SetRole(ctx context.Context, id string, role model.Role, actorID, actorName string) error {
	if role != model.RoleAdmin && role != model.RoleUser {
		return fmt.Errorf("unknown role %q", role)
	}

	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, "user.role_change", actorID, actorName, map[string]any{
		"userId": id,
		"role":   string(role),
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to record audit entry")
	}

	s.logger.Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return nil
}
