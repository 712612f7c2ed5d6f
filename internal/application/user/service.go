package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/estate-hub/estate-hub/internal/domain/user"
)

// Service handles user management.
type Service struct {
	repo   domain.Repository
	logger zerolog.Logger
}

// NewService creates a user service.
func NewService(repo domain.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// CreateInput defines user creation input.
type CreateInput struct {
	Username string
	Password string
	Role     domain.Role
	AgentID  *uuid.UUID
	Status   domain.Status
}

// UpdateInput defines user update input.
type UpdateInput struct {
	Username *string
	Role     *domain.Role
	Status   *domain.Status
	AgentID  *uuid.UUID
}

func (s *Service) CreateUser(ctx context.Context, input CreateInput) (*domain.User, error) {
	username := domain.NormalizeUsername(input.Username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password, username); err != nil {
		return nil, err
	}
	if err := domain.ValidateRole(input.Role); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = domain.StatusActive
	}
	if err := domain.ValidateStatus(input.Status); err != nil {
		return nil, err
	}
	if input.Role == domain.RoleAgent && input.AgentID == nil {
		return nil, fmt.Errorf("agent_id is required for agent accounts")
	}
	if input.Role != domain.RoleAgent && input.AgentID != nil {
		return nil, fmt.Errorf("agent_id is only allowed for agent accounts")
	}

	hash, err := domain.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         input.Role,
		AgentID:      input.AgentID,
		Status:       input.Status,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", u.UserID.String()).Str("username", u.Username).Msg("user created")
	return u, nil
}

// Bootstrap creates the first admin account when no users exist.
func (s *Service) Bootstrap(ctx context.Context, username, password string) (*domain.User, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("bootstrap is only available before any user exists")
	}
	return s.CreateUser(ctx, CreateInput{
		Username: username,
		Password: password,
		Role:     domain.RoleAdmin,
	})
}

func (s *Service) UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	if input.Username != nil {
		username := domain.NormalizeUsername(*input.Username)
		if err := domain.ValidateUsername(username); err != nil {
			return nil, err
		}
		u.Username = username
	}
	if input.Role != nil {
		if err := domain.ValidateRole(*input.Role); err != nil {
			return nil, err
		}
		u.Role = *input.Role
	}
	if input.Status != nil {
		if err := domain.ValidateStatus(*input.Status); err != nil {
			return nil, err
		}
		u.Status = *input.Status
	}
	if input.AgentID != nil {
		u.AgentID = input.AgentID
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context, filter domain.Filter, limit, offset int) ([]*domain.User, error) {
	return s.repo.List(ctx, filter, limit, offset)
}
