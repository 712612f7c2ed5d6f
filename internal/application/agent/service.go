package agent

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/agent"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// Service handles the agent registry.
type Service struct {
	repo     agent.Repository
	auditSvc *appAudit.Service
	logger   zerolog.Logger
}

// NewService creates an agent service.
func NewService(repo agent.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   logger.With().Str("service", "agent").Logger(),
	}
}

// CreateInput carries agent registry fields.
type CreateInput struct {
	Name        string
	LicenseCode string
	Email       string
	Phone       string
	Actor       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*agent.Agent, error) {
	now := time.Now().UTC()
	a := &agent.Agent{
		AgentID:     uuid.New(),
		Name:        in.Name,
		LicenseCode: in.LicenseCode,
		Email:       in.Email,
		Phone:       in.Phone,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.Validate(); err != nil {
		return nil, &estate.ValidationError{Field: "agent", Reason: err.Error()}
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityAgent,
		EntityID:   a.AgentID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  a,
	})
	s.logger.Info().Str("agentId", a.AgentID.String()).Str("license", a.LicenseCode).Msg("agent registered")
	return a, nil
}

func (s *Service) Get(ctx context.Context, agentID uuid.UUID) (*agent.Agent, error) {
	return s.repo.GetByID(ctx, agentID)
}

func (s *Service) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*agent.Agent, error) {
	return s.repo.List(ctx, includeInactive, limit, offset)
}

// UpdateInput carries editable agent fields.
type UpdateInput struct {
	Name   *string
	Email  *string
	Phone  *string
	Active *bool
	Actor  string
}

func (s *Service) Update(ctx context.Context, agentID uuid.UUID, in UpdateInput) (*agent.Agent, error) {
	a, err := s.repo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &estate.NotFoundError{Resource: "agent", ID: agentID.String()}
	}

	old := *a
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Email != nil {
		a.Email = *in.Email
	}
	if in.Phone != nil {
		a.Phone = *in.Phone
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	if err := a.Validate(); err != nil {
		return nil, &estate.ValidationError{Field: "agent", Reason: err.Error()}
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityAgent,
		EntityID:   a.AgentID.String(),
		Action:     audit.ActionUpdate,
		Actor:      in.Actor,
		OldValues:  old,
		NewValues:  a,
	})
	return a, nil
}
