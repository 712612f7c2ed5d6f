package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/tenant"
)

// Service handles the tenant registry.
type Service struct {
	repo     tenant.Repository
	auditSvc *appAudit.Service
	logger   zerolog.Logger
}

// NewService creates a tenant service.
func NewService(repo tenant.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   logger.With().Str("service", "tenant").Logger(),
	}
}

// CreateInput carries tenant registry fields.
type CreateInput struct {
	Name  string
	Email string
	Phone string
	Actor string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*tenant.Tenant, error) {
	now := time.Now().UTC()
	t := &tenant.Tenant{
		TenantID:  uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, &estate.ValidationError{Field: "tenant", Reason: err.Error()}
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityTenant,
		EntityID:   t.TenantID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  t,
	})
	return t, nil
}

func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error) {
	return s.repo.GetByID(ctx, tenantID)
}

func (s *Service) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*tenant.Tenant, error) {
	return s.repo.List(ctx, includeInactive, limit, offset)
}

// UpdateInput carries editable tenant fields.
type UpdateInput struct {
	Name   *string
	Email  *string
	Phone  *string
	Active *bool
	Actor  string
}

func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, in UpdateInput) (*tenant.Tenant, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &estate.NotFoundError{Resource: "tenant", ID: tenantID.String()}
	}

	old := *t
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Email != nil {
		t.Email = *in.Email
	}
	if in.Phone != nil {
		t.Phone = *in.Phone
	}
	if in.Active != nil {
		t.Active = *in.Active
	}
	if err := t.Validate(); err != nil {
		return nil, &estate.ValidationError{Field: "tenant", Reason: err.Error()}
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityTenant,
		EntityID:   t.TenantID.String(),
		Action:     audit.ActionUpdate,
		Actor:      in.Actor,
		OldValues:  old,
		NewValues:  t,
	})
	return t, nil
}
