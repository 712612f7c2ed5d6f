package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// Service handles the property registry.
type Service struct {
	repo     property.Repository
	auditSvc *appAudit.Service
	logger   zerolog.Logger
}

// NewService creates a property service.
func NewService(repo property.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   logger.With().Str("service", "property").Logger(),
	}
}

// CreateInput carries property creation fields.
type CreateInput struct {
	ReferenceCode string
	Name          string
	Address       string
	AgentID       *uuid.UUID
	Status        property.Status
	Actor         string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*property.Property, error) {
	if in.ReferenceCode == "" {
		return nil, &estate.ValidationError{Field: "reference_code", Reason: "must not be empty"}
	}
	if in.Name == "" {
		return nil, &estate.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	status := in.Status
	if status == "" {
		status = property.StatusAvailable
	}
	if !property.ValidStatus(status) {
		return nil, &estate.ValidationError{Field: "status", Reason: "unknown property status"}
	}

	now := time.Now().UTC()
	p := &property.Property{
		PropertyID:    uuid.New(),
		ReferenceCode: in.ReferenceCode,
		Name:          in.Name,
		Address:       in.Address,
		AgentID:       in.AgentID,
		Status:        status,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityProperty,
		EntityID:   p.PropertyID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  p,
	})
	s.logger.Info().Str("propertyId", p.PropertyID.String()).Str("referenceCode", p.ReferenceCode).Msg("property created")
	return p, nil
}

func (s *Service) Get(ctx context.Context, propertyID uuid.UUID) (*property.Property, error) {
	return s.repo.GetByID(ctx, propertyID)
}

func (s *Service) List(ctx context.Context, status *property.Status, limit, offset int) ([]*property.Property, error) {
	return s.repo.List(ctx, status, limit, offset)
}

// UpdateInput carries editable property fields.
type UpdateInput struct {
	Name    *string
	Address *string
	AgentID *uuid.UUID
	Status  *property.Status
	Actor   string
}

func (s *Service) Update(ctx context.Context, propertyID uuid.UUID, in UpdateInput) (*property.Property, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &estate.NotFoundError{Resource: "property", ID: propertyID.String()}
	}

	old := *p
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.AgentID != nil {
		p.AgentID = in.AgentID
	}
	if in.Status != nil {
		if !property.ValidStatus(*in.Status) {
			return nil, &estate.ValidationError{Field: "status", Reason: "unknown property status"}
		}
		p.Status = *in.Status
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityProperty,
		EntityID:   p.PropertyID.String(),
		Action:     audit.ActionUpdate,
		Actor:      in.Actor,
		OldValues:  old,
		NewValues:  p,
	})
	return p, nil
}
