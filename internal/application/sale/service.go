package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

// Service handles sale lifecycle operations.
type Service struct {
	saleRepo sale.Repository
	auditSvc *appAudit.Service
	logger   zerolog.Logger
}

// NewService creates a sale service.
func NewService(saleRepo sale.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		saleRepo: saleRepo,
		auditSvc: auditSvc,
		logger:   logger.With().Str("service", "sale").Logger(),
	}
}

// CreateInput carries sale creation fields.
type CreateInput struct {
	PropertyID uuid.UUID
	BuyerName  string
	AgentID    uuid.UUID
	SaleDate   time.Time
	SalePrice  decimal.Decimal
	Actor      string
}

// Create records a completed sale and marks the property SOLD, remembering
// the prior property status for a later cancellation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*sale.Sale, error) {
	now := time.Now().UTC()
	actor := in.Actor
	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = estate.Today()
	}
	sl := &sale.Sale{
		SaleID:     uuid.New(),
		PropertyID: in.PropertyID,
		BuyerName:  in.BuyerName,
		AgentID:    in.AgentID,
		SaleDate:   estate.DateOf(saleDate),
		SalePrice:  in.SalePrice,
		Status:     sale.StatusCompleted,
		CreatedAt:  now,
		CreatedBy:  &actor,
		UpdatedAt:  now,
	}
	if err := sl.Validate(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.CreateCompleted(ctx, sl); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntitySale,
		EntityID:   sl.SaleID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  sl,
	})
	s.logger.Info().Str("saleId", sl.SaleID.String()).Str("propertyId", sl.PropertyID.String()).Msg("sale recorded")
	return sl, nil
}

// Get retrieves a sale by ID.
func (s *Service) Get(ctx context.Context, saleID uuid.UUID) (*sale.Sale, error) {
	return s.saleRepo.GetByID(ctx, saleID)
}

// List lists sales.
func (s *Service) List(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	return s.saleRepo.List(ctx, filter)
}

// Cancel cancels a completed sale. The property reverts to its pre-sale
// status only if it is still SOLD; a status changed since the sale is left
// alone.
func (s *Service) Cancel(ctx context.Context, saleID uuid.UUID, reason string, actor string) (*sale.Sale, error) {
	sl, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, &estate.NotFoundError{Resource: "sale", ID: saleID.String()}
	}

	if err := sl.Cancel(time.Now().UTC(), reason); err != nil {
		return nil, err
	}
	sl.UpdatedAt = time.Now().UTC()

	reverted, err := s.saleRepo.CancelWithRevert(ctx, sl, sl.PreviousPropertyStatus)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntitySale,
		EntityID:   sl.SaleID.String(),
		Action:     audit.ActionCancel,
		Actor:      actor,
		Reason:     reason,
		NewValues:  map[string]any{"propertyReverted": reverted},
	})
	s.logger.Info().Str("saleId", sl.SaleID.String()).Bool("propertyReverted", reverted).Msg("sale cancelled")
	return sl, nil
}
