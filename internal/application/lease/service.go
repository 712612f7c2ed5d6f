package lease

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/lease"
	"github.com/estate-hub/estate-hub/internal/domain/tenant"
)

// Service handles lease lifecycle operations.
type Service struct {
	leaseRepo  lease.Repository
	tenantRepo tenant.Repository
	auditSvc   *appAudit.Service
	logger     zerolog.Logger
}

// NewService creates a lease service.
func NewService(leaseRepo lease.Repository, tenantRepo tenant.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		leaseRepo:  leaseRepo,
		tenantRepo: tenantRepo,
		auditSvc:   auditSvc,
		logger:     logger.With().Str("service", "lease").Logger(),
	}
}

// CreateInput carries lease creation fields.
type CreateInput struct {
	PropertyID uuid.UUID
	TenantID   uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount decimal.Decimal
	Status     lease.Status
	Actor      string
}

// Create validates and persists a new lease. The overlap invariant is
// enforced inside the repository transaction under a property row lock.
func (s *Service) Create(ctx context.Context, in CreateInput) (*lease.Lease, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, &estate.ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}
	if !in.RentAmount.IsPositive() {
		return nil, &estate.ValidationError{Field: "rent_amount", Reason: "must be positive"}
	}
	status := in.Status
	if status == "" {
		status = lease.StatusDraft
	}
	if status != lease.StatusDraft && status != lease.StatusActive {
		return nil, &estate.ValidationError{Field: "status", Reason: "new leases start as DRAFT or ACTIVE"}
	}

	t, err := s.tenantRepo.GetByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &estate.NotFoundError{Resource: "tenant", ID: in.TenantID.String()}
	}

	now := time.Now().UTC()
	actor := in.Actor
	l := &lease.Lease{
		LeaseID:    uuid.New(),
		PropertyID: in.PropertyID,
		TenantID:   in.TenantID,
		StartDate:  estate.DateOf(in.StartDate),
		EndDate:    estate.DateOf(in.EndDate),
		RentAmount: in.RentAmount,
		Status:     status,
		Active:     true,
		CreatedAt:  now,
		CreatedBy:  &actor,
		UpdatedAt:  now,
		UpdatedBy:  &actor,
	}

	if err := s.leaseRepo.CreateExclusive(ctx, l); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityLease,
		EntityID:   l.LeaseID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  l,
	})
	s.logger.Info().Str("leaseId", l.LeaseID.String()).Str("propertyId", l.PropertyID.String()).Msg("lease created")
	return l, nil
}

// Get retrieves a lease by ID.
func (s *Service) Get(ctx context.Context, leaseID uuid.UUID) (*lease.Lease, error) {
	return s.leaseRepo.GetByID(ctx, leaseID)
}

// List lists leases.
func (s *Service) List(ctx context.Context, filter lease.ListFilter) ([]*lease.Lease, error) {
	return s.leaseRepo.List(ctx, filter)
}

// ListRenewals returns a lease's renewal history, oldest first.
func (s *Service) ListRenewals(ctx context.Context, leaseID uuid.UUID) ([]*lease.RenewalRecord, error) {
	return s.leaseRepo.ListRenewals(ctx, leaseID)
}

// UpdateInput carries the editable lease fields. Nil pointers leave the
// field unchanged. Reactivate restores an archived record.
type UpdateInput struct {
	StartDate  *time.Time
	EndDate    *time.Time
	RentAmount *decimal.Decimal
	Status     *lease.Status
	Reactivate bool
	Actor      string
}

// Update applies field edits. Closed leases reject edits; the only write
// allowed on them is reactivation of an archived row, which never touches
// lifecycle status. Status changes go through the user transition gate.
func (s *Service) Update(ctx context.Context, leaseID uuid.UUID, in UpdateInput) (*lease.Lease, error) {
	l, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, &estate.NotFoundError{Resource: "lease", ID: leaseID.String()}
	}

	old := *l
	if in.Reactivate && !l.Active {
		l.Active = true
	}

	hasFieldEdits := in.StartDate != nil || in.EndDate != nil || in.RentAmount != nil || in.Status != nil
	if hasFieldEdits && l.IsClosed() {
		return nil, &estate.ValidationError{Field: "status", Reason: "terminated or expired leases cannot be edited"}
	}

	if in.StartDate != nil {
		l.StartDate = estate.DateOf(*in.StartDate)
	}
	if in.EndDate != nil {
		l.EndDate = estate.DateOf(*in.EndDate)
	}
	if !l.EndDate.After(l.StartDate) {
		return nil, &estate.ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}
	if in.RentAmount != nil {
		if !in.RentAmount.IsPositive() {
			return nil, &estate.ValidationError{Field: "rent_amount", Reason: "must be positive"}
		}
		l.RentAmount = *in.RentAmount
	}
	if in.Status != nil && *in.Status != l.Status {
		if err := l.Transition(*in.Status); err != nil {
			return nil, err
		}
	}

	actor := in.Actor
	l.UpdatedAt = time.Now().UTC()
	l.UpdatedBy = &actor
	if err := s.leaseRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityLease,
		EntityID:   l.LeaseID.String(),
		Action:     audit.ActionUpdate,
		Actor:      in.Actor,
		OldValues:  old,
		NewValues:  l,
	})
	return l, nil
}

// Renew extends an active lease in place and appends a renewal record.
// The lease row stays stable across renewals, so the property's current
// lease remains one record.
func (s *Service) Renew(ctx context.Context, leaseID uuid.UUID, newEndDate time.Time, newRent *decimal.Decimal, reason *string, actor string) (*lease.Lease, error) {
	l, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, &estate.NotFoundError{Resource: "lease", ID: leaseID.String()}
	}
	if l.Status != lease.StatusActive {
		return nil, &estate.ValidationError{Field: "status", Reason: "only active leases can be renewed"}
	}
	newEndDate = estate.DateOf(newEndDate)
	if !newEndDate.After(l.EndDate) {
		return nil, &estate.ValidationError{Field: "new_end_date", Reason: "must be after the current end date"}
	}
	if newRent != nil && !newRent.IsPositive() {
		return nil, &estate.ValidationError{Field: "new_rent", Reason: "must be positive"}
	}

	rec := &lease.RenewalRecord{
		LeaseID:         l.LeaseID,
		PreviousEndDate: l.EndDate,
		PreviousRent:    l.RentAmount,
		NewEndDate:      newEndDate,
		NewRent:         l.RentAmount,
		RenewedBy:       actor,
		Reason:          reason,
		RenewedAt:       time.Now().UTC(),
	}
	l.EndDate = newEndDate
	if newRent != nil {
		l.RentAmount = *newRent
		rec.NewRent = *newRent
	}
	l.UpdatedAt = time.Now().UTC()
	l.UpdatedBy = &actor

	if err := s.leaseRepo.Renew(ctx, l, rec); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityLease,
		EntityID:   l.LeaseID.String(),
		Action:     audit.ActionRenew,
		Actor:      actor,
		OldValues:  map[string]any{"endDate": rec.PreviousEndDate, "rentAmount": rec.PreviousRent},
		NewValues:  map[string]any{"endDate": rec.NewEndDate, "rentAmount": rec.NewRent},
	})
	s.logger.Info().Str("leaseId", l.LeaseID.String()).Time("newEndDate", newEndDate).Msg("lease renewed")
	return l, nil
}

// Terminate ends an active lease.
func (s *Service) Terminate(ctx context.Context, leaseID uuid.UUID, date time.Time, reason string, penalty *decimal.Decimal, actor string) (*lease.Lease, error) {
	l, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, &estate.NotFoundError{Resource: "lease", ID: leaseID.String()}
	}

	if err := l.Terminate(estate.DateOf(date), reason, penalty); err != nil {
		return nil, err
	}
	l.UpdatedAt = time.Now().UTC()
	l.UpdatedBy = &actor
	if err := s.leaseRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityLease,
		EntityID:   l.LeaseID.String(),
		Action:     audit.ActionTerminate,
		Actor:      actor,
		Reason:     reason,
	})
	s.logger.Info().Str("leaseId", l.LeaseID.String()).Msg("lease terminated")
	return l, nil
}

// Archive soft-deletes a lease. Lifecycle status is untouched; the row
// stays queryable and can be reactivated through Update.
func (s *Service) Archive(ctx context.Context, leaseID uuid.UUID, actor string) error {
	l, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return err
	}
	if l == nil {
		return &estate.NotFoundError{Resource: "lease", ID: leaseID.String()}
	}
	if err := s.leaseRepo.SetArchived(ctx, leaseID, true); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityLease,
		EntityID:   leaseID.String(),
		Action:     audit.ActionArchive,
		Actor:      actor,
	})
	return nil
}

// ExpireDue sweeps active leases whose end date has passed, moving each to
// EXPIRED through the privileged path. Best-effort: a failure on one lease
// is logged and the sweep continues. Returns the number expired.
func (s *Service) ExpireDue(ctx context.Context, batchSize int) (int, error) {
	today := estate.Today()
	due, err := s.leaseRepo.ListDueForExpiry(ctx, today, batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, l := range due {
		if err := l.Expire(today); err != nil {
			s.logger.Warn().Err(err).Str("leaseId", l.LeaseID.String()).Msg("skipping lease in expiry sweep")
			continue
		}
		l.UpdatedAt = time.Now().UTC()
		if err := s.leaseRepo.Update(ctx, l); err != nil {
			s.logger.Error().Err(err).Str("leaseId", l.LeaseID.String()).Msg("failed to expire lease")
			continue
		}
		expired++
		s.auditSvc.Log(ctx, &audit.AuditEntry{
			EntityType: audit.EntityLease,
			EntityID:   l.LeaseID.String(),
			Action:     audit.ActionExpire,
			Actor:      "system",
			Reason:     "end date passed",
		})
	}
	if expired > 0 {
		s.logger.Info().Int("expired", expired).Msg("expiry sweep completed")
	}
	return expired, nil
}
