package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/agent"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/commission"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// Service handles commission rules and the commission ledger.
type Service struct {
	ruleRepo  commission.RuleRepository
	txRepo    commission.TransactionRepository
	agentRepo agent.Repository
	auditSvc  *appAudit.Service
	logger    zerolog.Logger
}

// NewService creates a commission service.
func NewService(ruleRepo commission.RuleRepository, txRepo commission.TransactionRepository, agentRepo agent.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		ruleRepo:  ruleRepo,
		txRepo:    txRepo,
		agentRepo: agentRepo,
		auditSvc:  auditSvc,
		logger:    logger.With().Str("service", "commission").Logger(),
	}
}

// RuleInput carries commission rule creation fields.
type RuleInput struct {
	AgentID         uuid.UUID
	TransactionType commission.TransactionType
	Structure       commission.Structure
	Percentage      *decimal.Decimal
	FixedAmount     *decimal.Decimal
	MinValue        *decimal.Decimal
	MaxValue        *decimal.Decimal
	ValidFrom       time.Time
	ValidUntil      *time.Time
	Actor           string
}

// CreateRule validates and persists a commission rule. Financial terms are
// immutable after creation; superseded rules get deactivated, not edited.
func (s *Service) CreateRule(ctx context.Context, in RuleInput) (*commission.Rule, error) {
	a, err := s.agentRepo.GetByID(ctx, in.AgentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &estate.NotFoundError{Resource: "agent", ID: in.AgentID.String()}
	}

	now := time.Now().UTC()
	actor := in.Actor
	var validUntil *time.Time
	if in.ValidUntil != nil {
		d := estate.DateOf(*in.ValidUntil)
		validUntil = &d
	}
	r := &commission.Rule{
		RuleID:          uuid.New(),
		AgentID:         in.AgentID,
		TransactionType: in.TransactionType,
		Structure:       in.Structure,
		Percentage:      in.Percentage,
		FixedAmount:     in.FixedAmount,
		MinValue:        in.MinValue,
		MaxValue:        in.MaxValue,
		ValidFrom:       estate.DateOf(in.ValidFrom),
		ValidUntil:      validUntil,
		Active:          true,
		CreatedAt:       now,
		CreatedBy:       &actor,
		UpdatedAt:       now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityCommissionRule,
		EntityID:   r.RuleID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  r,
	})
	s.logger.Info().Str("ruleId", r.RuleID.String()).Str("agentId", r.AgentID.String()).Msg("commission rule created")
	return r, nil
}

// GetRule retrieves a rule by ID.
func (s *Service) GetRule(ctx context.Context, ruleID uuid.UUID) (*commission.Rule, error) {
	return s.ruleRepo.GetByID(ctx, ruleID)
}

// ListRules lists rules.
func (s *Service) ListRules(ctx context.Context, filter commission.RuleFilter) ([]*commission.Rule, error) {
	return s.ruleRepo.List(ctx, filter)
}

// UpdateRuleValidity shortens or extends a rule's validity window. The
// financial terms stay frozen: transactions already reference them.
func (s *Service) UpdateRuleValidity(ctx context.Context, ruleID uuid.UUID, validUntil *time.Time, actor string) (*commission.Rule, error) {
	r, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &estate.NotFoundError{Resource: "commission rule", ID: ruleID.String()}
	}

	old := *r
	if validUntil != nil {
		d := estate.DateOf(*validUntil)
		r.ValidUntil = &d
	} else {
		r.ValidUntil = nil
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()
	if err := s.ruleRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityCommissionRule,
		EntityID:   r.RuleID.String(),
		Action:     audit.ActionUpdate,
		Actor:      actor,
		OldValues:  old,
		NewValues:  r,
	})
	return r, nil
}

// DeactivateRule retires a rule. Booked transactions keep their snapshots.
func (s *Service) DeactivateRule(ctx context.Context, ruleID uuid.UUID, actor string) (*commission.Rule, error) {
	r, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &estate.NotFoundError{Resource: "commission rule", ID: ruleID.String()}
	}
	if !r.Active {
		return r, nil
	}

	r.Active = false
	r.UpdatedAt = time.Now().UTC()
	if err := s.ruleRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityCommissionRule,
		EntityID:   r.RuleID.String(),
		Action:     audit.ActionDeactivate,
		Actor:      actor,
	})
	return r, nil
}

// RecordInput carries one ledger entry to record.
type RecordInput struct {
	AgentID         uuid.UUID
	TransactionType commission.TransactionType
	Amount          decimal.Decimal
	Date            *time.Time
	ReferenceID     uuid.UUID
	Actor           string
}

// Record books a commission: resolve the rule effective on the
// transaction's own date, calculate, snapshot the rule terms and persist a
// pending ledger entry. The whole cycle runs inside one repository
// transaction under an agent row lock, so a concurrent rule change cannot
// slip between resolution and insert.
func (s *Service) Record(ctx context.Context, in RecordInput) (*commission.Transaction, error) {
	if in.TransactionType != commission.TypeLease && in.TransactionType != commission.TypeSale {
		return nil, &estate.ValidationError{Field: "transaction_type", Reason: "must be LEASE or SALE"}
	}
	date := estate.Today()
	if in.Date != nil {
		date = estate.DateOf(*in.Date)
	}

	t, err := s.txRepo.Record(ctx, in.AgentID, func(rules []*commission.Rule) (*commission.Transaction, error) {
		rule := commission.ResolveRule(rules, in.TransactionType, date)
		if rule == nil {
			return nil, &estate.NoApplicableRuleError{
				AgentID:         in.AgentID,
				TransactionType: string(in.TransactionType),
				Date:            date,
			}
		}

		amount, err := commission.Calculate(rule, in.Amount)
		if err != nil {
			return nil, err
		}
		snapshot, err := rule.Snapshot()
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		actor := in.Actor
		return &commission.Transaction{
			TransactionID:     uuid.New(),
			AgentID:           in.AgentID,
			RuleID:            rule.RuleID,
			TransactionType:   in.TransactionType,
			ReferenceID:       in.ReferenceID,
			TransactionAmount: in.Amount,
			CommissionAmount:  amount,
			TransactionDate:   date,
			RuleSnapshot:      snapshot,
			PaymentStatus:     commission.PaymentPending,
			CreatedAt:         now,
			CreatedBy:         &actor,
			UpdatedAt:         now,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// The audit entry is written only once the insert has committed.
	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityCommissionTransaction,
		EntityID:   t.TransactionID.String(),
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		NewValues:  t,
	})
	s.logger.Info().
		Str("transactionId", t.TransactionID.String()).
		Str("agentId", in.AgentID.String()).
		Str("commission", t.CommissionAmount.String()).
		Msg("commission recorded")
	return t, nil
}

// BulkResult reports the outcome of one entry in a bulk record.
type BulkResult struct {
	Index       int                     `json:"index"`
	Transaction *commission.Transaction `json:"transaction,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// BulkRecord records each entry independently. Failures are collected per
// entry instead of aborting the batch, so partial success is visible.
func (s *Service) BulkRecord(ctx context.Context, entries []RecordInput) []BulkResult {
	results := make([]BulkResult, 0, len(entries))
	for i, in := range entries {
		t, err := s.Record(ctx, in)
		res := BulkResult{Index: i, Transaction: t}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

// GetTransaction retrieves a ledger entry by ID.
func (s *Service) GetTransaction(ctx context.Context, transactionID uuid.UUID) (*commission.Transaction, error) {
	return s.txRepo.GetByID(ctx, transactionID)
}

// ListTransactions lists ledger entries.
func (s *Service) ListTransactions(ctx context.Context, filter commission.TransactionFilter) ([]*commission.Transaction, error) {
	return s.txRepo.List(ctx, filter)
}

// MarkPaid moves a pending ledger entry to PAID.
func (s *Service) MarkPaid(ctx context.Context, transactionID uuid.UUID, paymentDate *time.Time, actor string) (*commission.Transaction, error) {
	t, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &estate.NotFoundError{Resource: "commission transaction", ID: transactionID.String()}
	}

	date := estate.Today()
	if paymentDate != nil {
		date = estate.DateOf(*paymentDate)
	}
	if err := t.MarkPaid(date); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.txRepo.UpdatePayment(ctx, t); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityCommissionTransaction,
		EntityID:   t.TransactionID.String(),
		Action:     audit.ActionPay,
		Actor:      actor,
	})
	return t, nil
}

// CancelTransaction moves a pending ledger entry to CANCELLED. Paid
// entries stay paid.
func (s *Service) CancelTransaction(ctx context.Context, transactionID uuid.UUID, reason string, actor string) (*commission.Transaction, error) {
	t, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &estate.NotFoundError{Resource: "commission transaction", ID: transactionID.String()}
	}

	if err := t.CancelPayment(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.txRepo.UpdatePayment(ctx, t); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &audit.AuditEntry{
		EntityType: audit.EntityCommissionTransaction,
		EntityID:   t.TransactionID.String(),
		Action:     audit.ActionCancel,
		Actor:      actor,
		Reason:     reason,
	})
	return t, nil
}

// Summarize aggregates an agent's ledger over an optional date range.
func (s *Service) Summarize(ctx context.Context, agentID uuid.UUID, from, to *time.Time) (*commission.Summary, error) {
	a, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &estate.NotFoundError{Resource: "agent", ID: agentID.String()}
	}
	return s.txRepo.Summarize(ctx, agentID, from, to)
}
