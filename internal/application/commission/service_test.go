package commission

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/domain/agent"
	"github.com/estate-hub/estate-hub/internal/domain/audit"
	"github.com/estate-hub/estate-hub/internal/domain/commission"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[uuid.UUID]*commission.Rule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[uuid.UUID]*commission.Rule)}
}

func (f *fakeRuleRepo) Create(ctx context.Context, r *commission.Rule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = int64(len(f.rules) + 1)
	cp := *r
	f.rules[r.RuleID] = &cp
	return nil
}

func (f *fakeRuleRepo) GetByID(ctx context.Context, ruleID uuid.UUID) (*commission.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rules[ruleID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRuleRepo) List(ctx context.Context, filter commission.RuleFilter) ([]*commission.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*commission.Rule
	for _, r := range f.rules {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRuleRepo) Update(ctx context.Context, r *commission.Rule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.rules[r.RuleID] = &cp
	return nil
}

// fakeTxRepo mirrors the transactional record cycle: the callback gets the
// agent's active rules, and its transaction is stored only on success.
type fakeTxRepo struct {
	mu          sync.Mutex
	ruleRepo    *fakeRuleRepo
	agents      map[uuid.UUID]bool
	stored      map[uuid.UUID]*commission.Transaction
	recordCalls int
}

func newFakeTxRepo(ruleRepo *fakeRuleRepo) *fakeTxRepo {
	return &fakeTxRepo{
		ruleRepo: ruleRepo,
		agents:   make(map[uuid.UUID]bool),
		stored:   make(map[uuid.UUID]*commission.Transaction),
	}
}

func (f *fakeTxRepo) Record(ctx context.Context, agentID uuid.UUID, fn func(rules []*commission.Rule) (*commission.Transaction, error)) (*commission.Transaction, error) {
	f.mu.Lock()
	f.recordCalls++
	known := f.agents[agentID]
	f.mu.Unlock()
	if !known {
		return nil, &estate.NotFoundError{Resource: "agent", ID: agentID.String()}
	}

	all, _ := f.ruleRepo.List(ctx, commission.RuleFilter{})
	var active []*commission.Rule
	for _, r := range all {
		if r.AgentID == agentID && r.Active {
			active = append(active, r)
		}
	}

	t, err := fn(active)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.stored[t.TransactionID] = t
	f.mu.Unlock()
	return t, nil
}

func (f *fakeTxRepo) GetByID(ctx context.Context, transactionID uuid.UUID) (*commission.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.stored[transactionID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTxRepo) List(ctx context.Context, filter commission.TransactionFilter) ([]*commission.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*commission.Transaction
	for _, t := range f.stored {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTxRepo) UpdatePayment(ctx context.Context, t *commission.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.stored[t.TransactionID] = &cp
	return nil
}

func (f *fakeTxRepo) Summarize(ctx context.Context, agentID uuid.UUID, from, to *time.Time) (*commission.Summary, error) {
	return &commission.Summary{AgentID: agentID}, nil
}

type fakeAgentRepo struct {
	agents map[uuid.UUID]*agent.Agent
}

func (f *fakeAgentRepo) Create(ctx context.Context, a *agent.Agent) error { return nil }
func (f *fakeAgentRepo) GetByID(ctx context.Context, agentID uuid.UUID) (*agent.Agent, error) {
	return f.agents[agentID], nil
}
func (f *fakeAgentRepo) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*agent.Agent, error) {
	return nil, nil
}
func (f *fakeAgentRepo) Update(ctx context.Context, a *agent.Agent) error { return nil }

type capturingAuditRepo struct {
	mu   sync.Mutex
	logs []*audit.AuditLog
}

func (c *capturingAuditRepo) Create(ctx context.Context, log *audit.AuditLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = append(c.logs, log)
	return nil
}

func (c *capturingAuditRepo) List(ctx context.Context, filter audit.Filter) ([]*audit.AuditLog, error) {
	return nil, nil
}

func (c *capturingAuditRepo) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.logs)
}

// failingTxRepo runs the record callback, then fails the insert the way a
// broken commit would, after the row scan has assigned the serial id.
type failingTxRepo struct {
	*fakeTxRepo
}

func (f *failingTxRepo) Record(ctx context.Context, agentID uuid.UUID, fn func(rules []*commission.Rule) (*commission.Transaction, error)) (*commission.Transaction, error) {
	all, _ := f.ruleRepo.List(ctx, commission.RuleFilter{})
	var active []*commission.Rule
	for _, r := range all {
		if r.AgentID == agentID && r.Active {
			active = append(active, r)
		}
	}
	t, err := fn(active)
	if err != nil {
		return nil, err
	}
	t.ID = 42
	return nil, assert.AnError
}

type noopAuditRepo struct{}

func (noopAuditRepo) Create(ctx context.Context, log *audit.AuditLog) error { return nil }
func (noopAuditRepo) List(ctx context.Context, filter audit.Filter) ([]*audit.AuditLog, error) {
	return nil, nil
}

type fixture struct {
	svc      *Service
	ruleRepo *fakeRuleRepo
	txRepo   *fakeTxRepo
	agentID  uuid.UUID
}

func newFixture() *fixture {
	agentID := uuid.New()
	ruleRepo := newFakeRuleRepo()
	txRepo := newFakeTxRepo(ruleRepo)
	txRepo.agents[agentID] = true
	agents := &fakeAgentRepo{agents: map[uuid.UUID]*agent.Agent{
		agentID: {AgentID: agentID, Name: "Sam Rivera", LicenseCode: "LIC-100", Active: true},
	}}
	auditSvc := appAudit.NewService(noopAuditRepo{}, zerolog.Nop(), nil)
	return &fixture{
		svc:      NewService(ruleRepo, txRepo, agents, auditSvc, zerolog.Nop()),
		ruleRepo: ruleRepo,
		txRepo:   txRepo,
		agentID:  agentID,
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func (fx *fixture) seedRule(t *testing.T, in RuleInput) *commission.Rule {
	t.Helper()
	in.AgentID = fx.agentID
	r, err := fx.svc.CreateRule(context.Background(), in)
	require.NoError(t, err)
	return r
}

func TestCreateRuleRequiresKnownAgent(t *testing.T) {
	fx := newFixture()
	_, err := fx.svc.CreateRule(context.Background(), RuleInput{
		AgentID:         uuid.New(),
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
	})
	var nferr *estate.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestCreateRuleValidates(t *testing.T) {
	fx := newFixture()
	_, err := fx.svc.CreateRule(context.Background(), RuleInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		ValidFrom:       date("2025-01-01"),
	})
	var verr *estate.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRecordBooksPendingTransaction(t *testing.T) {
	fx := newFixture()
	rule := fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
	})

	txDate := date("2025-03-15")
	tr, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
		Actor:           "user:finance",
	})
	require.NoError(t, err)
	assert.Equal(t, rule.RuleID, tr.RuleID)
	assert.Equal(t, commission.PaymentPending, tr.PaymentStatus)
	assert.True(t, tr.CommissionAmount.Equal(decimal.NewFromInt(15000)), "got %s", tr.CommissionAmount)
	assert.NotEmpty(t, tr.RuleSnapshot)
	assert.Equal(t, txDate, tr.TransactionDate)

	stored, err := fx.txRepo.GetByID(context.Background(), tr.TransactionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestRecordRejectsBothAsTransactionType(t *testing.T) {
	fx := newFixture()
	_, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeBoth,
		Amount:          decimal.NewFromInt(1000),
		ReferenceID:     uuid.New(),
	})
	var verr *estate.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRecordNoApplicableRulePersistsNothing(t *testing.T) {
	fx := newFixture()
	// Rule covers sales only; lease deals have no rule in force.
	fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructureFixed,
		FixedAmount:     decPtr("8000"),
		ValidFrom:       date("2025-01-01"),
	})

	txDate := date("2025-03-15")
	_, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeLease,
		Amount:          decimal.NewFromInt(1000),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
	})
	var nrerr *estate.NoApplicableRuleError
	require.ErrorAs(t, err, &nrerr)
	assert.Empty(t, fx.txRepo.stored)
}

func TestRecordResolvesRuleOnTransactionDate(t *testing.T) {
	fx := newFixture()
	until := date("2025-06-30")
	fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
		ValidUntil:      &until,
	})
	later := fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("4"),
		ValidFrom:       date("2025-07-01"),
	})

	early := date("2025-03-15")
	tr, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeLease,
		Amount:          decimal.NewFromInt(10000),
		Date:            &early,
		ReferenceID:     uuid.New(),
	})
	require.NoError(t, err)
	assert.True(t, tr.CommissionAmount.Equal(decimal.NewFromInt(300)), "old rule must price old dates, got %s", tr.CommissionAmount)

	late := date("2025-08-01")
	tr, err = fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeLease,
		Amount:          decimal.NewFromInt(10000),
		Date:            &late,
		ReferenceID:     uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, later.RuleID, tr.RuleID)
	assert.True(t, tr.CommissionAmount.Equal(decimal.NewFromInt(400)))
}

func TestRecordRejectsAmountOutsideRuleBounds(t *testing.T) {
	fx := newFixture()
	fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("5"),
		MinValue:        decPtr("200"),
		ValidFrom:       date("2025-01-01"),
	})

	txDate := date("2025-03-15")
	_, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeLease,
		Amount:          decimal.NewFromInt(100),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
	})
	var verr *estate.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, fx.txRepo.stored)
}

func TestBulkRecordPartialFailure(t *testing.T) {
	fx := newFixture()
	fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructureFixed,
		FixedAmount:     decPtr("8000"),
		ValidFrom:       date("2025-01-01"),
	})

	txDate := date("2025-03-15")
	results := fx.svc.BulkRecord(context.Background(), []RecordInput{
		{AgentID: fx.agentID, TransactionType: commission.TypeSale, Amount: decimal.NewFromInt(500000), Date: &txDate, ReferenceID: uuid.New()},
		{AgentID: fx.agentID, TransactionType: commission.TypeLease, Amount: decimal.NewFromInt(1000), Date: &txDate, ReferenceID: uuid.New()},
		{AgentID: fx.agentID, TransactionType: commission.TypeSale, Amount: decimal.NewFromInt(750000), Date: &txDate, ReferenceID: uuid.New()},
	})

	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Transaction)
	assert.Empty(t, results[0].Error)
	assert.Nil(t, results[1].Transaction)
	assert.NotEmpty(t, results[1].Error)
	assert.NotNil(t, results[2].Transaction)
	assert.Len(t, fx.txRepo.stored, 2)
}

func TestPaymentLifecycle(t *testing.T) {
	fx := newFixture()
	fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructureFixed,
		FixedAmount:     decPtr("8000"),
		ValidFrom:       date("2025-01-01"),
	})
	txDate := date("2025-03-15")
	tr, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
	})
	require.NoError(t, err)

	payDate := date("2025-04-01")
	paid, err := fx.svc.MarkPaid(context.Background(), tr.TransactionID, &payDate, "user:finance")
	require.NoError(t, err)
	assert.Equal(t, commission.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, payDate, *paid.PaymentDate)

	// Paid entries stay paid.
	_, err = fx.svc.CancelTransaction(context.Background(), tr.TransactionID, "mistake", "user:finance")
	var terr *estate.TransitionError
	require.ErrorAs(t, err, &terr)

	_, err = fx.svc.MarkPaid(context.Background(), tr.TransactionID, &payDate, "user:finance")
	require.ErrorAs(t, err, &terr)
}

func TestCancelPendingTransaction(t *testing.T) {
	fx := newFixture()
	fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructureFixed,
		FixedAmount:     decPtr("8000"),
		ValidFrom:       date("2025-01-01"),
	})
	txDate := date("2025-03-15")
	tr, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
	})
	require.NoError(t, err)

	cancelled, err := fx.svc.CancelTransaction(context.Background(), tr.TransactionID, "deal reversed", "user:finance")
	require.NoError(t, err)
	assert.Equal(t, commission.PaymentCancelled, cancelled.PaymentStatus)
}

func TestUpdateRuleValidityFreezesFinancialTerms(t *testing.T) {
	fx := newFixture()
	r := fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
	})

	until := date("2025-06-30")
	updated, err := fx.svc.UpdateRuleValidity(context.Background(), r.RuleID, &until, "user:admin")
	require.NoError(t, err)
	require.NotNil(t, updated.ValidUntil)
	assert.Equal(t, until, *updated.ValidUntil)
	assert.True(t, updated.Percentage.Equal(*r.Percentage))

	// valid_until before valid_from is rejected.
	bad := date("2024-01-01")
	_, err = fx.svc.UpdateRuleValidity(context.Background(), r.RuleID, &bad, "user:admin")
	var verr *estate.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDeactivateRuleIsIdempotent(t *testing.T) {
	fx := newFixture()
	r := fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeLease,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
	})

	first, err := fx.svc.DeactivateRule(context.Background(), r.RuleID, "user:admin")
	require.NoError(t, err)
	assert.False(t, first.Active)

	second, err := fx.svc.DeactivateRule(context.Background(), r.RuleID, "user:admin")
	require.NoError(t, err)
	assert.False(t, second.Active)
}

func TestDeactivatedRuleStopsResolving(t *testing.T) {
	fx := newFixture()
	r := fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructureFixed,
		FixedAmount:     decPtr("8000"),
		ValidFrom:       date("2025-01-01"),
	})
	_, err := fx.svc.DeactivateRule(context.Background(), r.RuleID, "user:admin")
	require.NoError(t, err)

	txDate := date("2025-03-15")
	_, err = fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
	})
	var nrerr *estate.NoApplicableRuleError
	require.ErrorAs(t, err, &nrerr)
}

func TestRecordFailedInsertLeavesNoAuditTrail(t *testing.T) {
	agentID := uuid.New()
	ruleRepo := newFakeRuleRepo()
	base := newFakeTxRepo(ruleRepo)
	base.agents[agentID] = true
	agents := &fakeAgentRepo{agents: map[uuid.UUID]*agent.Agent{
		agentID: {AgentID: agentID, Name: "Sam Rivera", LicenseCode: "LIC-100", Active: true},
	}}
	auditRepo := &capturingAuditRepo{}
	auditSvc := appAudit.NewService(auditRepo, zerolog.Nop(), nil)
	svc := NewService(ruleRepo, &failingTxRepo{fakeTxRepo: base}, agents, auditSvc, zerolog.Nop())

	require.NoError(t, ruleRepo.Create(context.Background(), &commission.Rule{
		RuleID:          uuid.New(),
		AgentID:         agentID,
		TransactionType: commission.TypeSale,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
		Active:          true,
	}))

	_, err := svc.Record(context.Background(), RecordInput{
		AgentID:         agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		ReferenceID:     uuid.New(),
	})
	require.ErrorIs(t, err, assert.AnError)

	// The CREATE audit entry must only exist for committed transactions.
	assert.Never(t, func() bool { return auditRepo.count() > 0 },
		100*time.Millisecond, 10*time.Millisecond)
}

func TestRecordAuditsCommittedTransaction(t *testing.T) {
	agentID := uuid.New()
	ruleRepo := newFakeRuleRepo()
	txRepo := newFakeTxRepo(ruleRepo)
	txRepo.agents[agentID] = true
	agents := &fakeAgentRepo{agents: map[uuid.UUID]*agent.Agent{
		agentID: {AgentID: agentID, Name: "Sam Rivera", LicenseCode: "LIC-100", Active: true},
	}}
	auditRepo := &capturingAuditRepo{}
	auditSvc := appAudit.NewService(auditRepo, zerolog.Nop(), nil)
	svc := NewService(ruleRepo, txRepo, agents, auditSvc, zerolog.Nop())

	require.NoError(t, ruleRepo.Create(context.Background(), &commission.Rule{
		RuleID:          uuid.New(),
		AgentID:         agentID,
		TransactionType: commission.TypeSale,
		Structure:       commission.StructureFixed,
		FixedAmount:     decPtr("8000"),
		ValidFrom:       date("2025-01-01"),
		Active:          true,
	}))

	booked, err := svc.Record(context.Background(), RecordInput{
		AgentID:         agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		ReferenceID:     uuid.New(),
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return auditRepo.count() == 1 },
		time.Second, 10*time.Millisecond)
	auditRepo.mu.Lock()
	entry := auditRepo.logs[0]
	auditRepo.mu.Unlock()
	assert.Equal(t, audit.EntityCommissionTransaction, entry.EntityType)
	assert.Equal(t, booked.TransactionID.String(), entry.EntityID)
	assert.Equal(t, audit.ActionCreate, entry.Action)
}

func TestSnapshotSurvivesRuleDeactivation(t *testing.T) {
	fx := newFixture()
	r := fx.seedRule(t, RuleInput{
		TransactionType: commission.TypeSale,
		Structure:       commission.StructurePercentage,
		Percentage:      decPtr("3"),
		ValidFrom:       date("2025-01-01"),
	})

	txDate := date("2025-03-15")
	booked, err := fx.svc.Record(context.Background(), RecordInput{
		AgentID:         fx.agentID,
		TransactionType: commission.TypeSale,
		Amount:          decimal.NewFromInt(500000),
		Date:            &txDate,
		ReferenceID:     uuid.New(),
	})
	require.NoError(t, err)

	_, err = fx.svc.DeactivateRule(context.Background(), r.RuleID, "user:admin")
	require.NoError(t, err)

	stored, err := fx.svc.GetTransaction(context.Background(), booked.TransactionID)
	require.NoError(t, err)
	assert.JSONEq(t, string(booked.RuleSnapshot), string(stored.RuleSnapshot))
	assert.Contains(t, string(stored.RuleSnapshot), `"percentage":"3"`)
	assert.True(t, stored.CommissionAmount.Equal(decimal.NewFromInt(15000)))
}

func TestSummarizeRequiresKnownAgent(t *testing.T) {
	fx := newFixture()
	_, err := fx.svc.Summarize(context.Background(), uuid.New(), nil, nil)
	var nferr *estate.NotFoundError
	require.ErrorAs(t, err, &nferr)

	summary, err := fx.svc.Summarize(context.Background(), fx.agentID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, fx.agentID, summary.AgentID)
}
