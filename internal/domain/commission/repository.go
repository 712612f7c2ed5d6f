package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RuleRepository is the storage port for commission rules.
type RuleRepository interface {
	Create(ctx context.Context, r *Rule) error
	GetByID(ctx context.Context, ruleID uuid.UUID) (*Rule, error)
	List(ctx context.Context, filter RuleFilter) ([]*Rule, error)
	Update(ctx context.Context, r *Rule) error
}

// RuleFilter narrows rule listings.
type RuleFilter struct {
	AgentID         *uuid.UUID
	TransactionType *TransactionType
	ActiveOnly      bool
	Limit           int
	Offset          int
}

// TransactionRepository is the storage port for the commission ledger.
type TransactionRepository interface {
	// Record runs a transactional record cycle: it locks the agent row,
	// loads the agent's active rules, hands them to fn, and inserts the
	// transaction fn returns in the same database transaction. An error
	// from fn aborts the transaction and nothing is persisted.
	Record(ctx context.Context, agentID uuid.UUID, fn func(rules []*Rule) (*Transaction, error)) (*Transaction, error)
	GetByID(ctx context.Context, transactionID uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*Transaction, error)
	UpdatePayment(ctx context.Context, t *Transaction) error
	Summarize(ctx context.Context, agentID uuid.UUID, from, to *time.Time) (*Summary, error)
}

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	AgentID         *uuid.UUID
	TransactionType *TransactionType
	PaymentStatus   *PaymentStatus
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}
