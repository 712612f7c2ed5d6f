package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// PaymentStatus tracks the payout lifecycle of a ledger entry.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Transaction is an immutable ledger entry: the commission owed to an
// agent for one deal, with the rule terms snapshotted at record time.
type Transaction struct {
	ID                int64           `json:"id"`
	TransactionID     uuid.UUID       `json:"transactionId"`
	AgentID           uuid.UUID       `json:"agentId"`
	RuleID            uuid.UUID       `json:"ruleId"`
	TransactionType   TransactionType `json:"transactionType"`
	ReferenceID       uuid.UUID       `json:"referenceId"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	CommissionAmount  decimal.Decimal `json:"commissionAmount"`
	TransactionDate   time.Time       `json:"transactionDate"`
	RuleSnapshot      []byte          `json:"ruleSnapshot"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	PaymentDate       *time.Time      `json:"paymentDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         *string         `json:"createdBy,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// MarkPaid moves a pending entry to PAID and stamps the payment date.
func (t *Transaction) MarkPaid(date time.Time) error {
	if t.PaymentStatus != PaymentPending {
		return &estate.TransitionError{
			Entity:  "commission_transaction",
			From:    string(t.PaymentStatus),
			To:      string(PaymentPaid),
			Allowed: allowedPaymentTargets(t.PaymentStatus),
		}
	}
	t.PaymentStatus = PaymentPaid
	t.PaymentDate = &date
	return nil
}

// CancelPayment moves a pending entry to CANCELLED. Paid entries stay paid.
func (t *Transaction) CancelPayment() error {
	if t.PaymentStatus != PaymentPending {
		return &estate.TransitionError{
			Entity:  "commission_transaction",
			From:    string(t.PaymentStatus),
			To:      string(PaymentCancelled),
			Allowed: allowedPaymentTargets(t.PaymentStatus),
		}
	}
	t.PaymentStatus = PaymentCancelled
	return nil
}

func allowedPaymentTargets(s PaymentStatus) []string {
	if s == PaymentPending {
		return []string{string(PaymentPaid), string(PaymentCancelled)}
	}
	return nil
}

// Summary aggregates an agent's ledger over a period, grouped by
// payment status.
type Summary struct {
	AgentID          uuid.UUID       `json:"agentId"`
	From             *time.Time      `json:"from,omitempty"`
	To               *time.Time      `json:"to,omitempty"`
	TotalCount       int             `json:"totalCount"`
	TotalCommission  decimal.Decimal `json:"totalCommission"`
	PendingCount     int             `json:"pendingCount"`
	PendingAmount    decimal.Decimal `json:"pendingAmount"`
	PaidCount        int             `json:"paidCount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	CancelledCount   int             `json:"cancelledCount"`
	CancelledAmount  decimal.Decimal `json:"cancelledAmount"`
}
