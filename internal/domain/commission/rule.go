package commission

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// TransactionType scopes a rule or transaction to lease deals, sale
// deals, or both.
type TransactionType string

const (
	TypeLease TransactionType = "LEASE"
	TypeSale  TransactionType = "SALE"
	TypeBoth  TransactionType = "BOTH"
)

// ValidTransactionType reports whether t names a known scope.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeLease, TypeSale, TypeBoth:
		return true
	}
	return false
}

// Structure selects how a rule computes commission.
type Structure string

const (
	StructurePercentage Structure = "PERCENTAGE"
	StructureFixed      Structure = "FIXED"
)

// Rule defines how commission is computed for an agent's deals over a
// validity window.
type Rule struct {
	ID              int64            `json:"id"`
	RuleID          uuid.UUID        `json:"ruleId"`
	AgentID         uuid.UUID        `json:"agentId"`
	TransactionType TransactionType  `json:"transactionType"`
	Structure       Structure        `json:"structure"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	FixedAmount     *decimal.Decimal `json:"fixedAmount,omitempty"`
	MinValue        *decimal.Decimal `json:"minValue,omitempty"`
	MaxValue        *decimal.Decimal `json:"maxValue,omitempty"`
	ValidFrom       time.Time        `json:"validFrom"`
	ValidUntil      *time.Time       `json:"validUntil,omitempty"`
	Active          bool             `json:"active"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       *string          `json:"createdBy,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Validate checks structural consistency before persistence.
func (r *Rule) Validate() error {
	if !ValidTransactionType(r.TransactionType) {
		return &estate.ValidationError{Field: "transaction_type", Reason: "must be LEASE, SALE or BOTH"}
	}
	switch r.Structure {
	case StructurePercentage:
		if r.Percentage == nil {
			return &estate.ValidationError{Field: "percentage", Reason: "required for PERCENTAGE rules"}
		}
		if r.Percentage.IsNegative() || r.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return &estate.ValidationError{Field: "percentage", Reason: "must be between 0 and 100"}
		}
	case StructureFixed:
		if r.FixedAmount == nil {
			return &estate.ValidationError{Field: "fixed_amount", Reason: "required for FIXED rules"}
		}
		if r.FixedAmount.IsNegative() {
			return &estate.ValidationError{Field: "fixed_amount", Reason: "must not be negative"}
		}
	default:
		return &estate.ValidationError{Field: "commission_structure", Reason: "must be PERCENTAGE or FIXED"}
	}
	if r.MinValue != nil && r.MinValue.IsNegative() {
		return &estate.ValidationError{Field: "min_value", Reason: "must not be negative"}
	}
	if r.MaxValue != nil && r.MaxValue.IsNegative() {
		return &estate.ValidationError{Field: "max_value", Reason: "must not be negative"}
	}
	if r.MinValue != nil && r.MaxValue != nil && r.MinValue.GreaterThan(*r.MaxValue) {
		return &estate.ValidationError{Field: "min_value", Reason: "must not exceed max_value"}
	}
	if r.ValidUntil != nil && r.ValidUntil.Before(r.ValidFrom) {
		return &estate.ValidationError{Field: "valid_until", Reason: "must not precede valid_from"}
	}
	return nil
}

// AppliesTo reports whether the rule's scope matches a deal type.
func (r *Rule) AppliesTo(t TransactionType) bool {
	return r.TransactionType == TypeBoth || r.TransactionType == t
}

// EffectiveOn reports whether the rule's validity window covers date.
func (r *Rule) EffectiveOn(date time.Time) bool {
	if r.ValidFrom.After(date) {
		return false
	}
	return r.ValidUntil == nil || !r.ValidUntil.Before(date)
}

// Snapshot serializes the rule terms for embedding in a transaction row.
// The snapshot is frozen at record time so later rule edits cannot change
// an existing transaction.
func (r *Rule) Snapshot() ([]byte, error) {
	snap := map[string]any{
		"rule_id":          r.RuleID.String(),
		"transaction_type": string(r.TransactionType),
		"structure":        string(r.Structure),
		"valid_from":       r.ValidFrom.Format(estate.DateLayout),
	}
	if r.Percentage != nil {
		snap["percentage"] = r.Percentage.String()
	}
	if r.FixedAmount != nil {
		snap["fixed_amount"] = r.FixedAmount.String()
	}
	if r.MinValue != nil {
		snap["min_value"] = r.MinValue.String()
	}
	if r.MaxValue != nil {
		snap["max_value"] = r.MaxValue.String()
	}
	if r.ValidUntil != nil {
		snap["valid_until"] = r.ValidUntil.Format(estate.DateLayout)
	}
	return json.Marshal(snap)
}
