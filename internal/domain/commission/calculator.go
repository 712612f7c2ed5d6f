package commission

import (
	"github.com/shopspring/decimal"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

var oneHundred = decimal.NewFromInt(100)

// Calculate computes the commission a rule yields for a deal amount. The
// rule's min/max values bound the eligible deal size: an amount outside
// them means the rule does not price deals of that size, which is a
// validation failure, not a zero commission.
func Calculate(r *Rule, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, &estate.ValidationError{Field: "transaction_amount", Reason: "must be positive"}
	}
	if r.MinValue != nil && amount.LessThan(*r.MinValue) {
		return decimal.Zero, &estate.ValidationError{Field: "transaction_amount", Reason: "below rule minimum " + r.MinValue.String()}
	}
	if r.MaxValue != nil && amount.GreaterThan(*r.MaxValue) {
		return decimal.Zero, &estate.ValidationError{Field: "transaction_amount", Reason: "above rule maximum " + r.MaxValue.String()}
	}

	switch r.Structure {
	case StructurePercentage:
		if r.Percentage == nil {
			return decimal.Zero, &estate.ConfigurationError{Detail: "percentage rule " + r.RuleID.String() + " has no percentage"}
		}
		return amount.Mul(*r.Percentage).Div(oneHundred), nil
	case StructureFixed:
		if r.FixedAmount == nil {
			return decimal.Zero, &estate.ConfigurationError{Detail: "fixed rule " + r.RuleID.String() + " has no fixed amount"}
		}
		return *r.FixedAmount, nil
	default:
		return decimal.Zero, &estate.ConfigurationError{Detail: "rule " + r.RuleID.String() + " has unknown structure " + string(r.Structure)}
	}
}
