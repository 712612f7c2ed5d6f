package commission

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Rule)
		wantErr bool
	}{
		{"valid percentage rule", func(r *Rule) {}, false},
		{"valid fixed rule", func(r *Rule) {
			r.Structure = StructureFixed
			r.Percentage = nil
			r.FixedAmount = decPtr("8000")
		}, false},
		{"unknown transaction type", func(r *Rule) { r.TransactionType = "RENTAL" }, true},
		{"percentage missing", func(r *Rule) { r.Percentage = nil }, true},
		{"percentage over 100", func(r *Rule) { r.Percentage = decPtr("101") }, true},
		{"percentage negative", func(r *Rule) { r.Percentage = decPtr("-1") }, true},
		{"fixed missing amount", func(r *Rule) {
			r.Structure = StructureFixed
			r.Percentage = nil
		}, true},
		{"fixed negative amount", func(r *Rule) {
			r.Structure = StructureFixed
			r.Percentage = nil
			r.FixedAmount = decPtr("-5")
		}, true},
		{"unknown structure", func(r *Rule) { r.Structure = "TIERED" }, true},
		{"negative min value", func(r *Rule) { r.MinValue = decPtr("-1") }, true},
		{"negative max value", func(r *Rule) { r.MaxValue = decPtr("-1") }, true},
		{"min above max", func(r *Rule) {
			r.MinValue = decPtr("500")
			r.MaxValue = decPtr("100")
		}, true},
		{"min equal to max", func(r *Rule) {
			r.MinValue = decPtr("100")
			r.MaxValue = decPtr("100")
		}, false},
		{"valid_until before valid_from", func(r *Rule) {
			r.ValidUntil = datePtr("2024-12-31")
		}, true},
		{"valid_until equal to valid_from", func(r *Rule) {
			r.ValidUntil = datePtr("2025-01-01")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Rule{
				RuleID:          uuid.New(),
				AgentID:         uuid.New(),
				TransactionType: TypeLease,
				Structure:       StructurePercentage,
				Percentage:      decPtr("3"),
				ValidFrom:       date("2025-01-01"),
				Active:          true,
			}
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshotCapturesTerms(t *testing.T) {
	r := &Rule{
		RuleID:          uuid.New(),
		TransactionType: TypeSale,
		Structure:       StructurePercentage,
		Percentage:      decPtr("4.5"),
		MinValue:        decPtr("1000"),
		ValidFrom:       date("2025-01-01"),
		ValidUntil:      datePtr("2025-12-31"),
	}

	raw, err := r.Snapshot()
	require.NoError(t, err)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, r.RuleID.String(), snap["rule_id"])
	assert.Equal(t, "SALE", snap["transaction_type"])
	assert.Equal(t, "PERCENTAGE", snap["structure"])
	assert.Equal(t, "4.5", snap["percentage"])
	assert.Equal(t, "1000", snap["min_value"])
	assert.Equal(t, "2025-01-01", snap["valid_from"])
	assert.Equal(t, "2025-12-31", snap["valid_until"])
	assert.NotContains(t, snap, "fixed_amount")
	assert.NotContains(t, snap, "max_value")
}
