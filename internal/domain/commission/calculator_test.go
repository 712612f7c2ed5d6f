package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCalculatePercentage(t *testing.T) {
	r := &Rule{Structure: StructurePercentage, Percentage: decPtr("3")}

	got, err := Calculate(r, dec("500000"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("15000")), "got %s", got)
}

func TestCalculateFixed(t *testing.T) {
	r := &Rule{Structure: StructureFixed, FixedAmount: decPtr("8000")}

	got, err := Calculate(r, dec("1000000"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("8000")), "got %s", got)
}

func TestCalculateRejectsAmountBelowMinimum(t *testing.T) {
	r := &Rule{Structure: StructurePercentage, Percentage: decPtr("5"), MinValue: decPtr("200")}

	_, err := Calculate(r, dec("100"))
	var verr *estate.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "transaction_amount", verr.Field)
}

func TestCalculateRejectsAmountAboveMaximum(t *testing.T) {
	r := &Rule{Structure: StructureFixed, FixedAmount: decPtr("500"), MaxValue: decPtr("10000")}

	_, err := Calculate(r, dec("10000.01"))
	var verr *estate.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCalculateAcceptsAmountAtBounds(t *testing.T) {
	r := &Rule{
		Structure:  StructurePercentage,
		Percentage: decPtr("10"),
		MinValue:   decPtr("200"),
		MaxValue:   decPtr("10000"),
	}

	got, err := Calculate(r, dec("200"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("20")))

	got, err = Calculate(r, dec("10000"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1000")))
}

func TestCalculateRejectsNonPositiveAmount(t *testing.T) {
	r := &Rule{Structure: StructureFixed, FixedAmount: decPtr("100")}

	for _, amount := range []string{"0", "-1"} {
		_, err := Calculate(r, dec(amount))
		var verr *estate.ValidationError
		require.ErrorAs(t, err, &verr, "amount %s", amount)
	}
}

func TestCalculateFractionalPercentage(t *testing.T) {
	r := &Rule{Structure: StructurePercentage, Percentage: decPtr("2.5")}

	got, err := Calculate(r, dec("123456.78"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("3086.4195")), "got %s", got)
}

func TestCalculateUnknownStructure(t *testing.T) {
	r := &Rule{Structure: Structure("TIERED")}

	_, err := Calculate(r, dec("1000"))
	var cerr *estate.ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestCalculateMisconfiguredRule(t *testing.T) {
	_, err := Calculate(&Rule{Structure: StructurePercentage}, dec("1000"))
	var cerr *estate.ConfigurationError
	require.ErrorAs(t, err, &cerr)

	_, err = Calculate(&Rule{Structure: StructureFixed}, dec("1000"))
	require.ErrorAs(t, err, &cerr)
}
