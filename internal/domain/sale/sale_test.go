package sale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

func TestValidate(t *testing.T) {
	s := &Sale{BuyerName: "Acme Holdings", SalePrice: decimal.NewFromInt(500000)}
	assert.NoError(t, s.Validate())

	s = &Sale{SalePrice: decimal.NewFromInt(500000)}
	var verr *estate.ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "buyer_name", verr.Field)

	s = &Sale{BuyerName: "Acme Holdings", SalePrice: decimal.Zero}
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "sale_price", verr.Field)

	s = &Sale{BuyerName: "Acme Holdings", SalePrice: decimal.NewFromInt(-1)}
	require.ErrorAs(t, s.Validate(), &verr)
}

func TestCancel(t *testing.T) {
	at := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	s := &Sale{Status: StatusCompleted}

	require.NoError(t, s.Cancel(at, "financing fell through"))
	assert.Equal(t, StatusCancelled, s.Status)
	require.NotNil(t, s.CancelledAt)
	assert.Equal(t, at, *s.CancelledAt)
	require.NotNil(t, s.CancelReason)
	assert.Equal(t, "financing fell through", *s.CancelReason)
}

func TestCancelIsNotRepeatable(t *testing.T) {
	s := &Sale{Status: StatusCancelled}
	var terr *estate.TransitionError
	require.ErrorAs(t, s.Cancel(time.Now(), "again"), &terr)
	assert.Equal(t, string(StatusCancelled), terr.From)
}
