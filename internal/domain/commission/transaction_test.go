package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

func TestMarkPaid(t *testing.T) {
	paidOn := date("2025-06-15")
	tr := &Transaction{PaymentStatus: PaymentPending}

	require.NoError(t, tr.MarkPaid(paidOn))
	assert.Equal(t, PaymentPaid, tr.PaymentStatus)
	require.NotNil(t, tr.PaymentDate)
	assert.Equal(t, paidOn, *tr.PaymentDate)
}

func TestMarkPaidRejectsNonPending(t *testing.T) {
	for _, from := range []PaymentStatus{PaymentPaid, PaymentCancelled} {
		tr := &Transaction{PaymentStatus: from}
		var terr *estate.TransitionError
		require.ErrorAs(t, tr.MarkPaid(date("2025-06-15")), &terr, "from %s", from)
		assert.Equal(t, from, tr.PaymentStatus)
	}
}

func TestCancelPayment(t *testing.T) {
	tr := &Transaction{PaymentStatus: PaymentPending}
	require.NoError(t, tr.CancelPayment())
	assert.Equal(t, PaymentCancelled, tr.PaymentStatus)
}

func TestCancelPaymentRejectsPaid(t *testing.T) {
	tr := &Transaction{PaymentStatus: PaymentPaid}
	var terr *estate.TransitionError
	require.ErrorAs(t, tr.CancelPayment(), &terr)
	assert.Equal(t, PaymentPaid, tr.PaymentStatus)
}
