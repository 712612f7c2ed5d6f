package lease

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTransitionGate(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusActive, true},
		{StatusDraft, StatusTerminated, false},
		{StatusDraft, StatusExpired, false},
		{StatusActive, StatusTerminated, true},
		{StatusActive, StatusExpired, false},
		{StatusActive, StatusDraft, false},
		{StatusTerminated, StatusActive, false},
		{StatusTerminated, StatusDraft, false},
		{StatusExpired, StatusActive, false},
		{StatusExpired, StatusTerminated, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			l := &Lease{Status: tt.from}
			err := l.Transition(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, l.Status)
			} else {
				var terr *estate.TransitionError
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, string(tt.from), terr.From)
				assert.Equal(t, tt.from, l.Status, "status must not change on rejected transition")
			}
		})
	}
}

func TestTerminateRecordsFields(t *testing.T) {
	penalty := decimal.NewFromInt(500)
	l := &Lease{Status: StatusActive}

	err := l.Terminate(date("2025-04-01"), "tenant breach", &penalty)
	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, l.Status)
	require.NotNil(t, l.TerminationDate)
	assert.Equal(t, date("2025-04-01"), *l.TerminationDate)
	require.NotNil(t, l.TerminationReason)
	assert.Equal(t, "tenant breach", *l.TerminationReason)
	require.NotNil(t, l.TerminationPenalty)
	assert.True(t, l.TerminationPenalty.Equal(penalty))
}

func TestTerminateRequiresActive(t *testing.T) {
	for _, from := range []Status{StatusDraft, StatusTerminated, StatusExpired} {
		l := &Lease{Status: from}
		err := l.Terminate(date("2025-04-01"), "reason", nil)
		var terr *estate.TransitionError
		require.ErrorAs(t, err, &terr, "from %s", from)
	}
}

func TestExpireRequiresPastEndDate(t *testing.T) {
	today := date("2025-07-01")

	l := &Lease{Status: StatusActive, EndDate: date("2025-06-30")}
	require.NoError(t, l.Expire(today))
	assert.Equal(t, StatusExpired, l.Status)

	// End date today or later is not yet expired.
	l = &Lease{Status: StatusActive, EndDate: date("2025-07-01")}
	var verr *estate.ValidationError
	require.ErrorAs(t, l.Expire(today), &verr)
	assert.Equal(t, StatusActive, l.Status)
}

func TestExpireRequiresActive(t *testing.T) {
	for _, from := range []Status{StatusDraft, StatusTerminated, StatusExpired} {
		l := &Lease{Status: from, EndDate: date("2020-01-01")}
		var terr *estate.TransitionError
		require.ErrorAs(t, l.Expire(date("2025-07-01")), &terr, "from %s", from)
	}
}

func TestIsClosed(t *testing.T) {
	assert.False(t, (&Lease{Status: StatusDraft}).IsClosed())
	assert.False(t, (&Lease{Status: StatusActive}).IsClosed())
	assert.True(t, (&Lease{Status: StatusTerminated}).IsClosed())
	assert.True(t, (&Lease{Status: StatusExpired}).IsClosed())
}

func TestOverlaps(t *testing.T) {
	l := &Lease{StartDate: date("2025-03-01"), EndDate: date("2025-08-31")}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"fully inside", "2025-04-01", "2025-05-01", true},
		{"covers lease", "2025-01-01", "2025-12-31", true},
		{"touches start", "2025-01-01", "2025-03-01", true},
		{"touches end", "2025-08-31", "2025-10-01", true},
		{"before", "2025-01-01", "2025-02-28", false},
		{"after", "2025-09-01", "2025-10-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Overlaps(date(tt.start), date(tt.end)))
		})
	}
}
