package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	appLease "github.com/estate-hub/estate-hub/internal/application/lease"
)

// ExpirySweeper periodically expires active leases whose end date has
// passed. The sweep is idempotent: already-expired leases never match the
// due query, so re-running it is a no-op.
type ExpirySweeper struct {
	leaseSvc  *appLease.Service
	interval  time.Duration
	batchSize int
	logger    zerolog.Logger
}

// NewExpirySweeper creates an expiry sweeper.
func NewExpirySweeper(leaseSvc *appLease.Service, interval time.Duration, batchSize int, logger zerolog.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		leaseSvc:  leaseSvc,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger.With().Str("service", "expiry-sweeper").Logger(),
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	s.sweep(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	for {
		expired, err := s.leaseSvc.ExpireDue(ctx, s.batchSize)
		if err != nil {
			s.logger.Error().Err(err).Msg("expiry sweep failed")
			return
		}
		// Drain in batches until a partial batch signals we're done.
		if expired < s.batchSize {
			return
		}
	}
}
