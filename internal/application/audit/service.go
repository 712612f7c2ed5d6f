package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estate-hub/estate-hub/internal/domain/audit"
)

// Service handles the audit trail.
type Service struct {
	repo    audit.Repository
	logger  zerolog.Logger
	signKey []byte
}

// NewService creates an audit service.
func NewService(repo audit.Repository, logger zerolog.Logger, signKey []byte) *Service {
	return &Service{
		repo:    repo,
		signKey: signKey,
		logger:  logger.With().Str("service", "audit").Logger(),
	}
}

// Log creates an audit log entry asynchronously. A failed write is logged
// but never fails the operation being audited.
func (s *Service) Log(ctx context.Context, entry *audit.AuditEntry) {
	go func() {
		if err := s.LogSync(context.Background(), entry); err != nil {
			s.logger.Error().Err(err).
				Str("entityType", string(entry.EntityType)).
				Str("entityId", entry.EntityID).
				Str("action", string(entry.Action)).
				Msg("failed to create audit log")
		}
	}()
}

// LogSync creates an audit log entry synchronously.
func (s *Service) LogSync(ctx context.Context, entry *audit.AuditEntry) error {
	auditLog, err := audit.NewAuditLog(entry)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	if len(s.signKey) > 0 {
		sig, err := audit.SignAuditLog(auditLog, s.signKey)
		if err != nil {
			return fmt.Errorf("failed to sign audit log: %w", err)
		}
		auditLog.Signature = sig
	}

	if err := s.repo.Create(ctx, auditLog); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}

	s.logger.Debug().
		Str("auditId", auditLog.AuditID.String()).
		Str("entityType", string(auditLog.EntityType)).
		Str("entityId", auditLog.EntityID).
		Str("action", string(auditLog.Action)).
		Str("actor", auditLog.Actor).
		Msg("audit log created")
	return nil
}

// List queries the audit trail.
func (s *Service) List(ctx context.Context, filter audit.Filter) ([]*audit.AuditLog, error) {
	return s.repo.List(ctx, filter)
}

// Verify re-checks a log entry's signature.
func (s *Service) Verify(log *audit.AuditLog) (bool, error) {
	return audit.VerifyAuditLogSignature(log, s.signKey)
}
