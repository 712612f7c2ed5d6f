package audit

import (
	"context"
	"time"
)

// Filter narrows audit trail queries.
type Filter struct {
	EntityType *EntityType
	EntityID   *string
	Action     *Action
	Actor      *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Repository defines persistence for the append-only audit trail.
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	List(ctx context.Context, filter Filter) ([]*AuditLog, error)
}
