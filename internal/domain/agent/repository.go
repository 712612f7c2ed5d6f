package agent

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines agent persistence.
type Repository interface {
	Create(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, agentID uuid.UUID) (*Agent, error)
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*Agent, error)
	Update(ctx context.Context, a *Agent) error
}
