package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines tenant persistence.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, tenantID uuid.UUID) (*Tenant, error)
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
}
