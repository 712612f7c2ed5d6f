package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines property persistence.
type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, propertyID uuid.UUID) (*Property, error)
	List(ctx context.Context, status *Status, limit, offset int) ([]*Property, error)
	Update(ctx context.Context, p *Property) error
	UpdateStatus(ctx context.Context, propertyID uuid.UUID, status Status) error
}
