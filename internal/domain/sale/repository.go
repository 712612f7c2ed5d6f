package sale

import (
	"context"

	"github.com/google/uuid"

	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// Repository is the storage port for sales.
type Repository interface {
	// CreateCompleted locks the property row, verifies it is not already
	// SOLD, records the previous status on the sale, inserts the sale and
	// marks the property SOLD, all in one transaction. Returns
	// *estate.ConflictError when the property is already sold.
	CreateCompleted(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, saleID uuid.UUID) (*Sale, error)
	List(ctx context.Context, filter ListFilter) ([]*Sale, error)
	// CancelWithRevert persists the cancelled sale and, when the property
	// is still SOLD, reverts it to previousStatus in the same
	// transaction. Reports whether the revert happened.
	CancelWithRevert(ctx context.Context, s *Sale, previousStatus property.Status) (reverted bool, err error)
}

// ListFilter narrows List results.
type ListFilter struct {
	Status     *Status
	PropertyID *uuid.UUID
	AgentID    *uuid.UUID
	Limit      int
	Offset     int
}
