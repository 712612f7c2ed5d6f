package lease

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage port for leases and their renewal history.
type Repository interface {
	// CreateExclusive inserts the lease after locking its property row
	// and checking for overlapping draft/active leases inside the same
	// transaction. Returns *estate.ConflictError on an overlap and
	// *estate.NotFoundError when the property does not exist.
	CreateExclusive(ctx context.Context, l *Lease) error
	GetByID(ctx context.Context, leaseID uuid.UUID) (*Lease, error)
	List(ctx context.Context, filter ListFilter) ([]*Lease, error)
	Update(ctx context.Context, l *Lease) error
	// Renew persists the mutated lease and appends its renewal record
	// in one transaction.
	Renew(ctx context.Context, l *Lease, rec *RenewalRecord) error
	ListRenewals(ctx context.Context, leaseID uuid.UUID) ([]*RenewalRecord, error)
	// ListDueForExpiry returns active leases whose end date is strictly
	// before today, oldest first, up to limit rows.
	ListDueForExpiry(ctx context.Context, today time.Time, limit int) ([]*Lease, error)
	SetArchived(ctx context.Context, leaseID uuid.UUID, archived bool) error
}

// ListFilter narrows List results.
type ListFilter struct {
	Status     *Status
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Limit      int
	Offset     int
}
