package tenant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an occupant referenced by leases.
type Tenant struct {
	ID        int64     `json:"id"`
	TenantID  uuid.UUID `json:"tenantId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks required registry fields.
func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tenant name is required")
	}
	return nil
}
