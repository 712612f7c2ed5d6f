package property

import (
	"time"

	"github.com/google/uuid"
)

// Status represents property availability status.
type Status string

const (
	StatusAvailable         Status = "AVAILABLE"
	StatusOccupied          Status = "OCCUPIED"
	StatusRented            Status = "RENTED"
	StatusReserved          Status = "RESERVED"
	StatusSold              Status = "SOLD"
	StatusUnderConstruction Status = "UNDER_CONSTRUCTION"
	StatusMaintenance       Status = "MAINTENANCE"
)

// ValidStatus reports whether s is a known property status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusRented, StatusReserved,
		StatusSold, StatusUnderConstruction, StatusMaintenance:
		return true
	}
	return false
}

// Property represents a listed property.
type Property struct {
	ID            int64      `json:"id"`
	PropertyID    uuid.UUID  `json:"propertyId"`
	ReferenceCode string     `json:"referenceCode"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	AgentID       *uuid.UUID `json:"agentId,omitempty"`
	Status        Status     `json:"status"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsSold reports whether the property is currently marked sold.
func (p *Property) IsSold() bool {
	return p.Status == StatusSold
}
