package agent

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Agent represents a licensed real-estate agent.
type Agent struct {
	ID          int64     `json:"id"`
	AgentID     uuid.UUID `json:"agentId"`
	Name        string    `json:"name"`
	LicenseCode string    `json:"licenseCode"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks required registry fields.
func (a *Agent) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("agent name is required")
	}
	if strings.TrimSpace(a.LicenseCode) == "" {
		return errors.New("agent license code is required")
	}
	return nil
}
