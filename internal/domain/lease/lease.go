package lease

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// Status represents lease lifecycle status.
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusActive     Status = "ACTIVE"
	StatusTerminated Status = "TERMINATED"
	StatusExpired    Status = "EXPIRED"
)

// ValidStatus reports whether s is a known lease status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusActive, StatusTerminated, StatusExpired:
		return true
	}
	return false
}

// transitions is the user-facing gate. ACTIVE->EXPIRED is deliberately
// absent: expiry is reachable only through Expire (the scheduler path).
var transitions = map[Status][]Status{
	StatusDraft:      {StatusActive},
	StatusActive:     {StatusTerminated},
	StatusTerminated: {},
	StatusExpired:    {},
}

// AllowedTargets returns the targets reachable from a status via the
// user-facing gate.
func AllowedTargets(from Status) []Status {
	return transitions[from]
}

// Lease represents a property+occupant agreement.
type Lease struct {
	ID                 int64            `json:"id"`
	LeaseID            uuid.UUID        `json:"leaseId"`
	PropertyID         uuid.UUID        `json:"propertyId"`
	TenantID           uuid.UUID        `json:"tenantId"`
	StartDate          time.Time        `json:"startDate"`
	EndDate            time.Time        `json:"endDate"`
	RentAmount         decimal.Decimal  `json:"rentAmount"`
	Status             Status           `json:"status"`
	Active             bool             `json:"active"`
	TerminationDate    *time.Time       `json:"terminationDate,omitempty"`
	TerminationReason  *string          `json:"terminationReason,omitempty"`
	TerminationPenalty *decimal.Decimal `json:"terminationPenalty,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	CreatedBy          *string          `json:"createdBy,omitempty"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	UpdatedBy          *string          `json:"updatedBy,omitempty"`
}

// CanTransitionTo validates a user-initiated status transition.
func (l *Lease) CanTransitionTo(target Status) bool {
	for _, s := range transitions[l.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// Transition applies a user-initiated status transition through the gate.
func (l *Lease) Transition(target Status) error {
	if !l.CanTransitionTo(target) {
		return l.transitionError(target)
	}
	l.Status = target
	return nil
}

// Terminate moves an active lease to TERMINATED, recording the termination
// fields. Terminal: nothing transitions out of TERMINATED.
func (l *Lease) Terminate(date time.Time, reason string, penalty *decimal.Decimal) error {
	if l.Status != StatusActive {
		return l.transitionError(StatusTerminated)
	}
	l.Status = StatusTerminated
	l.TerminationDate = &date
	l.TerminationReason = &reason
	l.TerminationPenalty = penalty
	return nil
}

// Expire moves an active, time-expired lease to EXPIRED. This is the
// privileged scheduler path; the user gate never admits EXPIRED.
func (l *Lease) Expire(today time.Time) error {
	if l.Status != StatusActive {
		return l.transitionError(StatusExpired)
	}
	if !l.EndDate.Before(today) {
		return &estate.ValidationError{Field: "end_date", Reason: "lease has not yet reached its end date"}
	}
	l.Status = StatusExpired
	return nil
}

// IsClosed reports whether the lease reached a terminal status.
func (l *Lease) IsClosed() bool {
	return l.Status == StatusTerminated || l.Status == StatusExpired
}

// Overlaps reports whether [start,end] intersects the lease window.
func (l *Lease) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !l.EndDate.Before(start)
}

func (l *Lease) transitionError(target Status) *estate.TransitionError {
	allowed := make([]string, 0, len(transitions[l.Status]))
	for _, s := range transitions[l.Status] {
		allowed = append(allowed, string(s))
	}
	return &estate.TransitionError{
		Entity:  "lease",
		From:    string(l.Status),
		To:      string(target),
		Allowed: allowed,
	}
}

// RenewalRecord is an immutable audit row appended by a successful renewal.
type RenewalRecord struct {
	ID              int64           `json:"id"`
	LeaseID         uuid.UUID       `json:"leaseId"`
	PreviousEndDate time.Time       `json:"previousEndDate"`
	PreviousRent    decimal.Decimal `json:"previousRent"`
	NewEndDate      time.Time       `json:"newEndDate"`
	NewRent         decimal.Decimal `json:"newRent"`
	RenewedBy       string          `json:"renewedBy"`
	Reason          *string         `json:"reason,omitempty"`
	RenewedAt       time.Time       `json:"renewedAt"`
}
