package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// Status represents sale lifecycle status. Sales are born COMPLETED and
// can only move to CANCELLED.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Sale records a completed property sale. PreviousPropertyStatus captures
// the property status at sale time so a cancellation can revert it.
type Sale struct {
	ID                     int64           `json:"id"`
	SaleID                 uuid.UUID       `json:"saleId"`
	PropertyID             uuid.UUID       `json:"propertyId"`
	BuyerName              string          `json:"buyerName"`
	AgentID                uuid.UUID       `json:"agentId"`
	SaleDate               time.Time       `json:"saleDate"`
	SalePrice              decimal.Decimal `json:"salePrice"`
	Status                 Status          `json:"status"`
	PreviousPropertyStatus property.Status `json:"previousPropertyStatus"`
	CancelledAt            *time.Time      `json:"cancelledAt,omitempty"`
	CancelReason           *string         `json:"cancelReason,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
	CreatedBy              *string         `json:"createdBy,omitempty"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// Validate checks the sale fields before persistence.
func (s *Sale) Validate() error {
	if s.BuyerName == "" {
		return &estate.ValidationError{Field: "buyer_name", Reason: "must not be empty"}
	}
	if !s.SalePrice.IsPositive() {
		return &estate.ValidationError{Field: "sale_price", Reason: "must be positive"}
	}
	return nil
}

// Cancel moves a completed sale to CANCELLED.
func (s *Sale) Cancel(at time.Time, reason string) error {
	if s.Status != StatusCompleted {
		return &estate.TransitionError{
			Entity:  "sale",
			From:    string(s.Status),
			To:      string(StatusCancelled),
			Allowed: nil,
		}
	}
	s.Status = StatusCancelled
	s.CancelledAt = &at
	s.CancelReason = &reason
	return nil
}
