package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntityType names the kinds of records tracked by the audit trail.
type EntityType string

const (
	EntityLease                 EntityType = "LEASE"
	EntitySale                  EntityType = "SALE"
	EntityProperty              EntityType = "PROPERTY"
	EntityAgent                 EntityType = "AGENT"
	EntityTenant                EntityType = "TENANT"
	EntityCommissionRule        EntityType = "COMMISSION_RULE"
	EntityCommissionTransaction EntityType = "COMMISSION_TRANSACTION"
	EntityUser                  EntityType = "USER"
)

// Action names what happened to the entity.
type Action string

const (
	ActionCreate     Action = "CREATE"
	ActionUpdate     Action = "UPDATE"
	ActionTransition Action = "TRANSITION"
	ActionRenew      Action = "RENEW"
	ActionTerminate  Action = "TERMINATE"
	ActionExpire     Action = "EXPIRE"
	ActionCancel     Action = "CANCEL"
	ActionDeactivate Action = "DEACTIVATE"
	ActionArchive    Action = "ARCHIVE"
	ActionReactivate Action = "REACTIVATE"
	ActionPay        Action = "PAY"
	ActionLogin      Action = "LOGIN"
	ActionLogout     Action = "LOGOUT"
)

// AuditLog is one signed, append-only trail entry.
type AuditLog struct {
	ID            int64           `json:"id"`
	AuditID       uuid.UUID       `json:"auditId"`
	EntityType    EntityType      `json:"entityType"`
	EntityID      string          `json:"entityId"`
	Action        Action          `json:"action"`
	Actor         string          `json:"actor"`
	ActorRole     string          `json:"actorRole,omitempty"`
	ActorIP       *string         `json:"actorIp,omitempty"`
	OldValues     json.RawMessage `json:"oldValues,omitempty"`
	NewValues     json.RawMessage `json:"newValues,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	RequestMethod string          `json:"requestMethod,omitempty"`
	RequestPath   string          `json:"requestPath,omitempty"`
	Signature     []byte          `json:"-"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AuditEntry is what callers hand to the audit service; the service fills
// in identity, timestamps and the signature.
type AuditEntry struct {
	EntityType EntityType
	EntityID   string
	Action     Action
	Actor      string
	ActorRole  string
	ActorIP    *string
	OldValues  any
	NewValues  any
	Reason     string
	Method     string
	Path       string
}

// NewAuditLog builds a log row from an entry, serializing the before/after
// values.
func NewAuditLog(entry *AuditEntry) (*AuditLog, error) {
	log := &AuditLog{
		AuditID:       uuid.New(),
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		Action:        entry.Action,
		Actor:         entry.Actor,
		ActorRole:     entry.ActorRole,
		ActorIP:       entry.ActorIP,
		Reason:        entry.Reason,
		RequestMethod: entry.Method,
		RequestPath:   entry.Path,
		CreatedAt:     time.Now().UTC(),
	}
	if entry.OldValues != nil {
		data, err := json.Marshal(entry.OldValues)
		if err != nil {
			return nil, err
		}
		log.OldValues = data
	}
	if entry.NewValues != nil {
		data, err := json.Marshal(entry.NewValues)
		if err != nil {
			return nil, err
		}
		log.NewValues = data
	}
	return log, nil
}
