package estate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ValidationError reports malformed input. Recoverable by the caller
// correcting the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// TransitionError reports a state machine violation, naming the attempted
// source/target and the targets the machine allows from the source.
type TransitionError struct {
	Entity  string
	From    string
	To      string
	Allowed []string
}

func (e *TransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s transition %s -> %s: %s is terminal", e.Entity, e.From, e.To, e.From)
	}
	return fmt.Sprintf("invalid %s transition %s -> %s (allowed: %s)", e.Entity, e.From, e.To, strings.Join(e.Allowed, ", "))
}

// ConflictError reports a uniqueness/overlap violation, e.g. a second
// draft/active lease on a property with an intersecting date window.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Detail)
}

// NoApplicableRuleError reports that commission resolution found no rule in
// force for the transaction's own date. An operational gap, not bad input:
// operators fix it by creating the missing rule.
type NoApplicableRuleError struct {
	AgentID         uuid.UUID
	TransactionType string
	Date            time.Time
}

func (e *NoApplicableRuleError) Error() string {
	return fmt.Sprintf("no commission rule in force for agent %s, type %s, date %s",
		e.AgentID, e.TransactionType, e.Date.Format(DateLayout))
}

// ConfigurationError reports corrupt configuration data, e.g. a commission
// rule with an unrecognized structure type. Should never occur with valid
// rule creation.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}

// NotFoundError reports an unknown identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return DateOf(time.Now().UTC())
}

// DateOf truncates a timestamp to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
