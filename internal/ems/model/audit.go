package model

import "time"

// FieldChange captures one attribute's value before and after an approved mutation.
type FieldChange struct {
	Field Field `json:"field" bson:"field"`
	From  any   `json:"from" bson:"from"`
	To    any   `json:"to" bson:"to"`
}

// Changes is the change-set of one mutation, keyed by field.
type Changes map[Field]FieldChange

// Has reports whether f changed.
func (c Changes) Has(f Field) bool {
	_, ok := c[f]
	return ok
}

// Fields returns the changed fields in canonical order.
func (c Changes) Fields() []Field {
	out := make([]Field, 0, len(c))
	for f := range c {
		out = append(out, f)
	}
	return SortFields(out)
}

// AuditEntry is an append-only record of one audited mutation.
// TargetID and Action are empty for self-log entries.
type AuditEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Kind      LogKind   `json:"kind" bson:"kind"`
	ActorID   string    `json:"actorId" bson:"actorId"`
	TargetID  string    `json:"targetId,omitempty" bson:"targetId,omitempty"`
	Action    string    `json:"action,omitempty" bson:"action,omitempty"`
	Changes   Changes   `json:"changes" bson:"changes"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// AuditFilter is the storage-level filter of a log query.
// A non-nil empty ActorIDs matches nothing.
type AuditFilter struct {
	ActorIDs []string
	Action   string
	From     *time.Time
	To       *time.Time
}

// LogView is an audit entry with identities resolved to display form.
type LogView struct {
	ID        string    `json:"id"`
	Kind      LogKind   `json:"kind"`
	Actor     *Party    `json:"actor"`
	Target    *Party    `json:"target,omitempty"`
	Action    string    `json:"action,omitempty"`
	Changes   Changes   `json:"changes"`
	Timestamp time.Time `json:"timestamp"`
}

// LogResult is the response of both log queries.
type LogResult struct {
	Count int        `json:"count"`
	Logs  []*LogView `json:"logs"`
}
