// Package audit writes change-sets to the audit sinks and answers filtered
// queries over them.
package audit

import (
	"context"
	"fmt"
	"time"

	"ems/internal/ems/metrics"
	"ems/internal/ems/model"
	"ems/internal/ems/repository"

	"github.com/google/uuid"
)

// Recorder persists at most one audit entry per mutation.
type Recorder struct {
	Repo    repository.AuditRepository
	Metrics *metrics.Metrics

	Now   func() time.Time
	NewID func() string
}

func NewRecorder(repo repository.AuditRepository, m *metrics.Metrics) *Recorder {
	return &Recorder{
		Repo:    repo,
		Metrics: m,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

// Route returns the sink a mutation by actor on targetID belongs to.
// Only cross-person Manager/Admin edits and Employee self-edits are audited.
func Route(actor model.Actor, targetID string) (model.LogKind, bool) {
	self := actor.IsSelf(targetID)
	switch {
	case (actor.Role == model.RoleManager || actor.Role == model.RoleAdmin) && !self:
		return model.LogKindManager, true
	case actor.Role == model.RoleEmployee && self:
		return model.LogKindSelf, true
	}
	return "", false
}

// Record appends the entry for changes and returns it. Empty change-sets
// and unaudited actor/target combinations write nothing and return nil.
func (r *Recorder) Record(ctx context.Context, actor model.Actor, targetID string, changes model.Changes) (*model.AuditEntry, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	kind, ok := Route(actor, targetID)
	if !ok {
		return nil, nil
	}

	entry := &model.AuditEntry{
		ID:        r.NewID(),
		Kind:      kind,
		ActorID:   actor.ID,
		Changes:   changes,
		Timestamp: r.Now().UTC(),
	}
	if kind == model.LogKindManager {
		entry.TargetID = targetID
		entry.Action = model.ActionUpdatedProfile
	}

	if err := r.Repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append %s audit entry: %w", kind, err)
	}
	r.Metrics.IncAuditEntry(string(kind))
	return entry, nil
}
