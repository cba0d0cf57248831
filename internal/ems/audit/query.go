package audit

import (
	"context"
	"fmt"

	"ems/internal/ems/metrics"
	"ems/internal/ems/model"
	"ems/internal/ems/repository"
)

// QueryEngine answers filtered historical queries over one audit sink.
type QueryEngine struct {
	Employees repository.EmployeeRepository
	Audit     repository.AuditRepository
	Metrics   *metrics.Metrics
}

func NewQueryEngine(employees repository.EmployeeRepository, audit repository.AuditRepository, m *metrics.Metrics) *QueryEngine {
	return &QueryEngine{Employees: employees, Audit: audit, Metrics: m}
}

// Query resolves the name filter to actor ids, fetches matching entries most
// recent first, resolves identities for display, and finally keeps only
// entries that changed q.Field. Name resolution and retrieval are separate
// reads.
func (q *QueryEngine) Query(ctx context.Context, kind model.LogKind, lq model.LogQuery) (*model.LogResult, error) {
	filter := model.AuditFilter{From: lq.From, To: lq.To}

	if lq.Name != "" {
		var roles []model.Role
		if kind == model.LogKindManager {
			roles = []model.Role{model.RoleManager}
		}
		ids, err := q.Employees.FindIDsByName(ctx, lq.Name, roles)
		if err != nil {
			return nil, fmt.Errorf("resolve actor names: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		filter.ActorIDs = ids
	}
	if kind == model.LogKindManager {
		filter.Action = lq.Action
	}

	entries, err := q.Audit.Find(ctx, kind, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s log entries: %w", kind, err)
	}

	if lq.Field != "" {
		kept := entries[:0]
		for _, e := range entries {
			if e.Changes.Has(lq.Field) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	parties, err := q.resolveParties(ctx, entries)
	if err != nil {
		return nil, err
	}

	logs := make([]*model.LogView, 0, len(entries))
	for _, e := range entries {
		view := &model.LogView{
			ID:        e.ID,
			Kind:      e.Kind,
			Actor:     parties[e.ActorID],
			Action:    e.Action,
			Changes:   e.Changes,
			Timestamp: e.Timestamp,
		}
		if e.TargetID != "" {
			view.Target = parties[e.TargetID]
		}
		logs = append(logs, view)
	}

	q.Metrics.IncLogQuery(string(kind))
	return &model.LogResult{Count: len(logs), Logs: logs}, nil
}

func (q *QueryEngine) resolveParties(ctx context.Context, entries []*model.AuditEntry) (map[string]*model.Party, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, e := range entries {
		for _, id := range []string{e.ActorID, e.TargetID} {
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	parties := make(map[string]*model.Party, len(ids))
	if len(ids) == 0 {
		return parties, nil
	}
	employees, err := q.Employees.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve log identities: %w", err)
	}
	for _, e := range employees {
		parties[e.ID] = e.Party()
	}
	return parties, nil
}
