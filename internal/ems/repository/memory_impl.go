package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ems/internal/ems/model"
)

// InMemoryEmployeeRepository is an EmployeeRepository for local runs and tests.
type InMemoryEmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]model.Employee
}

func NewInMemoryEmployeeRepository() *InMemoryEmployeeRepository {
	return &InMemoryEmployeeRepository{employees: make(map[string]model.Employee)}
}

func (r *InMemoryEmployeeRepository) EnsureIndexes(context.Context) error { return nil }

func (r *InMemoryEmployeeRepository) Create(_ context.Context, employee *model.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[employee.ID]; ok {
		return ErrDuplicate
	}
	for _, e := range r.employees {
		if e.Email == employee.Email {
			return ErrDuplicate
		}
	}
	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	r.employees[employee.ID] = *employee
	return nil
}

func (r *InMemoryEmployeeRepository) FindByID(_ context.Context, id string) (*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *InMemoryEmployeeRepository) FindByEmail(_ context.Context, email string) (*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryEmployeeRepository) FindByIDs(_ context.Context, ids []string) ([]*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Employee{}
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			out = append(out, &e)
		}
	}
	return out, nil
}

func (r *InMemoryEmployeeRepository) FindIDsByName(_ context.Context, substr string, roles []model.Role) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(substr)
	ids := []string{}
	for id, e := range r.employees {
		if len(roles) > 0 && !hasRole(roles, e.Role) {
			continue
		}
		if strings.Contains(strings.ToLower(e.FirstName), needle) || strings.Contains(strings.ToLower(e.LastName), needle) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func hasRole(roles []model.Role, role model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r *InMemoryEmployeeRepository) ListActive(context.Context) ([]*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Employee{}
	for _, e := range r.employees {
		if e.EmploymentStatus == model.StatusTerminated {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *InMemoryEmployeeRepository) Update(_ context.Context, employee *model.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.employees[employee.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != employee.Version {
		return ErrVersionConflict
	}
	for id, e := range r.employees {
		if id != employee.ID && e.Email == employee.Email {
			return ErrDuplicate
		}
	}

	employee.Version++
	employee.UpdatedAt = time.Now()
	r.employees[employee.ID] = *employee
	return nil
}

func (r *InMemoryEmployeeRepository) set(id string, apply func(*model.Employee)) (*model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	apply(&e)
	e.Version++
	e.UpdatedAt = time.Now()
	r.employees[id] = e
	return &e, nil
}

func (r *InMemoryEmployeeRepository) SetApproved(_ context.Context, id string, approved bool) (*model.Employee, error) {
	return r.set(id, func(e *model.Employee) { e.Approved = approved })
}

func (r *InMemoryEmployeeRepository) SetEmploymentStatus(_ context.Context, id string, status model.EmploymentStatus) (*model.Employee, error) {
	return r.set(id, func(e *model.Employee) { e.EmploymentStatus = status })
}

// InMemoryAuditRepository is an AuditRepository for local runs and tests.
type InMemoryAuditRepository struct {
	mu    sync.RWMutex
	sinks map[model.LogKind][]model.AuditEntry
}

func NewInMemoryAuditRepository() *InMemoryAuditRepository {
	return &InMemoryAuditRepository{sinks: map[model.LogKind][]model.AuditEntry{
		model.LogKindManager: nil,
		model.LogKindSelf:    nil,
	}}
}

func (r *InMemoryAuditRepository) EnsureIndexes(context.Context) error { return nil }

func (r *InMemoryAuditRepository) Append(_ context.Context, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sinks[entry.Kind]; !ok {
		return fmt.Errorf("unknown audit sink %q", entry.Kind)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	stored := *entry
	stored.Changes = copyChanges(entry.Changes)
	r.sinks[entry.Kind] = append(r.sinks[entry.Kind], stored)
	return nil
}

func (r *InMemoryAuditRepository) Find(_ context.Context, kind model.LogKind, f model.AuditFilter) ([]*model.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.sinks[kind]
	if !ok {
		return nil, fmt.Errorf("unknown audit sink %q", kind)
	}

	var actors map[string]bool
	if f.ActorIDs != nil {
		actors = make(map[string]bool, len(f.ActorIDs))
		for _, id := range f.ActorIDs {
			actors[id] = true
		}
	}
	action := strings.ToLower(f.Action)

	out := []*model.AuditEntry{}
	for _, e := range entries {
		if actors != nil && !actors[e.ActorID] {
			continue
		}
		if action != "" && !strings.Contains(strings.ToLower(e.Action), action) {
			continue
		}
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Timestamp.After(*f.To) {
			continue
		}
		e := e
		e.Changes = copyChanges(e.Changes)
		out = append(out, &e)
	}

	// Ties keep insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Count returns the number of entries in the sink of kind.
func (r *InMemoryAuditRepository) Count(kind model.LogKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks[kind])
}

func copyChanges(c model.Changes) model.Changes {
	if c == nil {
		return nil
	}
	out := make(model.Changes, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
