package policy

import (
	"fmt"

	"ems/internal/ems/model"
)

// Resolver decides whether an actor may write a proposed field set on a target record.
type Resolver struct {
	table *CapabilityTable
}

// NewResolver creates a Resolver over the embedded capability table
func NewResolver() (*Resolver, error) {
	table, err := NewLoader().LoadCapabilities()
	if err != nil {
		return nil, fmt.Errorf("failed to load capabilities: %w", err)
	}
	return NewResolverWithTable(table), nil
}

func NewResolverWithTable(table *CapabilityTable) *Resolver {
	return &Resolver{table: table}
}

// Resolve checks, in order: employee acting on another record, admin-only
// fields, manager self-restriction, employee allowlist. The first violated
// rule decides; rules are never merged.
func (r *Resolver) Resolve(actor model.Actor, targetID string, proposed []model.Field) Decision {
	self := actor.IsSelf(targetID)
	fields := model.SortFields(append([]model.Field(nil), proposed...))

	if !isKnownRole(actor.Role) {
		return Decision{Outcome: OutcomeForbidden}
	}

	// Refused before any field is inspected.
	if actor.Role == model.RoleEmployee && !self {
		return Decision{Outcome: OutcomeForbidden, Rule: RuleEmployeeOther}
	}

	if actor.Role != model.RoleAdmin {
		if v := intersect(fields, r.table.AdminOnly); len(v) > 0 {
			return reject(RuleAdminOnly, v, r.table.AdminOnly)
		}
	}

	if actor.Role == model.RoleManager && self {
		if v := intersect(fields, r.table.ManagerSelfRestricted); len(v) > 0 {
			return reject(RuleManagerSelf, v, r.table.ManagerSelfRestricted)
		}
	}

	if actor.Role == model.RoleEmployee {
		if v := outside(fields, r.table.EmployeeAllowed); len(v) > 0 {
			return reject(RuleEmployeeScope, v, r.table.EmployeeAllowed)
		}
	}

	return Decision{Outcome: OutcomeAllowed, Fields: fields}
}

func reject(rule Rule, violations []model.Field, permitted model.FieldSet) Decision {
	return Decision{
		Outcome:    OutcomeRejected,
		Rule:       rule,
		Violations: violations,
		Permitted:  permitted.Sorted(),
	}
}

func intersect(fields []model.Field, set model.FieldSet) []model.Field {
	var out []model.Field
	for _, f := range fields {
		if set.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func outside(fields []model.Field, set model.FieldSet) []model.Field {
	var out []model.Field
	for _, f := range fields {
		if !set.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func isKnownRole(role model.Role) bool {
	switch role {
	case model.RoleAdmin, model.RoleManager, model.RoleEmployee:
		return true
	}
	return false
}
