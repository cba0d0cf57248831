package policy

import (
	"strings"

	"ems/internal/ems/model"
)

// CapabilityTable is the static role to field capability mapping.
type CapabilityTable struct {
	// Writable only by Admin.
	AdminOnly model.FieldSet
	// Forbidden to a Manager editing their own record.
	ManagerSelfRestricted model.FieldSet
	// The only fields an Employee may write, on their own record.
	EmployeeAllowed model.FieldSet
}

// Writable returns the fields role may write on a record, self or not.
func (t *CapabilityTable) Writable(role model.Role, self bool) model.FieldSet {
	out := model.NewFieldSet()
	switch role {
	case model.RoleAdmin:
		return model.NewFieldSet(model.AllFields...)
	case model.RoleManager:
		for _, f := range model.AllFields {
			if t.AdminOnly.Has(f) || (self && t.ManagerSelfRestricted.Has(f)) {
				continue
			}
			out[f] = struct{}{}
		}
	case model.RoleEmployee:
		if !self {
			return out
		}
		for f := range t.EmployeeAllowed {
			out[f] = struct{}{}
		}
	}
	return out
}

// Outcome of a permission decision.
type Outcome int

const (
	OutcomeAllowed Outcome = iota
	OutcomeRejected
	OutcomeForbidden
)

// Rule identifies the check that refused a mutation.
type Rule string

const (
	RuleNone          Rule = ""
	RuleEmployeeOther Rule = "employee_other"
	RuleAdminOnly     Rule = "admin_only"
	RuleManagerSelf   Rule = "manager_self"
	RuleEmployeeScope Rule = "employee_scope"
)

// Decision is the result of Resolver.Resolve.
type Decision struct {
	Outcome Outcome
	Rule    Rule
	// Fields holds the approved fields when Allowed.
	Fields []model.Field
	// Violations holds the offending fields when Rejected.
	Violations []model.Field
	// Permitted is the allowed universe reported with the rejection.
	Permitted []model.Field
}

func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllowed
}

// Err converts a refusal into an *AuthorizationError, nil when allowed.
func (d Decision) Err() error {
	if d.Allowed() {
		return nil
	}
	return &AuthorizationError{Decision: d}
}

// RouteAccess lists the roles that may call one route.
type RouteAccess struct {
	Roles   []model.Role
	Message string
}

func (a *RouteAccess) Permits(role model.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RouteKey is the lookup key of a route, e.g. "GET:/api/employees".
func RouteKey(method, path string) string {
	return strings.ToUpper(method) + ":" + path
}
