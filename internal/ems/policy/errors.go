package policy

import (
	"ems/internal/ems/model"
)

// AuthorizationError is a refused mutation. Nothing was applied.
type AuthorizationError struct {
	Decision Decision
}

func (e *AuthorizationError) Error() string {
	d := e.Decision
	switch d.Rule {
	case RuleEmployeeOther:
		return "You can only update your own profile"
	case RuleAdminOnly:
		return "Only Admin can update: " + model.JoinFields(d.Violations)
	case RuleManagerSelf:
		return "Managers cannot update their own admin-level field(s): " + model.JoinFields(d.Violations)
	case RuleEmployeeScope:
		return "You cannot update: " + model.JoinFields(d.Violations)
	}
	return "forbidden"
}

// Detail renders the rejection in the API error envelope.
func (e *AuthorizationError) Detail() model.ErrorDetail {
	detail := model.ErrorDetail{Code: "forbidden", Message: e.Error()}
	switch e.Decision.Rule {
	case RuleAdminOnly, RuleManagerSelf:
		detail.AllowedOnlyByAdmin = e.Decision.Permitted
	case RuleEmployeeScope:
		detail.AllowedFields = e.Decision.Permitted
	}
	return detail
}
