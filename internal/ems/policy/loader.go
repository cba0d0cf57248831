package policy

import (
	"embed"
	"encoding/json"
	"fmt"

	"ems/internal/ems/model"
)

//go:embed policies/*.json
var policiesFS embed.FS

// Loader loads the role capability table and route access rules from the
// embedded JSON files
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

type capabilitiesFile struct {
	AdminOnly             []string `json:"admin_only"`
	ManagerSelfRestricted []string `json:"manager_self_restricted"`
	EmployeeAllowed       []string `json:"employee_allowed"`
}

// LoadCapabilities parses capabilities.json. Every field name must be a
// known model.Field.
func (l *Loader) LoadCapabilities() (*CapabilityTable, error) {
	data, err := policiesFS.ReadFile("policies/capabilities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read capabilities.json: %w", err)
	}
	return ParseCapabilities(data)
}

// ParseCapabilities builds a CapabilityTable from raw JSON.
func ParseCapabilities(data []byte) (*CapabilityTable, error) {
	var file capabilitiesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse capabilities: %w", err)
	}

	adminOnly, err := toFieldSet("admin_only", file.AdminOnly)
	if err != nil {
		return nil, err
	}
	managerSelf, err := toFieldSet("manager_self_restricted", file.ManagerSelfRestricted)
	if err != nil {
		return nil, err
	}
	employeeAllowed, err := toFieldSet("employee_allowed", file.EmployeeAllowed)
	if err != nil {
		return nil, err
	}

	return &CapabilityTable{
		AdminOnly:             adminOnly,
		ManagerSelfRestricted: managerSelf,
		EmployeeAllowed:       employeeAllowed,
	}, nil
}

func toFieldSet(section string, names []string) (model.FieldSet, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("capabilities: %s is empty", section)
	}
	set := model.NewFieldSet()
	for _, name := range names {
		f, err := model.ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("capabilities: %s: %w", section, err)
		}
		set[f] = struct{}{}
	}
	return set, nil
}

type routesFile struct {
	Routes []struct {
		Method  string   `json:"method"`
		Path    string   `json:"path"`
		Roles   []string `json:"roles"`
		Message string   `json:"message"`
	} `json:"routes"`
}

// LoadRouteAccess parses routes.json into a map keyed by "METHOD:PATH".
func (l *Loader) LoadRouteAccess() (map[string]*RouteAccess, error) {
	data, err := policiesFS.ReadFile("policies/routes.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read routes.json: %w", err)
	}
	return ParseRouteAccess(data)
}

func ParseRouteAccess(data []byte) (map[string]*RouteAccess, error) {
	var file routesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routes: %w", err)
	}

	out := make(map[string]*RouteAccess, len(file.Routes))
	for _, r := range file.Routes {
		key := RouteKey(r.Method, r.Path)
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("routes: duplicate entry %s", key)
		}
		if len(r.Roles) == 0 {
			return nil, fmt.Errorf("routes: %s has no roles", key)
		}
		access := &RouteAccess{Message: r.Message}
		for _, name := range r.Roles {
			role, err := model.ParseRole(name)
			if err != nil {
				return nil, fmt.Errorf("routes: %s: %w", key, err)
			}
			access.Roles = append(access.Roles, role)
		}
		out[key] = access
	}
	return out, nil
}
