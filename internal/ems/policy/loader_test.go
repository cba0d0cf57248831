package policy

import (
	"testing"

	"ems/internal/ems/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCapabilities(t *testing.T) {
	table, err := NewLoader().LoadCapabilities()
	require.NoError(t, err)

	assert.Equal(t, []model.Field{model.FieldRole, model.FieldApproved}, table.AdminOnly.Sorted())
	assert.Equal(t, []model.Field{
		model.FieldWorkLocation, model.FieldEmploymentStatus, model.FieldOccupation,
	}, table.ManagerSelfRestricted.Sorted())
	assert.Equal(t, []model.Field{
		model.FieldEmail, model.FieldPassword, model.FieldAddress,
		model.FieldEmergencyContact, model.FieldProfilePhoto, model.FieldResume,
	}, table.EmployeeAllowed.Sorted())
}

func TestParseCapabilitiesRejectsUnknownField(t *testing.T) {
	_, err := ParseCapabilities([]byte(`{
		"admin_only": ["role", "aproved"],
		"manager_self_restricted": ["occupation"],
		"employee_allowed": ["email"]
	}`))
	assert.ErrorContains(t, err, "aproved")
}

func TestParseCapabilitiesRejectsEmptySection(t *testing.T) {
	_, err := ParseCapabilities([]byte(`{"admin_only": ["role"], "employee_allowed": ["email"]}`))
	assert.ErrorContains(t, err, "manager_self_restricted")
}

func TestWritable(t *testing.T) {
	table, err := NewLoader().LoadCapabilities()
	require.NoError(t, err)

	t.Run("admin writes everything", func(t *testing.T) {
		assert.Len(t, table.Writable(model.RoleAdmin, true), len(model.AllFields))
	})

	t.Run("manager on other lacks admin-only fields", func(t *testing.T) {
		w := table.Writable(model.RoleManager, false)
		assert.False(t, w.Has(model.FieldRole))
		assert.False(t, w.Has(model.FieldApproved))
		assert.True(t, w.Has(model.FieldOccupation))
	})

	t.Run("manager on self lacks restricted fields", func(t *testing.T) {
		w := table.Writable(model.RoleManager, true)
		assert.False(t, w.Has(model.FieldOccupation))
		assert.True(t, w.Has(model.FieldPhone))
	})

	t.Run("employee on other writes nothing", func(t *testing.T) {
		assert.Empty(t, table.Writable(model.RoleEmployee, false))
	})
}

func TestLoadRouteAccess(t *testing.T) {
	routes, err := NewLoader().LoadRouteAccess()
	require.NoError(t, err)

	list := routes[RouteKey("get", "/api/employees")]
	require.NotNil(t, list)
	assert.True(t, list.Permits(model.RoleAdmin))
	assert.False(t, list.Permits(model.RoleManager))

	approve := routes["PUT:/api/employees/:id/approve"]
	require.NotNil(t, approve)
	assert.True(t, approve.Permits(model.RoleManager))
	assert.False(t, approve.Permits(model.RoleEmployee))
	assert.Equal(t, "Manager access only", approve.Message)

	assert.Nil(t, routes["PUT:/api/employees/:id"])
}

func TestParseRouteAccessErrors(t *testing.T) {
	_, err := ParseRouteAccess([]byte(`{"routes": [{"method": "GET", "path": "/x", "roles": ["Owner"]}]}`))
	assert.Error(t, err)

	_, err = ParseRouteAccess([]byte(`{"routes": [{"method": "GET", "path": "/x", "roles": []}]}`))
	assert.ErrorContains(t, err, "no roles")

	_, err = ParseRouteAccess([]byte(`{"routes": [
		{"method": "GET", "path": "/x", "roles": ["Admin"]},
		{"method": "get", "path": "/x", "roles": ["Admin"]}
	]}`))
	assert.ErrorContains(t, err, "duplicate")
}
