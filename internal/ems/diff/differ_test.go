package diff

import (
	"testing"

	"ems/internal/ems/model"

	"github.com/stretchr/testify/assert"
)

func sampleEmployee() model.Employee {
	return model.Employee{
		ID:               "e1",
		FirstName:        "Ada",
		LastName:         "Smith",
		Email:            "ada@example.com",
		PasswordHash:     "$2a$10$hash",
		Phone:            "555-0100",
		Address:          model.Address{Street: "1 Main St", City: "Toronto", Country: "CA"},
		EmergencyContact: model.EmergencyContact{Name: "Bob", Relation: "brother", Phone: "555-0101"},
		Occupation:       "Clerk",
		EmploymentStatus: model.StatusActive,
		Role:             model.RoleEmployee,
	}
}

func TestDiffRecordsChangedFields(t *testing.T) {
	current := sampleEmployee()

	updated, changes := Diff(current, model.Patch{
		model.FieldOccupation: "Analyst",
		model.FieldPhone:      "555-0100",
	})

	assert.Equal(t, model.Changes{
		model.FieldOccupation: {Field: model.FieldOccupation, From: "Clerk", To: "Analyst"},
	}, changes)
	assert.Equal(t, "Analyst", updated.Occupation)
	assert.Equal(t, "Clerk", current.Occupation, "input record must not be modified")
}

func TestDiffNestedObjectsByContent(t *testing.T) {
	current := sampleEmployee()
	sameAddress := model.Address{Street: "1 Main St", City: "Toronto", Country: "CA"}

	_, changes := Diff(current, model.Patch{model.FieldAddress: sameAddress})
	assert.Empty(t, changes)
}

func TestDiffNestedObjectIsWholeValue(t *testing.T) {
	current := sampleEmployee()
	moved := current.Address
	moved.City = "Ottawa"

	updated, changes := Diff(current, model.Patch{model.FieldAddress: moved})

	assert.Len(t, changes, 1)
	assert.Equal(t, current.Address, changes[model.FieldAddress].From)
	assert.Equal(t, moved, changes[model.FieldAddress].To)
	assert.Equal(t, "Ottawa", updated.Address.City)
}

func TestDiffNeverIncludesPassword(t *testing.T) {
	current := sampleEmployee()

	updated, changes := Diff(current, model.Patch{
		model.FieldPassword: "N3w-Passw0rd!",
		model.FieldEmail:    "ada@corp.example.com",
	})

	assert.False(t, changes.Has(model.FieldPassword))
	assert.True(t, changes.Has(model.FieldEmail))
	assert.Equal(t, current.PasswordHash, updated.PasswordHash)
}

func TestDiffEmptyWhenNothingChanges(t *testing.T) {
	current := sampleEmployee()

	updated, changes := Diff(current, model.Patch{
		model.FieldFirstName:        "Ada",
		model.FieldEmploymentStatus: model.StatusActive,
		model.FieldEmergencyContact: model.EmergencyContact{Name: "Bob", Relation: "brother", Phone: "555-0101"},
	})

	assert.Empty(t, changes)
	assert.Equal(t, current, updated)
}

func TestDiffAdminFields(t *testing.T) {
	current := sampleEmployee()

	updated, changes := Diff(current, model.Patch{
		model.FieldRole:     model.RoleManager,
		model.FieldApproved: true,
	})

	assert.Equal(t, model.RoleManager, updated.Role)
	assert.True(t, updated.Approved)
	assert.Equal(t, model.FieldChange{Field: model.FieldRole, From: model.RoleEmployee, To: model.RoleManager}, changes[model.FieldRole])
	assert.Equal(t, model.FieldChange{Field: model.FieldApproved, From: false, To: true}, changes[model.FieldApproved])
}
