package model

import (
	"fmt"
	"sort"
	"strings"
)

// Field names an employee attribute that can be proposed in a mutation.
type Field string

const (
	FieldFirstName        Field = "firstName"
	FieldLastName         Field = "lastName"
	FieldEmail            Field = "email"
	FieldPassword         Field = "password"
	FieldPhone            Field = "phone"
	FieldAddress          Field = "address"
	FieldEmergencyContact Field = "emergencyContact"
	FieldProfilePhoto     Field = "profilePhoto"
	FieldResume           Field = "resume"
	FieldWorkLocation     Field = "workLocation"
	FieldEmploymentStatus Field = "employmentStatus"
	FieldOccupation       Field = "occupation"
	FieldRole             Field = "role"
	FieldApproved         Field = "approved"
)

// AllFields lists every field in canonical order.
var AllFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPassword,
	FieldPhone,
	FieldAddress,
	FieldEmergencyContact,
	FieldProfilePhoto,
	FieldResume,
	FieldWorkLocation,
	FieldEmploymentStatus,
	FieldOccupation,
	FieldRole,
	FieldApproved,
}

var fieldOrder = func() map[Field]int {
	m := make(map[Field]int, len(AllFields))
	for i, f := range AllFields {
		m[f] = i
	}
	return m
}()

// ParseField maps a wire name onto a Field. Unknown names are an error.
func ParseField(s string) (Field, error) {
	f := Field(strings.TrimSpace(s))
	if _, ok := fieldOrder[f]; !ok {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// SortFields orders fields canonically in place and returns them.
func SortFields(fields []Field) []Field {
	sort.SliceStable(fields, func(i, j int) bool {
		return fieldOrder[fields[i]] < fieldOrder[fields[j]]
	})
	return fields
}

// JoinFields renders fields as "a, b, c".
func JoinFields(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

// FieldSet is an unordered set of fields.
type FieldSet map[Field]struct{}

func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the members in canonical order.
func (s FieldSet) Sorted() []Field {
	out := make([]Field, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	return SortFields(out)
}
