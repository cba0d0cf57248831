// Package diff computes the change-set between an employee record and an
// approved update.
package diff

import (
	"github.com/google/go-cmp/cmp"

	"ems/internal/ems/model"
)

// Diff returns the record with the patch applied and the fields whose value
// actually changed. Values are compared by content, so nested objects such
// as address match when their fields match. Nested objects are diffed as a
// whole. Password is never part of the change-set and is not applied here.
// current is not modified.
func Diff(current model.Employee, patch model.Patch) (model.Employee, model.Changes) {
	updated := current
	changes := model.Changes{}

	for _, f := range patch.Fields() {
		if f == model.FieldPassword {
			continue
		}
		from := current.Value(f)
		to := patch[f]
		if cmp.Equal(from, to) {
			continue
		}
		changes[f] = model.FieldChange{Field: f, From: from, To: to}
		updated = updated.With(f, to)
	}

	return updated, changes
}
