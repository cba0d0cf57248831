package repository

import (
	"context"
	"errors"

	"ems/internal/ems/model"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate record")
	ErrVersionConflict = errors.New("record was modified concurrently")
)

type EmployeeRepository interface {
	// Create a new employee; duplicate e-mail returns ErrDuplicate
	Create(ctx context.Context, employee *model.Employee) error
	// Find by id; missing returns ErrNotFound
	FindByID(ctx context.Context, id string) (*model.Employee, error)
	// Find by e-mail; missing returns ErrNotFound
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
	// Find all employees with the given ids (missing ids are skipped)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Employee, error)
	// Ids of employees whose first or last name contains substr, case-insensitively.
	// An empty roles slice matches any role.
	FindIDsByName(ctx context.Context, substr string, roles []model.Role) ([]string, error)
	// All employees that are not terminated
	ListActive(ctx context.Context) ([]*model.Employee, error)
	// Replace the record if its stored version equals employee.Version,
	// then bump the version. Mismatch returns ErrVersionConflict.
	Update(ctx context.Context, employee *model.Employee) error
	// Set the approval flag and return the updated record
	SetApproved(ctx context.Context, id string, approved bool) (*model.Employee, error)
	// Set the employment status and return the updated record
	SetEmploymentStatus(ctx context.Context, id string, status model.EmploymentStatus) (*model.Employee, error)
	// Initialize Indexes
	EnsureIndexes(ctx context.Context) error
}

// AuditRepository stores audit entries in one sink per model.LogKind.
type AuditRepository interface {
	// Append an entry to the sink of entry.Kind (append-only)
	Append(ctx context.Context, entry *model.AuditEntry) error
	// Find entries of kind matching filter, most recent first
	Find(ctx context.Context, kind model.LogKind, filter model.AuditFilter) ([]*model.AuditEntry, error)
	// EnsureIndexes creates indexes for efficient querying
	EnsureIndexes(ctx context.Context) error
}

// TxRunner runs fn so that every repository call made with the ctx passed
// to fn commits or aborts together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx runs fn directly, without atomicity.
type NoTx struct{}

func (NoTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
