package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ems/internal/ems/diff"
	"ems/internal/ems/model"
	"ems/internal/ems/policy"
	"ems/internal/ems/storage"
)

const (
	msgUpdated    = "Employee updated successfully"
	msgApproved   = "Employee approved successfully"
	msgTerminated = "Employee marked as terminated (soft deleted)."
)

// Mutation outcomes reported to ems_employee_mutations_total.
const (
	outcomeApplied   = "applied"
	outcomeUnchanged = "unchanged"
	outcomeRejected  = "rejected"
	outcomeForbidden = "forbidden"
	outcomeConflict  = "conflict"
	outcomeFailed    = "failed"
)

func (s *Service) ListEmployees(ctx context.Context, actor model.Actor) ([]*model.Employee, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	employees, err := s.Employees.ListActive(ctx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return employees, nil
}

func (s *Service) GetEmployee(ctx context.Context, actor model.Actor, id string) (*model.Employee, error) {
	employee, err := s.Employees.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return employee, nil
}

// UpdateEmployee applies patch to the employee id on behalf of actor. The
// whole patch is refused if any proposed field is not writable by actor.
func (s *Service) UpdateEmployee(ctx context.Context, actor model.Actor, id string, patch model.Patch) (*model.UpdateEmployeeResp, error) {
	current, err := s.Employees.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	updated, changes, err := s.apply(ctx, actor, current, patch)
	if err != nil {
		return nil, err
	}
	return &model.UpdateEmployeeResp{Message: msgUpdated, Employee: updated, Changes: changes}, nil
}

// apply authorizes, diffs, and persists patch against current together with
// its audit entry.
func (s *Service) apply(ctx context.Context, actor model.Actor, current *model.Employee, patch model.Patch) (*model.Employee, model.Changes, error) {
	decision := s.Resolver.Resolve(actor, current.ID, patch.Fields())
	if !decision.Allowed() {
		if decision.Outcome == policy.OutcomeForbidden {
			s.Metrics.IncMutation(outcomeForbidden)
		} else {
			s.Metrics.IncMutation(outcomeRejected)
		}
		return nil, nil, decision.Err()
	}

	updated, changes := diff.Diff(*current, patch)

	password, hasPassword := patch[model.FieldPassword].(string)
	if hasPassword {
		hash, err := s.Hasher.Hash(password)
		if err != nil {
			s.Metrics.IncMutation(outcomeFailed)
			return nil, nil, err
		}
		updated.PasswordHash = hash
	}

	if len(changes) == 0 && !hasPassword {
		s.Metrics.IncMutation(outcomeUnchanged)
		return current, changes, nil
	}
	updated.UpdatedAt = s.Now().UTC()

	saved := false
	var entry *model.AuditEntry
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		// The callback may be retried; each attempt saves a fresh copy.
		record := updated
		if err := s.Employees.Update(ctx, &record); err != nil {
			return mapRepoErr(err)
		}
		saved = true

		e, err := s.Recorder.Record(ctx, actor, current.ID, changes)
		if err != nil {
			return err
		}
		updated, entry = record, e
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			s.Metrics.IncMutation(outcomeConflict)
		default:
			s.Metrics.IncMutation(outcomeFailed)
		}
		if saved && !s.transactional() {
			s.Logger.Error("audit entry lost", "actor_id", actor.ID, "target_id", current.ID, "error", err)
			return nil, nil, fmt.Errorf("%w: %v", ErrPartialWrite, err)
		}
		return nil, nil, err
	}

	s.Metrics.IncMutation(outcomeApplied)
	if entry != nil {
		s.Logger.Info("audit entry written",
			"kind", entry.Kind,
			"actor_id", actor.ID,
			"target_id", current.ID,
			"fields", entry.Changes.Fields(),
		)
	}
	return &updated, changes, nil
}

func (s *Service) ApproveEmployee(ctx context.Context, actor model.Actor, id string) (*model.ApproveEmployeeResp, error) {
	if err := requireRole(actor, model.RoleManager, model.RoleAdmin); err != nil {
		return nil, err
	}
	employee, err := s.Employees.SetApproved(ctx, id, true)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.Logger.Info("employee approved", "employee_id", id, "actor_id", actor.ID)
	return &model.ApproveEmployeeResp{Message: msgApproved, Employee: employee}, nil
}

// TerminateEmployee soft deletes the employee. Audit history is untouched.
func (s *Service) TerminateEmployee(ctx context.Context, actor model.Actor, id string) (*model.MessageResponse, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.Employees.SetEmploymentStatus(ctx, id, model.StatusTerminated); err != nil {
		return nil, mapRepoErr(err)
	}
	s.Logger.Info("employee terminated", "employee_id", id, "actor_id", actor.ID)
	return &model.MessageResponse{Message: msgTerminated}, nil
}

// UploadDocument stores a resume or profile photo and writes its path
// through the same authorized path as UpdateEmployee. Nothing is stored
// when the actor may not write the field.
func (s *Service) UploadDocument(ctx context.Context, actor model.Actor, req model.UploadReq, fileName string, r io.Reader) (*model.UploadResp, error) {
	current, err := s.Employees.FindByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	field := req.Field()
	if decision := s.Resolver.Resolve(actor, current.ID, []model.Field{field}); !decision.Allowed() {
		return nil, decision.Err()
	}

	path, err := s.Files.Save(ctx, fileName, r)
	if err != nil {
		return nil, uploadError(err)
	}

	_, changes, err := s.apply(ctx, actor, current, model.Patch{field: path})
	if err != nil {
		return nil, err
	}

	msg := "Profile photo uploaded successfully."
	if field == model.FieldResume {
		msg = "Resume uploaded successfully."
	}
	return &model.UploadResp{Message: msg, Path: path, Changes: changes}, nil
}

func uploadError(err error) error {
	var msg string
	switch {
	case errors.Is(err, storage.ErrEmptyFile):
		msg = "File not uploaded"
	case errors.Is(err, storage.ErrUnsupportedType):
		msg = "Only jpeg, jpg, png, pdf, doc and docx files are accepted"
	case errors.Is(err, storage.ErrTooLarge):
		msg = "File too large"
	default:
		return fmt.Errorf("store upload: %w", err)
	}
	return &model.ErrorDetail{Code: "bad_request", Message: msg}
}
