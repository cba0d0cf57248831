package service

import (
	"errors"
	"fmt"

	"ems/internal/ems/model"
	"ems/internal/ems/repository"
)

// requireRole returns ErrForbidden unless actor holds one of roles.
func requireRole(actor model.Actor, roles ...model.Role) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// mapRepoErr translates repository sentinels into service errors.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrVersionConflict):
		return ErrConflict
	}
	return fmt.Errorf("persistence: %w", err)
}

func (s *Service) transactional() bool {
	_, passThrough := s.Tx.(repository.NoTx)
	return !passThrough
}
