package service

import (
	"context"

	"ems/internal/ems/model"
)

// GetManagerLogs queries the manager activity log. Admin only.
func (s *Service) GetManagerLogs(ctx context.Context, actor model.Actor, q model.LogQuery) (*model.LogResult, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Queries.Query(ctx, model.LogKindManager, q)
}

// GetSelfLogs queries the employee self-update log. Admin or Manager.
func (s *Service) GetSelfLogs(ctx context.Context, actor model.Actor, q model.LogQuery) (*model.LogResult, error) {
	if err := requireRole(actor, model.RoleAdmin, model.RoleManager); err != nil {
		return nil, err
	}
	return s.Queries.Query(ctx, model.LogKindSelf, q)
}
