package service

import (
	"context"
	"errors"

	"ems/internal/ems/auth"
	"ems/internal/ems/model"
	"ems/internal/ems/repository"
)

// Register creates an unapproved Employee account and returns its token.
// req must already be validated.
func (s *Service) Register(ctx context.Context, req model.RegisterReq) (*model.AuthResp, error) {
	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	employee := &model.Employee{
		ID:               s.NewID(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PasswordHash:     hash,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		WorkLocation:     req.WorkLocation,
		Occupation:       req.Occupation,
		EmploymentStatus: model.StatusActive,
		Role:             model.RoleEmployee,
		Approved:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Employees.Create(ctx, employee); err != nil {
		return nil, mapRepoErr(err)
	}

	token, err := s.Tokens.Generate(employee.ID)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("employee registered", "employee_id", employee.ID)
	return &model.AuthResp{Token: token, Employee: model.NewEmployeeInfo(employee)}, nil
}

// Login checks the credentials first, so an unapproved account is only
// disclosed to someone who knows its password.
func (s *Service) Login(ctx context.Context, req model.LoginReq) (*model.AuthResp, error) {
	employee, err := s.Employees.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, mapRepoErr(err)
	}

	if err := s.Hasher.Compare(employee.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !employee.Approved {
		return nil, ErrNotApproved
	}

	token, err := s.Tokens.Generate(employee.ID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResp{Token: token, Employee: model.NewEmployeeInfo(employee)}, nil
}

// Authenticate resolves a bearer token to the employee acting with it.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.Employee, error) {
	id, err := s.Tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	employee, err := s.Employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, mapRepoErr(err)
	}
	return employee, nil
}
