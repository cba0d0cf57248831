package model

import (
	"fmt"
	"strings"
)

// Role is the organizational role carried by every employee record.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// ParseRole accepts the canonical role names case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "manager":
		return RoleManager, nil
	case "employee":
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// EmploymentStatus of an employee. Terminated is the soft-delete state.
type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "active"
	StatusOnLeave    EmploymentStatus = "on leave"
	StatusTerminated EmploymentStatus = "terminated"
)

func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "on leave", "on-leave", "on_leave":
		return StatusOnLeave, nil
	case "terminated":
		return StatusTerminated, nil
	}
	return "", fmt.Errorf("unknown employment status %q", s)
}

// LogKind selects one of the two audit sinks.
type LogKind string

const (
	LogKindManager LogKind = "manager"
	LogKindSelf    LogKind = "self"
)

// ActionUpdatedProfile is the action label of manager-log entries.
const ActionUpdatedProfile = "Updated employee profile"

// Upload types accepted by the upload endpoint.
const (
	UploadTypeResume  = "resume"
	UploadTypeProfile = "profile"
)
