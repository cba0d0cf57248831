package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"ems/internal/ems/audit"
	"ems/internal/ems/auth"
	"ems/internal/ems/metrics"
	"ems/internal/ems/model"
	"ems/internal/ems/policy"
	"ems/internal/ems/repository"
	"ems/internal/ems/storage"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("employee not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account not yet approved by manager")
	ErrEmailTaken         = errors.New("employee already exists")
	ErrConflict           = errors.New("employee was modified concurrently")
	// ErrPartialWrite means the record was saved but its audit entry was
	// not, which can only happen when transactions are disabled.
	ErrPartialWrite = errors.New("employee saved but audit entry was not written")
)

type EmployeeService interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.AuthResp, error)
	Login(ctx context.Context, req model.LoginReq) (*model.AuthResp, error)
	Authenticate(ctx context.Context, token string) (*model.Employee, error)

	ListEmployees(ctx context.Context, actor model.Actor) ([]*model.Employee, error)
	GetEmployee(ctx context.Context, actor model.Actor, id string) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, actor model.Actor, id string, patch model.Patch) (*model.UpdateEmployeeResp, error)
	ApproveEmployee(ctx context.Context, actor model.Actor, id string) (*model.ApproveEmployeeResp, error)
	TerminateEmployee(ctx context.Context, actor model.Actor, id string) (*model.MessageResponse, error)
	UploadDocument(ctx context.Context, actor model.Actor, req model.UploadReq, fileName string, r io.Reader) (*model.UploadResp, error)

	GetManagerLogs(ctx context.Context, actor model.Actor, q model.LogQuery) (*model.LogResult, error)
	GetSelfLogs(ctx context.Context, actor model.Actor, q model.LogQuery) (*model.LogResult, error)
}

// Deps are the collaborators of Service. Tx, Metrics and Logger are optional.
type Deps struct {
	Employees repository.EmployeeRepository
	Audit     repository.AuditRepository
	Tx        repository.TxRunner
	Resolver  *policy.Resolver
	Tokens    *auth.TokenService
	Hasher    *auth.PasswordHasher
	Files     storage.FileStore
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

type Service struct {
	Employees repository.EmployeeRepository
	Tx        repository.TxRunner
	Resolver  *policy.Resolver
	Recorder  *audit.Recorder
	Queries   *audit.QueryEngine
	Tokens    *auth.TokenService
	Hasher    *auth.PasswordHasher
	Files     storage.FileStore
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(d Deps) *Service {
	tx := d.Tx
	if tx == nil {
		tx = repository.NoTx{}
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Employees: d.Employees,
		Tx:        tx,
		Resolver:  d.Resolver,
		Recorder:  audit.NewRecorder(d.Audit, d.Metrics),
		Queries:   audit.NewQueryEngine(d.Employees, d.Audit, d.Metrics),
		Tokens:    d.Tokens,
		Hasher:    d.Hasher,
		Files:     d.Files,
		Metrics:   d.Metrics,
		Logger:    logger,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}
