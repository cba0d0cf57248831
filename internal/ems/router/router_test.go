package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ems/internal/ems/auth"
	"ems/internal/ems/handler"
	"ems/internal/ems/metrics"
	"ems/internal/ems/model"
	"ems/internal/ems/policy"
	"ems/internal/ems/repository"
	"ems/internal/ems/service"
	"ems/internal/ems/storage"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Passw0rd!"

type testServer struct {
	e      *echo.Echo
	svc    *service.Service
	audit  *repository.InMemoryAuditRepository
	tokens map[string]string
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	employees := repository.NewInMemoryEmployeeRepository()
	auditRepo := repository.NewInMemoryAuditRepository()
	reg := prometheus.NewRegistry()

	resolver, err := policy.NewResolver()
	require.NoError(t, err)
	routes, err := policy.NewLoader().LoadRouteAccess()
	require.NoError(t, err)
	files, err := storage.NewDiskStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	svc := service.NewService(service.Deps{
		Employees: employees,
		Audit:     auditRepo,
		Resolver:  resolver,
		Tokens:    auth.NewTokenService("test-secret", time.Hour),
		Hasher:    auth.NewPasswordHasher(bcrypt.MinCost),
		Files:     files,
		Metrics:   metrics.New(reg),
	})

	hash, err := svc.Hasher.Hash(testPassword)
	require.NoError(t, err)

	ts := &testServer{e: echo.New(), svc: svc, audit: auditRepo, tokens: map[string]string{}}
	for _, emp := range []*model.Employee{
		{ID: "a1", FirstName: "Ada", LastName: "Admin", Email: "ada@example.com", Role: model.RoleAdmin},
		{ID: "m1", FirstName: "John", LastName: "Smith", Email: "john@example.com", Role: model.RoleManager},
		{ID: "e1", FirstName: "Alice", LastName: "Brown", Email: "alice@example.com", Role: model.RoleEmployee},
		{ID: "e2", FirstName: "Bob", LastName: "Doe", Email: "bob@example.com", Role: model.RoleEmployee, Occupation: "Clerk"},
	} {
		emp.PasswordHash = hash
		emp.Approved = true
		emp.EmploymentStatus = model.StatusActive
		require.NoError(t, employees.Create(context.Background(), emp))

		token, err := svc.Tokens.Generate(emp.ID)
		require.NoError(t, err)
		ts.tokens[emp.ID] = token
	}

	RegisterRoutes(ts.e, handler.NewEmployeeHandler(svc), svc, routes, reg)
	return ts
}

func (ts *testServer) do(method, path string, body interface{}, as string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if as != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.tokens[as])
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthAndMetrics(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPut, "/api/employees/e2", map[string]string{"occupation": "Analyst"}, "m1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ems_employee_mutations_total{outcome="applied"} 1`)
	assert.Contains(t, rec.Body.String(), `ems_audit_entries_total{kind="manager"} 1`)
}

func TestRegisterApproveLogin(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(http.MethodPost, "/api/employees/register", map[string]interface{}{
		"firstName": "Eve", "lastName": "Green", "email": "Eve@Example.com", "password": testPassword,
		"role": "Admin", "approved": true,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered model.AuthResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "eve@example.com", registered.Employee.Email)
	assert.Equal(t, model.RoleEmployee, registered.Employee.Role)
	assert.False(t, registered.Employee.Approved)

	login := map[string]string{"email": "eve@example.com", "password": testPassword}
	rec = ts.do(http.MethodPost, "/api/employees/login", login, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Account not yet approved by manager", decodeError(t, rec).Message)

	rec = ts.do(http.MethodPut, "/api/employees/"+registered.Employee.ID+"/approve", nil, "e1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Manager access only", decodeError(t, rec).Message)

	rec = ts.do(http.MethodPut, "/api/employees/"+registered.Employee.ID+"/approve", nil, "m1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPost, "/api/employees/login", login, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")

	rec = ts.do(http.MethodPost, "/api/employees/login", map[string]string{"email": "eve@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, rec).Message)
}

func TestRegisterValidation(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(http.MethodPost, "/api/employees/register", map[string]string{
		"firstName": "Eve", "lastName": "Green", "email": "eve@example.com", "password": "weak",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.PasswordRuleMessage, decodeError(t, rec).Message)

	rec = ts.do(http.MethodPost, "/api/employees/register", map[string]string{
		"firstName": "Al", "lastName": "Dup", "email": "alice@example.com", "password": testPassword,
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthentication(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(http.MethodGet, "/api/employees/e1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, token missing", decodeError(t, rec).Message)

	req := httptest.NewRequest(http.MethodGet, "/api/employees/e1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec = httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "req-42", decodeError(t, rec).RequestID)
	assert.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))

	rec = ts.do(http.MethodGet, "/api/employees/e2", nil, "e1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = ts.do(http.MethodGet, "/api/employees/missing", nil, "e1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndDeleteAreAdminOnly(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(http.MethodGet, "/api/employees", nil, "m1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access only", decodeError(t, rec).Message)

	rec = ts.do(http.MethodDelete, "/api/employees/e2", nil, "m1")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/employees/e2", nil, "a1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/api/employees", nil, "a1")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)
}

func TestUpdateEmployeeAuthorization(t *testing.T) {
	ts := setupServer(t)

	t.Run("employee on another record", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/employees/e2", map[string]string{"phone": "1"}, "e1")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You can only update your own profile", decodeError(t, rec).Message)
	})

	t.Run("employee proposing admin-only field", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/employees/e1", map[string]interface{}{"approved": true, "phone": "1"}, "e1")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "Only Admin can update: approved", detail.Message)
		assert.Equal(t, []model.Field{model.FieldRole, model.FieldApproved}, detail.AllowedOnlyByAdmin)
	})

	t.Run("employee outside allowlist", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/employees/e1", map[string]string{"phone": "1"}, "e1")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "You cannot update: phone", detail.Message)
		assert.Len(t, detail.AllowedFields, 6)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/employees/e1", map[string]string{"salary": "1"}, "a1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unknown field: salary", decodeError(t, rec).Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/employees/e1", strings.NewReader("{"))
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.tokens["a1"])
		rec := httptest.NewRecorder()
		ts.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	assert.Equal(t, 0, ts.audit.Count(model.LogKindManager)+ts.audit.Count(model.LogKindSelf))
}

func TestUpdateAndQueryLogs(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(http.MethodPut, "/api/employees/e2", map[string]string{"occupation": "Analyst"}, "m1")
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.UpdateEmployeeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Analyst", updated.Employee.Occupation)
	assert.Equal(t, "Clerk", updated.Changes[model.FieldOccupation].From)

	rec = ts.do(http.MethodPut, "/api/employees/e1", map[string]interface{}{
		"emergencyContact": map[string]string{"name": "Sam", "relation": "Brother", "phone": "555"},
	}, "e1")
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.LogResult
	rec = ts.do(http.MethodGet, "/api/admin/manager-logs?manager=smith&field=occupation", nil, "a1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Bob", result.Logs[0].Target.FirstName)

	rec = ts.do(http.MethodGet, "/api/admin/manager-logs?field=phone", nil, "a1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Count)

	rec = ts.do(http.MethodGet, "/api/admin/manager-logs", nil, "m1")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodGet, "/api/admin/employee-update-logs?employee=alice", nil, "m1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Count)

	rec = ts.do(http.MethodGet, "/api/admin/employee-update-logs", nil, "e1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin or Manager access only", decodeError(t, rec).Message)

	rec = ts.do(http.MethodGet, "/api/admin/employee-update-logs?from=yesterday", nil, "a1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/admin/manager-logs?from=2030-01-01&to=2020-01-01", nil, "a1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func (ts *testServer) upload(t *testing.T, path, name string, content []byte, as string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if name != "" {
		part, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.tokens[as])
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func TestUploadDocument(t *testing.T) {
	ts := setupServer(t)

	rec := ts.upload(t, "/api/employees/e1/upload?type=profile", "me.png", pngBytes, "e1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp model.UploadResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Profile photo uploaded successfully.", resp.Message)
	assert.Contains(t, resp.Path, "me-")
	assert.Equal(t, 1, ts.audit.Count(model.LogKindSelf))

	rec = ts.upload(t, "/api/employees/e1/upload?type=avatar", "me.png", pngBytes, "e1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid upload type", decodeError(t, rec).Message)

	rec = ts.upload(t, "/api/employees/e1/upload?type=resume", "", nil, "e1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File not uploaded", decodeError(t, rec).Message)

	rec = ts.upload(t, "/api/employees/e2/upload?type=resume", "cv.pdf", []byte("%PDF-1.4\n"), "e1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
