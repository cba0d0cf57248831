package handler

import (
	"io"
	"net/http"

	"ems/internal/ems/model"

	"github.com/labstack/echo/v4"
)

// maxPatchBytes bounds the body of PUT /api/employees/:id.
const maxPatchBytes = 1 << 20

// Register handles POST /api/employees/register
func (h *EmployeeHandler) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return fail(c, err)
	}

	resp, err := h.Service.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/employees/login
func (h *EmployeeHandler) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return fail(c, err)
	}

	resp, err := h.Service.Login(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListEmployees handles GET /api/employees
func (h *EmployeeHandler) ListEmployees(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	employees, err := h.Service.ListEmployees(c.Request().Context(), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, employees)
}

// GetEmployee handles GET /api/employees/:id
func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	employee, err := h.Service.GetEmployee(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, employee)
}

// UpdateEmployee handles PUT /api/employees/:id. Field-level checks happen
// in the service; the body is a JSON object of field name to new value.
func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPatchBytes))
	if err != nil {
		return badRequest(c, "Invalid body")
	}
	patch, err := model.ParsePatch(body)
	if err != nil {
		return fail(c, err)
	}

	resp, err := h.Service.UpdateEmployee(c.Request().Context(), actor, c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ApproveEmployee handles PUT /api/employees/:id/approve
func (h *EmployeeHandler) ApproveEmployee(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	resp, err := h.Service.ApproveEmployee(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteEmployee handles DELETE /api/employees/:id (soft delete)
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	resp, err := h.Service.TerminateEmployee(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UploadDocument handles POST /api/employees/:id/upload?type=resume|profile
// with the file in the multipart field "file".
func (h *EmployeeHandler) UploadDocument(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	// Bind skips query params on POST, so both parts are read explicitly.
	req := model.UploadReq{ID: c.Param("id"), Type: c.QueryParam("type")}
	if err := req.Validate(); err != nil {
		return fail(c, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "File not uploaded")
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(c, "File not uploaded")
	}
	defer file.Close()

	resp, err := h.Service.UploadDocument(c.Request().Context(), actor, req, header.Filename, file)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
