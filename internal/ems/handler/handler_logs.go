package handler

import (
	"net/http"

	"ems/internal/ems/model"

	"github.com/labstack/echo/v4"
)

// GetManagerLogs handles GET /api/admin/manager-logs
func (h *EmployeeHandler) GetManagerLogs(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	var req model.GetManagerLogsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid parameters")
	}
	if err := req.Validate(); err != nil {
		return fail(c, err)
	}

	result, err := h.Service.GetManagerLogs(c.Request().Context(), actor, req.Query())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetSelfLogs handles GET /api/admin/employee-update-logs
func (h *EmployeeHandler) GetSelfLogs(c echo.Context) error {
	actor, err := h.extractActor(c)
	if err != nil {
		return fail(c, err)
	}

	var req model.GetSelfLogsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid parameters")
	}
	if err := req.Validate(); err != nil {
		return fail(c, err)
	}

	result, err := h.Service.GetSelfLogs(c.Request().Context(), actor, req.Query())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
