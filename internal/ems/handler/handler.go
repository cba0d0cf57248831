package handler

import (
	"net/http"

	"ems/internal/ems/model"
	"ems/internal/ems/service"

	"github.com/labstack/echo/v4"
)

type EmployeeHandler struct {
	Service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: s}
}

func (h *EmployeeHandler) extractActor(c echo.Context) (model.Actor, error) {
	employee := currentEmployee(c)
	if employee == nil {
		return model.Actor{}, service.ErrUnauthorized
	}
	return employee.Actor(), nil
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
