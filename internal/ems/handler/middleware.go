package handler

import (
	"net/http"
	"strings"

	"ems/internal/ems/model"
	"ems/internal/ems/policy"
	"ems/internal/ems/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ctxEmployeeKey = "employee"

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Request().Header.Get(echo.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)
		return next(c)
	}
}

// AuthMiddleware resolves the bearer token to the acting employee.
func AuthMiddleware(svc service.EmployeeService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, model.ErrorResponse{
					Error: model.ErrorDetail{
						Code:      "unauthorized",
						Message:   "Not authorized, token missing",
						RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
					},
				})
			}

			employee, err := svc.Authenticate(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				return fail(c, err)
			}
			c.Set(ctxEmployeeKey, employee)
			return next(c)
		}
	}
}

// RoleMiddleware enforces the route access rules keyed by "METHOD:PATH".
// Routes without a rule only require authentication.
func RoleMiddleware(routes map[string]*policy.RouteAccess) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, exists := routes[policy.RouteKey(c.Request().Method, c.Path())]
			if !exists {
				return next(c)
			}

			employee := currentEmployee(c)
			if employee == nil || !access.Permits(employee.Role) {
				msg := access.Message
				if msg == "" {
					msg = "Permission denied"
				}
				return c.JSON(http.StatusForbidden, model.ErrorResponse{
					Error: model.ErrorDetail{
						Code:      "forbidden",
						Message:   msg,
						RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
					},
				})
			}
			return next(c)
		}
	}
}

func currentEmployee(c echo.Context) *model.Employee {
	employee, _ := c.Get(ctxEmployeeKey).(*model.Employee)
	return employee
}
