package router

import (
	"ems/internal/ems/handler"
	"ems/internal/ems/policy"
	"ems/internal/ems/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, h *handler.EmployeeHandler, svc service.EmployeeService, routes map[string]*policy.RouteAccess, gatherer prometheus.Gatherer) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	api.Use(handler.RequestIDMiddleware)

	employees := api.Group("/employees")
	employees.POST("/register", h.Register)
	employees.POST("/login", h.Login)

	protected := []echo.MiddlewareFunc{handler.AuthMiddleware(svc), handler.RoleMiddleware(routes)}

	employees.GET("", h.ListEmployees, protected...)
	employees.GET("/:id", h.GetEmployee, protected...)
	employees.PUT("/:id", h.UpdateEmployee, protected...)
	employees.PUT("/:id/approve", h.ApproveEmployee, protected...)
	employees.DELETE("/:id", h.DeleteEmployee, protected...)
	employees.POST("/:id/upload", h.UploadDocument, protected...)

	admin := api.Group("/admin", protected...)
	admin.GET("/manager-logs", h.GetManagerLogs)
	admin.GET("/employee-update-logs", h.GetSelfLogs)
}
