package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"ems/internal/ems/model"
	"ems/internal/ems/policy"
	"ems/internal/ems/service"

	"github.com/labstack/echo/v4"
)

// Helper to map errors to HTTP status and body
func httpError(err error) (int, model.ErrorResponse) {
	var authErr *policy.AuthorizationError
	if errors.As(err, &authErr) {
		return http.StatusForbidden, model.ErrorResponse{Error: authErr.Detail()}
	}
	var detail *model.ErrorDetail
	if errors.As(err, &detail) {
		return http.StatusBadRequest, model.ErrorResponse{Error: *detail}
	}

	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		msg = "Employee not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Invalid email or password"
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Invalid or expired token"
	case errors.Is(err, service.ErrNotApproved):
		status = http.StatusForbidden
		code = "not_approved"
		msg = "Account not yet approved by manager"
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		code = "forbidden"
		msg = "Permission denied"
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
		code = "conflict"
		msg = "Employee already exists"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
		msg = "Employee was modified concurrently, reload and retry"
	case errors.Is(err, service.ErrPartialWrite):
		status = http.StatusInternalServerError
		code = "partial_write"
		msg = "Employee was updated but the audit entry could not be written"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = "Internal server error"
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}

// fail writes err in the error envelope, tagged with the request id.
func fail(c echo.Context, err error) error {
	status, body := httpError(err)
	body.Error.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"request_id", body.Error.RequestID,
			"error", err,
		)
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return fail(c, &model.ErrorDetail{Code: "bad_request", Message: msg})
}
