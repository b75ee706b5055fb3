package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/pkg/logger"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders them as {"error": "<message>"}.
// Unexpected errors are logged through the request-scoped logger and
// reported as a generic 500.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, c)
		if code == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", "1")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "employee not found"
	case errors.Is(err, domain.ErrLoadInProgress):
		return http.StatusConflict, "roster load already in progress"
	case errors.Is(err, domain.ErrInvalidEmployee):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrSessionNotReady):
		return http.StatusServiceUnavailable, "session not ready"
	case errors.Is(err, domain.ErrQueueFull):
		return http.StatusServiceUnavailable, "promotion queue full, try again"
	case errors.Is(err, domain.ErrRosterUnavailable):
		logger.Ctx(c.Request().Context()).Warn().Err(err).Str("path", c.Path()).Msg("roster source failed")
		return http.StatusBadGateway, "roster source unavailable"
	}

	logger.Ctx(c.Request().Context()).Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
