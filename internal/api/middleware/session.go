package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

// RequireSession admits a request only while the gate is authenticated as
// the token's subject. It must run after Auth. A gate that has not finished
// rehydrating answers 503 so clients retry instead of treating the user as
// logged out.
func RequireSession(gate ports.SessionGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, status := gate.Current()
			switch status {
			case domain.SessionNotReady:
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, domain.ErrSessionNotReady.Error())
			case domain.SessionAnonymous:
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}

			sub, _ := c.Get(CtxIdentityID).(string)
			if identity == nil || sub != identity.ID {
				return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
			}

			return next(c)
		}
	}
}
