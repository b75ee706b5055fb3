package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/api/middleware"
)

// ctxIdentity extracts the subject injected by the Auth middleware. An
// empty subject means the route was mounted without Auth.
func ctxIdentity(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxIdentityID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
