package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/api/metrics"
	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

type AuthHandler struct {
	gate   ports.SessionGate
	tokens ports.TokenIssuer
}

func NewAuthHandler(gate ports.SessionGate, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{gate: gate, tokens: tokens}
}

// Login authenticates against the demo identity table and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	identity, err := h.gate.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, Identity: identity})
}

// Logout ends the session. Logging out while anonymous succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      500   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.gate.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the gate status, including "not_ready" while the stored
// identity is still being restored.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200   {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	identity, status := h.gate.Current()
	return c.JSON(http.StatusOK, sessionResponse{Status: status, Identity: identity})
}
