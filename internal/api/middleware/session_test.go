package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

type stubGate struct {
	identity *domain.Identity
	status   domain.SessionStatus
}

func (g *stubGate) Login(context.Context, string, string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidCredentials
}
func (g *stubGate) Logout(context.Context) error { return nil }
func (g *stubGate) Rehydrate(context.Context)    {}
func (g *stubGate) Current() (*domain.Identity, domain.SessionStatus) {
	return g.identity, g.status
}

func runSession(t *testing.T, gate *stubGate, subject string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if subject != "" {
		c.Set(CtxIdentityID, subject)
	}

	called := false
	handler := RequireSession(gate)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequireSession_Authenticated(t *testing.T) {
	gate := &stubGate{identity: &domain.Identity{ID: "1"}, status: domain.SessionAuthenticated}
	rec, called := runSession(t, gate, "1")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d called=%v", rec.Code, called)
	}
}

func TestRequireSession_NotReady(t *testing.T) {
	rec, called := runSession(t, &stubGate{status: domain.SessionNotReady}, "1")
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRequireSession_Anonymous(t *testing.T) {
	rec, called := runSession(t, &stubGate{status: domain.SessionAnonymous}, "1")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d called=%v", rec.Code, called)
	}
}

func TestRequireSession_SubjectMismatch(t *testing.T) {
	gate := &stubGate{identity: &domain.Identity{ID: "2"}, status: domain.SessionAuthenticated}
	rec, called := runSession(t, gate, "1")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a token of another identity, got %d", rec.Code)
	}
}
