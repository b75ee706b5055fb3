package ports

import (
	"context"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// SessionGate owns the current identity. Login and Logout are its only
// transitions; Rehydrate moves it out of domain.SessionNotReady.
type SessionGate interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Logout(ctx context.Context) error
	Rehydrate(ctx context.Context)
	Current() (*domain.Identity, domain.SessionStatus)
}

// TokenIssuer signs the bearer token handed out after a successful login.
type TokenIssuer interface {
	Issue(identity *domain.Identity) (string, error)
}
