package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

// SessionKey is the storage key holding the serialized session identity.
const SessionKey = "authUser"

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

// Account is an entry of the fixed demo identity table.
type Account struct {
	ID       string
	Name     string
	Email    string
	Password string
	Avatar   string
}

// DemoAccounts is the hard-coded identity table the gate matches against.
var DemoAccounts = []Account{
	{
		ID:       "1",
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
		Avatar:   "https://randomuser.me/api/portraits/men/1.jpg",
	},
	{
		ID:       "2",
		Name:     "Jane Smith",
		Email:    "jane@example.com",
		Password: "password456",
		Avatar:   "https://randomuser.me/api/portraits/women/2.jpg",
	},
}

// storedIdentity is the JSON shape written under SessionKey.
type storedIdentity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Avatar       string `json:"avatar,omitempty"`
}

// SessionGate implements ports.SessionGate against a fixed account table.
type SessionGate struct {
	store ports.KeyValueStore
	known []domain.Identity
	log   zerolog.Logger

	mu      sync.RWMutex
	status  domain.SessionStatus
	current *domain.Identity
}

// NewSessionGate hashes the account passwords and returns a gate in the
// SessionNotReady state. Call Rehydrate before serving.
func NewSessionGate(store ports.KeyValueStore, accounts []Account, log zerolog.Logger) (*SessionGate, error) {
	known := make([]domain.Identity, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		known = append(known, domain.Identity{
			ID:           a.ID,
			Name:         a.Name,
			Email:        a.Email,
			PasswordHash: string(hash),
			Avatar:       a.Avatar,
		})
	}

	return &SessionGate{
		store:  store,
		known:  known,
		log:    log,
		status: domain.SessionNotReady,
	}, nil
}

// Rehydrate restores a persisted identity. Anything other than a well-formed
// stored identity leaves the gate anonymous. A login that completed before
// Rehydrate is not overwritten.
func (g *SessionGate) Rehydrate(ctx context.Context) {
	identity := g.load(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != domain.SessionNotReady {
		return
	}
	if identity == nil {
		g.status = domain.SessionAnonymous
		return
	}
	g.current = identity
	g.status = domain.SessionAuthenticated
	g.log.Info().Str("identity_id", identity.ID).Msg("session restored")
}

func (g *SessionGate) load(ctx context.Context) *domain.Identity {
	raw, ok, err := g.store.Get(ctx, SessionKey)
	if err != nil {
		g.log.Warn().Err(err).Msg("session unavailable, continuing anonymous")
		return nil
	}
	if !ok {
		return nil
	}

	var stored storedIdentity
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.ID == "" || stored.Email == "" {
		g.log.Warn().Err(err).Msg("discarding malformed session")
		return nil
	}

	return &domain.Identity{
		ID:           stored.ID,
		Name:         stored.Name,
		Email:        stored.Email,
		PasswordHash: stored.PasswordHash,
		Avatar:       stored.Avatar,
	}
}

// Login matches email exactly and password against the stored hash. Any
// mismatch yields domain.ErrInvalidCredentials.
func (g *SessionGate) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var match *domain.Identity
	for i := range g.known {
		if g.known[i].Email == email {
			match = &g.known[i]
			break
		}
	}
	if match == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(match.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	identity := *match

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.persist(ctx, &identity); err != nil {
		return nil, err
	}
	g.current = &identity
	g.status = domain.SessionAuthenticated

	g.log.Info().Str("identity_id", identity.ID).Msg("logged in")
	out := identity
	return &out, nil
}

// Logout clears the identity. It is a no-op unless authenticated.
func (g *SessionGate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != domain.SessionAuthenticated {
		return nil
	}
	if err := g.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	g.log.Info().Str("identity_id", g.current.ID).Msg("logged out")
	g.current = nil
	g.status = domain.SessionAnonymous
	return nil
}

// Current returns a copy of the active identity (nil unless authenticated)
// and the gate status.
func (g *SessionGate) Current() (*domain.Identity, domain.SessionStatus) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return nil, g.status
	}
	out := *g.current
	return &out, g.status
}

// Caller must hold g.mu.
func (g *SessionGate) persist(ctx context.Context, identity *domain.Identity) error {
	raw, err := json.Marshal(storedIdentity{
		ID:           identity.ID,
		Name:         identity.Name,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Avatar:       identity.Avatar,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := g.store.Set(ctx, SessionKey, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
