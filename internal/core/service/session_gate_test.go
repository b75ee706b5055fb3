package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
	"github.com/teamroster/employee-directory/internal/infrastructure/db/memory"
)

func newGate(t *testing.T, store ports.KeyValueStore) *SessionGate {
	t.Helper()
	g, err := NewSessionGate(store, DemoAccounts, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionGate: %v", err)
	}
	return g
}

func TestSessionGate_StartsNotReady(t *testing.T) {
	g := newGate(t, memory.NewKVStore())

	identity, status := g.Current()
	if status != domain.SessionNotReady || identity != nil {
		t.Fatalf("Current = %v, %q; want nil, not_ready", identity, status)
	}
}

func TestSessionGate_RehydrateEmptyStoreIsAnonymous(t *testing.T) {
	g := newGate(t, memory.NewKVStore())
	g.Rehydrate(context.Background())

	if _, status := g.Current(); status != domain.SessionAnonymous {
		t.Fatalf("status = %q, want anonymous", status)
	}
}

func TestSessionGate_LoginSuccess(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	g := newGate(t, store)
	g.Rehydrate(ctx)

	identity, err := g.Login(ctx, "john@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Name != "John Doe" || identity.ID != "1" {
		t.Errorf("identity = %+v", identity)
	}

	current, status := g.Current()
	if status != domain.SessionAuthenticated || current.Email != "john@example.com" {
		t.Fatalf("Current = %+v, %q", current, status)
	}

	raw, ok, _ := store.Get(ctx, SessionKey)
	if !ok {
		t.Fatal("identity was not persisted")
	}
	var stored map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored identity is not JSON: %v", err)
	}
	if stored["email"] != "john@example.com" {
		t.Errorf("stored = %v", stored)
	}
}

func TestSessionGate_LoginFailures(t *testing.T) {
	ctx := context.Background()

	cases := map[string][2]string{
		"wrong password": {"john@example.com", "wrong"},
		"unknown email":  {"nobody@example.com", "password123"},
		"case mismatch":  {"John@Example.com", "password123"},
		"other password": {"john@example.com", "password456"},
		"empty":          {"", ""},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.NewKVStore()
			g := newGate(t, store)
			g.Rehydrate(ctx)

			_, err := g.Login(ctx, creds[0], creds[1])
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
			if _, status := g.Current(); status != domain.SessionAnonymous {
				t.Fatalf("status = %q, want anonymous", status)
			}
			if store.Len() != 0 {
				t.Fatal("failed login must not write storage")
			}
		})
	}
}

func TestSessionGate_RehydrateAfterLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()

	first := newGate(t, store)
	first.Rehydrate(ctx)
	if _, err := first.Login(ctx, "jane@example.com", "password456"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	second := newGate(t, store)
	second.Rehydrate(ctx)
	identity, status := second.Current()
	if status != domain.SessionAuthenticated || identity == nil || identity.Name != "Jane Smith" {
		t.Fatalf("Current = %+v, %q", identity, status)
	}
}

func TestSessionGate_LogoutClearsStorage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	g := newGate(t, store)
	g.Rehydrate(ctx)
	_, _ = g.Login(ctx, "john@example.com", "password123")

	if err := g.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if identity, status := g.Current(); status != domain.SessionAnonymous || identity != nil {
		t.Fatalf("Current = %+v, %q", identity, status)
	}
	if _, ok, _ := store.Get(ctx, SessionKey); ok {
		t.Fatal("session key should be deleted")
	}

	restarted := newGate(t, store)
	restarted.Rehydrate(ctx)
	if _, status := restarted.Current(); status != domain.SessionAnonymous {
		t.Fatalf("after restart status = %q, want anonymous", status)
	}
}

func TestSessionGate_LogoutWhileAnonymousIsNoop(t *testing.T) {
	g := newGate(t, failingStore{})
	g.Rehydrate(context.Background())

	if err := g.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
}

func TestSessionGate_RehydrateToleratesBadData(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string]string{
		"malformed":     "{oops",
		"missing email": `{"id":"1","name":"John"}`,
		"wrong shape":   `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := memory.NewKVStore()
			_ = store.Set(ctx, SessionKey, raw)

			g := newGate(t, store)
			g.Rehydrate(ctx)
			if _, status := g.Current(); status != domain.SessionAnonymous {
				t.Fatalf("status = %q, want anonymous", status)
			}
		})
	}

	t.Run("store error", func(t *testing.T) {
		g := newGate(t, failingStore{})
		g.Rehydrate(ctx)
		if _, status := g.Current(); status != domain.SessionAnonymous {
			t.Fatalf("status = %q, want anonymous", status)
		}
	})
}

func TestSessionGate_LoginPersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	g := newGate(t, failingStore{})
	g.Rehydrate(ctx)

	if _, err := g.Login(ctx, "john@example.com", "password123"); err == nil {
		t.Fatal("expected persist error")
	}
	if _, status := g.Current(); status != domain.SessionAnonymous {
		t.Fatalf("status = %q, want anonymous", status)
	}
}

func TestSessionGate_RehydrateDoesNotOverrideLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	g := newGate(t, store)

	if _, err := g.Login(ctx, "john@example.com", "password123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_ = store.Set(ctx, SessionKey, `{"id":"2","name":"Jane Smith","email":"jane@example.com"}`)
	g.Rehydrate(ctx)

	identity, _ := g.Current()
	if identity == nil || identity.ID != "1" {
		t.Fatalf("identity = %+v, want John", identity)
	}
}

func TestSessionGate_CurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	g := newGate(t, memory.NewKVStore())
	g.Rehydrate(ctx)
	_, _ = g.Login(ctx, "john@example.com", "password123")

	identity, _ := g.Current()
	identity.Name = "Changed"

	again, _ := g.Current()
	if again.Name != "John Doe" {
		t.Fatal("Current must not expose internal state")
	}
}
