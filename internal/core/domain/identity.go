package domain

// SessionStatus describes where the session gate is in its lifecycle.
type SessionStatus string

const (
	// SessionNotReady is reported until the persisted identity has been
	// read back, so callers can tell "unknown yet" from "logged out".
	SessionNotReady      SessionStatus = "not_ready"
	SessionAnonymous     SessionStatus = "anonymous"
	SessionAuthenticated SessionStatus = "authenticated"
)

// Identity models the demo user signed in to the directory.
type Identity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar,omitempty"`
}
