// Package session holds the explicit session context shared by everything
// that needs to know who is signed in. It replaces ambient global auth
// state: construct one at startup, pass it to the components that need it.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appLog "eventhub/internal/log"
	"eventhub/internal/token"
)

// Session derives its flags from the stored bearer token. The token is a
// JWT issued by the backend; it is decoded without signature verification
// (the client has no signing key) purely to read the role and expiry
// claims. The backend remains the authority - a stale or forged token just
// produces 401s at the gateway.
type Session struct {
	store token.Store

	mu            sync.RWMutex
	cached        string
	authenticated bool
	organizer     bool
}

// New builds a Session over the given credential store and loads the
// current token.
func New(store token.Store) *Session {
	s := &Session{store: store}
	s.Refresh()
	return s
}

// Refresh re-reads the credential store and re-derives the session flags.
func (s *Session) Refresh() {
	tok, err := s.store.Get()
	if err != nil {
		appLog.Warn("session: token read failed", "err", err)
		tok = ""
	}

	authenticated, organizer := inspect(tok)

	s.mu.Lock()
	s.cached = tok
	s.authenticated = authenticated
	s.organizer = organizer
	s.mu.Unlock()
}

// Token implements gateway.TokenSource. Returns "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

// Authenticated reports whether a usable (present, unexpired) token exists.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Organizer reports whether the signed-in account carries the organizer role.
func (s *Session) Organizer() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.organizer
}

// SignIn persists a fresh token and re-derives flags.
func (s *Session) SignIn(tok string) error {
	if err := s.store.Set(tok); err != nil {
		return err
	}
	s.Refresh()
	return nil
}

// Logout deletes the stored token and clears the session flags.
func (s *Session) Logout() error {
	err := s.store.Delete()
	s.mu.Lock()
	s.cached = ""
	s.authenticated = false
	s.organizer = false
	s.mu.Unlock()
	return err
}

// sessionClaims is the subset of backend JWT claims the client cares about.
type sessionClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// inspect decodes the token (unverified) and returns (authenticated,
// organizer). An undecodable token still counts as authenticated - the
// backend decides its fate - but carries no role.
func inspect(tok string) (bool, bool) {
	if tok == "" {
		return false, false
	}

	var claims sessionClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		appLog.Debug("session: token is not a decodable JWT", "err", err)
		return true, false
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		appLog.Info("session: stored token is expired")
		return false, false
	}

	return true, strings.EqualFold(claims.Role, "organizer")
}
