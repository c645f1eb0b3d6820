// Package session owns the authenticated-user state for one client
// process. It is an explicit dependency handed to commands, never a
// global: construct one, Bootstrap it, pass it around.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/tokenstore"
)

// Dashboard names the landing view for a role.
type Dashboard string

const (
	DashboardEmployee   Dashboard = "employee"
	DashboardManagement Dashboard = "management"
	DashboardAdmin      Dashboard = "admin"
)

// TokenStore is the slice of the token store the session needs.
type TokenStore interface {
	Get(name string) (string, bool)
	SetPair(access, refresh string) error
	ClearAll() error
}

// Backend is the slice of the API facade the session needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
	Register(ctx context.Context, reg api.Registration) error
	GetMe(ctx context.Context) (*api.User, error)
}

// accessClaims is the subset of the access token's payload the client
// reads. The signature is never verified here; the backend is the only
// party that can, and an attacker who can forge claims only lies to their
// own terminal.
type accessClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Session tracks the current user across a client process.
type Session struct {
	store   TokenStore
	backend Backend
	now     func() time.Time

	mu   sync.Mutex
	user *api.User
}

// Option customizes a Session.
type Option func(*Session)

// WithClock injects the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a Session over the given token store and backend.
func New(store TokenStore, backend Backend, opts ...Option) *Session {
	s := &Session{
		store:   store,
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap restores the session from stored tokens. An absent, expired or
// undecodable access token leaves the session logged out — the expiry
// check is purely local, no network call is made for it. A decodable token
// yields a partial user from its claims, immediately refined by a profile
// fetch; if that fetch fails the session is torn down.
func (s *Session) Bootstrap(ctx context.Context) error {
	access, ok := s.store.Get(tokenstore.SlotAccess)
	if !ok {
		return nil
	}

	claims, err := s.decode(access)
	if err != nil {
		slog.Debug("stored access token unusable", "error", err)
		s.Logout()
		return nil
	}

	partial := &api.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     api.Role(claims.Role),
	}
	s.setUser(partial)

	full, err := s.backend.GetMe(ctx)
	if err != nil {
		slog.Debug("profile fetch failed, treating as logged out", "error", err)
		s.Logout()
		return nil
	}
	s.setUser(full)
	return nil
}

// Login authenticates, persists the returned token pair and loads the full
// profile. A failed login leaves stored tokens untouched.
func (s *Session) Login(ctx context.Context, creds api.Credentials) (*api.User, error) {
	resp, err := s.backend.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetPair(resp.Access, resp.Refresh); err != nil {
		return nil, fmt.Errorf("storing tokens: %w", err)
	}

	full, err := s.backend.GetMe(ctx)
	if err != nil {
		s.Logout()
		return nil, fmt.Errorf("loading profile after login: %w", err)
	}
	s.setUser(full)
	return full, nil
}

// Logout clears the stored tokens and the current user. Calling it while
// already logged out is a no-op.
func (s *Session) Logout() {
	if err := s.store.ClearAll(); err != nil {
		slog.Warn("failed to clear tokens", "error", err)
	}
	s.setUser(nil)
}

// Register creates an account. It does not touch session state.
func (s *Session) Register(ctx context.Context, reg api.Registration) error {
	return s.backend.Register(ctx, reg)
}

// IsAuthenticated reports whether a user is loaded.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// CurrentUser returns the current user, or nil when logged out.
func (s *Session) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// DefaultDashboard maps the current user's role to their landing view.
// Logged-out sessions land on the employee view; the caller is expected to
// gate on IsAuthenticated first.
func (s *Session) DefaultDashboard() Dashboard {
	user := s.CurrentUser()
	if user == nil {
		return DashboardEmployee
	}
	switch user.Role {
	case api.RoleCoordinator, api.RoleCommittee:
		return DashboardManagement
	case api.RoleAdmin:
		return DashboardAdmin
	default:
		return DashboardEmployee
	}
}

func (s *Session) setUser(u *api.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// decode extracts claims without signature verification and rejects
// expired tokens.
func (s *Session) decode(token string) (*accessClaims, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decoding access token: %w", err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.now()) {
		return nil, fmt.Errorf("access token expired at %s", claims.ExpiresAt)
	}
	return claims, nil
}
