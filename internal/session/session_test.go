package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/tokenstore"
)

// memStore is an in-memory stand-in for the file-backed token store.
type memStore struct {
	slots map[string]string
}

func newMemStore() *memStore { return &memStore{slots: map[string]string{}} }

func (m *memStore) Get(name string) (string, bool) {
	v, ok := m.slots[name]
	return v, ok && v != ""
}

func (m *memStore) SetPair(access, refresh string) error {
	m.slots[tokenstore.SlotAccess] = access
	m.slots[tokenstore.SlotRefresh] = refresh
	return nil
}

func (m *memStore) ClearAll() error {
	m.slots = map[string]string{}
	return nil
}

// fakeBackend records calls and returns scripted results.
type fakeBackend struct {
	loginResp  *api.LoginResponse
	loginErr   error
	me         *api.User
	meErr      error
	meCalls    int
	registered []api.Registration
}

func (f *fakeBackend) Login(_ context.Context, _ api.Credentials) (*api.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, reg api.Registration) error {
	f.registered = append(f.registered, reg)
	return nil
}

func (f *fakeBackend) GetMe(_ context.Context) (*api.User, error) {
	f.meCalls++
	return f.me, f.meErr
}

func signedToken(t *testing.T, userID int, username, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func fixedClock(at time.Time) Option {
	return WithClock(func() time.Time { return at })
}

func TestBootstrapNoToken(t *testing.T) {
	backend := &fakeBackend{}
	s := New(newMemStore(), backend)

	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("expected logged-out session")
	}
	if backend.meCalls != 0 {
		t.Error("no profile fetch should happen without a token")
	}
}

func TestBootstrapExpiredTokenIsLocalOnly(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.SetPair(signedToken(t, 1, "jdoe", "EMPLOYEE", now.Add(-time.Hour)), "ref")

	backend := &fakeBackend{}
	s := New(store, backend, fixedClock(now))

	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("expired token must yield a logged-out session")
	}
	// Expiry is decided from the claims alone.
	if backend.meCalls != 0 {
		t.Error("expired-token handling must not make a network call")
	}
	if _, ok := store.Get(tokenstore.SlotAccess); ok {
		t.Error("tokens should be cleared")
	}
}

func TestBootstrapUndecodableToken(t *testing.T) {
	store := newMemStore()
	store.SetPair("not-a-jwt", "ref")

	s := New(store, &fakeBackend{})
	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("undecodable token must yield a logged-out session")
	}
}

func TestBootstrapRefinesClaimsWithProfile(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.SetPair(signedToken(t, 42, "jdoe", "COORDINATOR", now.Add(time.Hour)), "ref")

	backend := &fakeBackend{me: &api.User{
		ID:         42,
		Username:   "jdoe",
		Email:      "jdoe@example.com",
		Role:       api.RoleCoordinator,
		EmployeeID: "E-042",
	}}
	s := New(store, backend, fixedClock(now))

	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	user := s.CurrentUser()
	if user == nil {
		t.Fatal("expected an authenticated session")
	}
	if user.Email != "jdoe@example.com" || user.EmployeeID != "E-042" {
		t.Errorf("profile fetch should supersede partial claims, got %+v", user)
	}
	if backend.meCalls != 1 {
		t.Errorf("expected one profile fetch, got %d", backend.meCalls)
	}
}

func TestBootstrapProfileFailureLogsOut(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.SetPair(signedToken(t, 1, "jdoe", "EMPLOYEE", now.Add(time.Hour)), "ref")

	backend := &fakeBackend{meErr: errors.New("backend down")}
	s := New(store, backend, fixedClock(now))

	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("failed refinement must log the session out")
	}
	if _, ok := store.Get(tokenstore.SlotAccess); ok {
		t.Error("tokens should be cleared")
	}
}

func TestLoginStoresTokensAndLoadsProfile(t *testing.T) {
	store := newMemStore()
	backend := &fakeBackend{
		loginResp: &api.LoginResponse{Access: "acc", Refresh: "ref", Role: api.RoleEmployee, Username: "jdoe"},
		me:        &api.User{ID: 1, Username: "jdoe", Role: api.RoleEmployee},
	}
	s := New(store, backend)

	user, err := s.Login(context.Background(), api.Credentials{Username: "jdoe", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "jdoe" {
		t.Errorf("unexpected user %+v", user)
	}
	if v, _ := store.Get(tokenstore.SlotAccess); v != "acc" {
		t.Errorf("access token not stored, got %q", v)
	}
	if v, _ := store.Get(tokenstore.SlotRefresh); v != "ref" {
		t.Errorf("refresh token not stored, got %q", v)
	}
}

func TestLoginFailureLeavesTokensUntouched(t *testing.T) {
	store := newMemStore()
	store.SetPair("old-acc", "old-ref")

	backend := &fakeBackend{loginErr: &api.Error{Status: 401, Message: "No active account found"}}
	s := New(store, backend)

	if _, err := s.Login(context.Background(), api.Credentials{}); err == nil {
		t.Fatal("expected login error")
	}
	if v, _ := store.Get(tokenstore.SlotAccess); v != "old-acc" {
		t.Errorf("stored tokens must survive a failed login, got %q", v)
	}
	if s.IsAuthenticated() {
		t.Error("failed login must not authenticate")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := newMemStore()
	store.SetPair("acc", "ref")

	backend := &fakeBackend{
		loginResp: &api.LoginResponse{Access: "acc", Refresh: "ref"},
		me:        &api.User{ID: 1, Username: "jdoe", Role: api.RoleEmployee},
	}
	s := New(store, backend)
	if _, err := s.Login(context.Background(), api.Credentials{}); err != nil {
		t.Fatal(err)
	}

	s.Logout()
	if s.IsAuthenticated() {
		t.Error("expected logged-out session")
	}
	if _, ok := store.Get(tokenstore.SlotAccess); ok {
		t.Error("tokens should be cleared")
	}

	// Second logout is a safe no-op.
	s.Logout()
}

func TestRegisterDoesNotTouchSession(t *testing.T) {
	store := newMemStore()
	backend := &fakeBackend{}
	s := New(store, backend)

	if err := s.Register(context.Background(), api.Registration{Username: "new"}); err != nil {
		t.Fatal(err)
	}
	if len(backend.registered) != 1 || backend.registered[0].Username != "new" {
		t.Errorf("registration not passed through: %+v", backend.registered)
	}
	if s.IsAuthenticated() {
		t.Error("register must not authenticate")
	}
	if _, ok := store.Get(tokenstore.SlotAccess); ok {
		t.Error("register must not store tokens")
	}
}

func TestDefaultDashboardByRole(t *testing.T) {
	tests := []struct {
		role api.Role
		want Dashboard
	}{
		{api.RoleEmployee, DashboardEmployee},
		{api.RoleCoordinator, DashboardManagement},
		{api.RoleCommittee, DashboardManagement},
		{api.RoleAdmin, DashboardAdmin},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			backend := &fakeBackend{
				loginResp: &api.LoginResponse{Access: "acc", Refresh: "ref"},
				me:        &api.User{ID: 1, Role: tt.role},
			}
			s := New(newMemStore(), backend)
			if _, err := s.Login(context.Background(), api.Credentials{}); err != nil {
				t.Fatal(err)
			}
			if got := s.DefaultDashboard(); got != tt.want {
				t.Errorf("dashboard = %q, want %q", got, tt.want)
			}
		})
	}
}
