// Package session owns the authenticated-user state: who is logged in,
// the login/signup/logout transitions, and restoring a session from the
// credential store at startup.
package session

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/vitalink-health/vitalink/internal/store"
	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

// API is the subset of the portal client the session manager calls.
type API interface {
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
	Signup(ctx context.Context, email, password, fullName string) (*client.AuthResponse, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*domain.User, error)
	SetToken(token string)
}

// Toaster receives short success/confirmation messages for display.
// In the app this is the notification center.
type Toaster interface {
	Toast(title, description string)
}

// Manager is the single source of truth for who is logged in. One
// Manager exists per process; UI code reads it through the accessors and
// mutates it only through the named operations.
//
// A user is present iff the backend accepted our token — token presence
// alone is never enough.
type Manager struct {
	api    API
	store  store.Store
	toast  Toaster
	logger *log.Logger

	mu      sync.Mutex
	user    *domain.User
	loading bool
	err     string
}

// NewManager wires the session manager to the API client, the credential
// store, and the toast surface. toast may be nil.
func NewManager(api API, st store.Store, toast Toaster) *Manager {
	return &Manager{
		api:    api,
		store:  st,
		toast:  toast,
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger routes the manager's internal debug lines (silent failure
// paths) to l. They are never shown in the UI.
func (m *Manager) SetLogger(l *log.Logger) {
	m.logger = l
}

// Initialize restores a persisted session. Run once at startup.
//
// No stored token means an anonymous start. A stored token is trusted
// only provisionally: the profile fetch decides. Any failure purges the
// stored credentials and falls back to anonymous — an expired token after
// time away is expected, so nothing is surfaced to the user.
func (m *Manager) Initialize(ctx context.Context) {
	tok := m.store.AccessToken()
	if tok == "" {
		return
	}
	if exp, ok := TokenExpiry(tok); ok && time.Now().After(exp) {
		m.logger.Printf("session: stored token already expired, starting anonymous")
		m.purge()
		return
	}

	m.api.SetToken(tok)
	m.setLoading(true)
	defer m.setLoading(false)

	u, err := m.api.GetProfile(ctx)
	if err != nil {
		m.logger.Printf("session: stored token rejected: %v", err)
		m.api.SetToken("")
		m.purge()
		return
	}

	role := domain.Role(m.store.Role())
	if !domain.ValidRole(string(role)) {
		role = domain.RolePatient
	}
	u.Role = role

	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

// Login authenticates with email and password. role is whatever the user
// picked on the form; it is persisted locally and merged into the user
// but never sent to the backend. On failure the error is both recorded
// on the manager and returned so the form can react.
func (m *Manager) Login(ctx context.Context, email, password string, role domain.Role) error {
	m.mu.Lock()
	m.loading = true
	m.err = ""
	m.mu.Unlock()
	defer m.setLoading(false)

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.setErr(client.Message(err))
		return err
	}

	if err := m.store.Save(resp.Session.AccessToken, resp.Session.RefreshToken, string(role)); err != nil {
		// A failed persist only costs the next restart; the session is live.
		m.logger.Printf("session: persist credentials: %v", err)
	}
	m.api.SetToken(resp.Session.AccessToken)

	u := resp.User
	u.Role = role
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()

	if m.toast != nil {
		m.toast.Toast("Signed in", "Welcome back, "+u.FirstName())
	}
	return nil
}

// Signup registers a new account. New accounts are always patients —
// the doctor role can only be chosen at a later login. The caller is
// expected to route back to the login form; Signup does not navigate.
func (m *Manager) Signup(ctx context.Context, email, password, fullName string) error {
	m.mu.Lock()
	m.loading = true
	m.err = ""
	m.mu.Unlock()
	defer m.setLoading(false)

	resp, err := m.api.Signup(ctx, email, password, fullName)
	if err != nil {
		m.setErr(client.Message(err))
		return err
	}

	if err := m.store.Save(resp.Session.AccessToken, resp.Session.RefreshToken, string(domain.RolePatient)); err != nil {
		m.logger.Printf("session: persist credentials: %v", err)
	}
	m.api.SetToken(resp.Session.AccessToken)

	u := resp.User
	u.Role = domain.RolePatient
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()

	if m.toast != nil {
		m.toast.Toast("Account created", "Welcome to Vitalink, "+u.FirstName())
	}
	return nil
}

// Logout ends the session. The server-side invalidation is best-effort;
// local state is cleared unconditionally, so from the caller's point of
// view logout cannot fail.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Printf("session: server logout failed: %v", err)
	}
	m.api.SetToken("")
	m.purge()

	m.mu.Lock()
	m.user = nil
	m.err = ""
	m.loading = false
	m.mu.Unlock()

	if m.toast != nil {
		m.toast.Toast("Signed out", "")
	}
}

// ClearError drops the last operation error. The auth view calls this
// when switching between the login and signup forms so a stale message
// doesn't bleed across.
func (m *Manager) ClearError() {
	m.setErr("")
}

// User returns the authenticated user, or nil when anonymous.
func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsLoading reports whether an auth operation is in flight. The UI uses
// this to disable the submit control; operations are not re-entrant.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the last operation's error message, or "".
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Expiry returns the exp claim of the stored access token, if it is a
// JWT that carries one.
func (m *Manager) Expiry() (time.Time, bool) {
	return TokenExpiry(m.store.AccessToken())
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) setErr(s string) {
	m.mu.Lock()
	m.err = s
	m.mu.Unlock()
}

func (m *Manager) purge() {
	if err := m.store.Clear(); err != nil {
		m.logger.Printf("session: clear credentials: %v", err)
	}
}
