// Package services contains the data-synchronization core of the jobport
// client: the auth state machine, the job directory, the application
// ledger, the route guard, and the wiring that keeps the collections in
// step with the session.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apetrenko/jobport/internal/api"
	"github.com/apetrenko/jobport/internal/logging"
	"github.com/apetrenko/jobport/internal/models"
	"github.com/apetrenko/jobport/internal/session"
)

// AuthState is a snapshot of the authentication state machine. After every
// transition the invariant holds: IsAuthenticated == (User != nil && Token != "").
// Err carries the last failure as a human-readable message, "" when clean.
type AuthState struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Err             string
}

// RegisterResult tags the two phases of registration separately, so
// "account created but sign-in failed" is representable instead of being
// collapsed into a single failure.
type RegisterResult struct {
	AccountCreated bool
	SignedIn       bool
}

// AuthManager owns the authentication state machine: anonymous →
// authenticating → authenticated/failed. It persists the session on every
// change and notifies subscribers after each transition.
type AuthManager struct {
	api   api.Client
	store session.Store
	log   logging.Logger

	mu    sync.Mutex
	state AuthState
	subs  []func(AuthState)
}

func NewAuthManager(client api.Client, store session.Store, log logging.Logger) *AuthManager {
	return &AuthManager{api: client, store: store, log: log.With("component", "auth")}
}

// State returns a copy of the current snapshot.
func (m *AuthManager) State() AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the current bearer token, "" when anonymous. Suitable as
// an api.TokenSource.
func (m *AuthManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

// Subscribe registers fn to run synchronously after every state
// transition. Subscribers are invoked outside the state lock, in
// registration order, with a snapshot of the new state.
func (m *AuthManager) Subscribe(fn func(AuthState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// transition applies mut under the lock, re-establishes the
// authentication invariant, and notifies subscribers with the resulting
// snapshot.
func (m *AuthManager) transition(mut func(*AuthState)) AuthState {
	m.mu.Lock()
	mut(&m.state)
	m.state.IsAuthenticated = m.state.User != nil && m.state.Token != ""
	snapshot := m.state
	subs := make([]func(AuthState), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return snapshot
}

// persist mirrors the current state into durable storage: the pair is
// written only when both halves are present, removed otherwise. Storage
// failures are logged, never surfaced; a broken disk must not block a
// successful login.
func (m *AuthManager) persist(ctx context.Context) {
	st := m.State()
	if st.User != nil && st.Token != "" {
		if err := m.store.Save(ctx, models.Session{User: st.User, Token: st.Token}); err != nil {
			m.log.Error(ctx, "failed to persist session", "error", err)
		}
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear persisted session", "error", err)
	}
}

// Login authenticates against the backend. On failure the error state is
// recorded and the error is also returned so callers can branch; the
// token field is left untouched (only the user half is cleared, which is
// enough to drop IsAuthenticated and the persisted pair).
func (m *AuthManager) Login(ctx context.Context, email, password string) error {
	m.transition(func(s *AuthState) {
		s.Loading = true
		s.Err = ""
	})

	user, token, err := m.api.Login(ctx, email, password)
	if err != nil {
		msg := api.ErrorDetail(err, "Login failed")
		m.transition(func(s *AuthState) {
			s.Loading = false
			s.User = nil
			s.Err = msg
		})
		m.persist(ctx)
		m.log.Warn(ctx, "login failed", "email", email, "error", err)
		return fmt.Errorf("login: %w", err)
	}

	m.transition(func(s *AuthState) {
		s.Loading = false
		s.User = &user
		s.Token = token
		s.Err = ""
	})
	m.persist(ctx)
	m.log.Info(ctx, "login succeeded", "user", user.ID, "role", user.Role)
	return nil
}

// Register creates the account remotely, then performs an implicit Login
// with the same credentials. The two phases are reported separately: when
// the account exists but the sign-in failed, the result is
// {AccountCreated: true, SignedIn: false} and the error says so.
func (m *AuthManager) Register(ctx context.Context, email, password string, role models.Role) (RegisterResult, error) {
	m.transition(func(s *AuthState) {
		s.Loading = true
		s.Err = ""
	})

	if _, err := m.api.Register(ctx, email, password, role); err != nil {
		msg := api.ErrorDetail(err, "Registration failed")
		m.transition(func(s *AuthState) {
			s.Loading = false
			s.User = nil
			s.Err = msg
		})
		m.log.Warn(ctx, "registration failed", "email", email, "error", err)
		return RegisterResult{}, fmt.Errorf("register: %w", err)
	}

	if err := m.Login(ctx, email, password); err != nil {
		m.log.Warn(ctx, "account created but sign-in failed", "email", email, "error", err)
		return RegisterResult{AccountCreated: true}, fmt.Errorf("account created but sign-in failed: %w", err)
	}
	return RegisterResult{AccountCreated: true, SignedIn: true}, nil
}

// Logout clears the session immediately. No network call is involved; the
// backend token simply stops being used.
func (m *AuthManager) Logout(ctx context.Context) {
	m.transition(func(s *AuthState) {
		s.User = nil
		s.Token = ""
		s.Loading = false
		s.Err = ""
	})
	m.persist(ctx)
	m.log.Info(ctx, "logged out")
}

// ClearError drops the recorded failure message without touching the rest
// of the state.
func (m *AuthManager) ClearError() {
	m.transition(func(s *AuthState) { s.Err = "" })
}

// Restore loads the persisted session at process start. A complete pair
// is trusted without revalidating the token against the backend; the
// next 401 is what actually invalidates it. A half-session or malformed
// blob leaves the state anonymous and wipes the store.
func (m *AuthManager) Restore(ctx context.Context) {
	sess, err := m.store.Load(ctx)
	if err != nil {
		// Malformed persisted state is recovered locally and never
		// surfaced to the user.
		m.log.Warn(ctx, "discarding persisted session", "error", err)
		return
	}
	if !sess.Valid() {
		if sess.Token != "" || sess.User != nil {
			if err := m.store.Clear(ctx); err != nil {
				m.log.Error(ctx, "failed to clear partial session", "error", err)
			}
		}
		return
	}

	if exp, ok := tokenExpiry(sess.Token); ok && time.Now().After(exp) {
		m.log.Warn(ctx, "restored token is past its expiry; backend will reject it", "expired_at", exp)
	}

	m.transition(func(s *AuthState) {
		s.User = sess.User
		s.Token = sess.Token
		s.Loading = false
		s.Err = ""
	})
	m.log.Info(ctx, "session restored", "user", sess.User.ID, "role", sess.User.Role)
}

// tokenExpiry peeks at the token's exp claim without verifying the
// signature. Purely informational: the session is trusted either way.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
