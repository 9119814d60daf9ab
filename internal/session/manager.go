// Package session owns authentication state: the login/logout/signup
// operations, restoring a persisted session at startup, and the global
// reaction to authorization failures from any outbound call.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/store"
)

// Status is the authentication state of the client.
type Status int

const (
	Anonymous Status = iota
	Authenticating
	Authenticated
	AuthFailed
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthFailed:
		return "auth_failed"
	default:
		return "unknown"
	}
}

// authClient is the slice of the API the manager needs.
type authClient interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.Message, error)
}

// Manager is the process-wide session singleton. Methods are safe to call
// from command goroutines; the mutex covers everything because login
// commands run off the update loop.
type Manager struct {
	mu     sync.Mutex
	creds  store.CredentialStore
	client authClient
	logger *slog.Logger

	status Status
	token  string
	email  string
	name   string
}

// NewManager creates a manager over the given credential store and client.
func NewManager(creds store.CredentialStore, client authClient, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		creds:  creds,
		client: client,
		logger: logger,
		status: Anonymous,
	}
}

// Initialize restores a persisted session. No network call is made: a
// stored token means Authenticated, otherwise Anonymous.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	creds, err := m.creds.Load()
	if err != nil {
		return err
	}

	if creds.AuthToken != "" {
		m.token = creds.AuthToken
		m.email = creds.UserEmail
		m.name = creds.UserName
		m.status = Authenticated
		m.logger.Info("session restored", "email", m.email)
	} else {
		m.status = Anonymous
	}

	return nil
}

// BeginLogin marks the session as authenticating. Called from the update
// loop before the login command runs.
func (m *Manager) BeginLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = Authenticating
}

// Login authenticates against the remote service. On success the token and
// identity are persisted and the session becomes Authenticated; on failure
// the session becomes AuthFailed. There is no automatic retry.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	result, err := m.client.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.status = AuthFailed
		m.token = ""
		m.logger.Warn("login failed", "email", email, "error", err)
		return nil, err
	}

	if result.Email == "" {
		result.Email = email
	}
	if result.Name == "" {
		result.Name = "User"
	}

	if err := m.creds.Save(&store.Credentials{
		AuthToken: result.Token,
		UserEmail: result.Email,
		UserName:  result.Name,
	}); err != nil {
		m.status = AuthFailed
		m.token = ""
		return nil, err
	}

	m.token = result.Token
	m.email = result.Email
	m.name = result.Name
	m.status = Authenticated
	m.logger.Info("login succeeded", "email", m.email)

	return result, nil
}

// Signup is a stateless pass-through to the remote signup endpoint; it
// never touches session state.
func (m *Manager) Signup(ctx context.Context, req api.SignupRequest) (*api.Message, error) {
	return m.client.Signup(ctx, req)
}

// Logout clears the credential store and resets the session to Anonymous.
// It has no network effect and is safe to call repeatedly.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked("logout")
}

// HandleAuthFailure is the global 401/403 hook: any authenticated request
// that is rejected clears the credential store and forces Anonymous,
// regardless of which feature issued the call. Repeated triggers have no
// additional effect.
func (m *Manager) HandleAuthFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == Anonymous && m.token == "" {
		return
	}
	if err := m.clearLocked("auth failure"); err != nil {
		m.logger.Error("failed to clear credentials", "error", err)
	}
}

func (m *Manager) clearLocked(reason string) error {
	m.token = ""
	m.email = ""
	m.name = ""
	m.status = Anonymous
	m.logger.Info("session cleared", "reason", reason)
	return m.creds.Clear()
}

// Status returns the current authentication state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Token returns the current session token, or "" when anonymous. Wired
// into the API client as its token source.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Identity returns the display name and email of the signed-in user.
func (m *Manager) Identity() (name, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name, m.email
}
