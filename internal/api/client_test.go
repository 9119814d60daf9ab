package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil)
}

func TestLoginSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["email"])

		json.NewEncoder(w).Encode(LoginResult{Token: "tok-1", Email: "user@example.com", Name: "User"})
	})

	result, err := c.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, "User", result.Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	// A 401 on login means bad credentials, never an expired session, and
	// must not fire the global auth-failure hook.
	fired := false
	c.SetAuthFailureHandler(func() { fired = true })

	_, err := c.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, fired)
}

func TestLoginMissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"email": "user@example.com"})
	})

	_, err := c.Login(context.Background(), "user@example.com", "secret")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Block{})
	})
	c.SetTokenSource(func() string { return "tok-42" })

	_, err := c.GetChain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-42", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Transaction{})
	})

	_, err := c.GetPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestAuthFailureHookFires(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		fired := 0
		c.SetAuthFailureHandler(func() { fired++ })

		_, err := c.GetChain(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired, "status %d", status)
		assert.Equal(t, 1, fired, "status %d", status)
		assert.True(t, IsAuthFailure(err))
	}
}

func TestValidationErrorFromBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "amount must be positive"})
	})

	_, err := c.CreateTransaction(context.Background(), Transaction{Recipient: "bob", Amount: -1})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount must be positive", validationErr.Message)
}

func TestServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ValidateChain(context.Background())
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
}

func TestNetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", nil)

	_, err := c.GetChain(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, errors.Is(err, ErrSessionExpired))
}

func TestMineBlockQueryParam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mine", r.URL.Path)
		assert.Equal(t, "miner one", r.URL.Query().Get("minerAddress"))
		json.NewEncoder(w).Encode(Block{Index: 7, Nonce: 12345, Hash: "00abc"})
	})

	block, err := c.MineBlock(context.Background(), "miner one")
	require.NoError(t, err)
	assert.Equal(t, 7, block.Index)
}

func TestCreateTransactionNullSender(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(Transaction{Recipient: "bob", Amount: 5})
	})

	_, err := c.CreateTransaction(context.Background(), Transaction{Recipient: "bob", Amount: 5})
	require.NoError(t, err)

	// Absent sender must still appear on the wire, as JSON null.
	sender, ok := raw["sender"]
	require.True(t, ok)
	assert.Equal(t, "null", string(sender))
}

func TestGetBalance(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balance/miner1", r.URL.Path)
		json.NewEncoder(w).Encode(Balance{Address: "miner1", Balance: 300})
	})

	b, err := c.GetBalance(context.Background(), "miner1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, b.Balance)
}

func TestSenderLabel(t *testing.T) {
	alice := "alice"
	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{"named sender", Transaction{Sender: &alice}, "alice"},
		{"nil sender", Transaction{}, "SYSTEM"},
		{"empty sender", Transaction{Sender: new(string)}, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.SenderLabel())
		})
	}
}
