// Package api is the HTTP client for the remote blockchain-simulator
// service. All failures are normalized into the taxonomy in errors.go
// before they leave this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client is a blockchain-simulator API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// tokenFn supplies the current session token; empty means anonymous.
	tokenFn func() string
	// onAuthFailure fires on any 401/403 from an authenticated call. The
	// session manager hooks this to clear credentials globally.
	onAuthFailure func()
}

// NewClient creates a client for the given base URL (e.g.
// "http://localhost:8080/api").
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logger,
		tokenFn: func() string { return "" },
	}
}

// SetTokenSource wires the session token supplier. Once a token exists it
// is attached as a bearer Authorization header to every request.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenFn = fn
}

// SetAuthFailureHandler wires the global 401/403 hook.
func (c *Client) SetAuthFailureHandler(fn func()) {
	c.onAuthFailure = fn
}

// errorBody is the error shape the server uses; some endpoints report
// under "error", others under "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// do executes one JSON request. public marks the login endpoint, whose 401
// means bad credentials rather than an expired session.
func (c *Client) do(ctx context.Context, method, path string, public bool, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.tokenFn(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("unmarshal response: %w", err)
			}
		}
		return nil
	}

	var eb errorBody
	_ = json.Unmarshal(respBody, &eb)

	c.logger.Warn("request rejected",
		"method", method, "path", path,
		"request_id", requestID, "status", resp.StatusCode, "body", eb.text())

	switch {
	case resp.StatusCode == http.StatusUnauthorized && public:
		return ErrInvalidCredentials
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return ErrSessionExpired
	case resp.StatusCode == http.StatusBadRequest && eb.text() != "":
		return &ValidationError{Message: eb.text()}
	default:
		return &ServerError{StatusCode: resp.StatusCode, Message: eb.text()}
	}
}

// Login authenticates and returns the token and display identity.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", true, body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: "no token in login response"}
	}
	return &result, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Message, error) {
	var result Message
	if err := c.do(ctx, http.MethodPost, "/auth/signup", false, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ForgotPassword requests a recovery code for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Message, error) {
	var result Message
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", false, map[string]string{"email": email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyOTP checks a recovery code.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*Message, error) {
	body := map[string]string{"email": email, "otp": otp}

	var result Message
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", false, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResetPassword sets a new password using a verified recovery code.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (*Message, error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}

	var result Message
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", false, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetChain returns the full chain, genesis first.
func (c *Client) GetChain(ctx context.Context) ([]Block, error) {
	var blocks []Block
	if err := c.do(ctx, http.MethodGet, "/chain", false, nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// GetPending returns the transactions waiting to be mined.
func (c *Client) GetPending(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := c.do(ctx, http.MethodGet, "/pending", false, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// CreateTransaction submits a transaction. A nil Sender marshals as JSON
// null, the wire shape for reward-style transactions.
func (c *Client) CreateTransaction(ctx context.Context, tx Transaction) (*Transaction, error) {
	var created Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", false, tx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MineBlock asks the server to mine a block, crediting minerAddress.
func (c *Client) MineBlock(ctx context.Context, minerAddress string) (*Block, error) {
	path := "/mine?minerAddress=" + url.QueryEscape(minerAddress)

	var block Block
	if err := c.do(ctx, http.MethodPost, path, false, nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// ValidateChain asks the server to verify chain integrity.
func (c *Client) ValidateChain(ctx context.Context) (*ValidationResult, error) {
	var result ValidationResult
	if err := c.do(ctx, http.MethodGet, "/validate", false, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBalance returns the balance for address.
func (c *Client) GetBalance(ctx context.Context, address string) (*Balance, error) {
	var result Balance
	if err := c.do(ctx, http.MethodGet, "/balance/"+url.PathEscape(address), false, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
