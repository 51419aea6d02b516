package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInvalidCredentials maps the "invalid credentials" response sentinel.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound maps the "user not found" response sentinel.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists maps the "user already exists" response sentinel.
	ErrUserExists = errors.New("user already exists")
	// ErrRemoteUnavailable covers transport failures and non-2xx statuses.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrMalformedResponse covers bodies that do not decode to the contract.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrRequestRejected covers success:false answers with no known sentinel.
	ErrRequestRejected = errors.New("request rejected")
)

// Response message sentinels consumed by the client.
const (
	msgInvalidCredentials = "invalid credentials"
	msgUserNotFound       = "user not found"
	msgUserExists         = "user already exists"
)

const defaultTimeout = 10 * time.Second

// Limit on response bodies; the contract payloads are tiny.
const maxResponseBytes = 1 << 20

// AuthResult is the decoded outcome of a successful login or registration.
type AuthResult struct {
	Token   string
	Premium bool
}

// UserProfile is the authoritative user record returned by the
// entitlement endpoint.
type UserProfile struct {
	Name    string
	Premium bool
}

// Client calls the remote account backend. One Client instance is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a [Client] for the given base URL. A nil httpClient
// gets a default with a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Data    struct {
		IsPremium bool `json:"isPremium"`
	} `json:"data"`
}

type userResponse struct {
	User struct {
		Name      string `json:"name"`
		IsPremium bool   `json:"isPremium"`
	} `json:"user"`
}

type vipResponse struct {
	Success bool `json:"success"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.post(ctx, "/api/login", "", body, &resp); err != nil {
		return AuthResult{}, err
	}
	if err := mapAuthSentinel(resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.Token, Premium: resp.Data.IsPremium}, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp authResponse
	if err := c.post(ctx, "/api/register", "", body, &resp); err != nil {
		return AuthResult{}, err
	}
	if err := mapAuthSentinel(resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.Token, Premium: resp.Data.IsPremium}, nil
}

// User fetches the authoritative user record for the bearer token.
func (c *Client) User(ctx context.Context, token string) (UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/user", nil)
	if err != nil {
		return UserProfile{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var resp userResponse
	if err := c.do(req, &resp); err != nil {
		return UserProfile{}, err
	}
	return UserProfile{Name: resp.User.Name, Premium: resp.User.IsPremium}, nil
}

// RequestVIP submits the manual payment review request for the mobile-money
// number the user paid from.
func (c *Client) RequestVIP(ctx context.Context, token, numero string) error {
	body := map[string]string{"numero": numero}

	var resp vipResponse
	if err := c.post(ctx, "/api/demandeVip", token, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return ErrRequestRejected
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// mapAuthSentinel follows the backend's convention of answering 200 with a
// success flag: a known message sentinel maps to its typed error, any other
// failure is a plain rejection, and a nominal success must carry a token.
func mapAuthSentinel(resp authResponse) error {
	if !resp.Success {
		switch resp.Message {
		case msgInvalidCredentials:
			return ErrInvalidCredentials
		case msgUserNotFound:
			return ErrUserNotFound
		case msgUserExists:
			return ErrUserExists
		}
		return fmt.Errorf("%w: %s", ErrRequestRejected, resp.Message)
	}
	if resp.Token == "" {
		return fmt.Errorf("%w: success without token", ErrMalformedResponse)
	}
	return nil
}
