// Package authgw is the client for the external single-operator auth
// endpoint: one URL, JSON action bodies, {status, message} replies.
package authgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

var (
	// ErrNotConfigured indicates no endpoint URL is set; no call is made.
	ErrNotConfigured = errors.New("authgw: endpoint not configured")
	// ErrNotLoggedIn indicates an operation that requires held credentials.
	ErrNotLoggedIn = errors.New("authgw: not logged in")
	// ErrValidation indicates a request rejected before any network call.
	ErrValidation = errors.New("authgw: invalid request")
	// ErrRejected indicates the endpoint answered with a non-success status.
	ErrRejected = errors.New("authgw: request rejected")
	// ErrProtocol indicates a response that is not the expected JSON shape.
	ErrProtocol = errors.New("authgw: unexpected response")
)

// Client talks to the configured endpoint and holds the operator's current
// credentials in memory after a successful login, so credential rotation can
// identify the caller the way the original login form did.
type Client struct {
	endpoint string
	http     *http.Client

	mu       sync.Mutex
	email    string
	password string
}

func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: strings.TrimSpace(endpoint), http: httpClient}
}

// Configured reports whether an endpoint URL is set.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// Endpoint returns the configured URL; it doubles as the contact-form
// submission target stamped into published documents.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type gatewayReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Login posts the credentials and, on success, holds them for later
// credential rotation. Any failure leaves the client logged out.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	reply, err := c.post(ctx, map[string]string{
		"action":   "login",
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if reply.Status != "success" {
		message := reply.Message
		if message == "" {
			message = "Invalid credentials"
		}
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}

	c.mu.Lock()
	c.email = email
	c.password = password
	c.mu.Unlock()
	return nil
}

// UpdateCredentials rotates the remote credentials. At least one of newEmail
// and newPassword must be set, and a non-empty confirmation must match the
// new password; both checks happen before any network call. On success the
// held credentials are cleared: the operator must log in again.
func (c *Client) UpdateCredentials(ctx context.Context, newEmail, newPassword, confirmPassword string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if newPassword != "" && newPassword != confirmPassword {
		return fmt.Errorf("%w: new passwords do not match", ErrValidation)
	}
	if newEmail == "" && newPassword == "" {
		return fmt.Errorf("%w: enter a new email or password to update", ErrValidation)
	}

	c.mu.Lock()
	currentEmail, currentPassword := c.email, c.password
	c.mu.Unlock()
	if currentEmail == "" {
		return ErrNotLoggedIn
	}

	reply, err := c.post(ctx, map[string]string{
		"action":          "update_credentials",
		"currentEmail":    currentEmail,
		"currentPassword": currentPassword,
		"newEmail":        newEmail,
		"newPassword":     newPassword,
	})
	if err != nil {
		return err
	}
	if reply.Status != "success" {
		message := reply.Message
		if message == "" {
			message = "update rejected"
		}
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}

	// Remote credentials changed; the held ones are stale.
	c.Logout()
	return nil
}

// Logout drops the held credential input.
func (c *Client) Logout() {
	c.mu.Lock()
	c.email = ""
	c.password = ""
	c.mu.Unlock()
}

// LoggedIn reports whether credentials from a successful login are held.
func (c *Client) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email != ""
}

func (c *Client) post(ctx context.Context, body map[string]string) (gatewayReply, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return gatewayReply{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return gatewayReply{}, fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return gatewayReply{}, fmt.Errorf("reach auth endpoint: %w", err)
	}
	defer res.Body.Close()

	text, err := io.ReadAll(res.Body)
	if err != nil {
		return gatewayReply{}, fmt.Errorf("read auth response: %w", err)
	}

	var reply gatewayReply
	if err := json.Unmarshal(text, &reply); err != nil {
		// Apps-Script-style backends return an HTML error page when
		// misdeployed; treat anything non-JSON as a protocol failure.
		return gatewayReply{}, fmt.Errorf("%w: endpoint returned non-JSON", ErrProtocol)
	}
	return reply, nil
}
