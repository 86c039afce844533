// Package client is the Go consumer of the role storage API. It is
// what the admin console's role editor talks through: it owns the
// session cookie, normalizes outgoing drafts and turns envelope
// failures into typed errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync/atomic"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"
)

// Client talks to a portal instance. It is safe for concurrent use,
// but allows only one mutation in flight at a time: a role save that
// overlaps another returns ErrSaveInFlight instead of queueing.
type Client struct {
	baseURL string
	http    *http.Client
	saving  atomic.Bool
}

// New creates a client for the portal at baseURL. When httpClient is
// nil a default client with a cookie jar is used, so the session
// cookie set by Login persists across calls.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	var user models.SessionUser
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListRoles fetches every role. The result is never nil on success.
func (c *Client) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := c.do(ctx, http.MethodGet, "/api/user_role/list", nil, &roles); err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return roles, nil
}

// GetRole fetches one role by id.
func (c *Client) GetRole(ctx context.Context, id int) (*models.Role, error) {
	var role models.Role
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/user_role/get/%d", id), nil, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole registers a new role from a draft. The draft goes out
// normalized: title trimmed and upper-cased, every registered scope
// key present.
func (c *Client) CreateRole(ctx context.Context, draft permission.Draft) (*models.Role, error) {
	if !c.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInFlight
	}
	defer c.saving.Store(false)

	var role models.Role
	err := c.do(ctx, http.MethodPost, "/api/user_role/register",
		models.RoleDraftRequest{Draft: draft}, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole replaces the role's title and scopes with the draft.
func (c *Client) UpdateRole(ctx context.Context, id int, draft permission.Draft) (*models.Role, error) {
	if !c.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInFlight
	}
	defer c.saving.Store(false)

	var role models.Role
	err := c.do(ctx, http.MethodPost, "/api/user_role/edit",
		models.EditRoleRequest{RoleID: id, Draft: draft}, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole removes the role. Protected roles and roles with assigned
// users come back as ErrProtectedRole and ErrRoleInUse.
func (c *Client) DeleteRole(ctx context.Context, id int) error {
	if !c.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer c.saving.Store(false)

	return c.do(ctx, http.MethodPost, "/api/user_role/delete",
		models.DeleteRoleRequest{RoleID: id, Confirm: true}, nil)
}

// do runs one request and decodes the envelope. out, when non-nil,
// receives the envelope's data field.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &NetworkError{Op: op, err: err}
	}

	var env struct {
		OK    bool            `json:"ok"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &NetworkError{Op: op, err: fmt.Errorf("invalid response body: %w", err)}
	}

	if !env.OK {
		return classify(resp.StatusCode, env.Error)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &NetworkError{Op: op, err: fmt.Errorf("invalid response data: %w", err)}
		}
	}
	return nil
}

// classify maps a failed envelope to a typed error. Only the "Not
// signed in" message means session loss; other 401s, like a failed
// login, are ordinary rejections.
func classify(status int, message string) error {
	if message == models.NotSignedInError {
		return &AuthError{Message: message}
	}

	apiErr := &APIError{Status: status, Message: message}
	switch {
	case status == http.StatusNotFound:
		apiErr.err = ErrNotFound
	case status == http.StatusForbidden:
		apiErr.err = ErrForbidden
	case status == http.StatusConflict:
		apiErr.err = ErrRoleExists
	case strings.Contains(message, "protected role"):
		apiErr.err = ErrProtectedRole
	case strings.Contains(message, "assigned users"):
		apiErr.err = ErrRoleInUse
	}
	return apiErr
}
