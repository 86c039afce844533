package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(server.URL, nil)
	require.NoError(t, err)
	return c, server
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestListRoles(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/user_role/list", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok": true,
			"data": []map[string]interface{}{
				{"id": 1, "title": "ADMIN", "viewDogScope": 2, "editDogScope": 2},
				{"id": 2, "title": "PUBLIC", "viewDogScope": 2, "editDogScope": 0},
			},
		})
	}))

	roles, err := c.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "ADMIN", roles[0].Title)
	assert.Equal(t, permission.All, roles[0].Grants.Get("viewDogScope"))
	assert.Equal(t, permission.None, roles[1].Grants.Get("editDogScope"))
}

func TestListRolesEmptyDataIsNotNil(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "data": []interface{}{}})
	}))

	roles, err := c.ListRoles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestCreateRoleNormalizesOutgoingDraft(t *testing.T) {
	var body map[string]interface{}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user_role/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"ok":   true,
			"data": map[string]interface{}{"id": 5, "title": "COACH"},
		})
	}))

	draft := permission.SetField(permission.EmptyDraft(), "title", "  coach  ")
	draft = permission.SetField(draft, "viewMeetScope", 2)
	draft = permission.SetField(draft, "editMeetScope", 1)

	role, err := c.CreateRole(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, 5, role.ID)

	// The wire body carries the normalized title and the full scope set.
	assert.Equal(t, "COACH", body["title"])
	assert.Equal(t, float64(2), body["viewMeetScope"])
	assert.Equal(t, float64(1), body["editMeetScope"])
	assert.Equal(t, float64(0), body["viewDogScope"])
}

func TestUpdateRoleSendsRoleID(t *testing.T) {
	var body map[string]interface{}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user_role/edit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":   true,
			"data": map[string]interface{}{"id": 9, "title": "STEWARD"},
		})
	}))

	draft := permission.SetField(permission.EmptyDraft(), "title", "STEWARD")
	role, err := c.UpdateRole(context.Background(), 9, draft)
	require.NoError(t, err)
	assert.Equal(t, 9, role.ID)
	assert.Equal(t, float64(9), body["roleId"])
}

func TestDeleteRoleConfirms(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user_role/delete", r.URL.Path)
		var req models.DeleteRoleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.RoleID)
		assert.True(t, req.Confirm)
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
	}))

	require.NoError(t, c.DeleteRole(context.Background(), 3))
}

func TestNotSignedInBecomesAuthError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized,
			map[string]interface{}{"ok": false, "error": "Not signed in"})
	}))

	_, err := c.ListRoles(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Not signed in", authErr.Message)
}

func TestNotSignedInMessageWinsOverStatus(t *testing.T) {
	// Some proxies flatten statuses; the distinguished message is
	// still authoritative.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK,
			map[string]interface{}{"ok": false, "error": "Not signed in"})
	}))

	_, err := c.ListRoles(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestFailedLoginIsNotSessionLoss(t *testing.T) {
	// A rejected login also comes back as 401, but only the "Not
	// signed in" message marks a lost session.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized,
			map[string]interface{}{"ok": false, "error": "invalid email or password"})
	}))

	_, err := c.Login(context.Background(), "judge@example.com", "wrong")
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestRejectionClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		sentinel error
	}{
		{"unknown role", http.StatusNotFound, "User role does not exist", ErrNotFound},
		{"forbidden", http.StatusForbidden, "Not allowed to edit UserRole", ErrForbidden},
		{"duplicate title", http.StatusConflict, "User role already exists", ErrRoleExists},
		{"protected", http.StatusBadRequest, "cannot delete protected role", ErrProtectedRole},
		{"in use", http.StatusBadRequest, "cannot delete role with assigned users", ErrRoleInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status,
					map[string]interface{}{"ok": false, "error": tt.message})
			}))

			err := c.DeleteRole(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	c, err := New(server.URL, nil)
	require.NoError(t, err)
	server.Close()

	_, err = c.ListRoles(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestNonJSONBodyIsNetworkError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := c.ListRoles(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestSecondMutationWhileSavingIsRejected(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	var arrivedOnce sync.Once
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrivedOnce.Do(func() { close(arrived) })
		<-release
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"ok":   true,
			"data": map[string]interface{}{"id": 1, "title": "COACH"},
		})
	}))

	draft := permission.SetField(permission.EmptyDraft(), "title", "COACH")
	done := make(chan error, 1)
	go func() {
		_, err := c.CreateRole(context.Background(), draft)
		done <- err
	}()

	<-arrived
	_, err := c.UpdateRole(context.Background(), 2, draft)
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(release)
	require.NoError(t, <-done)

	// The guard clears once the first save finishes.
	_, err = c.CreateRole(context.Background(), draft)
	require.NoError(t, err)
}

func TestReadsAllowedWhileSaving(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user_role/register" {
			close(arrived)
			<-release
			writeJSON(w, http.StatusCreated, map[string]interface{}{
				"ok":   true,
				"data": map[string]interface{}{"id": 1, "title": "COACH"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "data": []interface{}{}})
	}))

	draft := permission.SetField(permission.EmptyDraft(), "title", "COACH")
	done := make(chan error, 1)
	go func() {
		_, err := c.CreateRole(context.Background(), draft)
		done <- err
	}()

	<-arrived
	_, err := c.ListRoles(context.Background())
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
}

func TestNoRetryOnFailure(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusInternalServerError,
			map[string]interface{}{"ok": false, "error": "failed to create user role"})
	}))

	draft := permission.SetField(permission.EmptyDraft(), "title", "COACH")
	_, err := c.CreateRole(context.Background(), draft)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, errors.Is(err, ErrSaveInFlight))
}
