package handlers

import (
	"context"
	"net/http"
	"testing"

	"houndtrack/internal/auth"
	"houndtrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPassword(t *testing.T, env *testEnv, personID, password string) {
	t.Helper()
	hash, err := auth.NewService(env.cfg).HashPassword(password)
	require.NoError(t, err)
	person, err := env.persons.GetByID(context.Background(), personID)
	require.NoError(t, err)
	person.PasswordHash = hash
	env.persons.Seed(*person)
}

func sessionCookie(w http.Header) *http.Cookie {
	for _, c := range (&http.Response{Header: w}).Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	seedPassword(t, env, "p-admin", "hunter2racing")

	w, resp := env.request(t, http.MethodPost, "/api/auth/login", nil,
		models.LoginRequest{Email: "alva@example.test", Password: "hunter2racing"})
	require.Equal(t, http.StatusOK, w.Code, "error: %s", resp.Error)
	require.True(t, resp.OK)

	var user models.SessionUser
	require.NoError(t, jsonUnmarshal(resp.Data, &user))
	assert.Equal(t, "p-admin", user.PersonID)
	assert.Equal(t, "ADMIN", user.SystemRole)

	cookie := sessionCookie(w.Header())
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// The minted cookie works on a session-gated route.
	w, resp = env.request(t, http.MethodGet, "/api/auth/me", cookie, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.OK)

	person, err := env.persons.GetByID(context.Background(), "p-admin")
	require.NoError(t, err)
	assert.NotNil(t, person.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	seedPassword(t, env, "p-admin", "hunter2racing")

	w, resp := env.request(t, http.MethodPost, "/api/auth/login", nil,
		models.LoginRequest{Email: "alva@example.test", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", resp.Error)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/auth/login", nil,
		models.LoginRequest{Email: "nobody@example.test", Password: "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Unknown account and wrong password are indistinguishable.
	assert.Equal(t, "invalid email or password", resp.Error)
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/auth/login", nil,
		map[string]interface{}{"email": "alva@example.test"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email and password are required", resp.Error)
}

func TestMeWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not signed in", resp.Error)
}

func TestMeReturnsUserAndRole(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/auth/me", env.viewerCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		User models.SessionUser `json:"user"`
		Role models.Role        `json:"role"`
	}
	require.NoError(t, jsonUnmarshal(resp.Data, &data))
	assert.Equal(t, "p-viewer", data.User.PersonID)
	assert.Equal(t, "VIEWER", data.Role.Title)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/auth/logout", env.adminCookie, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.OK)

	cookie := sessionCookie(w.Header())
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
