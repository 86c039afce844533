package handlers

import (
	"context"
	"net/http"
	"testing"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"
	"houndtrack/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChangeRow(t *testing.T, env *testEnv, table, pk, changedBy string) {
	t.Helper()
	by := changedBy
	require.NoError(t, env.changeLogs.Create(context.Background(), &models.CreateChangeLogRequest{
		ChangedTable: table,
		RecordPK:     pk,
		Operation:    models.ChangeOpUpdate,
		ChangedBy:    &by,
	}))
}

func scribeCookie(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	env.roles.Seed(models.Role{Title: "SCRIBE", Grants: testutil.GrantsWith(map[string]permission.Scope{
		"viewChangeLogScope": permission.Self,
	})}, false)
	env.persons.Seed(models.Person{
		PersonID: "p-scribe", FirstName: "Signe", LastName: "Falk",
		Email: "signe@example.test", SystemRole: "SCRIBE",
	})
	return testutil.SessionCookieFor(t, env.cfg, models.SessionUser{
		PersonID: "p-scribe", FirstName: "Signe", LastName: "Falk", SystemRole: "SCRIBE",
	})
}

func TestChangeLogListAllScope(t *testing.T) {
	env := newTestEnv(t)
	seedChangeRow(t, env, "user_role", "1", "p-admin")
	seedChangeRow(t, env, "news", "4", "p-scribe")

	w, resp := env.request(t, http.MethodGet, "/api/change_log/get", env.adminCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.ChangeLog
	require.NoError(t, jsonUnmarshal(resp.Data, &logs))
	require.Len(t, logs, 2)
	// Newest first.
	assert.Equal(t, "news", logs[0].ChangedTable)
}

func TestChangeLogListSelfScope(t *testing.T) {
	env := newTestEnv(t)
	cookie := scribeCookie(t, env)
	seedChangeRow(t, env, "user_role", "1", "p-admin")
	seedChangeRow(t, env, "news", "4", "p-scribe")

	w, resp := env.request(t, http.MethodGet, "/api/change_log/get", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.ChangeLog
	require.NoError(t, jsonUnmarshal(resp.Data, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "news", logs[0].ChangedTable)
}

func TestChangeLogListNoScope(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/change_log/get", env.viewerCookie, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not allowed to view change logs", resp.Error)
}

func TestChangeLogGetSelfScopeOwnership(t *testing.T) {
	env := newTestEnv(t)
	cookie := scribeCookie(t, env)
	seedChangeRow(t, env, "user_role", "1", "p-admin")
	seedChangeRow(t, env, "news", "4", "p-scribe")

	w, resp := env.request(t, http.MethodGet, "/api/change_log/get/2", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entry models.ChangeLog
	require.NoError(t, jsonUnmarshal(resp.Data, &entry))
	assert.Equal(t, "news", entry.ChangedTable)

	w, resp = env.request(t, http.MethodGet, "/api/change_log/get/1", cookie, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not allowed to view this change log", resp.Error)
}

func TestChangeLogGetUnknown(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/change_log/get/42", env.adminCookie, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Change log does not exist", resp.Error)
}

func TestSessionWithDeletedRoleIsNotSignedIn(t *testing.T) {
	env := newTestEnv(t)
	id := env.roles.Seed(models.Role{Title: "TEMP", Grants: testutil.GrantsAll()}, false)
	cookie := testutil.SessionCookieFor(t, env.cfg, models.SessionUser{
		PersonID: "p-temp", FirstName: "Tove", LastName: "Eng", SystemRole: "TEMP",
	})

	w, resp := env.request(t, http.MethodGet, "/api/change_log/get", cookie, nil)
	assert.Equal(t, http.StatusOK, w.Code, "error: %s", resp.Error)

	require.NoError(t, env.roles.Delete(context.Background(), id))

	w, resp = env.request(t, http.MethodGet, "/api/change_log/get", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not signed in", resp.Error)
}
