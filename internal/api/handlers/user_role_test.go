package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraftBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":         title,
		"viewDogScope":  2,
		"editDogScope":  1,
		"viewNewsScope": 2,
	}
}

func TestUserRoleRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/user_role/list", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.OK)
	assert.Equal(t, "Not signed in", resp.Error)
}

func TestUserRoleRejectsTamperedCookie(t *testing.T) {
	env := newTestEnv(t)
	cookie := &http.Cookie{Name: env.adminCookie.Name, Value: env.adminCookie.Value + "x"}

	w, resp := env.request(t, http.MethodGet, "/api/user_role/list", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not signed in", resp.Error)
}

func TestUserRoleList(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/user_role/list", env.adminCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.OK)

	var roles []models.Role
	require.NoError(t, jsonUnmarshal(resp.Data, &roles))
	require.Len(t, roles, 2)
	assert.Equal(t, "ADMIN", roles[0].Title)
	assert.Equal(t, "VIEWER", roles[1].Title)
	assert.Equal(t, permission.All, roles[0].Grants.Get("editDogScope"))
}

func TestViewerCanListButNotMutate(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/user_role/list", env.viewerCookie, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.OK)

	w, resp = env.request(t, http.MethodPost, "/api/user_role/register", env.viewerCookie,
		validDraftBody("COACH"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not allowed to edit UserRole", resp.Error)
}

func TestRegisterRole(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/user_role/register", env.adminCookie,
		validDraftBody("  coach  "))
	require.Equal(t, http.StatusCreated, w.Code, "error: %s", resp.Error)
	require.True(t, resp.OK)

	var role models.Role
	require.NoError(t, jsonUnmarshal(resp.Data, &role))
	assert.Equal(t, "COACH", role.Title)
	assert.NotZero(t, role.ID)
	assert.Equal(t, permission.All, role.Grants.Get("viewDogScope"))
	assert.Equal(t, permission.Self, role.Grants.Get("editDogScope"))

	rows := env.changeLogs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "user_role", rows[0].ChangedTable)
	assert.Equal(t, models.ChangeOpInsert, rows[0].Operation)
	require.NotNil(t, rows[0].ChangedBy)
	assert.Equal(t, "p-admin", *rows[0].ChangedBy)
	assert.NotNil(t, rows[0].AfterData)
	assert.Nil(t, rows[0].BeforeData)
}

func TestRegisterRejectsInvalidDraft(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{
			name:    "empty title",
			body:    map[string]interface{}{"title": "   "},
			message: "title is required",
		},
		{
			name:    "title too long",
			body:    map[string]interface{}{"title": "ABCDEFGHIJKLMNOPQRSTU"},
			message: "title must be 20 characters or less",
		},
		{
			name: "edit exceeds view",
			body: map[string]interface{}{
				"title":         "COACH",
				"editClubScope": 2,
				"viewClubScope": 0,
			},
			message: "edit scope exceeds view scope for Club",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := env.request(t, http.MethodPost, "/api/user_role/register",
				env.adminCookie, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, resp.Error)
		})
	}

	assert.Empty(t, env.changeLogs.Rows())
}

func TestRegisterDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)

	// VIEWER already exists; the normalized title collides.
	w, resp := env.request(t, http.MethodPost, "/api/user_role/register", env.adminCookie,
		validDraftBody("viewer"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User role already exists", resp.Error)
}

func TestRegisterCoercesMalformedScopes(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/user_role/register", env.adminCookie,
		map[string]interface{}{
			"title":        "STEWARD",
			"viewDogScope": "all",
			"editDogScope": 1.5,
		})
	require.Equal(t, http.StatusCreated, w.Code, "error: %s", resp.Error)

	var role models.Role
	require.NoError(t, jsonUnmarshal(resp.Data, &role))
	assert.Equal(t, permission.None, role.Grants.Get("viewDogScope"))
	assert.Equal(t, permission.None, role.Grants.Get("editDogScope"))
}

func TestEditRole(t *testing.T) {
	env := newTestEnv(t)

	body := validDraftBody("Viewer Plus")
	body["roleId"] = 2
	w, resp := env.request(t, http.MethodPost, "/api/user_role/edit", env.adminCookie, body)
	require.Equal(t, http.StatusOK, w.Code, "error: %s", resp.Error)

	var role models.Role
	require.NoError(t, jsonUnmarshal(resp.Data, &role))
	assert.Equal(t, 2, role.ID)
	assert.Equal(t, "VIEWER PLUS", role.Title)

	rows := env.changeLogs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, models.ChangeOpUpdate, rows[0].Operation)
	assert.NotNil(t, rows[0].BeforeData)
	assert.NotNil(t, rows[0].AfterData)
}

func TestEditRequiresRoleID(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/user_role/edit", env.adminCookie,
		validDraftBody("COACH"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role ID is required", resp.Error)
}

func TestEditUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	body := validDraftBody("COACH")
	body["roleId"] = 99
	w, resp := env.request(t, http.MethodPost, "/api/user_role/edit", env.adminCookie, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User role does not exist", resp.Error)
}

func TestEditProtectedRole(t *testing.T) {
	env := newTestEnv(t)

	body := validDraftBody("ADMIN")
	body["roleId"] = 1
	w, resp := env.request(t, http.MethodPost, "/api/user_role/edit", env.adminCookie, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot modify protected role", resp.Error)
}

func TestDeleteRole(t *testing.T) {
	env := newTestEnv(t)
	id := env.roles.Seed(models.Role{Title: "RETIRED", Grants: permission.NewGrants()}, false)

	w, resp := env.request(t, http.MethodPost, "/api/user_role/delete", env.adminCookie,
		map[string]interface{}{"roleId": id, "confirm": true})
	require.Equal(t, http.StatusOK, w.Code, "error: %s", resp.Error)
	assert.True(t, resp.OK)

	w, resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/user_role/get/%d", id), env.adminCookie, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User role does not exist", resp.Error)

	rows := env.changeLogs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, models.ChangeOpDelete, rows[0].Operation)
	assert.NotNil(t, rows[0].BeforeData)
	assert.Nil(t, rows[0].AfterData)
}

func TestDeleteProtectedRole(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/user_role/delete", env.adminCookie,
		map[string]interface{}{"roleId": 1, "confirm": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot delete protected role", resp.Error)
}

func TestDeleteRoleInUse(t *testing.T) {
	env := newTestEnv(t)

	// VIEWER is assigned to p-viewer.
	w, resp := env.request(t, http.MethodPost, "/api/user_role/delete", env.adminCookie,
		map[string]interface{}{"roleId": 2, "confirm": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot delete role with assigned users", resp.Error)
}

func TestDeleteRequiresConfirm(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/user_role/delete", env.adminCookie,
		map[string]interface{}{"roleId": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role ID is required", resp.Error)
}

func TestGetRoleInvalidID(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/user_role/get/abc", env.adminCookie, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid role id", resp.Error)
}
