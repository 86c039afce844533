package models

import (
	"encoding/json"
	"testing"
	"time"

	"houndtrack/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleMarshalFlattensScopes(t *testing.T) {
	editedBy := "p-17"
	editedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	grants := permission.NewGrants()
	grants["viewDogScope"] = permission.All
	grants["editDogScope"] = permission.Self

	data, err := json.Marshal(Role{
		ID:           4,
		Title:        "PUBLIC",
		Grants:       grants,
		LastEditedBy: &editedBy,
		LastEditedAt: &editedAt,
	})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(4), out["id"])
	assert.Equal(t, "PUBLIC", out["title"])
	assert.Equal(t, "p-17", out["lastEditedBy"])
	assert.Equal(t, "2026-03-01T10:00:00Z", out["lastEditedAt"])
	assert.Equal(t, float64(2), out["viewDogScope"])
	assert.Equal(t, float64(1), out["editDogScope"])
	// Unset scopes are still emitted, as None.
	assert.Equal(t, float64(0), out["viewClubScope"])
	assert.Equal(t, float64(0), out["viewChangeLogScope"])
	// ChangeLog is view-only; no edit field exists for it.
	_, present := out["editChangeLogScope"]
	assert.False(t, present)
}

func TestRoleUnmarshalCoercesScopes(t *testing.T) {
	payload := `{
		"id": 7,
		"title": "COACH",
		"lastEditedBy": null,
		"lastEditedAt": null,
		"viewMeetScope": 2,
		"editMeetScope": "lots",
		"viewDogScope": 1.5,
		"viewUnicornScope": 2
	}`

	var role Role
	require.NoError(t, json.Unmarshal([]byte(payload), &role))
	assert.Equal(t, 7, role.ID)
	assert.Equal(t, "COACH", role.Title)
	assert.Nil(t, role.LastEditedBy)
	assert.Nil(t, role.LastEditedAt)
	assert.Equal(t, permission.All, role.Grants.Get("viewMeetScope"))
	assert.Equal(t, permission.None, role.Grants.Get("editMeetScope"))
	assert.Equal(t, permission.None, role.Grants.Get("viewDogScope"))
	// Unregistered fields never enter the grant set.
	_, present := role.Grants["viewUnicornScope"]
	assert.False(t, present)
}

func TestRoleDraftRoundTrip(t *testing.T) {
	grants := permission.NewGrants()
	grants["viewDogScope"] = permission.All
	grants["editDogScope"] = permission.Self
	role := Role{ID: 3, Title: "PUBLIC", Grants: grants}

	draft := role.Draft()
	assert.Equal(t, "PUBLIC", draft.Title)
	assert.Equal(t, permission.All, draft.Grants.Get("viewDogScope"))
	assert.Equal(t, permission.Self, draft.Grants.Get("editDogScope"))

	// The draft is an independent copy.
	draft = permission.SetField(draft, "viewDogScope", 0)
	assert.Equal(t, permission.All, role.Grants.Get("viewDogScope"))
}

func TestRoleDraftRequestNormalizesOutgoingTitle(t *testing.T) {
	draft := permission.SetField(permission.EmptyDraft(), "title", "  coach  ")
	draft = permission.SetField(draft, "viewNewsScope", 2)

	data, err := json.Marshal(RoleDraftRequest{Draft: draft})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "COACH", out["title"])
	assert.Equal(t, float64(2), out["viewNewsScope"])
	assert.Equal(t, float64(0), out["editNewsScope"])
}

func TestEditRoleRequestJSON(t *testing.T) {
	draft := permission.SetField(permission.EmptyDraft(), "title", "STEWARD")
	data, err := json.Marshal(EditRoleRequest{RoleID: 9, Draft: draft})
	require.NoError(t, err)

	var decoded EditRoleRequest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 9, decoded.RoleID)
	assert.Equal(t, "STEWARD", decoded.Draft.Title)
}
