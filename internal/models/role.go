package models

import (
	"encoding/json"
	"time"

	"houndtrack/internal/permission"
)

// Role is a named bundle of per-entity access scopes assignable to
// portal accounts. On the wire the scope pairs are flattened into the
// role object as view<Entity>Scope / edit<Entity>Scope integers.
type Role struct {
	ID           int
	Title        string
	Grants       permission.Grants
	LastEditedBy *string
	LastEditedAt *time.Time
}

// Draft copies the role's editable fields into a draft, dropping the
// numeric id.
func (r Role) Draft() permission.Draft {
	return permission.Draft{Title: r.Title, Grants: r.Grants.Clone()}
}

// MarshalJSON flattens the grant set into the role object, emitting
// every registered scope key even when None.
func (r Role) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Grants)+4)
	out["id"] = r.ID
	out["title"] = r.Title
	out["lastEditedBy"] = r.LastEditedBy
	if r.LastEditedAt != nil {
		out["lastEditedAt"] = r.LastEditedAt.UTC().Format(time.RFC3339)
	} else {
		out["lastEditedAt"] = nil
	}
	for _, e := range permission.Entities {
		out[e.ViewKey] = int(r.Grants.Get(e.ViewKey))
		if e.Editable() {
			out[e.EditKey] = int(r.Grants.Get(e.EditKey))
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the role from a flattened payload. Scope
// fields are coerced through permission.ScopeOf so unknown or
// malformed values read as None rather than failing the decode.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"].(float64); ok {
		r.ID = int(v)
	}
	if v, ok := raw["title"].(string); ok {
		r.Title = v
	}
	if v, ok := raw["lastEditedBy"].(string); ok {
		r.LastEditedBy = &v
	}
	if v, ok := raw["lastEditedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			r.LastEditedAt = &t
		}
	}
	r.Grants = permission.NewGrants()
	for key := range r.Grants {
		if v, ok := raw[key]; ok {
			r.Grants[key] = permission.ScopeOf(v)
		}
	}
	return nil
}

// RoleDraftRequest is the body of a role register call: the normalized
// draft fields without an id.
type RoleDraftRequest struct {
	Draft permission.Draft
}

// UnmarshalJSON accepts a flattened draft payload, coercing scope
// fields and ignoring anything outside the registry.
func (req *RoleDraftRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	req.Draft = permission.EmptyDraft()
	if v, ok := raw["title"].(string); ok {
		req.Draft.Title = v
	}
	for key := range req.Draft.Grants {
		if v, ok := raw[key]; ok {
			req.Draft.Grants[key] = permission.ScopeOf(v)
		}
	}
	return nil
}

// MarshalJSON emits the draft with the persistence case policy applied
// to the title.
func (req RoleDraftRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(req.Draft.Grants)+1)
	out["title"] = permission.NormalizeTitle(req.Draft.Title)
	for _, e := range permission.Entities {
		out[e.ViewKey] = int(req.Draft.Grants.Get(e.ViewKey))
		if e.Editable() {
			out[e.EditKey] = int(req.Draft.Grants.Get(e.EditKey))
		}
	}
	return json.Marshal(out)
}

// EditRoleRequest is the body of a role edit call: the target role id
// plus the full draft.
type EditRoleRequest struct {
	RoleID int
	Draft  permission.Draft
}

func (req *EditRoleRequest) UnmarshalJSON(data []byte) error {
	var inner RoleDraftRequest
	if err := json.Unmarshal(data, &inner); err != nil {
		return err
	}
	var id struct {
		RoleID int `json:"roleId"`
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	req.RoleID = id.RoleID
	req.Draft = inner.Draft
	return nil
}

func (req EditRoleRequest) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(RoleDraftRequest{Draft: req.Draft})
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	out["roleId"] = req.RoleID
	return json.Marshal(out)
}

// DeleteRoleRequest is the body of a role delete call. Confirm must be
// true; the extra field guards against accidental replayed deletes.
type DeleteRoleRequest struct {
	RoleID  int  `json:"roleId" binding:"required"`
	Confirm bool `json:"confirm" binding:"required"`
}
