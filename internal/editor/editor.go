// Package editor holds the state machine behind the role editor
// screen. It tracks which of browse, edit and save the screen is in,
// keeps the working draft, and reconciles list refreshes that finish
// out of order.
package editor

import (
	"context"
	"errors"
	"sync"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"
)

// Mode is the editor screen state.
type Mode int

const (
	// Browsing shows the role list with no draft open.
	Browsing Mode = iota
	// Editing has a draft open for a new or existing role.
	Editing
	// Saving has a mutation in flight; inputs are ignored until the
	// server answers.
	Saving
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "unknown"
	}
}

var (
	ErrNotBrowsing = errors.New("editor is not browsing")
	ErrNotEditing  = errors.New("editor has no open draft")
	ErrUnknownRole = errors.New("role is not in the current list")
)

// RoleService is the slice of the API client the editor drives.
type RoleService interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
	CreateRole(ctx context.Context, draft permission.Draft) (*models.Role, error)
	UpdateRole(ctx context.Context, id int, draft permission.Draft) (*models.Role, error)
	DeleteRole(ctx context.Context, id int) error
}

// Editor is safe for concurrent use. Mutations hold the lock only
// around state transitions, never across server calls, so a slow save
// does not block reads of the list.
type Editor struct {
	svc RoleService

	mu      sync.Mutex
	mode    Mode
	roles   []models.Role
	draft   permission.Draft
	editID  int
	seq     uint64
	applied uint64
}

// New creates an editor in Browsing with an empty list. Call Refresh
// to load roles.
func New(svc RoleService) *Editor {
	return &Editor{svc: svc, mode: Browsing}
}

// Mode reports the current screen state.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Roles returns a copy of the current list.
func (e *Editor) Roles() []models.Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Role, len(e.roles))
	copy(out, e.roles)
	return out
}

// Draft returns the open draft. Valid only while Editing or Saving.
func (e *Editor) Draft() permission.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return permission.Draft{Title: e.draft.Title, Grants: e.draft.Grants.Clone()}
}

// EditingID reports which role the draft belongs to, zero for a new
// role.
func (e *Editor) EditingID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editID
}

// Refresh reloads the role list. Refreshes are sequenced: when an
// older request finishes after a newer one, its result is discarded so
// the list never moves backwards in time.
func (e *Editor) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.seq++
	ticket := e.seq
	e.mu.Unlock()

	roles, err := e.svc.ListRoles(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if ticket <= e.applied {
		return nil
	}
	e.applied = ticket
	e.roles = roles
	return nil
}

// StartCreate opens an empty draft for a new role.
func (e *Editor) StartCreate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Browsing {
		return ErrNotBrowsing
	}
	e.draft = permission.EmptyDraft()
	e.editID = 0
	e.mode = Editing
	return nil
}

// StartEdit opens a draft seeded from the listed role with the given
// id.
func (e *Editor) StartEdit(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Browsing {
		return ErrNotBrowsing
	}
	for _, r := range e.roles {
		if r.ID == id {
			e.draft = r.Draft()
			e.editID = id
			e.mode = Editing
			return nil
		}
	}
	return ErrUnknownRole
}

// SetField updates one draft field. Unknown keys are ignored, matching
// the draft semantics.
func (e *Editor) SetField(key string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Editing {
		return ErrNotEditing
	}
	e.draft = permission.SetField(e.draft, key, value)
	return nil
}

// Cancel discards the draft and returns to Browsing.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Editing {
		return ErrNotEditing
	}
	e.draft = permission.Draft{}
	e.editID = 0
	e.mode = Browsing
	return nil
}

// Save validates the draft and sends it to the server. Validation
// failures come back as *permission.ValidationError before any request
// is made. On success the editor returns to Browsing and re-fetches
// the whole list; the server copy is never patched into the local one.
// On failure it returns to Editing with the draft intact so the user
// can correct and retry. A failed re-list after a successful save
// still returns the saved role, alongside the list error.
func (e *Editor) Save(ctx context.Context) (*models.Role, error) {
	e.mu.Lock()
	if e.mode != Editing {
		e.mu.Unlock()
		return nil, ErrNotEditing
	}
	draft := permission.Draft{Title: e.draft.Title, Grants: e.draft.Grants.Clone()}
	id := e.editID
	if verr := permission.Validate(draft); verr != nil {
		e.mu.Unlock()
		return nil, verr
	}
	e.mode = Saving
	e.mu.Unlock()

	var (
		role *models.Role
		err  error
	)
	if id == 0 {
		role, err = e.svc.CreateRole(ctx, draft)
	} else {
		role, err = e.svc.UpdateRole(ctx, id, draft)
	}

	e.mu.Lock()
	if err != nil {
		e.mode = Editing
		e.mu.Unlock()
		return nil, err
	}
	e.draft = permission.Draft{}
	e.editID = 0
	e.mode = Browsing
	e.mu.Unlock()

	return role, e.Refresh(ctx)
}

// Delete removes the role on the server, then re-fetches the list.
// Only allowed while Browsing.
func (e *Editor) Delete(ctx context.Context, id int) error {
	e.mu.Lock()
	if e.mode != Browsing {
		e.mu.Unlock()
		return ErrNotBrowsing
	}
	e.mode = Saving
	e.mu.Unlock()

	err := e.svc.DeleteRole(ctx, id)

	e.mu.Lock()
	e.mode = Browsing
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.Refresh(ctx)
}
