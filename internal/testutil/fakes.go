// Package testutil provides in-memory repository implementations and
// seed data for handler and service tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"
	"houndtrack/internal/repository"
)

// FakeRoleRepository is an in-memory RoleRepository with the same
// conflict, protection and in-use semantics as the postgres one.
type FakeRoleRepository struct {
	mu        sync.Mutex
	nextID    int
	roles     map[int]*models.Role
	protected map[int]bool

	// People backs the role-in-use check on Delete. Set it to the
	// FakePersonRepository sharing the test's accounts.
	People *FakePersonRepository

	// FailWith, when non-nil, is returned by every method. Lets tests
	// drive the 500 paths.
	FailWith error
}

func NewFakeRoleRepository() *FakeRoleRepository {
	return &FakeRoleRepository{
		nextID:    1,
		roles:     make(map[int]*models.Role),
		protected: make(map[int]bool),
	}
}

// Seed inserts a role directly, bypassing conflict checks. Returns the
// assigned id.
func (f *FakeRoleRepository) Seed(role models.Role, protected bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if role.ID == 0 {
		role.ID = f.nextID
	}
	if role.ID >= f.nextID {
		f.nextID = role.ID + 1
	}
	if role.Grants == nil {
		role.Grants = permission.NewGrants()
	}
	f.roles[role.ID] = &role
	f.protected[role.ID] = protected
	return role.ID
}

func (f *FakeRoleRepository) Create(ctx context.Context, role *models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	for _, r := range f.roles {
		if r.Title == role.Title {
			return repository.ErrRoleExists
		}
	}
	role.ID = f.nextID
	f.nextID++
	now := time.Now()
	role.LastEditedAt = &now
	stored := *role
	stored.Grants = role.Grants.Clone()
	f.roles[role.ID] = &stored
	return nil
}

func (f *FakeRoleRepository) Update(ctx context.Context, role *models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	current, ok := f.roles[role.ID]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if f.protected[role.ID] {
		return repository.ErrProtectedRole
	}
	for id, r := range f.roles {
		if id != role.ID && r.Title == role.Title {
			return repository.ErrRoleExists
		}
	}
	now := time.Now()
	role.LastEditedAt = &now
	current.Title = role.Title
	current.Grants = role.Grants.Clone()
	current.LastEditedBy = role.LastEditedBy
	current.LastEditedAt = role.LastEditedAt
	return nil
}

func (f *FakeRoleRepository) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	role, ok := f.roles[id]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if f.protected[id] {
		return repository.ErrProtectedRole
	}
	if f.People != nil {
		n, _ := f.People.CountByRole(ctx, role.Title)
		if n > 0 {
			return repository.ErrRoleInUse
		}
	}
	delete(f.roles, id)
	delete(f.protected, id)
	return nil
}

func (f *FakeRoleRepository) GetByID(ctx context.Context, id int) (*models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	role, ok := f.roles[id]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	out := *role
	out.Grants = role.Grants.Clone()
	return &out, nil
}

func (f *FakeRoleRepository) GetByTitle(ctx context.Context, title string) (*models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	normalized := permission.NormalizeTitle(title)
	for _, role := range f.roles {
		if role.Title == normalized {
			out := *role
			out.Grants = role.Grants.Clone()
			return &out, nil
		}
	}
	return nil, repository.ErrRoleNotFound
}

func (f *FakeRoleRepository) List(ctx context.Context) ([]models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	out := make([]models.Role, 0, len(f.roles))
	for _, role := range f.roles {
		r := *role
		r.Grants = role.Grants.Clone()
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// FakePersonRepository is an in-memory PersonRepository.
type FakePersonRepository struct {
	mu      sync.Mutex
	persons map[string]*models.Person
}

func NewFakePersonRepository() *FakePersonRepository {
	return &FakePersonRepository{persons: make(map[string]*models.Person)}
}

func (f *FakePersonRepository) Seed(p models.Person) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := p
	f.persons[p.PersonID] = &stored
}

func (f *FakePersonRepository) GetByID(ctx context.Context, personID string) (*models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[personID]
	if !ok {
		return nil, repository.ErrPersonNotFound
	}
	out := *p
	return &out, nil
}

func (f *FakePersonRepository) GetByEmail(ctx context.Context, email string) (*models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if p.Email == email {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrPersonNotFound
}

func (f *FakePersonRepository) TouchLastLogin(ctx context.Context, personID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[personID]
	if !ok {
		return repository.ErrPersonNotFound
	}
	now := time.Now()
	p.LastLoginAt = &now
	return nil
}

func (f *FakePersonRepository) CountByRole(ctx context.Context, roleTitle string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, p := range f.persons {
		if p.SystemRole == roleTitle {
			count++
		}
	}
	return count, nil
}

// FakeChangeLogRepository is an in-memory ChangeLogRepository.
type FakeChangeLogRepository struct {
	mu     sync.Mutex
	nextID int
	rows   []models.ChangeLog
}

func NewFakeChangeLogRepository() *FakeChangeLogRepository {
	return &FakeChangeLogRepository{nextID: 1}
}

func (f *FakeChangeLogRepository) Create(ctx context.Context, req *models.CreateChangeLogRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	source := req.Source
	if source == "" {
		source = "api"
	}
	f.rows = append(f.rows, models.ChangeLog{
		ID:           f.nextID,
		ChangedTable: req.ChangedTable,
		RecordPK:     req.RecordPK,
		Operation:    req.Operation,
		ChangedBy:    req.ChangedBy,
		ChangedAt:    time.Now(),
		Source:       source,
		BeforeData:   req.BeforeData,
		AfterData:    req.AfterData,
	})
	f.nextID++
	return nil
}

func (f *FakeChangeLogRepository) GetByID(ctx context.Context, id int) (*models.ChangeLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == id {
			out := row
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeChangeLogRepository) List(ctx context.Context) ([]models.ChangeLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ChangeLog, len(f.rows))
	copy(out, f.rows)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakeChangeLogRepository) ListByUser(ctx context.Context, personID string) ([]models.ChangeLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChangeLog
	for _, row := range f.rows {
		if row.ChangedBy != nil && *row.ChangedBy == personID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakeChangeLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.ChangeLog
	var removed int64
	for _, row := range f.rows {
		if row.ChangedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return removed, nil
}

// Rows returns a snapshot of everything recorded so far.
func (f *FakeChangeLogRepository) Rows() []models.ChangeLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ChangeLog, len(f.rows))
	copy(out, f.rows)
	return out
}
