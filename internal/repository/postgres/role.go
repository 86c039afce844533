// Package postgres implements the repository interfaces on top of
// PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"
	"houndtrack/internal/repository"
)

type roleRepository struct {
	repository.BaseRepository
}

// NewRoleRepository creates a new PostgreSQL role repository.
func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{BaseRepository: repository.NewBaseRepository(db)}
}

// scopeColumns maps the registry's wire keys to their snake_case
// columns, in registry order. The schema carries one smallint column
// per scope field.
var scopeColumns = buildScopeColumns()

type scopeColumn struct {
	key    string
	column string
}

func buildScopeColumns() []scopeColumn {
	var cols []scopeColumn
	for _, e := range permission.Entities {
		cols = append(cols, scopeColumn{key: e.ViewKey, column: snakeCase(e.ViewKey)})
		if e.Editable() {
			cols = append(cols, scopeColumn{key: e.EditKey, column: snakeCase(e.EditKey)})
		}
	}
	return cols
}

func snakeCase(camel string) string {
	var b strings.Builder
	for i, r := range camel {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func scopeColumnList() string {
	names := make([]string, len(scopeColumns))
	for i, c := range scopeColumns {
		names[i] = c.column
	}
	return strings.Join(names, ", ")
}

func scanRole(scan func(dest ...interface{}) error) (*models.Role, error) {
	role := &models.Role{Grants: permission.NewGrants()}
	scopes := make([]int, len(scopeColumns))

	dest := []interface{}{&role.ID, &role.Title}
	for i := range scopes {
		dest = append(dest, &scopes[i])
	}
	dest = append(dest, &role.LastEditedBy, &role.LastEditedAt)

	if err := scan(dest...); err != nil {
		return nil, err
	}
	for i, c := range scopeColumns {
		role.Grants[c.key] = permission.ScopeOf(scopes[i])
	}
	return role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	var count int
	err := r.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_role WHERE title = $1",
		role.Title,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrRoleExists
	}

	cols := scopeColumnList()
	placeholders := make([]string, len(scopeColumns))
	args := []interface{}{role.Title}
	for i, c := range scopeColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, int(role.Grants.Get(c.key)))
	}
	args = append(args, role.LastEditedBy, time.Now())

	query := fmt.Sprintf(`
		INSERT INTO user_role (title, %s, last_edited_by, last_edited_at)
		VALUES ($1, %s, $%d, $%d)
		RETURNING id, last_edited_at`,
		cols, strings.Join(placeholders, ", "),
		len(scopeColumns)+2, len(scopeColumns)+3)

	return r.DB().QueryRowContext(ctx, query, args...).
		Scan(&role.ID, &role.LastEditedAt)
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	var isProtected bool
	err := r.DB().QueryRowContext(ctx,
		"SELECT is_protected FROM user_role WHERE id = $1",
		role.ID,
	).Scan(&isProtected)
	if err == sql.ErrNoRows {
		return repository.ErrRoleNotFound
	}
	if err != nil {
		return err
	}
	if isProtected {
		return repository.ErrProtectedRole
	}

	var count int
	err = r.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_role WHERE title = $1 AND id != $2",
		role.Title, role.ID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrRoleExists
	}

	sets := []string{"title = $1"}
	args := []interface{}{role.Title}
	n := 2
	for _, c := range scopeColumns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c.column, n))
		args = append(args, int(role.Grants.Get(c.key)))
		n++
	}
	sets = append(sets,
		fmt.Sprintf("last_edited_by = $%d", n),
		fmt.Sprintf("last_edited_at = $%d", n+1))
	args = append(args, role.LastEditedBy, time.Now(), role.ID)

	query := fmt.Sprintf(`
		UPDATE user_role
		SET %s
		WHERE id = $%d
		RETURNING last_edited_at`,
		strings.Join(sets, ", "), n+2)

	err = r.DB().QueryRowContext(ctx, query, args...).Scan(&role.LastEditedAt)
	if err == sql.ErrNoRows {
		return repository.ErrRoleNotFound
	}
	return err
}

func (r *roleRepository) Delete(ctx context.Context, id int) error {
	var title string
	var isProtected bool
	err := r.DB().QueryRowContext(ctx,
		"SELECT title, is_protected FROM user_role WHERE id = $1",
		id,
	).Scan(&title, &isProtected)
	if err == sql.ErrNoRows {
		return repository.ErrRoleNotFound
	}
	if err != nil {
		return err
	}
	if isProtected {
		return repository.ErrProtectedRole
	}

	var inUse bool
	err = r.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM person WHERE system_role = $1)",
		title,
	).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return repository.ErrRoleInUse
	}

	result, err := r.DB().ExecContext(ctx, "DELETE FROM user_role WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrRoleNotFound
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id int) (*models.Role, error) {
	query := fmt.Sprintf(`
		SELECT id, title, %s, last_edited_by, last_edited_at
		FROM user_role
		WHERE id = $1`, scopeColumnList())

	row := r.DB().QueryRowContext(ctx, query, id)
	role, err := scanRole(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) GetByTitle(ctx context.Context, title string) (*models.Role, error) {
	query := fmt.Sprintf(`
		SELECT id, title, %s, last_edited_by, last_edited_at
		FROM user_role
		WHERE title = $1`, scopeColumnList())

	row := r.DB().QueryRowContext(ctx, query, permission.NormalizeTitle(title))
	role, err := scanRole(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	query := fmt.Sprintf(`
		SELECT id, title, %s, last_edited_by, last_edited_at
		FROM user_role
		ORDER BY title ASC`, scopeColumnList())

	rows, err := r.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		role, err := scanRole(rows.Scan)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}
