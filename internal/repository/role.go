package repository

import (
	"context"

	"houndtrack/internal/models"
)

// RoleRepository defines the user-role storage operations.
//
// Create and Update receive the role with a normalized title and a
// full grant set; the repository assigns id and audit fields. Update
// and Delete return ErrProtectedRole for seeded system roles, and
// Delete returns ErrRoleInUse when any person still references the
// role.
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*models.Role, error)
	GetByTitle(ctx context.Context, title string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
}
