package repository

import (
	"context"

	"houndtrack/internal/models"
)

// PersonRepository defines the account storage operations used by the
// session service and the role-in-use check.
type PersonRepository interface {
	GetByID(ctx context.Context, personID string) (*models.Person, error)
	GetByEmail(ctx context.Context, email string) (*models.Person, error)
	TouchLastLogin(ctx context.Context, personID string) error
	CountByRole(ctx context.Context, roleTitle string) (int, error)
}
