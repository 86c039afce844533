package repository

import (
	"context"

	"houndtrack/internal/models"
)

// OfficerRoleRepository defines officer appointment storage.
type OfficerRoleRepository interface {
	Create(ctx context.Context, officer *models.OfficerRole) error
	Update(ctx context.Context, officer *models.OfficerRole) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*models.OfficerRole, error)
	List(ctx context.Context) ([]models.OfficerRole, error)
}
