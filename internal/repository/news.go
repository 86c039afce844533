package repository

import (
	"context"

	"houndtrack/internal/models"
)

// NewsRepository defines news item storage.
type NewsRepository interface {
	Create(ctx context.Context, item *models.News) error
	Update(ctx context.Context, item *models.News) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*models.News, error)
	// List returns all items, newest first.
	List(ctx context.Context) ([]models.News, error)
}
