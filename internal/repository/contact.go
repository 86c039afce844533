package repository

import (
	"context"

	"houndtrack/internal/models"
)

// ContactRepository stores submitted contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}
