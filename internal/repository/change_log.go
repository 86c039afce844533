package repository

import (
	"context"
	"time"

	"houndtrack/internal/models"
)

// ChangeLogRepository records and serves the audit trail of every
// mutation made through the API.
type ChangeLogRepository interface {
	Create(ctx context.Context, req *models.CreateChangeLogRequest) error
	GetByID(ctx context.Context, id int) (*models.ChangeLog, error)
	// List returns all rows, newest first.
	List(ctx context.Context) ([]models.ChangeLog, error)
	// ListByUser returns only rows changed by the given person, newest
	// first. Serves Self-scoped viewers.
	ListByUser(ctx context.Context, personID string) ([]models.ChangeLog, error)
	// DeleteOlderThan prunes rows with ChangedAt before cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
