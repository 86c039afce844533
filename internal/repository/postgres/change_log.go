package postgres

import (
	"context"
	"database/sql"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"
)

type changeLogRepository struct {
	repository.BaseRepository
}

// NewChangeLogRepository creates a new PostgreSQL change log repository.
func NewChangeLogRepository(db *sql.DB) repository.ChangeLogRepository {
	return &changeLogRepository{BaseRepository: repository.NewBaseRepository(db)}
}

const changeLogColumns = `id, changed_table, record_pk, operation, changed_by,
	changed_at, source, before_data, after_data`

func scanChangeLog(scan func(dest ...interface{}) error) (*models.ChangeLog, error) {
	c := &models.ChangeLog{}
	err := scan(
		&c.ID,
		&c.ChangedTable,
		&c.RecordPK,
		&c.Operation,
		&c.ChangedBy,
		&c.ChangedAt,
		&c.Source,
		&c.BeforeData,
		&c.AfterData,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *changeLogRepository) Create(ctx context.Context, req *models.CreateChangeLogRequest) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO change_log (
			changed_table, record_pk, operation, changed_by,
			changed_at, source, before_data, after_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		req.ChangedTable,
		req.RecordPK,
		req.Operation,
		req.ChangedBy,
		time.Now(),
		req.Source,
		req.BeforeData,
		req.AfterData,
	)
	return err
}

func (r *changeLogRepository) GetByID(ctx context.Context, id int) (*models.ChangeLog, error) {
	row := r.DB().QueryRowContext(ctx,
		"SELECT "+changeLogColumns+" FROM change_log WHERE id = $1", id)
	c, err := scanChangeLog(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *changeLogRepository) List(ctx context.Context) ([]models.ChangeLog, error) {
	return r.list(ctx,
		"SELECT "+changeLogColumns+" FROM change_log ORDER BY changed_at DESC, id DESC")
}

func (r *changeLogRepository) ListByUser(ctx context.Context, personID string) ([]models.ChangeLog, error) {
	return r.list(ctx,
		"SELECT "+changeLogColumns+" FROM change_log WHERE changed_by = $1 ORDER BY changed_at DESC, id DESC",
		personID)
}

func (r *changeLogRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.ChangeLog, error) {
	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ChangeLog
	for rows.Next() {
		c, err := scanChangeLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *changeLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.DB().ExecContext(ctx,
		"DELETE FROM change_log WHERE changed_at < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
