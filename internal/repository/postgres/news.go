package postgres

import (
	"context"
	"database/sql"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"
)

type newsRepository struct {
	repository.BaseRepository
}

// NewNewsRepository creates a new PostgreSQL news repository.
func NewNewsRepository(db *sql.DB) repository.NewsRepository {
	return &newsRepository{BaseRepository: repository.NewBaseRepository(db)}
}

// The author name is denormalized into the query so list and get can
// render bylines without a second round trip.
const newsSelect = `
	SELECT n.id, n.title, n.content, n.author_id,
		   COALESCE(p.first_name || ' ' || p.last_name, ''),
		   n.created_at, n.updated_at, n.last_edited_by, n.last_edited_at
	FROM news n
	LEFT JOIN person p ON p.person_id = n.author_id`

func scanNews(scan func(dest ...interface{}) error) (*models.News, error) {
	item := &models.News{}
	err := scan(
		&item.ID,
		&item.Title,
		&item.Content,
		&item.AuthorID,
		&item.AuthorName,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.LastEditedBy,
		&item.LastEditedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *newsRepository) Create(ctx context.Context, item *models.News) error {
	now := time.Now()
	item.CreatedAt = now
	return r.DB().QueryRowContext(ctx, `
		INSERT INTO news (title, content, author_id, created_at, last_edited_by, last_edited_at)
		VALUES ($1, $2, $3, $4, $5, $4)
		RETURNING id, last_edited_at`,
		item.Title,
		item.Content,
		item.AuthorID,
		now,
		item.LastEditedBy,
	).Scan(&item.ID, &item.LastEditedAt)
}

func (r *newsRepository) Update(ctx context.Context, item *models.News) error {
	now := time.Now()
	err := r.DB().QueryRowContext(ctx, `
		UPDATE news
		SET title = $1, content = $2, updated_at = $3,
			last_edited_by = $4, last_edited_at = $3
		WHERE id = $5
		RETURNING updated_at, last_edited_at`,
		item.Title,
		item.Content,
		now,
		item.LastEditedBy,
		item.ID,
	).Scan(&item.UpdatedAt, &item.LastEditedAt)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	return err
}

func (r *newsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB().ExecContext(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int) (*models.News, error) {
	row := r.DB().QueryRowContext(ctx, newsSelect+" WHERE n.id = $1", id)
	item, err := scanNews(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *newsRepository) List(ctx context.Context) ([]models.News, error) {
	rows, err := r.DB().QueryContext(ctx, newsSelect+" ORDER BY n.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		item, err := scanNews(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
