package postgres

import (
	"context"
	"database/sql"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"
)

type contactRepository struct {
	repository.BaseRepository
}

// NewContactRepository creates a new PostgreSQL contact repository.
func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &contactRepository{BaseRepository: repository.NewBaseRepository(db)}
}

func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ReceivedAt = time.Now()
	return r.DB().QueryRowContext(ctx, `
		INSERT INTO contact_message (name, email, subject, message, received_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.ReceivedAt,
	).Scan(&msg.ID)
}

func (r *contactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT id, name, email, subject, message, received_at
		FROM contact_message
		ORDER BY received_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.ReceivedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
