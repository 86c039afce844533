package postgres

import (
	"context"
	"database/sql"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"
)

type personRepository struct {
	repository.BaseRepository
}

// NewPersonRepository creates a new PostgreSQL person repository.
func NewPersonRepository(db *sql.DB) repository.PersonRepository {
	return &personRepository{BaseRepository: repository.NewBaseRepository(db)}
}

const personColumns = `person_id, first_name, last_name, email, password_hash,
	system_role, created_at, last_login_at`

func scanPerson(scan func(dest ...interface{}) error) (*models.Person, error) {
	p := &models.Person{}
	err := scan(
		&p.PersonID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.PasswordHash,
		&p.SystemRole,
		&p.CreatedAt,
		&p.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *personRepository) GetByID(ctx context.Context, personID string) (*models.Person, error) {
	row := r.DB().QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM person WHERE person_id = $1", personID)
	p, err := scanPerson(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrPersonNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *personRepository) GetByEmail(ctx context.Context, email string) (*models.Person, error) {
	row := r.DB().QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM person WHERE lower(email) = lower($1)", email)
	p, err := scanPerson(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrPersonNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *personRepository) TouchLastLogin(ctx context.Context, personID string) error {
	result, err := r.DB().ExecContext(ctx,
		"UPDATE person SET last_login_at = $1 WHERE person_id = $2",
		time.Now(), personID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrPersonNotFound
	}
	return nil
}

func (r *personRepository) CountByRole(ctx context.Context, roleTitle string) (int, error) {
	var count int
	err := r.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM person WHERE system_role = $1", roleTitle,
	).Scan(&count)
	return count, err
}
