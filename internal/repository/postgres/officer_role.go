package postgres

import (
	"context"
	"database/sql"
	"time"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"
)

type officerRoleRepository struct {
	repository.BaseRepository
}

// NewOfficerRoleRepository creates a new PostgreSQL officer repository.
func NewOfficerRoleRepository(db *sql.DB) repository.OfficerRoleRepository {
	return &officerRoleRepository{BaseRepository: repository.NewBaseRepository(db)}
}

const officerSelect = `
	SELECT o.id, o.person_id,
		   COALESCE(p.first_name || ' ' || p.last_name, ''),
		   o.position, o.club_id, o.term_start, o.term_end,
		   o.last_edited_by, o.last_edited_at
	FROM officer_role o
	LEFT JOIN person p ON p.person_id = o.person_id`

func scanOfficer(scan func(dest ...interface{}) error) (*models.OfficerRole, error) {
	o := &models.OfficerRole{}
	err := scan(
		&o.ID,
		&o.PersonID,
		&o.PersonName,
		&o.Position,
		&o.ClubID,
		&o.TermStart,
		&o.TermEnd,
		&o.LastEditedBy,
		&o.LastEditedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *officerRoleRepository) Create(ctx context.Context, officer *models.OfficerRole) error {
	return r.DB().QueryRowContext(ctx, `
		INSERT INTO officer_role (person_id, position, club_id, term_start, term_end,
			last_edited_by, last_edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, last_edited_at`,
		officer.PersonID,
		officer.Position,
		officer.ClubID,
		officer.TermStart,
		officer.TermEnd,
		officer.LastEditedBy,
		time.Now(),
	).Scan(&officer.ID, &officer.LastEditedAt)
}

func (r *officerRoleRepository) Update(ctx context.Context, officer *models.OfficerRole) error {
	err := r.DB().QueryRowContext(ctx, `
		UPDATE officer_role
		SET position = $1, club_id = $2, term_start = $3, term_end = $4,
			last_edited_by = $5, last_edited_at = $6
		WHERE id = $7
		RETURNING last_edited_at`,
		officer.Position,
		officer.ClubID,
		officer.TermStart,
		officer.TermEnd,
		officer.LastEditedBy,
		time.Now(),
		officer.ID,
	).Scan(&officer.LastEditedAt)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	return err
}

func (r *officerRoleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB().ExecContext(ctx, "DELETE FROM officer_role WHERE id = $1", id)
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

func (r *officerRoleRepository) GetByID(ctx context.Context, id int) (*models.OfficerRole, error) {
	row := r.DB().QueryRowContext(ctx, officerSelect+" WHERE o.id = $1", id)
	o, err := scanOfficer(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *officerRoleRepository) List(ctx context.Context) ([]models.OfficerRole, error) {
	rows, err := r.DB().QueryContext(ctx, officerSelect+" ORDER BY o.position, o.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var officers []models.OfficerRole
	for rows.Next() {
		o, err := scanOfficer(rows.Scan)
		if err != nil {
			return nil, err
		}
		officers = append(officers, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return officers, nil
}
