package postgres

import (
	"context"
	"database/sql"

	"houndtrack/internal/repository"
)

type importRepository struct {
	repository.BaseRepository
}

// NewImportRepository creates a new PostgreSQL import repository.
func NewImportRepository(db *sql.DB) repository.ImportRepository {
	return &importRepository{BaseRepository: repository.NewBaseRepository(db)}
}

func (r *importRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var found bool
	err := r.DB().QueryRowContext(ctx, query, args...).Scan(&found)
	return found, err
}

func (r *importRepository) InsertDog(ctx context.Context, row repository.ImportRow) error {
	found, err := r.exists(ctx,
		"SELECT EXISTS(SELECT 1 FROM dog WHERE registration_number = $1)",
		row["registration_number"])
	if err != nil {
		return err
	}
	if found {
		return repository.ErrConflict
	}
	_, err = r.DB().ExecContext(ctx, `
		INSERT INTO dog (registration_number, name, sex, whelped, sire, dam)
		VALUES ($1, $2, $3, NULLIF($4, '')::date, NULLIF($5, ''), NULLIF($6, ''))`,
		row["registration_number"], row["name"], row["sex"],
		row["whelped"], row["sire"], row["dam"])
	return err
}

func (r *importRepository) UpdateDog(ctx context.Context, row repository.ImportRow) error {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE dog
		SET name = $2, sex = $3, whelped = NULLIF($4, '')::date,
			sire = NULLIF($5, ''), dam = NULLIF($6, '')
		WHERE registration_number = $1`,
		row["registration_number"], row["name"], row["sex"],
		row["whelped"], row["sire"], row["dam"])
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *importRepository) InsertMeet(ctx context.Context, row repository.ImportRow) error {
	found, err := r.exists(ctx,
		"SELECT EXISTS(SELECT 1 FROM meet WHERE meet_code = $1)", row["meet_code"])
	if err != nil {
		return err
	}
	if found {
		return repository.ErrConflict
	}
	_, err = r.DB().ExecContext(ctx, `
		INSERT INTO meet (meet_code, meet_date, location, host_club)
		VALUES ($1, NULLIF($2, '')::date, $3, NULLIF($4, ''))`,
		row["meet_code"], row["meet_date"], row["location"], row["host_club"])
	return err
}

func (r *importRepository) UpdateMeet(ctx context.Context, row repository.ImportRow) error {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE meet
		SET meet_date = NULLIF($2, '')::date, location = $3, host_club = NULLIF($4, '')
		WHERE meet_code = $1`,
		row["meet_code"], row["meet_date"], row["location"], row["host_club"])
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *importRepository) InsertMeetResult(ctx context.Context, row repository.ImportRow) error {
	found, err := r.exists(ctx,
		"SELECT EXISTS(SELECT 1 FROM meet_result WHERE meet_code = $1 AND registration_number = $2)",
		row["meet_code"], row["registration_number"])
	if err != nil {
		return err
	}
	if found {
		return repository.ErrConflict
	}
	_, err = r.DB().ExecContext(ctx, `
		INSERT INTO meet_result (meet_code, registration_number, grade, points)
		VALUES ($1, $2, $3, NULLIF($4, '')::int)`,
		row["meet_code"], row["registration_number"], row["grade"], row["points"])
	return err
}

func (r *importRepository) UpdateMeetResult(ctx context.Context, row repository.ImportRow) error {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE meet_result
		SET grade = $3, points = NULLIF($4, '')::int
		WHERE meet_code = $1 AND registration_number = $2`,
		row["meet_code"], row["registration_number"], row["grade"], row["points"])
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *importRepository) InsertRaceResult(ctx context.Context, row repository.ImportRow) error {
	found, err := r.exists(ctx,
		"SELECT EXISTS(SELECT 1 FROM race_result WHERE meet_code = $1 AND race_number = $2::int AND registration_number = $3)",
		row["meet_code"], row["race_number"], row["registration_number"])
	if err != nil {
		return err
	}
	if found {
		return repository.ErrConflict
	}
	_, err = r.DB().ExecContext(ctx, `
		INSERT INTO race_result (meet_code, race_number, registration_number, placement, race_time)
		VALUES ($1, $2::int, $3, NULLIF($4, '')::int, NULLIF($5, '')::numeric)`,
		row["meet_code"], row["race_number"], row["registration_number"],
		row["placement"], row["race_time"])
	return err
}

func (r *importRepository) UpdateRaceResult(ctx context.Context, row repository.ImportRow) error {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE race_result
		SET placement = NULLIF($4, '')::int, race_time = NULLIF($5, '')::numeric
		WHERE meet_code = $1 AND race_number = $2::int AND registration_number = $3`,
		row["meet_code"], row["race_number"], row["registration_number"],
		row["placement"], row["race_time"])
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
