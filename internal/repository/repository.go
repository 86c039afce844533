// Package repository defines the storage interfaces the handlers
// depend on, with sentinel errors shared by every implementation.
package repository

import (
	"context"
	"database/sql"
)

// BaseRepository provides the shared database handle and transaction
// helper for the postgres implementations.
type BaseRepository struct {
	db *sql.DB
}

// NewBaseRepository creates a new base repository.
func NewBaseRepository(db *sql.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the database connection.
func (r *BaseRepository) DB() *sql.DB {
	return r.db
}

// Transaction runs fn inside a database transaction, rolling back on
// error.
func (r *BaseRepository) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return err
		}
		return err
	}
	return tx.Commit()
}
