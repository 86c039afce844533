package repository

import "context"

// ImportRow is one parsed CSV record keyed by header name.
type ImportRow map[string]string

// ImportRepository applies validated CSV rows to the dog and meet
// tables. Insert returns ErrConflict when the key already exists;
// Update returns ErrNotFound when it does not.
type ImportRepository interface {
	InsertDog(ctx context.Context, row ImportRow) error
	UpdateDog(ctx context.Context, row ImportRow) error
	InsertMeet(ctx context.Context, row ImportRow) error
	UpdateMeet(ctx context.Context, row ImportRow) error
	InsertMeetResult(ctx context.Context, row ImportRow) error
	UpdateMeetResult(ctx context.Context, row ImportRow) error
	InsertRaceResult(ctx context.Context, row ImportRow) error
	UpdateRaceResult(ctx context.Context, row ImportRow) error
}
