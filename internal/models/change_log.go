package models

import "time"

// ChangeOperation is the kind of mutation a change-log row records.
type ChangeOperation string

const (
	ChangeOpInsert ChangeOperation = "insert"
	ChangeOpUpdate ChangeOperation = "update"
	ChangeOpDelete ChangeOperation = "delete"
)

// ChangeLog is one audit row: who changed which record of which table,
// with the row state before and after as JSON strings.
type ChangeLog struct {
	ID           int             `json:"id"`
	ChangedTable string          `json:"changedTable"`
	RecordPK     string          `json:"recordPk"`
	Operation    ChangeOperation `json:"operation"`
	ChangedBy    *string         `json:"changedBy"`
	ChangedAt    time.Time       `json:"changedAt"`
	Source       string          `json:"source"`
	BeforeData   *string         `json:"beforeData"`
	AfterData    *string         `json:"afterData"`
}

// CreateChangeLogRequest carries a change-log row to be recorded by a
// mutating handler. ChangedAt is set by the repository.
type CreateChangeLogRequest struct {
	ChangedTable string          `json:"changedTable" binding:"required"`
	RecordPK     string          `json:"recordPk" binding:"required"`
	Operation    ChangeOperation `json:"operation" binding:"required"`
	ChangedBy    *string         `json:"changedBy"`
	Source       string          `json:"source"`
	BeforeData   *string         `json:"beforeData"`
	AfterData    *string         `json:"afterData"`
}
