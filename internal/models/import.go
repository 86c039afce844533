package models

// ImportType names a CSV import target.
type ImportType string

const (
	ImportDogs        ImportType = "dogs"
	ImportMeets       ImportType = "meets"
	ImportMeetResults ImportType = "meet_results"
	ImportRaceResults ImportType = "race_results"
)

// ImportTypes lists every accepted import target, in menu order.
var ImportTypes = []ImportType{ImportDogs, ImportMeets, ImportMeetResults, ImportRaceResults}

// ImportMode selects between inserting new rows and updating existing
// ones.
type ImportMode string

const (
	ImportModeInsert ImportMode = "insert"
	ImportModeUpdate ImportMode = "update"
)

// ImportError is one rejected CSV line.
type ImportError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportReport summarizes a CSV import run.
type ImportReport struct {
	BatchID  string        `json:"batchId"`
	Type     ImportType    `json:"type"`
	Mode     ImportMode    `json:"mode"`
	Total    int           `json:"total"`
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}
