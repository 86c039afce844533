// Package importer runs CSV bulk loads into the dog, meet and result
// tables, producing a line-by-line report instead of failing the whole
// file on the first bad row.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"

	"github.com/google/uuid"
)

// ErrUnknownType is returned for an import type outside
// models.ImportTypes.
var ErrUnknownType = errors.New("invalid import type")

// ErrUnknownMode is returned for a mode other than insert or update.
var ErrUnknownMode = errors.New("mode must be 'insert' or 'update'")

// requiredHeaders lists the columns a CSV must carry per import type.
// Extra columns are ignored.
var requiredHeaders = map[models.ImportType][]string{
	models.ImportDogs:        {"registration_number", "name", "sex"},
	models.ImportMeets:       {"meet_code", "meet_date", "location"},
	models.ImportMeetResults: {"meet_code", "registration_number", "grade"},
	models.ImportRaceResults: {"meet_code", "race_number", "registration_number"},
}

// Service orchestrates one CSV import run.
type Service struct {
	repo repository.ImportRepository
}

// NewService creates a new import service.
func NewService(repo repository.ImportRepository) *Service {
	return &Service{repo: repo}
}

// EntityFor maps an import type to the permission entity whose edit
// scope gates it.
func EntityFor(t models.ImportType) (string, error) {
	switch t {
	case models.ImportDogs:
		return "Dog", nil
	case models.ImportMeets:
		return "Meet", nil
	case models.ImportMeetResults:
		return "MeetResults", nil
	case models.ImportRaceResults:
		return "RaceResults", nil
	}
	return "", ErrUnknownType
}

// Run parses the CSV stream and applies each row in the requested
// mode. Rows that fail validation or storage are recorded in the
// report; the run itself only errors on an unreadable file or header.
func (s *Service) Run(ctx context.Context, r io.Reader, importType models.ImportType, mode models.ImportMode) (*models.ImportReport, error) {
	required, ok := requiredHeaders[importType]
	if !ok {
		return nil, ErrUnknownType
	}
	if mode != models.ImportModeInsert && mode != models.ImportModeUpdate {
		return nil, ErrUnknownMode
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	report := &models.ImportReport{
		BatchID: uuid.NewString(),
		Type:    importType,
		Mode:    mode,
		Errors:  []models.ImportError{},
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Total++
			report.Errors = append(report.Errors,
				models.ImportError{Line: line, Message: "malformed CSV line"})
			continue
		}

		report.Total++
		row := make(repository.ImportRow, len(columns))
		for name, idx := range columns {
			if idx < len(record) {
				row[name] = strings.TrimSpace(record[idx])
			}
		}

		if msg := missingValue(row, required); msg != "" {
			report.Skipped++
			report.Errors = append(report.Errors, models.ImportError{Line: line, Message: msg})
			continue
		}

		if err := s.apply(ctx, importType, mode, row); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors,
				models.ImportError{Line: line, Message: applyMessage(mode, err)})
			continue
		}
		if mode == models.ImportModeInsert {
			report.Inserted++
		} else {
			report.Updated++
		}
	}

	return report, nil
}

func missingValue(row repository.ImportRow, required []string) string {
	for _, name := range required {
		if row[name] == "" {
			return fmt.Sprintf("missing value for %q", name)
		}
	}
	return ""
}

func (s *Service) apply(ctx context.Context, t models.ImportType, mode models.ImportMode, row repository.ImportRow) error {
	insert := mode == models.ImportModeInsert
	switch t {
	case models.ImportDogs:
		if insert {
			return s.repo.InsertDog(ctx, row)
		}
		return s.repo.UpdateDog(ctx, row)
	case models.ImportMeets:
		if insert {
			return s.repo.InsertMeet(ctx, row)
		}
		return s.repo.UpdateMeet(ctx, row)
	case models.ImportMeetResults:
		if insert {
			return s.repo.InsertMeetResult(ctx, row)
		}
		return s.repo.UpdateMeetResult(ctx, row)
	case models.ImportRaceResults:
		if insert {
			return s.repo.InsertRaceResult(ctx, row)
		}
		return s.repo.UpdateRaceResult(ctx, row)
	}
	return ErrUnknownType
}

func applyMessage(mode models.ImportMode, err error) string {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return "record already exists"
	case errors.Is(err, repository.ErrNotFound):
		return "record does not exist"
	}
	return fmt.Sprintf("%s failed: %v", mode, err)
}
