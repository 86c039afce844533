package permission

import (
	"fmt"
	"unicode/utf8"
)

// ValidationCode identifies why a draft was rejected.
type ValidationCode string

const (
	// EmptyTitle means the trimmed title is empty.
	EmptyTitle ValidationCode = "empty_title"
	// TitleTooLong means the trimmed title exceeds TitleMaxLen.
	TitleTooLong ValidationCode = "title_too_long"
	// EditExceedsView means an entity grants broader edit than view
	// access.
	EditExceedsView ValidationCode = "edit_exceeds_view"
)

// ValidationError describes the first problem found in a draft.
// Entity is set only for EditExceedsView.
type ValidationError struct {
	Code   ValidationCode
	Entity string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case EmptyTitle:
		return "title is required"
	case TitleTooLong:
		return fmt.Sprintf("title must be %d characters or less", TitleMaxLen)
	case EditExceedsView:
		return fmt.Sprintf("edit scope exceeds view scope for %s", e.Entity)
	}
	return string(e.Code)
}

// Validate checks a draft against the role rules: non-empty title of
// at most TitleMaxLen characters after trimming, and edit <= view for
// every entity. The first violation is returned, in registry order for
// scope checks; nil means the draft may be sent. Validate is pure.
func Validate(d Draft) *ValidationError {
	title := NormalizeTitle(d.Title)
	if title == "" {
		return &ValidationError{Code: EmptyTitle}
	}
	// Character count, not bytes, to match the VARCHAR(20) column.
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return &ValidationError{Code: TitleTooLong}
	}
	for _, e := range Entities {
		if !e.Editable() {
			continue
		}
		if Compare(d.Grants.Get(e.EditKey), d.Grants.Get(e.ViewKey)) > 0 {
			return &ValidationError{Code: EditExceedsView, Entity: e.Name}
		}
	}
	return nil
}
