package permission

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmptyTitle(t *testing.T) {
	verr := Validate(EmptyDraft())
	require.NotNil(t, verr)
	assert.Equal(t, EmptyTitle, verr.Code)
	assert.Equal(t, "title is required", verr.Error())

	// Whitespace-only titles are empty after trimming.
	verr = Validate(SetField(EmptyDraft(), "title", "   "))
	require.NotNil(t, verr)
	assert.Equal(t, EmptyTitle, verr.Code)
}

func TestValidateTitleLength(t *testing.T) {
	atLimit := SetField(EmptyDraft(), "title", strings.Repeat("A", TitleMaxLen))
	assert.Nil(t, Validate(atLimit))

	over := SetField(EmptyDraft(), "title", strings.Repeat("A", TitleMaxLen+1))
	verr := Validate(over)
	require.NotNil(t, verr)
	assert.Equal(t, TitleTooLong, verr.Code)
	assert.Equal(t, "title must be 20 characters or less", verr.Error())

	// Surrounding whitespace does not count against the limit.
	padded := SetField(EmptyDraft(), "title", "  "+strings.Repeat("A", TitleMaxLen)+"  ")
	assert.Nil(t, Validate(padded))

	// Multibyte titles count characters, not bytes.
	runes := SetField(EmptyDraft(), "title", strings.Repeat("Ä", TitleMaxLen))
	assert.Nil(t, Validate(runes))

	runesOver := SetField(EmptyDraft(), "title", strings.Repeat("Ä", TitleMaxLen+1))
	verr = Validate(runesOver)
	require.NotNil(t, verr)
	assert.Equal(t, TitleTooLong, verr.Code)
}

func TestValidateEditExceedsView(t *testing.T) {
	d := SetField(EmptyDraft(), "title", "COACH")
	d = SetField(d, "editMeetScope", 2)
	d = SetField(d, "viewMeetScope", 1)

	verr := Validate(d)
	require.NotNil(t, verr)
	assert.Equal(t, EditExceedsView, verr.Code)
	assert.Equal(t, "Meet", verr.Entity)
	assert.Equal(t, "edit scope exceeds view scope for Meet", verr.Error())
}

func TestValidateReportsFirstViolationInRegistryOrder(t *testing.T) {
	// Violations on both Club and News; Club comes first in the
	// registry so it is the one reported.
	d := SetField(EmptyDraft(), "title", "COACH")
	d = SetField(d, "editNewsScope", 2)
	d = SetField(d, "editClubScope", 1)

	verr := Validate(d)
	require.NotNil(t, verr)
	assert.Equal(t, EditExceedsView, verr.Code)
	assert.Equal(t, "Club", verr.Entity)
}

func TestValidateTitleCheckedBeforeScopes(t *testing.T) {
	d := SetField(EmptyDraft(), "editDogScope", 2)
	verr := Validate(d)
	require.NotNil(t, verr)
	assert.Equal(t, EmptyTitle, verr.Code)
}

func TestValidateAcceptsEqualScopes(t *testing.T) {
	d := SetField(EmptyDraft(), "title", "STEWARD")
	for _, e := range Entities {
		d = SetField(d, e.ViewKey, 1)
		if e.Editable() {
			d = SetField(d, e.EditKey, 1)
		}
	}
	assert.Nil(t, Validate(d))
}

func TestValidateIsPure(t *testing.T) {
	d := SetField(EmptyDraft(), "title", "  coach  ")
	_ = Validate(d)
	assert.Equal(t, "  coach  ", d.Title)
}
