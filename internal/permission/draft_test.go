package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDraft(t *testing.T) {
	d := EmptyDraft()
	assert.Empty(t, d.Title)
	for _, e := range Entities {
		assert.Equal(t, None, d.Grants.Get(e.ViewKey))
		if e.Editable() {
			assert.Equal(t, None, d.Grants.Get(e.EditKey))
		}
	}
}

func TestSetFieldTitle(t *testing.T) {
	d := EmptyDraft()
	updated := SetField(d, "title", "Race Secretary")
	assert.Equal(t, "Race Secretary", updated.Title)
	// The original draft is untouched.
	assert.Empty(t, d.Title)
}

func TestSetFieldScope(t *testing.T) {
	d := EmptyDraft()
	updated := SetField(d, "viewDogScope", 2)
	assert.Equal(t, All, updated.Grants.Get("viewDogScope"))
	assert.Equal(t, None, d.Grants.Get("viewDogScope"))

	// Malformed values narrow to None rather than erroring.
	updated = SetField(updated, "viewDogScope", "everything")
	assert.Equal(t, None, updated.Grants.Get("viewDogScope"))
}

func TestSetFieldUnknownKeyIgnored(t *testing.T) {
	d := SetField(EmptyDraft(), "title", "COACH")
	updated := SetField(d, "viewUnicornScope", 2)
	assert.Equal(t, d.Title, updated.Title)
	assert.Equal(t, d.Grants, updated.Grants)
	_, present := updated.Grants["viewUnicornScope"]
	assert.False(t, present)
}

func TestSetFieldRepeatable(t *testing.T) {
	d := SetField(EmptyDraft(), "editMeetScope", 1)
	again := SetField(d, "editMeetScope", 1)
	assert.Equal(t, d, again)
}

func TestSetFieldNilGrants(t *testing.T) {
	updated := SetField(Draft{Title: "X"}, "viewNewsScope", 2)
	require.NotNil(t, updated.Grants)
	assert.Equal(t, All, updated.Grants.Get("viewNewsScope"))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "COACH", NormalizeTitle("  coach  "))
	assert.Equal(t, "RACE SECRETARY", NormalizeTitle("Race Secretary"))
	assert.Equal(t, "", NormalizeTitle("   "))
}
