package permission

import "strings"

// TitleMaxLen is the longest role title accepted, after trimming.
const TitleMaxLen = 20

// Draft is the in-progress, unsaved copy of a role's editable fields
// used while composing a create or update request. Drafts are values;
// SetField copies rather than mutating, so a held Draft never changes
// under the caller.
type Draft struct {
	Title  string
	Grants Grants
}

// EmptyDraft returns a draft with an empty title and every scope at
// None, the starting point of the new-role flow.
func EmptyDraft() Draft {
	return Draft{Grants: NewGrants()}
}

// SetField returns a copy of d with one field changed. "title" sets
// the title; any registered scope key sets that scope, with the value
// coerced through ScopeOf. Unknown keys are ignored.
func SetField(d Draft, key string, value interface{}) Draft {
	out := Draft{Title: d.Title, Grants: d.Grants.Clone()}
	if out.Grants == nil {
		out.Grants = NewGrants()
	}
	switch {
	case key == "title":
		if s, ok := value.(string); ok {
			out.Title = s
		}
	case ScopeKey(key):
		out.Grants[key] = ScopeOf(value)
	}
	return out
}

// NormalizeTitle applies the persistence case policy: trimmed and
// upper-cased.
func NormalizeTitle(title string) string {
	return strings.ToUpper(strings.TrimSpace(title))
}
