// Package permission defines the tri-state access scope model used by
// user roles: a scope of None, Self or All per governed entity, for
// viewing and editing independently.
package permission

import "encoding/json"

// Scope is the breadth of access granted for one entity category.
// Scopes are totally ordered: None < Self < All.
type Scope int

const (
	// None grants no access.
	None Scope = 0
	// Self grants access to the caller's own records only.
	Self Scope = 1
	// All grants access to every record.
	All Scope = 2
)

// ScopeOf coerces an arbitrary value to a valid Scope. Anything that is
// not exactly 0, 1 or 2 maps to None, so a malformed or missing payload
// field can never widen access.
func ScopeOf(v interface{}) Scope {
	switch n := v.(type) {
	case Scope:
		if n == None || n == Self || n == All {
			return n
		}
	case int:
		return scopeOfInt(int64(n))
	case int64:
		return scopeOfInt(n)
	case float64:
		// JSON numbers decode as float64; only exact integral 0/1/2 count.
		if n == float64(int64(n)) {
			return scopeOfInt(int64(n))
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return scopeOfInt(i)
		}
	}
	return None
}

func scopeOfInt(n int64) Scope {
	switch n {
	case 0:
		return None
	case 1:
		return Self
	case 2:
		return All
	}
	return None
}

// Compare orders two scopes by the None < Self < All sequence,
// returning -1, 0 or 1.
func Compare(a, b Scope) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (s Scope) String() string {
	switch s {
	case Self:
		return "self"
	case All:
		return "all"
	}
	return "none"
}

// UnmarshalJSON coerces any JSON value to a valid scope instead of
// failing, normalizing payload drift at the boundary.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = None
		return nil
	}
	*s = ScopeOf(raw)
	return nil
}
