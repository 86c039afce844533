package permission

// Entity describes one governed resource category and the wire field
// names carrying its scope pair. EditKey is empty for view-only
// entities such as ChangeLog.
type Entity struct {
	Name    string
	ViewKey string
	EditKey string
}

// Editable reports whether the entity carries an edit scope at all.
func (e Entity) Editable() bool {
	return e.EditKey != ""
}

// Entities is the closed, ordered set of resource categories the
// portal governs. Order matters for display and for which invariant
// violation is reported first; it carries no other meaning.
var Entities = []Entity{
	{Name: "Dog", ViewKey: "viewDogScope", EditKey: "editDogScope"},
	{Name: "Person", ViewKey: "viewPersonScope", EditKey: "editPersonScope"},
	{Name: "DogOwner", ViewKey: "viewDogOwnerScope", EditKey: "editDogOwnerScope"},
	{Name: "OfficerRole", ViewKey: "viewOfficerRoleScope", EditKey: "editOfficerRoleScope"},
	{Name: "UserRole", ViewKey: "viewUserRoleScope", EditKey: "editUserRoleScope"},
	{Name: "Club", ViewKey: "viewClubScope", EditKey: "editClubScope"},
	{Name: "Meet", ViewKey: "viewMeetScope", EditKey: "editMeetScope"},
	{Name: "MeetResults", ViewKey: "viewMeetResultsScope", EditKey: "editMeetResultsScope"},
	{Name: "RaceResults", ViewKey: "viewRaceResultsScope", EditKey: "editRaceResultsScope"},
	{Name: "DogTitles", ViewKey: "viewDogTitlesScope", EditKey: "editDogTitlesScope"},
	{Name: "News", ViewKey: "viewNewsScope", EditKey: "editNewsScope"},
	{Name: "TitleType", ViewKey: "viewTitleTypeScope", EditKey: "editTitleTypeScope"},
	{Name: "ChangeLog", ViewKey: "viewChangeLogScope"},
}

// EntityByName returns the registry entry for name, or false when the
// name is not part of the closed set.
func EntityByName(name string) (Entity, bool) {
	for _, e := range Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// ScopeKey reports whether key names a scope field of some registered
// entity (either its view key or its edit key).
func ScopeKey(key string) bool {
	for _, e := range Entities {
		if e.ViewKey == key || (e.Editable() && e.EditKey == key) {
			return true
		}
	}
	return false
}

// Grants holds the scope value for each registered scope field key.
// Missing keys read as None.
type Grants map[string]Scope

// NewGrants returns a grant set with every registered field at None.
func NewGrants() Grants {
	g := make(Grants, len(Entities)*2)
	for _, e := range Entities {
		g[e.ViewKey] = None
		if e.Editable() {
			g[e.EditKey] = None
		}
	}
	return g
}

// Get returns the scope stored under key, None when absent.
func (g Grants) Get(key string) Scope {
	return g[key]
}

// View returns the view scope for the named entity.
func (g Grants) View(entity string) Scope {
	if e, ok := EntityByName(entity); ok {
		return g[e.ViewKey]
	}
	return None
}

// Edit returns the edit scope for the named entity. View-only entities
// always report None.
func (g Grants) Edit(entity string) Scope {
	if e, ok := EntityByName(entity); ok && e.Editable() {
		return g[e.EditKey]
	}
	return None
}

// Clone returns an independent copy of the grant set.
func (g Grants) Clone() Grants {
	out := make(Grants, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}
