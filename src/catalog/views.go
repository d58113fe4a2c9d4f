package catalog

// Scope selects which membership sets feed a user's filtered view.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeFavored Scope = "favored"
	ScopeMine    Scope = "mine"
)

// ParseScope maps a query value to a Scope. The legacy values "myAlbums" and
// "myTracks" are accepted as aliases for the owned scope; anything else means
// the full view.
func ParseScope(s string) Scope {
	switch s {
	case "favored":
		return ScopeFavored
	case "mine", "myAlbums", "myTracks":
		return ScopeMine
	default:
		return ScopeAll
	}
}

// Order is a sort direction for one key of a composed sort.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder maps a query value to an Order, falling back to def.
func ParseOrder(s string, def Order) Order {
	switch s {
	case "asc":
		return OrderAsc
	case "desc":
		return OrderDesc
	default:
		return def
	}
}

// ViewIDs returns the identifier sequence feeding a filtered view: favored,
// owned, or their concatenation. The concatenation keeps duplicates — an id
// that is both owned and favored appears twice in the full view.
func ViewIDs(favored, owned []string, scope Scope) []string {
	switch scope {
	case ScopeFavored:
		return favored
	case ScopeMine:
		return owned
	default:
		ids := make([]string, 0, len(favored)+len(owned))
		ids = append(ids, favored...)
		ids = append(ids, owned...)
		return ids
	}
}
