package catalog

import "errors"

// Error taxonomy for catalog operations. Store connectivity failures are not
// part of it: they propagate unmodified and are always fatal.
var (
	// ErrNotFound covers both a missing entity and an ownership mismatch on
	// an owner-scoped lookup. The two causes are never distinguished.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyFavored is returned when an id is added to a membership set
	// it is already part of. Removal is idempotent and never fails this way.
	ErrAlreadyFavored = errors.New("already in favorites")

	// ErrInvalidID is returned for identifiers that are not valid 24-hex
	// object ids.
	ErrInvalidID = errors.New("invalid id format")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("user already exists")
)

// IsValidID reports whether id has the store-native 24-hex identifier shape.
func IsValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
