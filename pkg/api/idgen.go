package api

import (
	"strings"

	"github.com/google/uuid"
)

// newID returns a fresh UUIDv4 string, used for campaign and prospect
// primary keys. The Repository Layer never generates identifiers itself —
// callers own creation and pass a caller-supplied id rather than relying
// on a database default.
func newID() string {
	return uuid.NewString()
}

// newLandingToken returns the opaque 24-character token used by the
// /couvreur?t= landing route: a fresh random UUID, hyphens stripped,
// truncated to 24 hex characters.
func newLandingToken() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:24]
}
