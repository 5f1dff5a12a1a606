// Package uuid wraps google/uuid for resource ids in request URIs. An
// empty path or query parameter binds to the Nil UUID instead of
// failing to parse.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID identifies a resource of the backend.
type UUID struct {
	google_uuid.UUID
}

// Nil is the zero UUID, used for unset ids.
var Nil UUID

// New returns a random UUID.
func New() UUID {
	return UUID{google_uuid.New()}
}

// NewString returns a random UUID in its string form.
func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam binds a URI or query parameter. An empty parameter is
// the Nil UUID, everything else must parse per
// https://pkg.go.dev/github.com/google/uuid#Parse
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
