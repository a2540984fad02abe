// Package uuid generates the time-ordered identifiers used as primary keys.
package uuid

import (
	"fmt"

	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. Version 7 ids sort by creation time,
// which keeps btree inserts append-mostly and makes ids roughly chronological.
// Falls back to a random v4 id if the v7 generator fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates s and returns it in canonical lower-case form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a well-formed UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
