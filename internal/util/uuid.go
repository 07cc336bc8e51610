package util

import (
	"strings"

	"github.com/google/uuid"
)

const abbreviatedUUIDPrefixLength = 8

// IsValidUUID reports whether s is a canonical 8-4-4-4-12 UUID.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// AbbreviateUUID shortens a UUID for text output. Other values pass through
// unchanged.
func AbbreviateUUID(id string) string {
	id = strings.TrimSpace(id)
	if !IsValidUUID(id) {
		return id
	}
	return id[:abbreviatedUUIDPrefixLength] + "…"
}
