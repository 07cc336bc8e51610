// Package query narrows in-memory record collections by free text and status.
package query

import "strings"

// StatusAll disables status filtering.
const StatusAll = "all"

// Criteria is the user supplied narrowing predicate.
type Criteria struct {
	// SearchText is matched case-insensitively against the designated text
	// fields. Empty text matches everything.
	SearchText string
	// Status must equal the record status unless it is StatusAll or empty.
	Status string
}

// Spec designates which parts of a record the criteria look at.
type Spec[R any] struct {
	Text   func(R) []string
	Status func(R) string
}

func (c Criteria) allStatuses() bool {
	return c.Status == "" || c.Status == StatusAll
}

// IsZero reports whether c lets every record through.
func (c Criteria) IsZero() bool {
	return c.SearchText == "" && c.allStatuses()
}

// String summarizes c for status lines, e.g. `status=active search="bob"`.
func (c Criteria) String() string {
	status := c.Status
	if status == "" {
		status = StatusAll
	}
	parts := []string{"status=" + status}
	if c.SearchText != "" {
		parts = append(parts, "search="+quote(c.SearchText))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
