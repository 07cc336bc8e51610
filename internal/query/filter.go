package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the records matching c, in their original order. The input
// slice is never modified and the result is always a fresh slice.
func Filter[R any](records []R, c Criteria, spec Spec[R]) []R {
	out := make([]R, 0, len(records))
	m := newMatcher(c, spec)
	for _, rec := range records {
		if m.match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Match reports whether a single record satisfies c.
func Match[R any](rec R, c Criteria, spec Spec[R]) bool {
	return newMatcher(c, spec).match(rec)
}

type matcher[R any] struct {
	criteria Criteria
	spec     Spec[R]
	caser    cases.Caser
	needle   string
}

// A Caser keeps state between calls so every matcher gets its own.
func newMatcher[R any](c Criteria, spec Spec[R]) *matcher[R] {
	caser := cases.Fold()
	return &matcher[R]{
		criteria: c,
		spec:     spec,
		caser:    caser,
		needle:   caser.String(c.SearchText),
	}
}

func (m *matcher[R]) match(rec R) bool {
	return m.matchStatus(rec) && m.matchText(rec)
}

func (m *matcher[R]) matchStatus(rec R) bool {
	if m.criteria.allStatuses() {
		return true
	}
	if m.spec.Status == nil {
		return false
	}
	return m.spec.Status(rec) == m.criteria.Status
}

func (m *matcher[R]) matchText(rec R) bool {
	if m.needle == "" {
		return true
	}
	if m.spec.Text == nil {
		return false
	}
	for _, field := range m.spec.Text(rec) {
		if strings.Contains(m.caser.String(field), m.needle) {
			return true
		}
	}
	return false
}
