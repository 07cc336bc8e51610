package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown status")

// UnknownStatusError describes a status filter outside the enumeration.
// Filtering with such a value is legal and matches nothing; callers use this
// error to warn the user.
type UnknownStatusError struct {
	Value      string
	Allowed    []string
	Suggestion string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("%s %q, must be one of %s",
		ErrUnknownStatus, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *UnknownStatusError) Is(target error) bool {
	return target == ErrUnknownStatus
}

// Statuses is the status enumeration of one resource.
type Statuses []string

func (s Statuses) Contains(v string) bool {
	return slices.Contains(s, v)
}

// Options lists the values a status filter may take, StatusAll first.
func (s Statuses) Options() []string {
	return append([]string{StatusAll}, s...)
}

// Validate returns an *UnknownStatusError when v is neither empty, StatusAll
// nor a member of s.
func (s Statuses) Validate(v string) error {
	if v == "" || v == StatusAll || s.Contains(v) {
		return nil
	}
	opts := s.Options()
	suggestion, _ := Suggest(v, opts)
	return &UnknownStatusError{Value: v, Allowed: opts, Suggestion: suggestion}
}

// Next returns the status after current in Options order, wrapping around.
// Unknown values restart at StatusAll.
func (s Statuses) Next(current string) string {
	opts := s.Options()
	if current == "" {
		current = StatusAll
	}
	i := slices.Index(opts, current)
	if i < 0 {
		return StatusAll
	}
	return opts[(i+1)%len(opts)]
}
