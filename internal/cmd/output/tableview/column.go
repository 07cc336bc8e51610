package tableview

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidAccessor = errors.New("tableview: invalid column accessor")

type accessorKind int

const (
	accessorUnset accessorKind = iota
	accessorField
	accessorDerive
)

// Accessor extracts a display value from a record. It is either a field
// lookup (Field) or a function of the record (Derive).
type Accessor[R any] struct {
	kind   accessorKind
	field  string
	derive func(R) (string, error)
}

// Field reads the named field from the record.
func Field[R any](name string) Accessor[R] {
	return Accessor[R]{kind: accessorField, field: name}
}

// Derive computes the cell from the record. An error aborts the render.
func Derive[R any](fn func(R) (string, error)) Accessor[R] {
	return Accessor[R]{kind: accessorDerive, derive: fn}
}

// Compute is Derive for functions that cannot fail.
func Compute[R any](fn func(R) string) Accessor[R] {
	if fn == nil {
		return Accessor[R]{kind: accessorDerive}
	}
	return Derive(func(r R) (string, error) { return fn(r), nil })
}

func (a Accessor[R]) validate() error {
	switch a.kind {
	case accessorField:
		if strings.TrimSpace(a.field) == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidAccessor)
		}
	case accessorDerive:
		if a.derive == nil {
			return fmt.Errorf("%w: nil derive function", ErrInvalidAccessor)
		}
	default:
		return fmt.Errorf("%w: accessor not set", ErrInvalidAccessor)
	}
	return nil
}

func (a Accessor[R]) resolve(rec R) (string, error) {
	switch a.kind {
	case accessorField:
		v, ok := lookupField(rec, a.field)
		if !ok {
			return MissingValue, nil
		}
		return formatValue(v), nil
	case accessorDerive:
		return a.derive(rec)
	default:
		return "", ErrInvalidAccessor
	}
}

// StatusClass marks a column whose cells are styled by their own value.
const StatusClass = "status"

// Column describes one column of a rendered collection.
type Column[R any] struct {
	// Header is the display label. Field columns without one get a label
	// derived from the field name.
	Header   string
	Accessor Accessor[R]
	// ClassName is an opaque presentation hint passed to the theme.
	ClassName string
}

func (c Column[R]) header() string {
	if c.Header != "" || c.Accessor.kind != accessorField {
		return c.Header
	}
	return formatHeader(c.Accessor.field)
}

// formatHeader turns field names such as "createdAt" or "price_cents" into
// "CREATED AT" and "PRICE CENTS".
func formatHeader(field string) string {
	if field == "" {
		return field
	}

	var words []string
	var current strings.Builder

	runes := []rune(field)
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' {
			words = appendWord(words, current.String())
			current.Reset()
			continue
		}

		if i > 0 {
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if shouldBreak(runes[i-1], r, next) {
				words = appendWord(words, current.String())
				current.Reset()
			}
		}
		current.WriteRune(r)
	}

	words = appendWord(words, current.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, " ")
}

func shouldBreak(prev, current, next rune) bool {
	if unicode.IsDigit(current) && !unicode.IsDigit(prev) {
		return true
	}
	if !unicode.IsUpper(current) {
		return false
	}
	if !unicode.IsUpper(prev) {
		return true
	}
	return unicode.IsLower(next)
}

func appendWord(words []string, word string) []string {
	word = strings.TrimSpace(word)
	if word == "" {
		return words
	}
	return append(words, word)
}
