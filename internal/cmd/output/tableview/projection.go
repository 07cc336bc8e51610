package tableview

import (
	"errors"
	"fmt"
)

// MissingValue is rendered for Field accessors naming a field the record
// does not have.
const MissingValue = "n/a"

var (
	ErrNoColumns         = errors.New("tableview: at least one column is required")
	ErrDuplicateRecordID = errors.New("tableview: duplicate record id")
)

// RenderError reports a Derive accessor failure. It is returned as is and
// never replaced by a placeholder cell.
type RenderError struct {
	Row      int
	RecordID string
	Column   string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("tableview: rendering column %q of record %q (row %d): %v",
		e.Column, e.RecordID, e.Row, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Projection is the resolved, display ready form of a record collection.
// Every renderer reads the same Projection so the views cannot disagree.
type Projection struct {
	Headers []string
	Classes []string
	Rows    []ProjectedRow
}

// ProjectedRow is one record's cells in column order.
type ProjectedRow struct {
	ID    string
	Cells []string
}

func (p Projection) Len() int {
	return len(p.Rows)
}

// Matrix returns the cells as a fresh row-major slice.
func (p Projection) Matrix() [][]string {
	out := make([][]string, len(p.Rows))
	for i, row := range p.Rows {
		out[i] = append([]string(nil), row.Cells...)
	}
	return out
}

// IndexOf returns the row holding the record with id, or -1.
func (p Projection) IndexOf(id string) int {
	for i, row := range p.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Project resolves every cell of records against columns.
func Project[R Record](records []R, columns []Column[R]) (Projection, error) {
	if len(columns) == 0 {
		return Projection{}, ErrNoColumns
	}

	p := Projection{
		Headers: make([]string, len(columns)),
		Classes: make([]string, len(columns)),
		Rows:    make([]ProjectedRow, 0, len(records)),
	}
	for i, col := range columns {
		if err := col.Accessor.validate(); err != nil {
			return Projection{}, fmt.Errorf("column %d: %w", i, err)
		}
		p.Headers[i] = col.header()
		p.Classes[i] = col.ClassName
	}

	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		id := rec.RecordID()
		if _, dup := seen[id]; dup {
			return Projection{}, fmt.Errorf("%w: %q", ErrDuplicateRecordID, id)
		}
		seen[id] = struct{}{}

		cells := make([]string, len(columns))
		for j, col := range columns {
			cell, err := col.Accessor.resolve(rec)
			if err != nil {
				return Projection{}, &RenderError{Row: i, RecordID: id, Column: p.Headers[j], Err: err}
			}
			cells[j] = cell
		}
		p.Rows = append(p.Rows, ProjectedRow{ID: id, Cells: cells})
	}
	return p, nil
}
