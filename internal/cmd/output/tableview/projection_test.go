package tableview

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plan struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Features   []string  `json:"features"`
	UpdatedAt  time.Time `json:"updated_at"`
	Internal   string    `json:"-"`
}

func (p plan) RecordID() string { return p.ID }

func TestProjectFieldAccessor(t *testing.T) {
	columns := []Column[Row]{{Header: "Name", Accessor: Field[Row]("name")}}

	p, err := Project([]Row{{"id": 1, "name": "Ann"}}, columns)
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "Ann", p.Rows[0].Cells[0])
	assert.Equal(t, "1", p.Rows[0].ID)
}

func TestProjectDeriveAccessor(t *testing.T) {
	price := Derive(func(r Row) (string, error) {
		v, ok := r["price"].(int)
		if !ok {
			return "", fmt.Errorf("price is %T", r["price"])
		}
		return fmt.Sprintf("%.2f", float64(v)), nil
	})
	columns := []Column[Row]{{Header: "Price", Accessor: price}}

	p, err := Project([]Row{{"id": 2, "price": 9}}, columns)
	require.NoError(t, err)
	assert.Equal(t, "9.00", p.Rows[0].Cells[0])
}

func TestProjectMissingAndNilFields(t *testing.T) {
	columns := []Column[Row]{
		{Header: "Name", Accessor: Field[Row]("name")},
		{Header: "Nick", Accessor: Field[Row]("nickname")},
	}
	p, err := Project([]Row{{"id": "a", "name": nil}}, columns)
	require.NoError(t, err)
	assert.Equal(t, []string{"", MissingValue}, p.Rows[0].Cells)
}

func TestProjectStructFields(t *testing.T) {
	updated := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	records := []plan{{
		ID: "p1", Name: "Gold", PriceCents: 900,
		Features: []string{"boost", "rewind"}, UpdatedAt: updated, Internal: "secret",
	}}
	columns := []Column[plan]{
		{Accessor: Field[plan]("name")},
		{Accessor: Field[plan]("price_cents")},
		{Accessor: Field[plan]("features")},
		{Header: "Updated", Accessor: Field[plan]("updated_at")},
		{Accessor: Field[plan]("Internal")},
		{Header: "Upper", Accessor: Compute(func(p plan) string { return p.Name + "!" })},
	}

	p, err := Project(records, columns)
	require.NoError(t, err)

	want := Projection{
		Headers: []string{"NAME", "PRICE CENTS", "FEATURES", "Updated", "INTERNAL", "Upper"},
		Classes: []string{"", "", "", "", "", ""},
		Rows: []ProjectedRow{{
			ID:    "p1",
			Cells: []string{"Gold", "900", "boost, rewind", "2026-03-04 05:06", "secret", "Gold!"},
		}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectDeriveErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	columns := []Column[Row]{
		{Header: "Name", Accessor: Field[Row]("name")},
		{Header: "Score", Accessor: Derive(func(r Row) (string, error) {
			if r["id"] == "b" {
				return "", boom
			}
			return "ok", nil
		})},
	}

	_, err := Project([]Row{{"id": "a"}, {"id": "b"}}, columns)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, 1, renderErr.Row)
	assert.Equal(t, "b", renderErr.RecordID)
	assert.Equal(t, "Score", renderErr.Column)
}

func TestProjectEmptyRecords(t *testing.T) {
	p, err := Project([]Row{}, []Column[Row]{{Header: "Name", Accessor: Field[Row]("name")}})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, []string{"Name"}, p.Headers)
}

func TestProjectRejectsMalformedColumns(t *testing.T) {
	records := []Row{{"id": 1}}

	_, err := Project(records, nil)
	assert.ErrorIs(t, err, ErrNoColumns)

	for name, acc := range map[string]Accessor[Row]{
		"zero":        {},
		"empty field": Field[Row](" "),
		"nil derive":  Derive[Row](nil),
		"nil compute": Compute[Row](nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Project(records, []Column[Row]{{Header: "X", Accessor: acc}})
			assert.ErrorIs(t, err, ErrInvalidAccessor)
		})
	}
}

func TestProjectRejectsDuplicateIDs(t *testing.T) {
	_, err := Project([]Row{{"id": 1}, {"id": 1}}, []Column[Row]{{Header: "ID", Accessor: Field[Row]("id")}})
	assert.ErrorIs(t, err, ErrDuplicateRecordID)
}

func TestProjectionHelpers(t *testing.T) {
	p, err := Project([]Row{{"id": "a", "n": 1}, {"id": "b", "n": 2}},
		[]Column[Row]{{Header: "N", Accessor: Field[Row]("n"), ClassName: "col-muted"}})
	require.NoError(t, err)

	assert.Equal(t, 1, p.IndexOf("b"))
	assert.Equal(t, -1, p.IndexOf("zzz"))
	assert.Equal(t, []string{"col-muted"}, p.Classes)

	m := p.Matrix()
	m[0][0] = "changed"
	assert.Equal(t, "1", p.Rows[0].Cells[0])
}
