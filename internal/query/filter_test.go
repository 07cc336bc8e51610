package query

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID     int
	Name   string
	Email  string
	Status string
}

var personSpec = Spec[person]{
	Text:   func(p person) []string { return []string{p.Name, p.Email} },
	Status: func(p person) string { return p.Status },
}

func samplePeople() []person {
	return []person{
		{ID: 1, Name: "Bob", Email: "bob@example.test", Status: "active"},
		{ID: 2, Name: "Alice", Email: "alice@example.test", Status: "inactive"},
		{ID: 3, Name: "Bobby Tables", Email: "drop@example.test", Status: "active"},
		{ID: 4, Name: "Straße", Email: "s4@example.test", Status: "archived"},
	}
}

func TestFilterBobByStatus(t *testing.T) {
	records := []person{{ID: 1, Status: "active", Name: "Bob"}}

	got := Filter(records, Criteria{SearchText: "bob", Status: "active"}, personSpec)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	got = Filter(records, Criteria{SearchText: "bob", Status: "inactive"}, personSpec)
	assert.Empty(t, got)
}

func TestFilterIdentity(t *testing.T) {
	records := samplePeople()
	for _, c := range []Criteria{{}, {Status: StatusAll}} {
		got := Filter(records, c, personSpec)
		assert.Equal(t, records, got)
	}
}

func TestFilterSearchContainmentProperty(t *testing.T) {
	records := samplePeople()
	for _, needle := range []string{"b", "BOB", "example", "ALI", "tables", "zzz", "@"} {
		t.Run(needle, func(t *testing.T) {
			got := Filter(records, Criteria{SearchText: needle, Status: StatusAll}, personSpec)
			for _, p := range got {
				hit := strings.Contains(strings.ToLower(p.Name), strings.ToLower(needle)) ||
					strings.Contains(strings.ToLower(p.Email), strings.ToLower(needle))
				assert.True(t, hit, "record %d does not contain %q", p.ID, needle)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	got := Filter(samplePeople(), Criteria{SearchText: "bob"}, personSpec)
	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 3}, []int{got[0].ID, got[1].ID})
}

func TestFilterCaseFolding(t *testing.T) {
	got := Filter(samplePeople(), Criteria{SearchText: "STRASSE"}, personSpec)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ID)
}

func TestFilterUnknownStatusMatchesNothing(t *testing.T) {
	got := Filter(samplePeople(), Criteria{Status: "banned"}, personSpec)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterIgnoresNonDesignatedFields(t *testing.T) {
	spec := Spec[person]{Text: func(p person) []string { return []string{p.Name} }}
	got := Filter(samplePeople(), Criteria{SearchText: "drop@"}, spec)
	assert.Empty(t, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := samplePeople()
	before := fmt.Sprint(records)

	got := Filter(records, Criteria{Status: "active"}, personSpec)
	require.Len(t, got, 2)
	got[0].Name = "changed"

	assert.Equal(t, before, fmt.Sprint(records))
}

func TestFilterIsDeterministic(t *testing.T) {
	c := Criteria{SearchText: "example", Status: "active"}
	assert.Equal(t, Filter(samplePeople(), c, personSpec), Filter(samplePeople(), c, personSpec))
}

func TestFilterWithoutStatusAccessor(t *testing.T) {
	spec := Spec[person]{Text: personSpec.Text}
	assert.Empty(t, Filter(samplePeople(), Criteria{Status: "active"}, spec))
	assert.Len(t, Filter(samplePeople(), Criteria{Status: StatusAll}, spec), 4)
}

func TestMatch(t *testing.T) {
	p := samplePeople()[1]
	assert.True(t, Match(p, Criteria{SearchText: "alice", Status: "inactive"}, personSpec))
	assert.False(t, Match(p, Criteria{SearchText: "alice", Status: "active"}, personSpec))
}

func TestCriteriaString(t *testing.T) {
	assert.Equal(t, "status=all", Criteria{}.String())
	assert.Equal(t, `status=active search="bob"`, Criteria{SearchText: "bob", Status: "active"}.String())
	assert.True(t, Criteria{Status: StatusAll}.IsZero())
	assert.False(t, Criteria{SearchText: "x"}.IsZero())
}
