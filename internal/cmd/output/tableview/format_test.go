package tableview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type status string

type money struct{ cents int }

func (m money) String() string { return "$" + string(rune('0'+m.cents/100)) }

func TestFormatValue(t *testing.T) {
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var nilTime *time.Time
	var nilPtr *int
	n := 7

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Ann", "Ann"},
		{"named string", status("active"), "active"},
		{"int", 42, "42"},
		{"int pointer", &n, "7"},
		{"nil pointer", nilPtr, ""},
		{"uint", uint8(3), "3"},
		{"float", 9.5, "9.5"},
		{"bool", true, "true"},
		{"time", when, "2026-01-02 03:04"},
		{"zero time", time.Time{}, ""},
		{"nil time", nilTime, ""},
		{"strings", []string{"a", "b"}, "a, b"},
		{"ints", []int{1, 2}, "1, 2"},
		{"map", map[string]int{"a": 1}, `{"a":1}`},
		{"stringer", money{cents: 300}, "$3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.in))
		})
	}
}

func TestFormatHeader(t *testing.T) {
	tests := map[string]string{
		"name":        "NAME",
		"createdAt":   "CREATED AT",
		"price_cents": "PRICE CENTS",
		"userID":      "USER ID",
		"HTTPStatus":  "HTTP STATUS",
		"base-url":    "BASE URL",
		"v2Plan":      "V 2 PLAN",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatHeader(in), in)
	}
}
