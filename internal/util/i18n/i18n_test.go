package i18n

import "testing"

func TestTFallsBackToDefault(t *testing.T) {
	if got := T("root.unknown", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	Register("root.known", "registered")
	if got := T("root.known", "fallback"); got != "registered" {
		t.Fatalf("expected registered value, got %q", got)
	}
}
