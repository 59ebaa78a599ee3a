package ids

import (
	"strings"
	"testing"
)

func TestNewIsSortable(t *testing.T) {
	a := New()
	b := New()
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("unexpected id lengths: %q %q", a, b)
	}
	if a >= b {
		t.Fatalf("ids not monotonic: %s >= %s", a, b)
	}
}

func TestNormalize(t *testing.T) {
	id := New()
	got, err := Normalize(strings.ToLower(id))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}

	if _, err := Normalize("not-a-ulid"); err == nil {
		t.Fatal("expected error for malformed id")
	}
}
