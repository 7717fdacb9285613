package options

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEnvironmentEntry(t *testing.T) {
	tests := []struct {
		entry string
		name  string
		value string
	}{
		{"key=1", "key", "1"},
		{"key=", "key", ""},
		{"url=a=b", "url", "a=b"},
		{"dart.vm.product=true", "dart.vm.product", "true"},
	}

	for _, tt := range tests {
		name, value, err := ParseEnvironmentEntry(tt.entry)
		if err != nil {
			t.Errorf("ParseEnvironmentEntry(%q) failed: %v", tt.entry, err)
			continue
		}
		if name != tt.name || value != tt.value {
			t.Errorf("ParseEnvironmentEntry(%q): expected (%q, %q), got (%q, %q)", tt.entry, tt.name, tt.value, name, value)
		}
	}

	for _, entry := range []string{"", "key", "=value"} {
		if _, _, err := ParseEnvironmentEntry(entry); !errors.Is(err, ErrInvalidEnvironmentEntry) {
			t.Errorf("ParseEnvironmentEntry(%q): expected invalid_environment_entry, got %v", entry, err)
		}
	}
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	if env.Len() != 0 || len(env.Keys()) != 0 {
		t.Fatal("Expected a new environment to be empty")
	}
	if _, ok := env.Lookup("missing"); ok {
		t.Error("Expected lookup of a missing name to fail")
	}

	for _, entry := range []string{"b=2", "a=1", "b=3"} {
		if err := env.Collect(entry); err != nil {
			t.Fatalf("Collect(%q) failed: %v", entry, err)
		}
	}
	if err := env.Collect("broken"); err == nil {
		t.Error("Expected Collect to reject an entry without '='")
	}

	if diff := cmp.Diff([]string{"a", "b"}, env.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}

	var seen []string
	env.Each(func(name, value string) {
		seen = append(seen, name+"="+value)
	})
	if diff := cmp.Diff([]string{"a=1", "b=3"}, seen); diff != "" {
		t.Errorf("Each order mismatch (-want +got):\n%s", diff)
	}

	m := env.Map()
	m["c"] = "4"
	if _, ok := env.Lookup("c"); ok {
		t.Error("Expected Map to return a copy")
	}

	env.Clear()
	if env.Len() != 0 {
		t.Errorf("Expected Clear to empty the environment, got %d entries", env.Len())
	}
}
