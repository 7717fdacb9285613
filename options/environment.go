package options

import (
	"sort"
	"strings"
)

// Environment holds the name/value declarations collected from -D options.
// It is separate from the OS process environment.
type Environment struct {
	entries map[string]string
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{}
}

// Set stores value under name, replacing any previous value.
func (e *Environment) Set(name, value string) {
	if e.entries == nil {
		e.entries = make(map[string]string)
	}
	e.entries[name] = value
}

// Lookup returns the value for name and whether it was declared.
func (e *Environment) Lookup(name string) (string, bool) {
	v, ok := e.entries[name]
	return v, ok
}

// Len returns the number of declarations.
func (e *Environment) Len() int {
	return len(e.entries)
}

// Keys returns the declared names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.entries))
	for k := range e.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every declaration in name order.
func (e *Environment) Each(fn func(name, value string)) {
	for _, k := range e.Keys() {
		fn(k, e.entries[k])
	}
}

// Map returns a copy of the declarations.
func (e *Environment) Map() map[string]string {
	out := make(map[string]string, len(e.entries))
	for k, v := range e.entries {
		out[k] = v
	}
	return out
}

// Clear releases the map storage.
func (e *Environment) Clear() {
	e.entries = nil
}

// Collect parses a "name=value" entry and stores it.
func (e *Environment) Collect(entry string) error {
	name, value, err := ParseEnvironmentEntry(entry)
	if err != nil {
		return err
	}
	e.Set(name, value)
	return nil
}

// ParseEnvironmentEntry splits entry at the first '='. The value may be
// empty or contain further '=' characters; the name may not be empty.
func ParseEnvironmentEntry(entry string) (name, value string, err error) {
	name, value, found := strings.Cut(entry, "=")
	if !found {
		return "", "", NewParseError(ErrorTypeInvalidEnvironmentEntry,
			"expected <name>=<value>, got %q", entry)
	}
	if name == "" {
		return "", "", NewParseError(ErrorTypeInvalidEnvironmentEntry,
			"empty name in %q", entry)
	}
	return name, value, nil
}
