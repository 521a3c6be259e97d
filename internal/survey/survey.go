// Package survey models the raw crowd-sourced data file before
// normalization. Field keys arrive with inconsistent casing, so all access
// goes through case-insensitive lookup.
package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrMissing reports a field absent from a record under any casing.
var ErrMissing = errors.New("field missing")

// Record is one raw body entry: field name to loosely typed value.
type Record map[string]any

// Survey is the raw data file: system name to body name to record.
type Survey map[string]map[string]Record

// Load reads a raw survey file.
func Load(path string) (Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey: %w", err)
	}
	var s Survey
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse survey %s: %w", path, err)
	}
	return s, nil
}

// Save writes the survey back with the four-space indentation the
// hand-edited files use.
func (s Survey) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode survey: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write survey: %w", err)
	}
	return nil
}

// SystemNames returns the survey's system names in sorted order.
func (s Survey) SystemNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// System returns the bodies of the named system, matching the name without
// regard to case, along with the name's stored spelling.
func (s Survey) System(name string) (string, map[string]Record, bool) {
	if bodies, ok := s[name]; ok {
		return name, bodies, true
	}
	for _, stored := range s.SystemNames() {
		if strings.EqualFold(stored, name) {
			return stored, s[stored], true
		}
	}
	return "", nil, false
}

// Lookup returns the value stored under key, matching case-insensitively.
// The stored spelling of the key is returned so callers can write back
// through it.
func (r Record) Lookup(key string) (string, any, bool) {
	if v, ok := r[key]; ok {
		return key, v, true
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return k, r[k], true
		}
	}
	return "", nil, false
}

// String returns the named field as a string.
func (r Record) String(key string) (string, error) {
	_, v, ok := r.Lookup(key)
	if !ok {
		return "", fmt.Errorf("field %q: %w", key, ErrMissing)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// Strings returns the named field as a list of strings.
func (r Record) Strings(key string) ([]string, error) {
	_, v, ok := r.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("field %q: %w", key, ErrMissing)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: expected list, got %T", key, v)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %q[%d]: expected string, got %T", key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// Set stores value under key, reusing the stored spelling when a
// case-insensitive match exists.
func (r Record) Set(key string, value any) {
	if stored, _, ok := r.Lookup(key); ok {
		r[stored] = value
		return
	}
	r[key] = value
}
