package galaxy

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadResources loads the resource catalog from a JSON file.
func ReadResources(path string) ([]Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource catalog: %w", err)
	}
	var catalog []Resource
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse resource catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ReadGalaxy loads a canonical galaxy file.
func ReadGalaxy(path string) (Galaxy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read galaxy: %w", err)
	}
	var g Galaxy
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse galaxy %s: %w", path, err)
	}
	return g, nil
}

// WriteFile writes the galaxy in its canonical form: two-space indentation
// and a trailing newline, fields in declaration order.
func (g Galaxy) WriteFile(path string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode galaxy: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write galaxy: %w", err)
	}
	return nil
}
