package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences holds UI preferences persisted outside the reactive
// state container and reapplied at the next load.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// PreferenceStore reads and writes preferences as a small JSON file
type PreferenceStore struct {
	path string
}

// NewPreferenceStore creates a preference store at path
func NewPreferenceStore(path string) *PreferenceStore {
	return &PreferenceStore{path: path}
}

// Load returns the saved preferences; a missing file yields defaults
func (p *PreferenceStore) Load() (Preferences, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences: %w", err)
	}

	return prefs, nil
}

// Save persists the preferences
func (p *PreferenceStore) Save(prefs Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}
