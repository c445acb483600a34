// Package tracker persists the currently active feature as a one-line
// "id:issue_number" marker file. The marker is advisory: there is no locking,
// and a malformed file is treated the same as an absent one.
package tracker

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNoCurrent is returned when no feature is in progress.
var ErrNoCurrent = errors.New("no current feature")

// Current identifies the feature being worked on and its GitHub issue.
type Current struct {
	FeatureID string
	Issue     int
}

// Tracker reads and writes the marker file.
type Tracker struct {
	path string
}

// New creates a Tracker for the given marker file path.
func New(path string) *Tracker {
	return &Tracker{path: path}
}

// Load returns the current feature, or ErrNoCurrent when the marker is
// missing or unparseable.
func (t *Tracker) Load() (Current, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Current{}, ErrNoCurrent
		}
		return Current{}, fmt.Errorf("read %s: %w", t.path, err)
	}
	content := strings.TrimSpace(string(data))
	id, numStr, ok := strings.Cut(content, ":")
	if !ok || id == "" {
		return Current{}, ErrNoCurrent
	}
	num, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return Current{}, ErrNoCurrent
	}
	return Current{FeatureID: id, Issue: num}, nil
}

// Set records the current feature, overwriting any previous marker.
func (t *Tracker) Set(featureID string, issue int) error {
	content := fmt.Sprintf("%s:%d", featureID, issue)
	if err := os.WriteFile(t.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", t.path, err)
	}
	return nil
}

// Clear removes the marker. Clearing an absent marker is not an error.
func (t *Tracker) Clear() error {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", t.path, err)
	}
	return nil
}
