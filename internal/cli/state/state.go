// Package state persists the last ingested problem between sessions.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"acrunner/internal/problem/model"
	appErr "acrunner/pkg/errors"
)

// Snapshot is the on-disk form of the current problem.
type Snapshot struct {
	Problem model.ProblemRecord `json:"problem"`
	SavedAt time.Time           `json:"saved_at"`
}

// Load reads a snapshot. A missing or empty file reports ok=false.
func Load(path string) (Snapshot, bool, error) {
	var snap Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, false, nil
		}
		return snap, false, appErr.Wrapf(err, appErr.ConfigLoadFailed, "read state file failed")
	}
	if len(data) == 0 {
		return snap, false, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, appErr.Wrapf(err, appErr.ConfigLoadFailed, "parse state file failed")
	}
	return snap, true, nil
}

// Save writes the problem to path, creating parent directories.
func Save(path string, problem model.ProblemRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "create state dir failed")
	}
	data, err := json.MarshalIndent(Snapshot{Problem: problem, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "marshal state failed")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "write state file failed")
	}
	return nil
}

// Clear removes the state file.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "remove state file failed")
	}
	return nil
}
