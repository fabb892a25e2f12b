package config

import (
	"sync"
)

// Overrides are runtime values layered over the file settings. They are
// never written back to the settings file.
type Overrides struct {
	WorkspaceRoot string
	Port          int
}

// Apply returns s with every non-zero override set.
func (o Overrides) Apply(s Settings) Settings {
	if o.WorkspaceRoot != "" {
		s.WorkspaceRoot = o.WorkspaceRoot
	}
	if o.Port != 0 {
		s.Port = o.Port
	}
	return s
}

// Store holds the live settings and persists changes made at runtime.
type Store struct {
	mu        sync.RWMutex
	path      string
	settings  Settings
	overrides Overrides
}

// NewStore wraps settings loaded from path. An empty path disables persistence.
func NewStore(path string, settings Settings) *Store {
	return &Store{path: path, settings: settings}
}

// SetOverrides replaces the runtime overrides.
func (s *Store) SetOverrides(o Overrides) {
	s.mu.Lock()
	s.overrides = o
	s.mu.Unlock()
}

// Get returns the current settings with overrides applied.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides.Apply(s.settings)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// SetInterpreter switches the interpreter and persists the change.
// The in-memory value is only replaced once the file write succeeds.
func (s *Store) SetInterpreter(value string) (Interpreter, error) {
	interp, err := ParseInterpreter(value)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.Interpreter = interp
	if s.path != "" {
		if err := Save(s.path, next); err != nil {
			return "", err
		}
	}
	s.settings = next
	return interp, nil
}
