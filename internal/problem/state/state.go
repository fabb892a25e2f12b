// Package state holds the currently active problem.
package state

import (
	"sync"

	"acrunner/internal/problem/model"
)

// Holder is a single-slot store for the active problem record.
// Set replaces the previous record entirely.
type Holder struct {
	mu      sync.RWMutex
	current *model.ProblemRecord
}

// NewHolder creates an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Get returns a copy of the current problem, or false when none is set.
func (h *Holder) Get() (model.ProblemRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return model.ProblemRecord{}, false
	}
	return h.current.Clone(), true
}

// Set replaces the current problem.
func (h *Holder) Set(problem model.ProblemRecord) {
	cloned := problem.Clone()
	h.mu.Lock()
	h.current = &cloned
	h.mu.Unlock()
}

// Update applies fn to the current problem under the write lock. It reports
// false, without calling fn, when no problem is set.
func (h *Holder) Update(fn func(*model.ProblemRecord)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	fn(h.current)
	return true
}

// Clear drops the current problem.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}
