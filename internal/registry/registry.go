// SPDX-License-Identifier: BSD-3-Clause

// Package registry implements the controller registry: a name->entry
// table populated once at startup and read concurrently thereafter.
package registry

import (
	"sync"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/internal/connmgr"
)

// Entry is one registered controller: its board descriptor, an
// optional connection manager (nil means mock mode), and an optional
// human description.
type Entry struct {
	ID          string
	Board       board.Descriptor
	Manager     *connmgr.Manager // nil in mock mode
	Description string
}

// MockMode reports whether this entry has no real connection manager.
func (e Entry) MockMode() bool {
	return e.Manager == nil
}

// Registry is a name->entry table. The zero value is ready to use.
// Registration is a one-time write phase at startup; reads are safe
// for concurrent use thereafter.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds entry, failing *Duplicate if its id is already
// present.
func (r *Registry) Register(entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.ID]; exists {
		return apierr.Newf(apierr.Duplicate, "controller id %q already registered", entry.ID)
	}
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	r.entries[entry.ID] = entry
	return nil
}

// Get returns the entry for id, if present.
func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// GetOrErr returns the entry for id, or *NotFound.
func (r *Registry) GetOrErr(id string) (Entry, error) {
	e, ok := r.Get(id)
	if !ok {
		return Entry{}, apierr.Newf(apierr.NotFound, "controller %q not found", id)
	}
	return e, nil
}

// List returns a snapshot of every registered entry.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}
