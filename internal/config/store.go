// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"sync"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/pkg/atomicfile"
)

// store is the generic shape shared by all five mutable entities: a
// string-keyed map (integer-keyed entities stringify their keys at the
// edge), guarded by its own RWMutex, with atomic save-on-mutate. Each
// entity instantiates one independent store, so a profiles writer never
// blocks an aliases reader.
type store[V any] struct {
	mu     sync.RWMutex
	path   string
	data   map[string]V
	encode func(map[string]V) ([]byte, error)
	decode func([]byte) (map[string]V, []string, error) // value map, undecoded keys, error
}

func newStore[V any](path string, encode func(map[string]V) ([]byte, error), decode func([]byte) (map[string]V, []string, error)) *store[V] {
	return &store[V]{path: path, data: map[string]V{}, encode: encode, decode: decode}
}

// load reads the backing file, writing and keeping defaults() if the
// file does not exist yet.
func (s *store[V]) load(defaults func() map[string]V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.data = defaults()
		return s.saveLocked()
	}
	if err != nil {
		return apierr.Wrap(apierr.Config, "reading "+s.path, err)
	}

	m, undecoded, err := s.decode(raw)
	if err != nil {
		return apierr.Wrap(apierr.Config, "parsing "+s.path, err)
	}
	if len(undecoded) > 0 {
		return apierr.Newf(apierr.Config, "%s has unknown keys: %v", s.path, undecoded)
	}
	if m == nil {
		m = map[string]V{}
	}
	s.data = m
	return nil
}

func (s *store[V]) saveLocked() error {
	data, err := s.encode(s.data)
	if err != nil {
		return apierr.Wrap(apierr.Config, "encoding "+s.path, err)
	}
	if err := atomicfile.Replace(s.path, data, 0o644); err != nil {
		return apierr.Wrap(apierr.Config, "writing "+s.path, err)
	}
	return nil
}

func (s *store[V]) get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *store[V]) snapshot() map[string]V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]V, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// set installs value under key and persists, rolling back the in-memory
// change and returning *Config if the save fails.
func (s *store[V]) set(key string, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.saveLocked(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// delete removes key and persists, failing *NotFound if absent and
// rolling back on a save failure exactly like set.
func (s *store[V]) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return apierr.Newf(apierr.NotFound, "key %q not present", key)
	}
	delete(s.data, key)
	if err := s.saveLocked(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// mutate lets a caller (startup validation, default-filling) rewrite the
// map under the write lock in one step; fn reports whether it actually
// changed anything, and a save is only triggered (and only rolled back
// on failure) when it did.
func (s *store[V]) mutate(fn func(map[string]V) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := make(map[string]V, len(s.data))
	for k, v := range s.data {
		backup[k] = v
	}

	if !fn(s.data) {
		return nil
	}
	if err := s.saveLocked(); err != nil {
		s.data = backup
		return err
	}
	return nil
}
