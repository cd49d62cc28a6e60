// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/openfan/openfand/internal/apierr"
)

// aliasesFile is the on-disk shape of aliases.toml: a single [aliases]
// table mapping a stringified fan id to its display name.
type aliasesFile struct {
	Aliases map[string]string `toml:"aliases"`
}

// AliasStore holds one controller's fan-id -> display-name map.
type AliasStore struct {
	s *store[string]
}

func newAliasStore(path string) *AliasStore {
	return &AliasStore{s: newStore(path, encodeAliases, decodeAliases)}
}

func encodeAliases(m map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(aliasesFile{Aliases: m}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeAliases(data []byte) (map[string]string, []string, error) {
	var f aliasesFile
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, nil, err
	}
	return f.Aliases, undecodedStrings(meta), nil
}

func undecodedStrings(meta toml.MetaData) []string {
	keys := meta.Undecoded()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

// DefaultAlias is the name assigned to fan id n when no override exists:
// fans are presented 1-indexed to users.
func DefaultAlias(id int) string {
	return fmt.Sprintf("Fan #%d", id+1)
}

func defaultAliases(fanCount int) map[string]string {
	m := make(map[string]string, fanCount)
	for i := 0; i < fanCount; i++ {
		m[strconv.Itoa(i)] = DefaultAlias(i)
	}
	return m
}

// Load reads the backing file, seeding fanCount default aliases
// ("Fan #1".."Fan #N") if it does not exist yet.
func (a *AliasStore) Load(fanCount int) error {
	return a.s.load(func() map[string]string { return defaultAliases(fanCount) })
}

// Get returns the alias for fan id, or ok=false if no override is
// stored (callers typically fall back to DefaultAlias).
func (a *AliasStore) Get(id int) (string, bool) {
	return a.s.get(strconv.Itoa(id))
}

// All returns a snapshot of every stored fan id -> alias pair, keyed by
// integer fan id.
func (a *AliasStore) All() map[int]string {
	snap := a.s.snapshot()
	out := make(map[int]string, len(snap))
	for k, v := range snap {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

// isAllowedAliasName reports whether name is non-empty and uses only the
// characters spec §3 permits in a user-supplied alias: alphanumerics, -,
// _, #, ., and space.
func isAllowedAliasName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_#. ", r):
		default:
			return false
		}
	}
	return true
}

// Set assigns fan id's alias, failing *InvalidInput if name is empty or
// uses a disallowed character, or *Config if the save fails.
func (a *AliasStore) Set(id int, name string) error {
	if !isAllowedAliasName(name) {
		return apierr.Newf(apierr.InvalidInput, "alias %q: only alphanumerics, -, _, #, ., and space are allowed, and it must be non-empty", name)
	}
	return a.s.set(strconv.Itoa(id), name)
}

// Delete removes a stored override for fan id, reverting it to
// DefaultAlias.
func (a *AliasStore) Delete(id int) error {
	return a.s.delete(strconv.Itoa(id))
}

// FillDefaults writes DefaultAlias for any fan id in [0, fanCount) that
// has no stored override, saving once if anything changed. Called at
// startup after board-dependent validation, per spec §4.5.
func (a *AliasStore) FillDefaults(fanCount int) error {
	return a.s.mutate(func(m map[string]string) bool {
		changed := false
		for i := 0; i < fanCount; i++ {
			key := strconv.Itoa(i)
			if _, ok := m[key]; !ok {
				m[key] = DefaultAlias(i)
				changed = true
			}
		}
		return changed
	})
}

// InvalidIDs returns every stored fan id that is >= fanCount, for
// startup validation.
func (a *AliasStore) InvalidIDs(fanCount int) []int {
	var bad []int
	for k := range a.s.snapshot() {
		id, err := strconv.Atoi(k)
		if err != nil || id < 0 || id >= fanCount {
			if err == nil {
				bad = append(bad, id)
			}
		}
	}
	return bad
}
