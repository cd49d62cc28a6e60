// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/openfan/openfand/internal/apierr"
)

// FanRef addresses one fan on one controller.
type FanRef struct {
	Controller string `toml:"controller"`
	FanID      int    `toml:"fan_id"`
}

// Zone is a named, ordered group of fan references for coordinated
// control. Zones are global: unlike the other four entities they are
// never scoped to a single controller's sub-directory, because a zone
// can span controllers.
type Zone struct {
	Fans        []FanRef `toml:"fans"`
	Description string   `toml:"description,omitempty"`
}

type zonesFile struct {
	Zones map[string]Zone `toml:"zones"`
}

// ZoneStore holds the daemon's named zones.
type ZoneStore struct {
	s *store[Zone]
}

func newZoneStore(path string) *ZoneStore {
	return &ZoneStore{s: newStore(path, encodeZones, decodeZones)}
}

func encodeZones(m map[string]Zone) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(zonesFile{Zones: m}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeZones(data []byte) (map[string]Zone, []string, error) {
	var f zonesFile
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, nil, err
	}
	return f.Zones, undecodedStrings(meta), nil
}

// Load reads the backing file, seeding an empty zone set if it does not
// exist yet.
func (z *ZoneStore) Load() error {
	return z.s.load(func() map[string]Zone { return map[string]Zone{} })
}

// Get returns the named zone.
func (z *ZoneStore) Get(name string) (Zone, bool) {
	return z.s.get(name)
}

// GetOrErr returns the named zone or *NotFound.
func (z *ZoneStore) GetOrErr(name string) (Zone, error) {
	zone, ok := z.Get(name)
	if !ok {
		return Zone{}, apierr.Newf(apierr.NotFound, "zone %q not found", name)
	}
	return zone, nil
}

// All returns a snapshot of every stored zone.
func (z *ZoneStore) All() map[string]Zone {
	return z.s.snapshot()
}

func validateZoneShape(zone Zone) error {
	if len(zone.Fans) == 0 {
		return apierr.New(apierr.InvalidInput, "zone must reference at least one fan")
	}
	seen := make(map[FanRef]bool, len(zone.Fans))
	for _, ref := range zone.Fans {
		if seen[ref] {
			return apierr.Newf(apierr.InvalidInput, "zone references fan %s/%d more than once", ref.Controller, ref.FanID)
		}
		seen[ref] = true
	}
	return nil
}

// Set installs a named zone, failing *InvalidInput if it is empty or has
// duplicate references (cross-controller fan-id range checks happen at
// startup validation and in the API layer, which has registry access),
// or *Config if the save fails.
func (z *ZoneStore) Set(name string, zone Zone) error {
	if name == "" {
		return apierr.New(apierr.InvalidInput, "zone name must not be empty")
	}
	if err := validateZoneShape(zone); err != nil {
		return err
	}
	return z.s.set(name, zone)
}

// Delete removes the named zone, failing *NotFound if absent.
func (z *ZoneStore) Delete(name string) error {
	return z.s.delete(name)
}
