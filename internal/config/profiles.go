// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/openfan/openfand/internal/apierr"
)

// ProfileMode is which wire operation a profile's values are applied
// with.
type ProfileMode string

const (
	ModePWM ProfileMode = "pwm"
	ModeRPM ProfileMode = "rpm"
)

// Profile is a named, ordered set of per-fan target values, applied
// either as PWM percentages or RPM targets.
type Profile struct {
	Mode   ProfileMode `toml:"mode"`
	Values []int       `toml:"values"`
}

type profilesFile struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// ProfileStore holds one controller's named profiles.
type ProfileStore struct {
	s *store[Profile]
}

func newProfileStore(path string) *ProfileStore {
	return &ProfileStore{s: newStore(path, encodeProfiles, decodeProfiles)}
}

func encodeProfiles(m map[string]Profile) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(profilesFile{Profiles: m}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeProfiles(data []byte) (map[string]Profile, []string, error) {
	var f profilesFile
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, nil, err
	}
	return f.Profiles, undecodedStrings(meta), nil
}

// defaultProfiles returns the three built-in profiles documented in
// spec §4.5: a silent idle profile, a balanced default, and a full-speed
// safe-boot profile.
func defaultProfiles(fanCount int) map[string]Profile {
	silent := make([]int, fanCount)
	balanced := make([]int, fanCount)
	full := make([]int, fanCount)
	for i := range full {
		silent[i] = 20
		balanced[i] = 50
		full[i] = 100
	}
	return map[string]Profile{
		"silent":   {Mode: ModePWM, Values: silent},
		"balanced": {Mode: ModePWM, Values: balanced},
		"safe":     {Mode: ModePWM, Values: full},
	}
}

// Load reads the backing file, seeding the three built-in profiles sized
// to fanCount if it does not exist yet.
func (p *ProfileStore) Load(fanCount int) error {
	return p.s.load(func() map[string]Profile { return defaultProfiles(fanCount) })
}

// Get returns the named profile.
func (p *ProfileStore) Get(name string) (Profile, bool) {
	return p.s.get(name)
}

// GetOrErr returns the named profile or *NotFound.
func (p *ProfileStore) GetOrErr(name string) (Profile, error) {
	prof, ok := p.Get(name)
	if !ok {
		return Profile{}, apierr.Newf(apierr.NotFound, "profile %q not found", name)
	}
	return prof, nil
}

// All returns a snapshot of every stored profile.
func (p *ProfileStore) All() map[string]Profile {
	return p.s.snapshot()
}

func validateProfileShape(prof Profile) error {
	if prof.Mode != ModePWM && prof.Mode != ModeRPM {
		return apierr.Newf(apierr.InvalidInput, "profile mode %q must be %q or %q", prof.Mode, ModePWM, ModeRPM)
	}
	for i, v := range prof.Values {
		if prof.Mode == ModePWM && (v < 0 || v > 100) {
			return apierr.Newf(apierr.InvalidInput, "profile value[%d] = %d out of PWM range 0..=100", i, v)
		}
		if prof.Mode == ModeRPM && (v < 0 || v > 16000) {
			return apierr.Newf(apierr.InvalidInput, "profile value[%d] = %d out of RPM range 0..=16000", i, v)
		}
	}
	return nil
}

// Set installs a named profile, failing *InvalidInput if its mode or
// values are malformed, or *Config if the save fails.
func (p *ProfileStore) Set(name string, prof Profile) error {
	if name == "" {
		return apierr.New(apierr.InvalidInput, "profile name must not be empty")
	}
	if err := validateProfileShape(prof); err != nil {
		return err
	}
	return p.s.set(name, prof)
}

// Delete removes the named profile, failing *NotFound if absent.
func (p *ProfileStore) Delete(name string) error {
	return p.s.delete(name)
}

// OversizedNames returns every profile name whose value count exceeds
// fanCount: per spec §4.5 this fails startup validation outright.
func (p *ProfileStore) OversizedNames(fanCount int) []string {
	var bad []string
	for name, prof := range p.s.snapshot() {
		if len(prof.Values) > fanCount {
			bad = append(bad, name)
		}
	}
	return bad
}

// UndersizedNames returns every profile name whose value count is less
// than fanCount: per spec §4.5 this only warrants a warning, missing
// positions are treated as default.
func (p *ProfileStore) UndersizedNames(fanCount int) []string {
	var short []string
	for name, prof := range p.s.snapshot() {
		if len(prof.Values) < fanCount {
			short = append(short, name)
		}
	}
	return short
}

// ValueAt returns profile's value for fan id, or 0 if the profile's
// value list is shorter than id+1 (an undersized profile's missing
// positions default to 0/off per spec §4.5).
func (prof Profile) ValueAt(id int) int {
	if id < 0 || id >= len(prof.Values) {
		return 0
	}
	return prof.Values[id]
}
