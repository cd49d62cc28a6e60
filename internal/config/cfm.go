// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/openfan/openfand/internal/apierr"
)

// cfmFile is the on-disk shape of cfm_mappings.toml: a single
// [mappings] table from stringified port id to cfm-at-100%-PWM.
type cfmFile struct {
	Mappings map[string]float64 `toml:"mappings"`
}

// CFMStore holds one controller's port -> CFM-at-100% map, used only for
// display conversion (cfm(pwm) = (pwm/100) * cfm_at_100).
type CFMStore struct {
	s *store[float64]
}

func newCFMStore(path string) *CFMStore {
	return &CFMStore{s: newStore(path, encodeCFM, decodeCFM)}
}

func encodeCFM(m map[string]float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfmFile{Mappings: m}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeCFM(data []byte) (map[string]float64, []string, error) {
	var f cfmFile
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, nil, err
	}
	return f.Mappings, undecodedStrings(meta), nil
}

// Load reads the backing file, seeding an empty map if it does not exist
// yet.
func (c *CFMStore) Load() error {
	return c.s.load(func() map[string]float64 { return map[string]float64{} })
}

// Get returns the CFM-at-100% value for port.
func (c *CFMStore) Get(port int) (float64, bool) {
	return c.s.get(strconv.Itoa(port))
}

// All returns a snapshot of every stored port -> CFM-at-100% mapping.
func (c *CFMStore) All() map[int]float64 {
	snap := c.s.snapshot()
	out := make(map[int]float64, len(snap))
	for k, v := range snap {
		port, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[port] = v
	}
	return out
}

// Set installs port's CFM-at-100% value, failing *InvalidInput if it is
// not a positive real <= 500, or *Config if the save fails.
func (c *CFMStore) Set(port int, cfmAt100 float64) error {
	if cfmAt100 <= 0 || cfmAt100 > 500 {
		return apierr.Newf(apierr.InvalidInput, "cfm_at_100 = %v out of range (0, 500]", cfmAt100)
	}
	return c.s.set(strconv.Itoa(port), cfmAt100)
}

// Delete removes the stored mapping for port, failing *NotFound if
// absent.
func (c *CFMStore) Delete(port int) error {
	return c.s.delete(strconv.Itoa(port))
}

// CFM converts a PWM percentage to estimated cubic feet per minute using
// cfmAt100: cfm(pwm) = (pwm/100) * cfm_at_100.
func CFM(pwm int, cfmAt100 float64) float64 {
	return (float64(pwm) / 100) * cfmAt100
}

// InvalidPorts returns every stored port id that is >= fanCount, for
// startup validation.
func (c *CFMStore) InvalidPorts(fanCount int) []int {
	var bad []int
	for port := range c.All() {
		if port < 0 || port >= fanCount {
			bad = append(bad, port)
		}
	}
	return bad
}
