// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/pkg/atomicfile"
)

// ControllerData is one controller's scoped mutable entities: the four
// that may be overridden per controller. Zones are deliberately absent
// here — they live on RuntimeConfig directly, because a zone can span
// controllers and so cannot be scoped to one.
type ControllerData struct {
	Aliases  *AliasStore
	Profiles *ProfileStore
	Curves   *CurveStore
	CFM      *CFMStore
}

// RuntimeConfig is the daemon's full mutable-entity state: one
// ControllerData per registered controller id, plus the single global
// zone set.
type RuntimeConfig struct {
	DataDir     string
	Zones       *ZoneStore
	controllers map[string]*ControllerData
}

// LoadRuntimeConfig probes dataDir for writability, then loads (or
// seeds with defaults) the global zone set and each controller's scoped
// entities under dataDir/controllers/<id>/, sized to that controller's
// board fan count.
func LoadRuntimeConfig(dataDir string, boards map[string]board.Descriptor) (*RuntimeConfig, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, apierr.Wrap(apierr.Config, "creating data directory "+dataDir, err)
	}
	if err := atomicfile.WriteCanary(dataDir); err != nil {
		return nil, apierr.Wrap(apierr.Config, "data directory not writable: "+dataDir, err)
	}

	rc := &RuntimeConfig{
		DataDir:     dataDir,
		Zones:       newZoneStore(filepath.Join(dataDir, "zones.toml")),
		controllers: make(map[string]*ControllerData, len(boards)),
	}
	if err := rc.Zones.Load(); err != nil {
		return nil, err
	}

	for id, b := range boards {
		dir := filepath.Join(dataDir, "controllers", id)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apierr.Wrap(apierr.Config, "creating "+dir, err)
		}

		cd := &ControllerData{
			Aliases:  newAliasStore(filepath.Join(dir, "aliases.toml")),
			Profiles: newProfileStore(filepath.Join(dir, "profiles.toml")),
			Curves:   newCurveStore(filepath.Join(dir, "thermal_curves.toml")),
			CFM:      newCFMStore(filepath.Join(dir, "cfm_mappings.toml")),
		}
		if err := cd.Aliases.Load(b.FanCount); err != nil {
			return nil, err
		}
		if err := cd.Profiles.Load(b.FanCount); err != nil {
			return nil, err
		}
		if err := cd.Curves.Load(); err != nil {
			return nil, err
		}
		if err := cd.CFM.Load(); err != nil {
			return nil, err
		}
		rc.controllers[id] = cd
	}

	return rc, nil
}

// For returns the scoped entities for controllerID, if registered.
func (rc *RuntimeConfig) For(controllerID string) (*ControllerData, bool) {
	cd, ok := rc.controllers[controllerID]
	return cd, ok
}
