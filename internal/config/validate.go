// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"log/slog"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
)

// ValidateStartup runs the board-dependent checks of spec §4.5 against
// every controller's loaded entities: profiles must not exceed the
// board's fan count (refusing to start if they do, warning if they fall
// short), aliases and CFM ports must address valid fan ids, and every
// zone's fan references must resolve to a known controller and a fan id
// within that controller's range. On success it fills in any missing
// per-fan aliases with their defaults.
func ValidateStartup(rc *RuntimeConfig, boards map[string]board.Descriptor, logger *slog.Logger) error {
	for id, desc := range boards {
		cd, ok := rc.For(id)
		if !ok {
			continue
		}

		if oversized := cd.Profiles.OversizedNames(desc.FanCount); len(oversized) > 0 {
			return apierr.Newf(apierr.Config, "controller %q: profiles %v have more values than the board's %d fans", id, oversized, desc.FanCount)
		}
		if undersized := cd.Profiles.UndersizedNames(desc.FanCount); len(undersized) > 0 {
			logger.Warn("config: profile has fewer values than board fan count; missing positions default to 0",
				"controller", id, "profiles", undersized, "fan_count", desc.FanCount)
		}
		if bad := cd.Aliases.InvalidIDs(desc.FanCount); len(bad) > 0 {
			return apierr.Newf(apierr.Config, "controller %q: alias fan ids %v are out of range for %d fans", id, bad, desc.FanCount)
		}
		if bad := cd.CFM.InvalidPorts(desc.FanCount); len(bad) > 0 {
			return apierr.Newf(apierr.Config, "controller %q: cfm ports %v are out of range for %d fans", id, bad, desc.FanCount)
		}
	}

	for name, zone := range rc.Zones.All() {
		for _, ref := range zone.Fans {
			desc, ok := boards[ref.Controller]
			if !ok {
				return apierr.Newf(apierr.Config, "zone %q references unknown controller %q", name, ref.Controller)
			}
			if !desc.ValidFanID(ref.FanID) {
				return apierr.Newf(apierr.Config, "zone %q references fan id %d out of range for controller %q", name, ref.FanID, ref.Controller)
			}
		}
	}

	for id, desc := range boards {
		cd, ok := rc.For(id)
		if !ok {
			continue
		}
		if err := cd.Aliases.FillDefaults(desc.FanCount); err != nil {
			return err
		}
	}

	return nil
}
