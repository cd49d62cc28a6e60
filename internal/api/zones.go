// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
)

// ListZones returns a snapshot of every zone.
func (a *API) ListZones() map[string]config.Zone {
	return a.runtime.Zones.All()
}

// validateZoneRefs checks every fan reference against the live
// registry, since zones can span controllers and config.ZoneStore has
// no registry access of its own.
func (a *API) validateZoneRefs(zone config.Zone) error {
	for _, ref := range zone.Fans {
		e, err := a.registry.GetOrErr(ref.Controller)
		if err != nil {
			return apierr.Newf(apierr.InvalidInput, "zone references unknown controller %q", ref.Controller)
		}
		if !e.Board.ValidFanID(ref.FanID) {
			return apierr.Newf(apierr.InvalidInput, "zone references fan id %d out of range for controller %q", ref.FanID, ref.Controller)
		}
	}
	return nil
}

// SetZone adds or updates a zone, validating every fan reference
// against the live registry before persisting.
func (a *API) SetZone(name string, zone config.Zone) error {
	if err := a.validateZoneRefs(zone); err != nil {
		return err
	}
	return a.runtime.Zones.Set(name, zone)
}

// DeleteZone removes the named zone.
func (a *API) DeleteZone(name string) error {
	return a.runtime.Zones.Delete(name)
}

// ApplyZone applies percent as PWM to every fan reference in the named
// zone. Per-fan failures are logged and do not abort the rest of the
// zone, matching the profile-apply and safe-boot policy of spec §4.7.
func (a *API) ApplyZone(name string, percent int) error {
	zone, err := a.runtime.Zones.GetOrErr(name)
	if err != nil {
		return err
	}
	for _, ref := range zone.Fans {
		if err := a.SetFanPWM(ref.Controller, ref.FanID, percent); err != nil {
			a.logger.Warn("api: failed to apply zone to fan", "zone", name, "controller", ref.Controller, "fan_id", ref.FanID, "error", err)
		}
	}
	return nil
}
