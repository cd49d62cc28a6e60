// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
)

// ApplyProfile applies the named profile to the primary controller: it
// fetches the profile, then iterates fan ids 0..fan_count-1 dispatching
// a PWM or RPM set per the profile's mode. Per-fan failures are logged
// and do not abort the remaining fans, per spec §4.7.
func (a *API) ApplyProfile(name string) error {
	return a.ApplyProfileTo(a.primaryID, name)
}

// ApplyProfileTo applies the named profile to controllerID. It is the
// general form ApplyProfile specializes to the primary controller, and
// is what internal/shutdown calls for the safe-boot sequence.
func (a *API) ApplyProfileTo(controllerID, name string) error {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return err
	}
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.Config, "controller %q has no configuration scope", controllerID)
	}
	prof, err := cd.Profiles.GetOrErr(name)
	if err != nil {
		return err
	}

	for id := 0; id < e.Board.FanCount; id++ {
		value := prof.ValueAt(id)
		var applyErr error
		switch prof.Mode {
		case config.ModeRPM:
			applyErr = a.SetFanRPM(controllerID, id, value)
		default:
			applyErr = a.SetFanPWM(controllerID, id, value)
		}
		if applyErr != nil {
			a.logger.Warn("api: failed to apply profile to fan", "controller", controllerID, "profile", name, "fan_id", id, "error", applyErr)
		}
	}
	return nil
}

// ListProfiles returns a snapshot of every profile scoped to
// controllerID.
func (a *API) ListProfiles(controllerID string) (map[string]config.Profile, error) {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return nil, apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Profiles.All(), nil
}

// SetProfile adds or updates a profile scoped to controllerID.
func (a *API) SetProfile(controllerID, name string, prof config.Profile) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Profiles.Set(name, prof)
}

// DeleteProfile removes a profile scoped to controllerID.
func (a *API) DeleteProfile(controllerID, name string) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Profiles.Delete(name)
}
