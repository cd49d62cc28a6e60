// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
)

// ListAliases returns every fan id's alias for controllerID, filling in
// DefaultAlias for any fan the board exposes that has no stored
// override.
func (a *API) ListAliases(controllerID string) (map[int]string, error) {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return nil, err
	}
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return nil, apierr.Newf(apierr.Config, "controller %q has no configuration scope", controllerID)
	}
	out := cd.Aliases.All()
	for i := 0; i < e.Board.FanCount; i++ {
		if _, ok := out[i]; !ok {
			out[i] = config.DefaultAlias(i)
		}
	}
	return out, nil
}

// SetAlias assigns fanID's alias for controllerID.
func (a *API) SetAlias(controllerID string, fanID int, name string) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Aliases.Set(fanID, name)
}

// DeleteAlias removes a stored override, reverting fanID to its
// default alias.
func (a *API) DeleteAlias(controllerID string, fanID int) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Aliases.Delete(fanID)
}
