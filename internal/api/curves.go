// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
)

// ListCurves returns a snapshot of every curve scoped to controllerID.
func (a *API) ListCurves(controllerID string) (map[string]config.Curve, error) {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return nil, apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Curves.All(), nil
}

// SetCurve adds or updates a curve scoped to controllerID.
func (a *API) SetCurve(controllerID, name string, curve config.Curve) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Curves.Set(name, curve)
}

// DeleteCurve removes a curve scoped to controllerID.
func (a *API) DeleteCurve(controllerID, name string) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.Curves.Delete(name)
}

// InterpolateCurve evaluates the named curve at temperature tempC,
// piecewise-linearly per spec §4.7.
func (a *API) InterpolateCurve(controllerID, name string, tempC float64) (int, error) {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return 0, apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	curve, err := cd.Curves.GetOrErr(name)
	if err != nil {
		return 0, err
	}
	return config.Interpolate(curve, tempC), nil
}
