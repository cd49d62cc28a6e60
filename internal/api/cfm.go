// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
)

// ListCFM returns a snapshot of every port's CFM-at-100% mapping scoped
// to controllerID.
func (a *API) ListCFM(controllerID string) (map[int]float64, error) {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return nil, apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.CFM.All(), nil
}

// SetCFM installs port's CFM-at-100% value scoped to controllerID.
func (a *API) SetCFM(controllerID string, port int, cfmAt100 float64) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.CFM.Set(port, cfmAt100)
}

// DeleteCFM removes port's CFM-at-100% mapping scoped to controllerID.
func (a *API) DeleteCFM(controllerID string, port int) error {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	return cd.CFM.Delete(port)
}

// EstimatedCFM returns port's estimated CFM at the given PWM percent,
// or *NotFound if no mapping is stored.
func (a *API) EstimatedCFM(controllerID string, port, pwmPercent int) (float64, error) {
	cd, ok := a.runtime.For(controllerID)
	if !ok {
		return 0, apierr.Newf(apierr.NotFound, "controller %q not found", controllerID)
	}
	cfmAt100, ok := cd.CFM.Get(port)
	if !ok {
		return 0, apierr.Newf(apierr.NotFound, "no cfm mapping for port %d", port)
	}
	return config.CFM(pwmPercent, cfmAt100), nil
}
