// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
	"github.com/openfan/openfand/internal/fancontroller"
	"github.com/openfan/openfand/internal/registry"
)

// FanStatus combines a live RPM reading with the shadowed PWM percent
// and the fan's display alias, per spec §4.7's "get fan status"
// contract.
type FanStatus struct {
	RPM   int
	PWM   int
	Alias string
}

// mockRPM and mockPWM implement the mock-controller synthesis rule of
// end-to-end scenario E1: rpm = 1500 + 100*i, pwm = 50 + 5*i.
func mockRPM(fanID int) int { return 1500 + 100*fanID }
func mockPWM(fanID int) int { return 50 + 5*fanID }

func (a *API) aliasFor(controllerID string, fanID int) string {
	if cd, ok := a.runtime.For(controllerID); ok {
		if name, ok := cd.Aliases.Get(fanID); ok {
			return name
		}
	}
	return config.DefaultAlias(fanID)
}

// GetFanStatus combines get_all_fan_rpm (I/O, or the mock synthesis
// rule) with get_all_fan_pwm (shadow, or the mock synthesis rule) for
// every fan the controller's board exposes.
func (a *API) GetFanStatus(controllerID string) (map[int]FanStatus, error) {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return nil, err
	}

	out := make(map[int]FanStatus, e.Board.FanCount)
	if e.MockMode() {
		for i := 0; i < e.Board.FanCount; i++ {
			out[i] = FanStatus{RPM: mockRPM(i), PWM: mockPWM(i), Alias: a.aliasFor(controllerID, i)}
		}
		return out, nil
	}

	rpms, err := connmgrGetAllRPM(e)
	if err != nil {
		return nil, err
	}
	pwms, err := connmgrGetAllPWM(e)
	if err != nil {
		return nil, err
	}
	for i := 0; i < e.Board.FanCount; i++ {
		out[i] = FanStatus{RPM: rpms[i], PWM: pwms[i], Alias: a.aliasFor(controllerID, i)}
	}
	return out, nil
}

func connmgrGetAllRPM(e registry.Entry) (map[int]int, error) {
	return withController(e, func(f *fancontroller.Facade) (map[int]int, error) {
		return f.GetAllFanRPM()
	})
}

func connmgrGetAllPWM(e registry.Entry) (map[int]int, error) {
	return withController(e, func(f *fancontroller.Facade) (map[int]int, error) {
		return f.GetAllFanPWM(), nil
	})
}

// GetFanPWM returns fanID's shadowed PWM percent (or the mock synthesis
// value).
func (a *API) GetFanPWM(controllerID string, fanID int) (int, error) {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return 0, err
	}
	if !e.Board.ValidFanID(fanID) {
		return 0, apierr.Newf(apierr.InvalidInput, "fan id %d out of range [0,%d)", fanID, e.Board.FanCount)
	}
	if e.MockMode() {
		return mockPWM(fanID), nil
	}
	return withController(e, func(f *fancontroller.Facade) (int, error) {
		pct, ok := f.GetSingleFanPWM(fanID)
		if !ok {
			return 0, apierr.Newf(apierr.NotFound, "no pwm has been set for fan %d yet", fanID)
		}
		return pct, nil
	})
}

// SetFanPWM sets fanID's PWM percent through the connection manager. A
// mock controller has no device to drive, so the write is a silent
// no-op rather than a failure.
func (a *API) SetFanPWM(controllerID string, fanID, percent int) error {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return err
	}
	if e.MockMode() {
		return nil
	}
	_, err = withController(e, func(f *fancontroller.Facade) (struct{}, error) {
		return struct{}{}, f.SetFanPWM(fanID, percent)
	})
	return err
}

// SetAllFanPWM sets every fan's PWM percent to the same value. A mock
// controller has no device to drive, so the write is a silent no-op
// rather than a failure.
func (a *API) SetAllFanPWM(controllerID string, percent int) error {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return err
	}
	if e.MockMode() {
		return nil
	}
	_, err = withController(e, func(f *fancontroller.Facade) (struct{}, error) {
		return struct{}{}, f.SetAllFanPWM(percent)
	})
	return err
}

// GetFanRPM returns fanID's live RPM reading (or the mock synthesis
// value).
func (a *API) GetFanRPM(controllerID string, fanID int) (int, error) {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return 0, err
	}
	if e.MockMode() {
		if !e.Board.ValidFanID(fanID) {
			return 0, apierr.Newf(apierr.InvalidInput, "fan id %d out of range [0,%d)", fanID, e.Board.FanCount)
		}
		return mockRPM(fanID), nil
	}
	return withController(e, func(f *fancontroller.Facade) (int, error) {
		return f.GetSingleFanRPM(fanID)
	})
}

// SetFanRPM sets fanID's RPM target through the connection manager. A
// mock controller has no device to drive, so the write is a silent
// no-op rather than a failure.
func (a *API) SetFanRPM(controllerID string, fanID, rpm int) error {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return err
	}
	if !e.Board.ValidTargetRPM(rpm) {
		return apierr.Newf(apierr.InvalidInput, "target rpm %d out of range [%d,%d]", rpm, e.Board.MinTargetRPM, e.Board.MaxTargetRPM)
	}
	if e.MockMode() {
		return nil
	}
	_, err = withController(e, func(f *fancontroller.Facade) (struct{}, error) {
		return struct{}{}, f.SetFanRPM(fanID, rpm)
	})
	return err
}
