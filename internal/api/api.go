// SPDX-License-Identifier: BSD-3-Clause

package api

import (
	"log/slog"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/config"
	"github.com/openfan/openfand/internal/connmgr"
	"github.com/openfan/openfand/internal/fancontroller"
	"github.com/openfan/openfand/internal/registry"
)

// API is the core's single entry point: it borrows connection managers
// from the registry, dispatches operations through them, and mutates
// the persisted configuration model. The zero value is not usable; use
// New.
type API struct {
	registry  *registry.Registry
	runtime   *config.RuntimeConfig
	primaryID string
	logger    *slog.Logger
}

// New builds an API over reg and rc. primaryControllerID names the
// controller that "apply profile" and the safe-boot sequence target.
func New(reg *registry.Registry, rc *config.RuntimeConfig, primaryControllerID string, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{registry: reg, runtime: rc, primaryID: primaryControllerID, logger: logger}
}

// ControllerInfo is the observability surface of one registered
// controller, per spec §4.7's "get controller info" contract.
type ControllerInfo struct {
	ID                         string
	BoardName                  string
	FanCount                   int
	Description                string
	MockMode                   bool
	State                      string
	ReconnectCount             int
	ReconnectionEnabled        bool
	SecondsSinceLastDisconnect int64
	HasDisconnected            bool
}

func controllerInfo(e registry.Entry) ControllerInfo {
	info := ControllerInfo{
		ID:          e.ID,
		BoardName:   e.Board.Name,
		FanCount:    e.Board.FanCount,
		Description: e.Description,
		MockMode:    e.MockMode(),
	}
	if e.Manager == nil {
		return info
	}
	info.State = e.Manager.StateTag()
	info.ReconnectCount = e.Manager.ReconnectCount()
	info.ReconnectionEnabled = e.Manager.ReconnectionEnabled()
	if secs, ok := e.Manager.SecondsSinceLastDisconnect(); ok {
		info.SecondsSinceLastDisconnect = secs
		info.HasDisconnected = true
	}
	return info
}

// ListControllers returns the registry snapshot mapped to the
// observability shape.
func (a *API) ListControllers() []ControllerInfo {
	entries := a.registry.List()
	out := make([]ControllerInfo, len(entries))
	for i, e := range entries {
		out[i] = controllerInfo(e)
	}
	return out
}

// GetControllerInfo returns controllerID's info, or *NotFound.
func (a *API) GetControllerInfo(controllerID string) (ControllerInfo, error) {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return ControllerInfo{}, err
	}
	return controllerInfo(e), nil
}

// ForceReconnect forces controllerID's connection manager through a
// fresh reconnect sequence, refusing with *InvalidInput for mock
// controllers (there is no device to reconnect to).
func (a *API) ForceReconnect(controllerID string) error {
	e, err := a.registry.GetOrErr(controllerID)
	if err != nil {
		return err
	}
	if e.MockMode() {
		return apierr.Newf(apierr.InvalidInput, "controller %q is in mock mode and has no device to reconnect to", controllerID)
	}
	return e.Manager.ForceReconnect()
}

// withController dispatches op against controllerID's connection
// manager, failing *InvalidInput immediately for mock controllers
// instead of reaching connmgr.WithController at all.
func withController[T any](e registry.Entry, op func(*fancontroller.Facade) (T, error)) (T, error) {
	var zero T
	if e.MockMode() {
		return zero, apierr.Newf(apierr.InvalidInput, "controller %q is in mock mode and has no device to operate on", e.ID)
	}
	return connmgr.WithController(e.Manager, op)
}
