// SPDX-License-Identifier: BSD-3-Clause

package connmgr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/internal/fancontroller"
	"github.com/openfan/openfand/internal/wire"
	"github.com/qmuntal/stateless"
)

var backgroundCtx = context.Background()

// DeviceOpener is the device-open collaborator contract from spec §6:
// given a path, a timeout, and a debug flag, open the serial device
// and return a wire.Transport, or fail with a disconnect-class or
// generic I/O error. internal/serialport provides the implementation
// (over github.com/tarm/serial); mock-mode controllers have no Manager
// and so no opener.
type DeviceOpener interface {
	Open(path string, timeout time.Duration, debug bool) (wire.Transport, error)
}

// Manager wraps a fan controller facade that may come and go, and
// drives its connection lifecycle. The zero value is not usable; build
// one with New.
type Manager struct {
	mu          sync.Mutex // guards everything below except wire I/O itself
	reconnectMu sync.Mutex // serializes try_reconnect's attempt sequence
	ioMu        sync.Mutex // held for the duration of a single wire transaction

	machine        *stateless.StateMachine
	attempt        int
	facade         *fancontroller.Facade
	reconnectCount int
	lastDisconnect *time.Time
	shadowSnapshot map[int]int

	descriptor board.Descriptor
	devicePath string
	opener     DeviceOpener
	timeout    time.Duration
	debug      bool
	cfg        ReconnectConfig
	logger     *slog.Logger
}

// New builds a Manager already Connected over facade. facade may be
// nil to start Disconnected (e.g. the device failed to open at
// startup but reconnection is enabled).
func New(devicePath string, descriptor board.Descriptor, opener DeviceOpener, timeout time.Duration, debug bool, cfg ReconnectConfig, facade *fancontroller.Facade, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		machine:        newStateMachine(),
		facade:         facade,
		shadowSnapshot: make(map[int]int),
		descriptor:     descriptor,
		devicePath:     devicePath,
		opener:         opener,
		timeout:        timeout,
		debug:          debug,
		cfg:            cfg,
		logger:         logger,
	}
	if facade == nil {
		_ = m.machine.Fire(triggerDisconnect)
	}
	return m
}

// WithController dispatches op against the manager's facade, handling
// the Reconnecting/Disconnected/Connected state checks, inline
// reconnection, and disconnect-class error classification described in
// spec §4.3.
func WithController[T any](m *Manager, op func(*fancontroller.Facade) (T, error)) (T, error) {
	var zero T

	state := m.currentState()
	switch state {
	case StateReconnecting:
		return zero, apierr.New(apierr.Reconnecting, "reconnection already in progress")
	case StateDisconnected:
		if !m.cfg.Enabled {
			return zero, apierr.New(apierr.DeviceDisconnected, "controller is disconnected")
		}
		if err := m.tryReconnect(); err != nil {
			return zero, err
		}
	}

	m.ioMu.Lock()
	m.mu.Lock()
	facade := m.facade
	m.mu.Unlock()

	if facade == nil {
		m.ioMu.Unlock()
		return zero, apierr.New(apierr.DeviceDisconnected, "controller is disconnected")
	}

	result, err := op(facade)
	m.ioMu.Unlock()

	if err != nil {
		if isDisconnectClassError(err) {
			m.handleDisconnect()
			return zero, apierr.Wrap(apierr.DeviceDisconnected, "operation failed, controller disconnected", err)
		}
		return zero, err
	}
	return result, nil
}

// handleDisconnect is idempotent on an already-disconnected manager.
// If Connected, it snapshots the PWM shadow, transitions to
// Disconnected, records the disconnect time, and drops the facade.
func (m *Manager) handleDisconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentStateLocked() != StateConnected {
		return
	}
	if m.facade != nil {
		m.shadowSnapshot = m.facade.Shadow().Snapshot()
	}
	m.facade = nil
	now := time.Now()
	m.lastDisconnect = &now
	_ = m.machine.Fire(triggerDisconnect)
}

// tryReconnect runs the backoff loop described in spec §4.3, serialized
// by reconnectMu. A caller that blocks on reconnectMu while another
// goroutine's loop completes successfully observes that success
// without running its own attempt sequence.
func (m *Manager) tryReconnect() error {
	m.reconnectMu.Lock()
	defer m.reconnectMu.Unlock()

	if m.currentState() == StateConnected {
		return nil
	}

	delay := m.cfg.InitialDelay
	for {
		m.mu.Lock()
		m.attempt++
		attempt := m.attempt
		_ = m.machine.Fire(triggerReconnectAttempt)
		m.mu.Unlock()

		facade, err := m.openAndProbe()
		if err == nil {
			m.installReconnectedFacade(facade)
			return nil
		}

		m.logger.Warn("connmgr: reconnect attempt failed", "device", m.devicePath, "attempt", attempt, "error", err)

		if m.cfg.MaxAttempts > 0 && attempt >= m.cfg.MaxAttempts {
			m.mu.Lock()
			m.attempt = 0
			_ = m.machine.Fire(triggerReconnectFail)
			m.mu.Unlock()
			return apierr.Wrap(apierr.ReconnectionFailed,
				fmt.Sprintf("gave up after %d attempts", attempt), err)
		}

		time.Sleep(delay)
		delay = m.cfg.next(delay)
	}
}

func (m *Manager) openAndProbe() (*fancontroller.Facade, error) {
	transport, err := m.opener.Open(m.devicePath, m.timeout, m.debug)
	if err != nil {
		return nil, apierr.Wrap(apierr.Serial, "open device", err)
	}

	engine := wire.NewEngine(transport, m.timeout, m.logger)
	facade := fancontroller.New(engine, m.descriptor, m.logger)
	if _, err := facade.GetFwInfo(); err != nil {
		_ = transport.Close()
		return nil, err
	}
	return facade, nil
}

func (m *Manager) installReconnectedFacade(facade *fancontroller.Facade) {
	m.mu.Lock()
	snapshot := m.shadowSnapshot
	m.mu.Unlock()

	for id, pct := range snapshot {
		if err := facade.SetFanPWM(id, pct); err != nil {
			m.logger.Warn("connmgr: failed to restore pwm during reconnect", "fan_id", id, "percent", pct, "error", err)
		}
	}

	m.mu.Lock()
	m.facade = facade
	m.attempt = 0
	m.reconnectCount++
	m.lastDisconnect = nil
	_ = m.machine.Fire(triggerReconnectSucceed)
	m.mu.Unlock()
}

// ForceReconnect drops any current facade, transitions to
// Disconnected, then runs try_reconnect synchronously.
func (m *Manager) ForceReconnect() error {
	m.mu.Lock()
	if m.facade != nil {
		m.shadowSnapshot = m.facade.Shadow().Snapshot()
	}
	m.facade = nil
	if m.currentStateLocked() == StateConnected {
		_ = m.machine.Fire(triggerDisconnect)
	}
	m.mu.Unlock()

	return m.tryReconnect()
}

// StateTag returns the short tag used by the observability surface:
// "connected", "disconnected", or "reconnecting".
func (m *Manager) StateTag() string {
	return string(m.currentState())
}

// ReconnectCount returns the number of successful reconnections so far.
func (m *Manager) ReconnectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconnectCount
}

// ReconnectionEnabled reports whether this manager will attempt
// reconnection on disconnect.
func (m *Manager) ReconnectionEnabled() bool {
	return m.cfg.Enabled
}

// SecondsSinceLastDisconnect returns the seconds elapsed since the
// last disconnect, or ok=false if the manager has never disconnected.
func (m *Manager) SecondsSinceLastDisconnect() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastDisconnect == nil {
		return 0, false
	}
	return int64(time.Since(*m.lastDisconnect).Seconds()), true
}

// Descriptor returns the board this manager's controller is
// parameterized by.
func (m *Manager) Descriptor() board.Descriptor {
	return m.descriptor
}
