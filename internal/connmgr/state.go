// SPDX-License-Identifier: BSD-3-Clause

package connmgr

import "github.com/qmuntal/stateless"

// State is one of the three connection lifecycle states. Unlike the
// teacher's generic pkg/state wrapper, the Reconnecting state's
// attempt count is not modeled inside stateless itself (its states
// must be plain comparable values) — it rides alongside as Manager.attempt,
// read under the same mutex that guards the machine.
type State string

const (
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
	StateReconnecting State = "reconnecting"
)

const (
	triggerDisconnect       = "disconnect"
	triggerReconnectAttempt = "reconnect_attempt"
	triggerReconnectSucceed = "reconnect_succeed"
	triggerReconnectFail    = "reconnect_fail"
)

func newStateMachine() *stateless.StateMachine {
	sm := stateless.NewStateMachine(StateConnected)

	sm.Configure(StateConnected).
		Permit(triggerDisconnect, StateDisconnected)

	sm.Configure(StateDisconnected).
		Permit(triggerReconnectAttempt, StateReconnecting)

	sm.Configure(StateReconnecting).
		PermitReentry(triggerReconnectAttempt).
		Permit(triggerReconnectSucceed, StateConnected).
		Permit(triggerReconnectFail, StateDisconnected)

	return sm
}

// currentState locks mu and reads the machine's state. Do not call it
// while already holding mu; use currentStateLocked instead.
func (m *Manager) currentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentStateLocked()
}

// currentStateLocked reads the machine's state; callers must already
// hold mu.
func (m *Manager) currentStateLocked() State {
	s, err := m.machine.State(backgroundCtx)
	if err != nil {
		return StateDisconnected
	}
	return s.(State)
}
