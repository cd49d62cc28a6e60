// SPDX-License-Identifier: BSD-3-Clause

// Package connmgr implements the connection manager: the component
// that wraps a fan controller facade which may come and go, drives its
// Connected/Disconnected/Reconnecting lifecycle, and restores PWM
// state across a reconnect.
package connmgr
