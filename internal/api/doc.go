// SPDX-License-Identifier: BSD-3-Clause

// Package api implements the core's contract for every externally
// reachable operation (spec §4.7): controller enumeration, per-fan PWM
// and RPM access routed through the connection manager, profile
// application, and mutation of the five persisted entities. The HTTP
// layer (internal/httpapi) is a thin decode/encode shell around this
// package; nothing here knows about net/http.
package api
