// SPDX-License-Identifier: BSD-3-Clause

// Package shutdown implements the daemon's safe-boot sequence (spec
// §4.6): on receiving SIGINT or SIGTERM, apply a configured profile to
// the primary controller before the process exits, so fans are left at
// a known-safe setting rather than whatever they happened to be driven
// to. Per-fan failures during that apply are logged, never fatal; a
// missing or disabled profile is likewise logged and does not block
// shutdown.
package shutdown
