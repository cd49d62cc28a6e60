// SPDX-License-Identifier: BSD-3-Clause

// Package config implements the two classes of persisted configuration:
// a static TOML file read once at startup, and five mutable TOML
// entities (aliases, profiles, zones, thermal curves, CFM mappings) each
// guarded by its own read/write lock and saved atomically.
package config
