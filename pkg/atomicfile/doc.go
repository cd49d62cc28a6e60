// SPDX-License-Identifier: BSD-3-Clause

// Package atomicfile provides atomic file replacement for the daemon's
// persisted configuration files. Every save writes to a temporary sibling
// file in the same directory and then renames it over the target, so a
// reader never observes a partially written file: it sees either the
// content from before the save or the content from after it, never a mix.
//
// This is the same write-temp-then-rename pattern used throughout Unix
// system daemons for config and state files; the temporary file lives in
// the target's directory so the final rename is guaranteed to be on the
// same filesystem (cross-filesystem renames are not atomic).
package atomicfile
