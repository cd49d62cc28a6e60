// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package atomicfile

import "os"

// renameOver atomically replaces dst with src on non-Linux platforms.
func renameOver(src, dst string) error {
	return os.Rename(src, dst)
}
