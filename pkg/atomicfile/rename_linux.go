// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package atomicfile

import "golang.org/x/sys/unix"

// renameOver atomically replaces dst with src, overwriting dst if it
// exists. On Linux this is a plain rename(2), which is already atomic and
// overwrite-capable; the explicit unix call (rather than os.Rename) keeps
// this package's behavior pinned to the exact syscall semantics the
// daemon relies on.
func renameOver(src, dst string) error {
	return unix.Rename(src, dst)
}
