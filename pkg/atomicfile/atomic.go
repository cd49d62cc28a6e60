// SPDX-License-Identifier: BSD-3-Clause

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Replace atomically (re)writes filename with data: it writes to a
// temporary file in the same directory and renames it over filename. If
// serialization of data happened before this call failed, Replace is
// never reached and the on-disk file is untouched. If Replace itself
// fails partway through, the temporary file is removed and the target is
// left exactly as it was.
func Replace(filename string, data []byte, perm os.FileMode) (err error) {
	if filename == "" {
		return ErrEmptyFilename
	}

	dir := filepath.Dir(filename)
	tmpfile, err := os.CreateTemp(dir, fmt.Sprintf(".%s.tmp.*", filepath.Base(filename)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemporaryFileCreation, err)
	}
	tmpname := tmpfile.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpname)
		}
	}()

	if _, err = tmpfile.Write(data); err != nil {
		_ = tmpfile.Close()
		return fmt.Errorf("%w: %w", ErrTemporaryFileWrite, err)
	}

	if err = tmpfile.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrTemporaryFileClose, err)
	}

	if err = os.Chmod(tmpname, perm); err != nil {
		return fmt.Errorf("%w: %w", ErrTemporaryFileChmod, err)
	}

	if err = renameOver(tmpname, filename); err != nil {
		return fmt.Errorf("%w: %w", ErrAtomicRename, err)
	}

	return nil
}

// WriteCanary writes and then removes a zero-byte file in dir, used at
// startup to probe that the data directory is actually writable before
// the daemon commits to using it.
func WriteCanary(dir string) error {
	f, err := os.CreateTemp(dir, ".openfan-canary-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Remove(name)
}
