// SPDX-License-Identifier: BSD-3-Clause

package connmgr

import (
	"errors"
	"syscall"

	"github.com/openfan/openfand/internal/apierr"
)

// isDisconnectClassError reports whether err indicates the underlying
// device is gone rather than a transient protocol hiccup: "no such
// device," "input/output error," "broken pipe," or "permission denied"
// (the last occurring when a device node vanishes and a replacement
// with the same path is not yet accessible). Only *Serial-kind errors
// are eligible; *Timeout and *Parse are protocol-level and never
// disconnect-class.
func isDisconnectClassError(err error) bool {
	if !apierr.Is(err, apierr.Serial) {
		return false
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENODEV, syscall.EIO, syscall.EPIPE, syscall.EACCES:
			return true
		}
	}
	return false
}
