// SPDX-License-Identifier: BSD-3-Clause

package wire

import "errors"

// ErrReadTimeout is returned by a Transport's ReadLine when the
// deadline elapses before a line arrived. The transaction loop treats
// it as the end of the read phase, not as a failure, and returns a
// Timeout apierr only if no line at all was read by then.
var ErrReadTimeout = errors.New("wire: read timeout")
