// SPDX-License-Identifier: BSD-3-Clause

package wire

import "time"

// Transport is the minimum surface the protocol engine needs from an
// open serial line. internal/serialport provides the
// github.com/tarm/serial-backed implementation; mock-mode controllers
// open no transport at all.
type Transport interface {
	// Flush discards any unread bytes sitting in the input buffer.
	Flush() error
	// Write writes b in full to the line.
	Write(b []byte) (int, error)
	// ReadLine reads up to and including the next '\n', or returns
	// ErrReadTimeout if deadline elapses first without one arriving.
	ReadLine(deadline time.Time) (string, error)
	// Close releases the underlying device.
	Close() error
}
