// SPDX-License-Identifier: BSD-3-Clause

package log

import "errors"

var (
	// ErrLoggerConfiguration indicates an invalid logger configuration.
	ErrLoggerConfiguration = errors.New("invalid logger configuration")
	// ErrOversightLogger indicates a failure in the oversight logger adapter.
	ErrOversightLogger = errors.New("oversight logger adapter error")
)
