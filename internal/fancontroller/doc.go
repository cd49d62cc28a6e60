// SPDX-License-Identifier: BSD-3-Clause

// Package fancontroller implements the fan controller facade: a
// single-writer object that pairs a wire.Engine with a board
// descriptor and a PWM shadow, validating every call against the
// descriptor before it touches the wire.
package fancontroller
