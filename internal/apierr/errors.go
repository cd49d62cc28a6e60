// SPDX-License-Identifier: BSD-3-Clause

// Package apierr defines the daemon's error taxonomy: a closed set of
// kinds that every core operation's failure is classified into, so the
// (external, out-of-core-scope) HTTP layer can map them to status codes
// without knowing anything about serial protocols or TOML files.
package apierr

import (
	"errors"
	"fmt"
)

// Kind identifies which of the taxonomy's error classes an Error belongs
// to. See spec §7 for the full description of each kind.
type Kind int

const (
	// InvalidInput is a client-visible precondition violation (fan id out
	// of range, PWM > 100, RPM out of target range, empty name,
	// disallowed alias characters, curve ordering/range violation).
	InvalidInput Kind = iota
	// NotFound means a profile, alias, zone, curve, CFM mapping, or
	// controller id was absent.
	NotFound
	// Duplicate is an id or name collision at registration or insertion.
	Duplicate
	// Serial is a low-level transport failure not classified as a
	// disconnect.
	Serial
	// Timeout is a wire operation exceeding its time budget.
	Timeout
	// Parse is a reply that violated the protocol grammar.
	Parse
	// Hardware is a reply that arrived but lacked required content.
	Hardware
	// DeviceNotFound means no matching device existed at startup.
	DeviceNotFound
	// DeviceDisconnected means the operation could not proceed because
	// the device is gone.
	DeviceDisconnected
	// Reconnecting means the operation was refused because a
	// reconnection attempt is currently in progress.
	Reconnecting
	// ReconnectionFailed means reconnection gave up after its attempt
	// budget was exhausted.
	ReconnectionFailed
	// Config is a persisted-state load, parse, write, or validation
	// failure.
	Config
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case Duplicate:
		return "duplicate"
	case Serial:
		return "serial"
	case Timeout:
		return "timeout"
	case Parse:
		return "parse"
	case Hardware:
		return "hardware"
	case DeviceNotFound:
		return "device_not_found"
	case DeviceDisconnected:
		return "device_disconnected"
	case Reconnecting:
		return "reconnecting"
	case ReconnectionFailed:
		return "reconnection_failed"
	case Config:
		return "config"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every core operation that
// can fail. It carries a Kind for programmatic dispatch plus a
// human-readable message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, apierr.New(apierr.NotFound, "")) — but the
// idiomatic check is the package-level Is(err, apierr.NotFound) or
// KindOf(err).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the Kind carried by err if it is (or wraps) an *Error,
// and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
