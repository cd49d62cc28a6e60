// SPDX-License-Identifier: BSD-3-Clause

// Package serialport is the device-open collaborator: it turns a path
// into a wire.Transport over github.com/tarm/serial at 115200 8N1
// no-flow-control, and enumerates candidate device paths by walking
// /sys/bus/usb-serial/devices for a board's USB vendor/product id pair.
// Nothing in this package knows about the wire protocol itself; it
// only opens and reads lines off a serial line.
package serialport
