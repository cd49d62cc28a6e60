// SPDX-License-Identifier: BSD-3-Clause

// Package wire implements the OpenFAN controller line protocol: ASCII
// command framing, opcode encoding, reply parsing, and the
// transaction primitive that drives a single request/reply exchange
// over a Transport.
//
// Nothing in this package knows about boards, shadows, or connection
// lifecycle; it only turns Go values into frames and frames back into
// Go values.
package wire
