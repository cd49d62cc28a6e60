// SPDX-License-Identifier: BSD-3-Clause

package wire

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/openfan/openfand/internal/apierr"
)

// Engine drives request/reply transactions over a Transport. It is not
// internally reentrant: the caller (the fan controller facade) must
// serialize access.
type Engine struct {
	transport Transport
	timeout   time.Duration
	logger    *slog.Logger
}

// NewEngine builds an Engine over an already-open transport. timeout
// bounds every phase of Transact: the write and the read loop combined.
func NewEngine(transport Transport, timeout time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{transport: transport, timeout: timeout, logger: logger}
}

// Transact executes the transaction contract for a single framed
// command: clear the input buffer, write and flush cmd, then read
// lines until one begins with '<' or the timeout elapses. It returns
// every non-empty line collected along the way; the caller picks the
// '<'-prefixed one with FirstReplyLine. Returns *Serial if the
// underlying transport fails, *Timeout if the deadline elapses with
// nothing at all read back.
func (e *Engine) Transact(cmd string) ([]string, error) {
	deadline := time.Now().Add(e.timeout)
	if err := e.transport.Flush(); err != nil {
		return nil, apierr.Wrap(apierr.Serial, "clear input buffer", err)
	}
	if _, err := e.transport.Write([]byte(cmd)); err != nil {
		return nil, apierr.Wrap(apierr.Serial, "write command", err)
	}

	var lines []string
	for time.Now().Before(deadline) {
		line, err := e.transport.ReadLine(deadline)
		if err != nil {
			if errors.Is(err, ErrReadTimeout) {
				break
			}
			return nil, apierr.Wrap(apierr.Serial, "read reply", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			lines = append(lines, line)
		}
		if strings.HasPrefix(line, "<") {
			break
		}
	}

	if len(lines) == 0 {
		return nil, apierr.New(apierr.Timeout, "no reply received within timeout")
	}
	return lines, nil
}
