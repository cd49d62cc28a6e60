package serialport

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openfan/openfand/internal/wire"
)

// pollInterval is the per-Read timeout handed to the underlying port.
// ReadLine blocks in increments of this duration so it can notice an
// elapsed deadline without a goroutine-per-read.
const pollInterval = 50 * time.Millisecond

// linePort is the subset of *serial.Port's method set this package
// drives; tests substitute a fake satisfying it instead of opening a
// real device.
type linePort interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Flush() error
	Close() error
}

// Transport is the github.com/tarm/serial-backed wire.Transport. The
// zero value is not usable; build one with Open.
type Transport struct {
	mu     sync.Mutex
	port   linePort
	path   string
	debug  bool
	logger *slog.Logger

	pending []byte // bytes read off the wire but not yet claimed by a line
	scratch [256]byte
}

func newTransport(port linePort, path string, debug bool, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{port: port, path: path, debug: debug, logger: logger}
}

// Flush discards any unread bytes sitting in the port's input buffer
// and this Transport's own pending-line buffer.
func (t *Transport) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = t.pending[:0]
	return t.port.Flush()
}

// Write writes b in full to the line, looping until every byte is
// accepted exactly as a single short write would otherwise lose bytes.
func (t *Transport) Write(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	written := 0
	for written < len(b) {
		n, err := t.port.Write(b[written:])
		if err != nil {
			return written, fmt.Errorf("serialport: write %s: %w", t.path, err)
		}
		written += n
	}
	if t.debug {
		t.logger.Debug("serialport: wrote", "path", t.path, "bytes", b[:written])
	}
	return written, nil
}

// ReadLine reads until a '\n' terminates the next line or deadline
// elapses, whichever comes first.
func (t *Transport) ReadLine(deadline time.Time) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		if idx := bytes.IndexByte(t.pending, '\n'); idx >= 0 {
			line := string(t.pending[:idx+1])
			t.pending = t.pending[idx+1:]
			if t.debug {
				t.logger.Debug("serialport: read", "path", t.path, "line", line)
			}
			return line, nil
		}
		if !time.Now().Before(deadline) {
			return "", wire.ErrReadTimeout
		}

		n, err := t.port.Read(t.scratch[:])
		if err != nil {
			return "", fmt.Errorf("serialport: read %s: %w", t.path, err)
		}
		if n > 0 {
			t.pending = append(t.pending, t.scratch[:n]...)
		}
		// n == 0, err == nil means the port's own read timeout elapsed
		// with nothing pending; loop back around to recheck deadline.
	}
}

// Close releases the underlying device.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port.Close()
}
