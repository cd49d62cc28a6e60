package serialport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/openfan/openfand/internal/wire"
	"github.com/tarm/serial"
)

// Opener is the real connmgr.DeviceOpener: it opens a line at a fixed
// baud rate (one per board descriptor) and returns a Transport, or an
// error if the device could not be opened.
type Opener struct {
	BaudRate int
	Logger   *slog.Logger
}

// NewOpener builds an Opener for a board running at baudRate.
func NewOpener(baudRate int, logger *slog.Logger) *Opener {
	return &Opener{BaudRate: baudRate, Logger: logger}
}

// Open opens path at 115200 (or whatever BaudRate the board requires)
// 8N1 no-flow-control, and returns a wire.Transport over it.
// timeout is not used here: each underlying Read syscall is bounded by
// pollInterval, so ReadLine's caller-supplied deadline can be honored
// without a reader goroutine; debug turns on a per-transaction trace of
// raw bytes written and read.
func (o *Opener) Open(path string, timeout time.Duration, debug bool) (wire.Transport, error) {
	cfg := &serial.Config{
		Name:        path,
		Baud:        o.BaudRate,
		ReadTimeout: pollInterval,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", path, err)
	}
	if err := port.Flush(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("serialport: flush %s: %w", path, err)
	}
	return newTransport(port, path, debug, o.Logger), nil
}
