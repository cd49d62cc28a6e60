// SPDX-License-Identifier: BSD-3-Clause

package fancontroller

import (
	"log/slog"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/internal/wire"
)

// Facade owns one protocol engine, a board descriptor, and the PWM
// shadow. It is not safe for concurrent use: callers (the connection
// manager) must hold exclusive access for the lifetime of a call.
type Facade struct {
	engine *wire.Engine
	board  board.Descriptor
	shadow PWMShadow
	rpm    map[int]int
	logger *slog.Logger
}

// New builds a facade over an already-open engine for the given board.
func New(engine *wire.Engine, descriptor board.Descriptor, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{
		engine: engine,
		board:  descriptor,
		shadow: newPWMShadow(),
		rpm:    make(map[int]int),
		logger: logger,
	}
}

// Board returns the descriptor this facade validates calls against.
func (f *Facade) Board() board.Descriptor { return f.board }

// Shadow exposes the PWM shadow for the connection manager to
// snapshot before a disconnect and restore after a reconnect.
func (f *Facade) Shadow() *PWMShadow { return &f.shadow }

// GetAllFanRPM issues GetAllRpm, parses the reply, and updates the
// internal RPM cache. Fan ids outside the board's range are retained
// if the reply contains them (defensive) but are never synthesized.
func (f *Facade) GetAllFanRPM() (map[int]int, error) {
	reply, err := f.transactAndParse(wire.Frame(wire.OpGetAllRPM))
	if err != nil {
		return nil, err
	}
	for id, v := range reply {
		f.rpm[id] = v
	}
	out := make(map[int]int, len(reply))
	for k, v := range reply {
		out[k] = v
	}
	return out, nil
}

// GetSingleFanRPM validates id against the board, issues GetRpm, and
// fails *Hardware if the reply omits it.
func (f *Facade) GetSingleFanRPM(id int) (int, error) {
	if !f.board.ValidFanID(id) {
		return 0, apierr.Newf(apierr.InvalidInput, "fan id %d out of range [0,%d)", id, f.board.FanCount)
	}

	reply, err := f.transactAndParse(wire.Frame(wire.OpGetRPM, byte(id)))
	if err != nil {
		return 0, err
	}
	v, ok := reply[id]
	if !ok {
		return 0, apierr.Newf(apierr.Hardware, "reply omitted fan id %d", id)
	}
	f.rpm[id] = v
	return v, nil
}

// GetAllFanPWM returns a copy of the PWM shadow; it performs no I/O.
func (f *Facade) GetAllFanPWM() map[int]int {
	return f.shadow.All()
}

// GetSingleFanPWM is a shadow lookup; it performs no I/O.
func (f *Facade) GetSingleFanPWM(id int) (int, bool) {
	return f.shadow.Get(id)
}

// SetFanPWM validates id and percent, issues SetPwm, and on success
// records percent in the shadow.
func (f *Facade) SetFanPWM(id, percent int) error {
	if !f.board.ValidFanID(id) {
		return apierr.Newf(apierr.InvalidInput, "fan id %d out of range [0,%d)", id, f.board.FanCount)
	}
	if !f.board.ValidPWM(percent) {
		return apierr.Newf(apierr.InvalidInput, "pwm percent %d out of range [0,%d]", percent, f.board.MaxPWMPercent)
	}

	if _, err := f.engine.Transact(wire.Frame(wire.OpSetPWM, byte(id), wire.PercentToByte(percent))); err != nil {
		return err
	}
	f.shadow.set(id, percent)
	return nil
}

// SetAllFanPWM validates percent, issues SetAllPwm, and on success
// records percent in the shadow for every fan id the board exposes.
func (f *Facade) SetAllFanPWM(percent int) error {
	if !f.board.ValidPWM(percent) {
		return apierr.Newf(apierr.InvalidInput, "pwm percent %d out of range [0,%d]", percent, f.board.MaxPWMPercent)
	}

	if _, err := f.engine.Transact(wire.Frame(wire.OpSetAllPWM, wire.PercentToByte(percent))); err != nil {
		return err
	}
	for id := 0; id < f.board.FanCount; id++ {
		f.shadow.set(id, percent)
	}
	return nil
}

// SetFanRPM validates id and rpm, then issues SetRpm.
func (f *Facade) SetFanRPM(id, rpm int) error {
	if !f.board.ValidFanID(id) {
		return apierr.Newf(apierr.InvalidInput, "fan id %d out of range [0,%d)", id, f.board.FanCount)
	}
	if rpm < 0 || rpm > 65535 {
		return apierr.Newf(apierr.InvalidInput, "rpm %d out of range [0,65535]", rpm)
	}

	hi, lo := wire.SplitRPM(rpm)
	_, err := f.engine.Transact(wire.Frame(wire.OpSetRPM, byte(id), hi, lo))
	return err
}

// GetHwInfo issues GetHwInfo and returns the raw reply line.
func (f *Facade) GetHwInfo() (string, error) {
	return f.transactAndFirstLine(wire.Frame(wire.OpGetHwInfo))
}

// GetFwInfo issues GetFwInfo and returns the raw reply line.
func (f *Facade) GetFwInfo() (string, error) {
	return f.transactAndFirstLine(wire.Frame(wire.OpGetFwInfo))
}

func (f *Facade) transactAndFirstLine(cmd string) (string, error) {
	lines, err := f.engine.Transact(cmd)
	if err != nil {
		return "", err
	}
	return wire.FirstReplyLine(lines)
}

func (f *Facade) transactAndParse(cmd string) (map[int]int, error) {
	line, err := f.transactAndFirstLine(cmd)
	if err != nil {
		return nil, err
	}
	return wire.ParseDataReply(line, f.logger)
}
