// SPDX-License-Identifier: BSD-3-Clause

package fancontroller

import (
	"testing"
	"time"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/internal/wire"
)

// scriptedTransport replays one canned set of reply lines per Transact
// call, in order; each Write resets the read cursor to that call's
// script entry.
type scriptedTransport struct {
	replies [][]string
	pos     int
	written []string
}

func (s *scriptedTransport) Flush() error { return nil }

func (s *scriptedTransport) Write(b []byte) (int, error) {
	s.written = append(s.written, string(b))
	s.pos = 0
	return len(b), nil
}

func (s *scriptedTransport) ReadLine(deadline time.Time) (string, error) {
	idx := len(s.written) - 1
	if idx < 0 || idx >= len(s.replies) {
		return "", wire.ErrReadTimeout
	}
	script := s.replies[idx]
	if s.pos >= len(script) {
		return "", wire.ErrReadTimeout
	}
	line := script[s.pos]
	s.pos++
	return line + "\r\n", nil
}

func (s *scriptedTransport) Close() error { return nil }

func newTestFacade(t *testing.T, fanCount int, replies [][]string) (*Facade, *scriptedTransport) {
	t.Helper()
	st := &scriptedTransport{replies: replies}
	eng := wire.NewEngine(st, time.Second, nil)
	f := New(eng, board.Custom(fanCount), nil)
	return f, st
}

func TestSetFanPwm_UpdatesShadowOnly(t *testing.T) {
	f, _ := newTestFacade(t, 10, [][]string{{"<OK>"}})

	if err := f.SetFanPWM(3, 50); err != nil {
		t.Fatalf("SetFanPWM: %v", err)
	}
	got, ok := f.GetSingleFanPWM(3)
	if !ok || got != 50 {
		t.Fatalf("GetSingleFanPWM(3) = (%d, %v), want (50, true)", got, ok)
	}
	if _, ok := f.GetSingleFanPWM(4); ok {
		t.Fatal("fan 4 should be unset")
	}
}

func TestSetAllFanPwm_FillsWholeShadow(t *testing.T) {
	f, _ := newTestFacade(t, 10, [][]string{{"<OK>"}})

	if err := f.SetAllFanPWM(75); err != nil {
		t.Fatalf("SetAllFanPWM: %v", err)
	}
	all := f.GetAllFanPWM()
	if len(all) != 10 {
		t.Fatalf("len(all) = %d, want 10", len(all))
	}
	for id, v := range all {
		if v != 75 {
			t.Errorf("all[%d] = %d, want 75", id, v)
		}
	}
}

func TestGetAllFanPwm_EmptyBeforeAnySet(t *testing.T) {
	f, _ := newTestFacade(t, 10, nil)
	if all := f.GetAllFanPWM(); len(all) != 0 {
		t.Fatalf("len(all) = %d, want 0", len(all))
	}
}

func TestSetFanPwm_WireFrame(t *testing.T) {
	f, st := newTestFacade(t, 10, [][]string{{"<OK>"}})
	if err := f.SetFanPWM(3, 50); err != nil {
		t.Fatalf("SetFanPWM: %v", err)
	}
	if len(st.written) != 1 || st.written[0] != ">02037F\r\n" {
		t.Fatalf("written = %v, want [\">02037F\\r\\n\"]", st.written)
	}
}

func TestSetFanRpm_WireFrame(t *testing.T) {
	f, st := newTestFacade(t, 10, [][]string{{"<OK>"}})
	if err := f.SetFanRPM(2, 3000); err != nil {
		t.Fatalf("SetFanRPM: %v", err)
	}
	if len(st.written) != 1 || st.written[0] != ">04020BB8\r\n" {
		t.Fatalf("written = %v, want [\">04020BB8\\r\\n\"]", st.written)
	}
}

func TestSetFanPwm_InvalidFanIdNeverTouchesWire(t *testing.T) {
	f, st := newTestFacade(t, 10, [][]string{{"<OK>"}})
	err := f.SetFanPWM(99, 50)
	if !apierr.Is(err, apierr.InvalidInput) {
		t.Fatalf("err = %v, want InvalidInput", err)
	}
	if len(st.written) != 0 {
		t.Fatal("validation error reached the wire")
	}
}

func TestGetSingleFanRpm_MissingFromReplyIsHardware(t *testing.T) {
	f, _ := newTestFacade(t, 10, [][]string{{"<DATA|1:100;>"}})
	_, err := f.GetSingleFanRPM(0)
	if !apierr.Is(err, apierr.Hardware) {
		t.Fatalf("err = %v, want Hardware", err)
	}
}

func TestGetAllFanRpm_ParsesAndCaches(t *testing.T) {
	f, _ := newTestFacade(t, 10, [][]string{{"<DATA|0:1234;1:5678;>"}})
	got, err := f.GetAllFanRPM()
	if err != nil {
		t.Fatalf("GetAllFanRPM: %v", err)
	}
	if got[0] != 0x1234 || got[1] != 0x5678 {
		t.Fatalf("got = %v", got)
	}
}
