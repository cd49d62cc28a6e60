package serialport

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/openfan/openfand/internal/wire"
)

// fakePort is a linePort backed by an in-memory byte queue, standing in
// for the real device during tests.
type fakePort struct {
	mu      sync.Mutex
	toRead  []byte
	written []byte
	closed  bool
}

func (f *fakePort) Read(b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.toRead) == 0 {
		return 0, nil // mirrors a real port's read-timeout-with-nothing-pending
	}
	n := copy(b, f.toRead)
	f.toRead = f.toRead[n:]
	return n, nil
}

func (f *fakePort) Write(b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, b...)
	return len(b), nil
}

func (f *fakePort) Flush() error { return nil }
func (f *fakePort) Close() error { f.closed = true; return nil }

func (f *fakePort) push(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toRead = append(f.toRead, s...)
}

func TestTransport_ReadLineReturnsCompleteLine(t *testing.T) {
	fp := &fakePort{}
	fp.push("<OK\r\n")
	tr := newTransport(fp, "/dev/fake0", false, nil)

	line, err := tr.ReadLine(time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "<OK\r\n" {
		t.Fatalf("line = %q", line)
	}
}

func TestTransport_ReadLineSplitsMultipleLines(t *testing.T) {
	fp := &fakePort{}
	fp.push("first\nsecond\n")
	tr := newTransport(fp, "/dev/fake0", false, nil)

	first, err := tr.ReadLine(time.Now().Add(time.Second))
	if err != nil || first != "first\n" {
		t.Fatalf("first = %q, err = %v", first, err)
	}
	second, err := tr.ReadLine(time.Now().Add(time.Second))
	if err != nil || second != "second\n" {
		t.Fatalf("second = %q, err = %v", second, err)
	}
}

func TestTransport_ReadLineTimesOutWithNoData(t *testing.T) {
	fp := &fakePort{}
	tr := newTransport(fp, "/dev/fake0", false, nil)

	_, err := tr.ReadLine(time.Now().Add(75 * time.Millisecond))
	if !errors.Is(err, wire.ErrReadTimeout) {
		t.Fatalf("err = %v, want ErrReadTimeout", err)
	}
}

func TestTransport_WriteWritesEveryByte(t *testing.T) {
	fp := &fakePort{}
	tr := newTransport(fp, "/dev/fake0", false, nil)

	n, err := tr.Write([]byte(">SET 0 50\r\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(">SET 0 50\r\n") || string(fp.written) != ">SET 0 50\r\n" {
		t.Fatalf("written = %q", fp.written)
	}
}

func TestTransport_FlushClearsPendingBuffer(t *testing.T) {
	fp := &fakePort{}
	fp.push("partial-line-no-newline-yet")
	tr := newTransport(fp, "/dev/fake0", false, nil)

	// Prime the pending buffer with bytes lacking a newline.
	_, err := tr.ReadLine(time.Now().Add(75 * time.Millisecond))
	if !errors.Is(err, wire.ErrReadTimeout) {
		t.Fatalf("err = %v, want ErrReadTimeout", err)
	}
	if len(tr.pending) == 0 {
		t.Fatal("expected pending bytes before Flush")
	}
	if err := tr.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(tr.pending) != 0 {
		t.Fatalf("pending = %q, want empty after Flush", tr.pending)
	}
}

func TestTransport_CloseClosesUnderlyingPort(t *testing.T) {
	fp := &fakePort{}
	tr := newTransport(fp, "/dev/fake0", false, nil)
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !fp.closed {
		t.Fatal("underlying port was not closed")
	}
}
