// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"sync"
	"testing"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
)

func TestRegister_DuplicateIdFails(t *testing.T) {
	r := New()
	if err := r.Register(Entry{ID: "main", Board: board.Standard()}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register(Entry{ID: "main", Board: board.Standard()})
	if !apierr.Is(err, apierr.Duplicate) {
		t.Fatalf("err = %v, want Duplicate", err)
	}
}

func TestGetOrErr_NotFound(t *testing.T) {
	r := New()
	_, err := r.GetOrErr("missing")
	if !apierr.Is(err, apierr.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestList_TwoControllersDifferentFanCounts(t *testing.T) {
	r := New()
	_ = r.Register(Entry{ID: "main", Board: board.Standard()})
	_ = r.Register(Entry{ID: "gpu", Board: board.Custom(4)})

	entries := r.List()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	if byID["main"].Board.FanCount != 10 {
		t.Fatalf("main fan count = %d, want 10", byID["main"].Board.FanCount)
	}
	if byID["gpu"].Board.FanCount != 4 {
		t.Fatalf("gpu fan count = %d, want 4", byID["gpu"].Board.FanCount)
	}
	if !byID["gpu"].MockMode() {
		t.Fatal("gpu entry should be mock mode (nil manager)")
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := New()
	for i := 0; i < 10; i++ {
		_ = r.Register(Entry{ID: string(rune('a' + i)), Board: board.Custom(i + 1)})
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.List()
			_, _ = r.Get("a")
		}()
	}
	wg.Wait()
}
