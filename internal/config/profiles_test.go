// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"path/filepath"
	"testing"

	"github.com/openfan/openfand/internal/apierr"
)

func TestProfileStore_LoadSeedsThreeBuiltins(t *testing.T) {
	p := newProfileStore(filepath.Join(t.TempDir(), "profiles.toml"))
	if err := p.Load(10); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, name := range []string{"silent", "balanced", "safe"} {
		prof, ok := p.Get(name)
		if !ok {
			t.Fatalf("missing built-in profile %q", name)
		}
		if len(prof.Values) != 10 {
			t.Fatalf("profile %q has %d values, want 10", name, len(prof.Values))
		}
	}
}

func TestProfileStore_SetRejectsBadMode(t *testing.T) {
	p := newProfileStore(filepath.Join(t.TempDir(), "profiles.toml"))
	_ = p.Load(4)

	err := p.Set("weird", Profile{Mode: "turbo", Values: []int{1, 2, 3, 4}})
	if !apierr.Is(err, apierr.InvalidInput) {
		t.Fatalf("err = %v, want InvalidInput", err)
	}
}

func TestProfileStore_SetRejectsOutOfRangeValue(t *testing.T) {
	p := newProfileStore(filepath.Join(t.TempDir(), "profiles.toml"))
	_ = p.Load(2)

	if err := p.Set("bad", Profile{Mode: ModePWM, Values: []int{101, 0}}); !apierr.Is(err, apierr.InvalidInput) {
		t.Fatalf("PWM 101 err = %v, want InvalidInput", err)
	}
	if err := p.Set("bad", Profile{Mode: ModeRPM, Values: []int{16001, 0}}); !apierr.Is(err, apierr.InvalidInput) {
		t.Fatalf("RPM 16001 err = %v, want InvalidInput", err)
	}
}

func TestProfileStore_OversizedAndUndersizedNames(t *testing.T) {
	p := newProfileStore(filepath.Join(t.TempDir(), "profiles.toml"))
	_ = p.Load(0) // start empty, bypass Set's own validation for the oversized case
	_ = p.s.mutate(func(m map[string]Profile) bool {
		m["too_many"] = Profile{Mode: ModePWM, Values: make([]int, 12)}
		m["too_few"] = Profile{Mode: ModePWM, Values: make([]int, 3)}
		return true
	})

	oversized := p.OversizedNames(10)
	if len(oversized) != 1 || oversized[0] != "too_many" {
		t.Fatalf("OversizedNames(10) = %v, want [too_many]", oversized)
	}
	undersized := p.UndersizedNames(10)
	if len(undersized) != 1 || undersized[0] != "too_few" {
		t.Fatalf("UndersizedNames(10) = %v, want [too_few]", undersized)
	}
}

func TestProfile_ValueAtDefaultsMissingPositionsToZero(t *testing.T) {
	prof := Profile{Mode: ModePWM, Values: []int{10, 20}}
	if got := prof.ValueAt(0); got != 10 {
		t.Fatalf("ValueAt(0) = %d, want 10", got)
	}
	if got := prof.ValueAt(5); got != 0 {
		t.Fatalf("ValueAt(5) = %d, want 0", got)
	}
}

func TestProfileStore_RoundTripsThroughReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.toml")
	p := newProfileStore(path)
	_ = p.Load(4)
	if err := p.Set("custom", Profile{Mode: ModeRPM, Values: []int{1000, 1200, 1400, 1600}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reloaded := newProfileStore(path)
	if err := reloaded.Load(4); err != nil {
		t.Fatalf("reload: %v", err)
	}
	prof, err := reloaded.GetOrErr("custom")
	if err != nil {
		t.Fatalf("GetOrErr: %v", err)
	}
	if prof.Mode != ModeRPM || len(prof.Values) != 4 || prof.Values[2] != 1400 {
		t.Fatalf("reloaded profile = %+v, want mode rpm values [1000 1200 1400 1600]", prof)
	}
}
