// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"path/filepath"
	"testing"
)

func TestAliasStore_LoadSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.toml")
	a := newAliasStore(path)
	if err := a.Load(4); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < 4; i++ {
		name, ok := a.Get(i)
		if !ok || name != DefaultAlias(i) {
			t.Fatalf("Get(%d) = (%q, %v), want (%q, true)", i, name, ok, DefaultAlias(i))
		}
	}
}

func TestAliasStore_SetRejectsDisallowedCharacters(t *testing.T) {
	a := newAliasStore(filepath.Join(t.TempDir(), "aliases.toml"))
	_ = a.Load(2)

	if err := a.Set(0, "bad!name"); err == nil {
		t.Fatal("expected error for disallowed character")
	}
	if err := a.Set(0, ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := a.Set(0, "GPU Intake #1.5-front"); err != nil {
		t.Fatalf("Set with allowed characters: %v", err)
	}
}

func TestAliasStore_RoundTripsThroughReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.toml")
	a := newAliasStore(path)
	_ = a.Load(3)
	if err := a.Set(1, "Radiator Top"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reloaded := newAliasStore(path)
	if err := reloaded.Load(3); err != nil {
		t.Fatalf("reload: %v", err)
	}
	name, ok := reloaded.Get(1)
	if !ok || name != "Radiator Top" {
		t.Fatalf("reloaded Get(1) = (%q, %v), want (\"Radiator Top\", true)", name, ok)
	}
}

func TestAliasStore_FillDefaultsOnlyTouchesMissingIDs(t *testing.T) {
	a := newAliasStore(filepath.Join(t.TempDir(), "aliases.toml"))
	_ = a.Load(0) // start empty
	_ = a.Set(1, "Custom Name")

	if err := a.FillDefaults(3); err != nil {
		t.Fatalf("FillDefaults: %v", err)
	}
	if name, _ := a.Get(1); name != "Custom Name" {
		t.Fatalf("Get(1) = %q, want unchanged \"Custom Name\"", name)
	}
	if name, ok := a.Get(0); !ok || name != DefaultAlias(0) {
		t.Fatalf("Get(0) = (%q, %v), want default", name, ok)
	}
}

func TestAliasStore_InvalidIDs(t *testing.T) {
	a := newAliasStore(filepath.Join(t.TempDir(), "aliases.toml"))
	_ = a.Load(0)
	_ = a.s.mutate(func(m map[string]string) bool {
		m["99"] = "Out Of Range"
		return true
	})

	bad := a.InvalidIDs(10)
	if len(bad) != 1 || bad[0] != 99 {
		t.Fatalf("InvalidIDs(10) = %v, want [99]", bad)
	}
}
