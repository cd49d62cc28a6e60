// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/board"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(stubWriter{}, nil))
}

// stubWriter discards everything written to it.
type stubWriter struct{}

func (stubWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestLoadRuntimeConfig_CreatesPerControllerSubdirsAndGlobalZones(t *testing.T) {
	dataDir := t.TempDir()
	boards := map[string]board.Descriptor{
		"main": board.Standard(),
		"gpu":  board.Custom(4),
	}

	rc, err := LoadRuntimeConfig(dataDir, boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}

	mainData, ok := rc.For("main")
	if !ok {
		t.Fatal("expected controller data for \"main\"")
	}
	if len(mainData.Profiles.All()) != 3 {
		t.Fatalf("main profiles = %d, want 3 built-ins", len(mainData.Profiles.All()))
	}

	gpuData, ok := rc.For("gpu")
	if !ok {
		t.Fatal("expected controller data for \"gpu\"")
	}
	for name, prof := range gpuData.Profiles.All() {
		if len(prof.Values) != 4 {
			t.Fatalf("gpu profile %q has %d values, want 4 (gpu board fan count)", name, len(prof.Values))
		}
	}

	if _, err := rc.Zones.GetOrErr("nonexistent"); !apierr.Is(err, apierr.NotFound) {
		t.Fatalf("fresh zones GetOrErr err = %v, want NotFound", err)
	}

	mainAliasPath := filepath.Join(dataDir, "controllers", "main", "aliases.toml")
	if _, statErr := os.Stat(mainAliasPath); statErr != nil {
		t.Fatalf("expected %s to exist: %v", mainAliasPath, statErr)
	}
}

// TestValidateStartup_OversizedProfileFailsConfig exercises property 20's
// first half: a profile with more values than the board's fan count
// refuses to start.
func TestValidateStartup_OversizedProfileFailsConfig(t *testing.T) {
	dataDir := t.TempDir()
	boards := map[string]board.Descriptor{"main": board.Custom(2)}

	rc, err := LoadRuntimeConfig(dataDir, boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}
	cd, _ := rc.For("main")
	_ = cd.Profiles.s.mutate(func(m map[string]Profile) bool {
		m["oversized"] = Profile{Mode: ModePWM, Values: []int{1, 2, 3, 4}}
		return true
	})

	err = ValidateStartup(rc, boards, discardLogger())
	if !apierr.Is(err, apierr.Config) {
		t.Fatalf("ValidateStartup err = %v, want Config", err)
	}
}

// TestValidateStartup_UndersizedProfileWarnsAndProceeds exercises
// property 20's second half.
func TestValidateStartup_UndersizedProfileWarnsAndProceeds(t *testing.T) {
	dataDir := t.TempDir()
	boards := map[string]board.Descriptor{"main": board.Custom(4)}

	rc, err := LoadRuntimeConfig(dataDir, boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}
	cd, _ := rc.For("main")
	_ = cd.Profiles.s.mutate(func(m map[string]Profile) bool {
		m["partial"] = Profile{Mode: ModePWM, Values: []int{1, 2}}
		return true
	})

	if err := ValidateStartup(rc, boards, discardLogger()); err != nil {
		t.Fatalf("ValidateStartup: %v, want success with a warning", err)
	}
}

func TestValidateStartup_ZoneReferencingUnknownControllerFails(t *testing.T) {
	dataDir := t.TempDir()
	boards := map[string]board.Descriptor{"main": board.Standard()}

	rc, err := LoadRuntimeConfig(dataDir, boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}
	_ = rc.Zones.s.mutate(func(m map[string]Zone) bool {
		m["bad"] = Zone{Fans: []FanRef{{Controller: "ghost", FanID: 0}}}
		return true
	})

	err = ValidateStartup(rc, boards, discardLogger())
	if !apierr.Is(err, apierr.Config) {
		t.Fatalf("ValidateStartup err = %v, want Config", err)
	}
}

func TestValidateStartup_ZoneFanIDOutOfBoardRangeFails(t *testing.T) {
	dataDir := t.TempDir()
	boards := map[string]board.Descriptor{"main": board.Custom(2)}

	rc, err := LoadRuntimeConfig(dataDir, boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}
	_ = rc.Zones.s.mutate(func(m map[string]Zone) bool {
		m["bad"] = Zone{Fans: []FanRef{{Controller: "main", FanID: 9}}}
		return true
	})

	err = ValidateStartup(rc, boards, discardLogger())
	if !apierr.Is(err, apierr.Config) {
		t.Fatalf("ValidateStartup err = %v, want Config", err)
	}
}

func TestValidateStartup_FillsMissingAliasDefaults(t *testing.T) {
	dataDir := t.TempDir()
	boards := map[string]board.Descriptor{"main": board.Custom(3)}

	rc, err := LoadRuntimeConfig(dataDir, boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}
	cd, _ := rc.For("main")
	_ = cd.Aliases.s.mutate(func(m map[string]string) bool {
		delete(m, "1")
		return true
	})

	if err := ValidateStartup(rc, boards, discardLogger()); err != nil {
		t.Fatalf("ValidateStartup: %v", err)
	}
	name, ok := cd.Aliases.Get(1)
	if !ok || name != DefaultAlias(1) {
		t.Fatalf("Get(1) after ValidateStartup = (%q, %v), want default", name, ok)
	}
}
