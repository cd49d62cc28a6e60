// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadStatic_WritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openfand.toml")

	cfg, err := LoadStatic(path)
	if err != nil {
		t.Fatalf("LoadStatic: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Controllers) != 1 || cfg.Controllers[0].ID != "default" {
		t.Fatalf("Controllers = %+v, want one entry with id \"default\"", cfg.Controllers)
	}

	reloaded, err := LoadStatic(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Server.Hostname != cfg.Server.Hostname || reloaded.DataDir != cfg.DataDir {
		t.Fatalf("reloaded = %+v, want %+v", reloaded, cfg)
	}
}

func TestReconnectSection_ToManagerConfigConvertsSecondsToDuration(t *testing.T) {
	section := ReconnectSection{
		Enabled:               true,
		MaxAttempts:           5,
		InitialDelaySecs:      1.5,
		MaxDelaySecs:          30,
		BackoffMultiplier:     2,
		EnableHeartbeat:       true,
		HeartbeatIntervalSecs: 10,
	}

	got := section.ToManagerConfig()
	if got.InitialDelay != 1500*time.Millisecond {
		t.Fatalf("InitialDelay = %v, want 1.5s", got.InitialDelay)
	}
	if got.MaxDelay != 30*time.Second {
		t.Fatalf("MaxDelay = %v, want 30s", got.MaxDelay)
	}
	if got.HeartbeatInterval != 10*time.Second {
		t.Fatalf("HeartbeatInterval = %v, want 10s", got.HeartbeatInterval)
	}
}
