// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/connmgr"
)

// ServerSection is static config's [server] table.
type ServerSection struct {
	Hostname                 string `toml:"hostname"`
	Port                     int    `toml:"port"`
	CommunicationTimeoutSecs int    `toml:"communication_timeout"`
}

// ReconnectSection is static config's [reconnect] table. Durations are
// expressed in seconds on disk because TOML has no native duration type;
// ToManagerConfig converts to the connmgr package's in-memory shape.
type ReconnectSection struct {
	Enabled               bool    `toml:"enabled"`
	MaxAttempts           int     `toml:"max_attempts"`
	InitialDelaySecs      float64 `toml:"initial_delay_secs"`
	MaxDelaySecs          float64 `toml:"max_delay_secs"`
	BackoffMultiplier     float64 `toml:"backoff_multiplier"`
	EnableHeartbeat       bool    `toml:"enable_heartbeat"`
	HeartbeatIntervalSecs float64 `toml:"heartbeat_interval_secs"`
}

// ToManagerConfig converts the on-disk seconds-based section into the
// connmgr package's time.Duration-based runtime shape.
func (r ReconnectSection) ToManagerConfig() connmgr.ReconnectConfig {
	return connmgr.ReconnectConfig{
		Enabled:           r.Enabled,
		MaxAttempts:       r.MaxAttempts,
		InitialDelay:      time.Duration(r.InitialDelaySecs * float64(time.Second)),
		MaxDelay:          time.Duration(r.MaxDelaySecs * float64(time.Second)),
		BackoffMultiplier: r.BackoffMultiplier,
		EnableHeartbeat:   r.EnableHeartbeat,
		HeartbeatInterval: time.Duration(r.HeartbeatIntervalSecs * float64(time.Second)),
	}
}

// ShutdownSection is static config's [shutdown] table.
type ShutdownSection struct {
	Enabled         bool    `toml:"enabled"`
	Profile         string  `toml:"profile"`
	GracePeriodSecs float64 `toml:"grace_period_secs"`
}

// GracePeriod is the configured grace period as a time.Duration, the
// span the HTTP server is given to drain in-flight requests before the
// safe-boot profile is applied.
func (s ShutdownSection) GracePeriod() time.Duration {
	return time.Duration(s.GracePeriodSecs * float64(time.Second))
}

// ControllerSection is one entry of static config's [[controllers]]
// array.
type ControllerSection struct {
	ID          string `toml:"id"`
	Device      string `toml:"device"`
	Board       string `toml:"board"`
	Description string `toml:"description"`
}

// StaticConfig is the daemon's entire startup configuration, loaded once
// from a single TOML file.
type StaticConfig struct {
	DataDir     string              `toml:"data_dir"`
	Server      ServerSection       `toml:"server"`
	Hardware    map[string]any      `toml:"hardware"` // legacy table, unused, kept for forward compat
	Reconnect   ReconnectSection    `toml:"reconnect"`
	Shutdown    ShutdownSection     `toml:"shutdown"`
	Controllers []ControllerSection `toml:"controllers"`
}

// DefaultStatic is the configuration written when no static config file
// exists yet.
func DefaultStatic() StaticConfig {
	return StaticConfig{
		DataDir: "./data",
		Server: ServerSection{
			Hostname:                 "0.0.0.0",
			Port:                     8080,
			CommunicationTimeoutSecs: 2,
		},
		Reconnect: ReconnectSection{
			Enabled:               true,
			MaxAttempts:           0,
			InitialDelaySecs:      1,
			MaxDelaySecs:          30,
			BackoffMultiplier:     2,
			EnableHeartbeat:       true,
			HeartbeatIntervalSecs: 10,
		},
		Shutdown: ShutdownSection{
			Enabled:         false,
			Profile:         "safe",
			GracePeriodSecs: 5,
		},
		Controllers: []ControllerSection{
			{ID: "default", Device: "/dev/ttyUSB0", Board: "standard", Description: "primary controller"},
		},
	}
}

// LoadStatic decodes path into a StaticConfig. If path does not exist, it
// writes DefaultStatic to path and returns it, so a fresh install gets a
// working configuration file on first run.
func LoadStatic(path string) (StaticConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		def := DefaultStatic()
		if err := writeStaticDefault(path, def); err != nil {
			return StaticConfig{}, apierr.Wrap(apierr.Config, "writing default static config", err)
		}
		return def, nil
	}

	var cfg StaticConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return StaticConfig{}, apierr.Wrap(apierr.Config, fmt.Sprintf("decoding static config %q", path), err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return StaticConfig{}, apierr.Newf(apierr.Config, "static config %q has unknown keys: %v", path, undecoded)
	}
	return cfg, nil
}

func writeStaticDefault(path string, cfg StaticConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
