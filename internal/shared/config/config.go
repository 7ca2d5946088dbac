// Package config provides configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration. Zero values are filled from
// Default(); an optional YAML file overrides individual fields.
type Config struct {
	// StateDir holds the override files and the card catalog.
	StateDir string `yaml:"state_dir"`

	// RequestSocket is the unix socket this daemon serves requests on.
	RequestSocket string `yaml:"request_socket"`

	// ControlSocket is the unix socket of the OpenHD control peer that
	// programs RF hardware. Its absence means the peer is not running.
	ControlSocket string `yaml:"control_socket"`

	// ControlTimeoutMs bounds one control-channel round trip.
	ControlTimeoutMs int `yaml:"control_timeout_ms"`

	// MaxLineBytes caps a single protocol line in both directions.
	MaxLineBytes int `yaml:"max_line_bytes"`

	// DebugListen, when non-empty, enables the read-only HTTP status
	// API on the given address.
	DebugListen string `yaml:"debug_listen"`

	// DebugToken, when non-empty, requires bearer authentication on the
	// HTTP status API.
	DebugToken string `yaml:"debug_token"`

	// LogFile, when non-empty, tees logs to a rotating file.
	LogFile string `yaml:"log_file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		StateDir:         "/usr/local/share/OpenHD/SysUtils",
		RequestSocket:    "/run/openhd/sysutil.sock",
		ControlSocket:    "/run/openhd/openhd_ctrl.sock",
		ControlTimeoutMs: 900,
		MaxLineBytes:     4096,
	}
}

// Load returns the default configuration, overridden by the given YAML
// file when path is non-empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// OverridesPath returns the type-override file path.
func (c *Config) OverridesPath() string {
	return filepath.Join(c.StateDir, "wifi_overrides.conf")
}

// TxPowerOverridesPath returns the transmit-power override file path.
func (c *Config) TxPowerOverridesPath() string {
	return filepath.Join(c.StateDir, "wifi_txpower.conf")
}

// CardsPath returns the card profile catalog path.
func (c *Config) CardsPath() string {
	return filepath.Join(c.StateDir, "wifi_cards.json")
}

// ControlTimeout returns the control round-trip deadline.
func (c *Config) ControlTimeout() time.Duration {
	return time.Duration(c.ControlTimeoutMs) * time.Millisecond
}
