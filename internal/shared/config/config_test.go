package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.OverridesPath() != "/usr/local/share/OpenHD/SysUtils/wifi_overrides.conf" {
		t.Errorf("OverridesPath = %q", cfg.OverridesPath())
	}
	if cfg.TxPowerOverridesPath() != "/usr/local/share/OpenHD/SysUtils/wifi_txpower.conf" {
		t.Errorf("TxPowerOverridesPath = %q", cfg.TxPowerOverridesPath())
	}
	if cfg.CardsPath() != "/usr/local/share/OpenHD/SysUtils/wifi_cards.json" {
		t.Errorf("CardsPath = %q", cfg.CardsPath())
	}
	if cfg.ControlSocket != "/run/openhd/openhd_ctrl.sock" {
		t.Errorf("ControlSocket = %q", cfg.ControlSocket)
	}
	if cfg.ControlTimeout() != 900*time.Millisecond {
		t.Errorf("ControlTimeout = %v", cfg.ControlTimeout())
	}
	if cfg.MaxLineBytes != 4096 {
		t.Errorf("MaxLineBytes = %d", cfg.MaxLineBytes)
	}
}

func TestLoadMissingPathKeepsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ControlTimeoutMs != 900 {
		t.Errorf("ControlTimeoutMs = %d", cfg.ControlTimeoutMs)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wifid.yaml")
	content := "state_dir: " + dir + "\ncontrol_timeout_ms: 250\ndebug_listen: 127.0.0.1:9123\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StateDir != dir {
		t.Errorf("StateDir = %q, want %q", cfg.StateDir, dir)
	}
	if cfg.ControlTimeout() != 250*time.Millisecond {
		t.Errorf("ControlTimeout = %v", cfg.ControlTimeout())
	}
	if cfg.DebugListen != "127.0.0.1:9123" {
		t.Errorf("DebugListen = %q", cfg.DebugListen)
	}
	// Unset fields keep their defaults.
	if cfg.RequestSocket != "/run/openhd/sysutil.sock" {
		t.Errorf("RequestSocket = %q", cfg.RequestSocket)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("state_dir: [not a scalar\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}
