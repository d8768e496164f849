package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atwincctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
spi:
  port: /dev/spidev0.0
  frequency_hz: 8000000
pins:
  chip_select: GPIO8
  reset: GPIO22
  wake: GPIO27
crc: false
ready_attempts: 200
network:
  ssid: TestNet
  passphrase: secret123
  channel: 6
  save: true
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.SPI.Port != "/dev/spidev0.0" || cfg.SPI.FrequencyHz != 8000000 {
		t.Errorf("spi = %+v", cfg.SPI)
	}
	if cfg.Pins.ChipSelect != "GPIO8" || cfg.Pins.Reset != "GPIO22" || cfg.Pins.Wake != "GPIO27" {
		t.Errorf("pins = %+v", cfg.Pins)
	}
	if cfg.ReadyAttempts != 200 {
		t.Errorf("ready_attempts = %d, want 200", cfg.ReadyAttempts)
	}
	if cfg.Network.SSID != "TestNet" || cfg.Network.Passphrase != "secret123" ||
		cfg.Network.Channel != 6 || !cfg.Network.Save {
		t.Errorf("network = %+v", cfg.Network)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "network:\n  ssid: TestNet\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Pins.ChipSelect != "GPIO8" {
		t.Errorf("default chip select = %q, want GPIO8", cfg.Pins.ChipSelect)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing chip select", content: "pins:\n  chip_select: \"\"\n"},
		{name: "channel out of range", content: "network:\n  channel: 15\n"},
		{name: "malformed yaml", content: "pins: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := loadConfig(path); err == nil {
				t.Error("loadConfig() succeeded, want error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("loadConfig() succeeded for a missing file, want error")
	}
}
