package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the atwincctl configuration file layout.
type Config struct {
	SPI struct {
		// Port is the SPI port name, empty selects the first available
		Port string `yaml:"port"`

		// FrequencyHz is the bus clock, 0 selects the default
		FrequencyHz int64 `yaml:"frequency_hz"`
	} `yaml:"spi"`

	Pins struct {
		// ChipSelect names the host GPIO driving the chip select line
		ChipSelect string `yaml:"chip_select"`

		// Reset names the host GPIO driving the chip reset line (optional)
		Reset string `yaml:"reset"`

		// Wake names the host GPIO driving the chip wake line (optional)
		Wake string `yaml:"wake"`
	} `yaml:"pins"`

	// CRC enables the bus packet CRC guards
	CRC bool `yaml:"crc"`

	// ReadyAttempts caps status polls per framed transaction
	ReadyAttempts int `yaml:"ready_attempts"`

	Network struct {
		SSID       string `yaml:"ssid"`
		Passphrase string `yaml:"passphrase"`

		// Channel restricts scans and connects, 0 means any
		Channel int `yaml:"channel"`

		// Save stores the credentials on the chip
		Save bool `yaml:"save"`
	} `yaml:"network"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	cfg.Pins.ChipSelect = "GPIO8"

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Pins.ChipSelect == "" {
		return cfg, fmt.Errorf("config: pins.chip_select is required")
	}
	if cfg.Network.Channel < 0 || cfg.Network.Channel > 14 {
		return cfg, fmt.Errorf("config: network.channel %d out of range 0..14", cfg.Network.Channel)
	}
	return cfg, nil
}
