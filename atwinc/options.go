package atwinc

import (
	"time"

	"github.com/moffa90/go-atwinc1500/bus"
	"github.com/moffa90/go-atwinc1500/hif"
)

// Config holds the driver configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ConnectionCallback receives connection state change events (optional)
	ConnectionCallback ConnectionCallback

	// CRC enables the bus packet CRC guards. When false, Initialize
	// reconfigures the chip to run without them.
	CRC bool

	// ReadyAttempts is the maximum number of status polls per framed
	// transaction before giving up
	ReadyAttempts int

	// BootAttempts is the maximum number of polls per boot stage
	BootAttempts int

	// BootPollInterval is the pause between boot stage polls, also used
	// to settle the reset pulse
	BootPollInterval time.Duration

	// ResetPin drives the chip reset line (optional)
	ResetPin bus.OutputPin

	// WakePin drives the chip wake line (optional)
	WakePin bus.OutputPin
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ReadyAttempts:    hif.DefaultReadyAttempts,
		BootAttempts:     20,
		BootPollInterval: 100 * time.Millisecond,
	}
}

// Option is a functional option for configuring the driver.
type Option func(*Config)

// WithLogger sets a logger for driver operations.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithConnectionCallback sets a callback for connection state changes
// dispatched by HandleEvent.
//
// Example:
//
//	dev := atwinc.New(spi, cs,
//	    atwinc.WithConnectionCallback(func(ev protocol.ConnectionEvent) {
//	        fmt.Println("connection:", ev.State)
//	    }),
//	)
func WithConnectionCallback(callback ConnectionCallback) Option {
	return func(c *Config) {
		c.ConnectionCallback = callback
	}
}

// WithCRC enables or disables the bus packet CRC guards.
// Default is disabled: Initialize writes the chip's protocol
// configuration register to match.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithCRC(true))
func WithCRC(enabled bool) Option {
	return func(c *Config) {
		c.CRC = enabled
	}
}

// WithReadyAttempts sets the maximum number of status polls per framed
// transaction. Default is hif.DefaultReadyAttempts.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithReadyAttempts(200))
func WithReadyAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.ReadyAttempts = attempts
		}
	}
}

// WithBootAttempts sets the maximum number of polls per boot stage.
// Default is 20.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithBootAttempts(50))
func WithBootAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.BootAttempts = attempts
		}
	}
}

// WithBootPollInterval sets the pause between boot stage polls.
// Default is 100ms.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithBootPollInterval(50*time.Millisecond))
func WithBootPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.BootPollInterval = interval
		}
	}
}

// WithResetPin sets the chip reset line. When provided, Initialize
// pulses it low then high before talking to the chip.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithResetPin(resetPin))
func WithResetPin(pin bus.OutputPin) Option {
	return func(c *Config) {
		c.ResetPin = pin
	}
}

// WithWakePin sets the chip wake line. When provided, Initialize
// drives it high before talking to the chip.
//
// Example:
//
//	dev := atwinc.New(spi, cs, atwinc.WithWakePin(wakePin))
func WithWakePin(pin bus.OutputPin) Option {
	return func(c *Config) {
		c.WakePin = pin
	}
}
