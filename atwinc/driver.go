package atwinc

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-atwinc1500/bus"
	"github.com/moffa90/go-atwinc1500/hif"
	"github.com/moffa90/go-atwinc1500/protocol"
)

// Atwinc1500 drives an ATWINC1500 WiFi chip over a serial bus.
// It owns the bus transaction layer and the framed host interface, and
// exposes the chip operations: firmware and MAC queries, network
// connect and disconnect, scanning, event dispatch and GPIO control.
//
// Atwinc1500 is not safe for concurrent use: the chip processes one
// framed transaction at a time.
type Atwinc1500 struct {
	bus    *bus.Bus
	hif    *hif.Engine
	config Config
	log    Logger
}

// New creates a new driver over the given transport and chip select
// pin. The chip is not touched until Initialize is called.
//
// Example:
//
//	dev := atwinc.New(spi, cs,
//	    atwinc.WithResetPin(reset),
//	    atwinc.WithLogger(myLogger),
//	)
//	if err := dev.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
func New(spi bus.Transport, cs bus.OutputPin, opts ...Option) *Atwinc1500 {
	if spi == nil {
		panic("transport cannot be nil")
	}
	if cs == nil {
		panic("chip select pin cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	log := cfg.Logger
	if log == nil {
		log = nopLogger{}
	}

	b := bus.New(spi, cs, cfg.CRC)
	return &Atwinc1500{
		bus:    b,
		hif:    hif.New(b, cfg.ReadyAttempts),
		config: cfg,
		log:    log,
	}
}

// Initialize brings the chip up:
//  1. Releases chip select and drives the wake and reset lines
//  2. Reconfigures the bus CRC guards to match the driver
//  3. Waits for the efuse contents to load
//  4. Waits for the boot ROM unless firmware is already waiting
//  5. Hands configuration to the boot ROM and starts the firmware
//  6. Waits for firmware init to finish and enables the chip interrupt
//
// The operation can be cancelled via context.
func (a *Atwinc1500) Initialize(ctx context.Context) error {
	if err := a.initPins(); err != nil {
		return err
	}
	if err := a.setupCrc(); err != nil {
		return err
	}

	a.log.Debug("waiting for efuse load")
	if err := a.pollRegister(ctx, "efuse load", protocol.RegEfuse, func(v uint32) bool {
		return v&protocol.EfuseLoadedBit != 0
	}); err != nil {
		return err
	}

	wait, err := a.bus.ReadRegister(protocol.RegWaitForHost)
	if err != nil {
		return err
	}
	if wait&1 == 0 {
		a.log.Debug("waiting for boot rom")
		if err := a.pollRegister(ctx, "boot rom", protocol.RegBootRom, func(v uint32) bool {
			return v == protocol.BootFinishBootRom
		}); err != nil {
			return err
		}
	}

	if err := a.bus.WriteRegister(protocol.RegNMIState, protocol.BootDriverVerInfo); err != nil {
		return err
	}
	if err := a.bus.WriteRegister(protocol.RegNMIGp1, protocol.BootConfValue); err != nil {
		return err
	}
	if err := a.bus.WriteRegister(protocol.RegBootRom, protocol.BootStartFirmware); err != nil {
		return err
	}

	a.log.Debug("waiting for firmware init")
	if err := a.pollRegister(ctx, "firmware init", protocol.RegNMIState, func(v uint32) bool {
		return v == protocol.BootFinishInit
	}); err != nil {
		return err
	}
	if err := a.bus.WriteRegister(protocol.RegNMIState, 0); err != nil {
		return err
	}

	if err := a.enableChipInterrupt(); err != nil {
		return err
	}

	a.log.Info("chip initialized")
	return nil
}

// OnConnection registers the callback HandleEvent invokes on
// connection state changes, replacing any callback set at
// construction.
func (a *Atwinc1500) OnConnection(callback ConnectionCallback) {
	a.config.ConnectionCallback = callback
}

// ChipID reads the chip identification register.
func (a *Atwinc1500) ChipID() (uint32, error) {
	return a.bus.ReadRegister(protocol.RegNMIChipID)
}

// initPins releases chip select, drives the wake line high and pulses
// the reset line when those pins are configured.
func (a *Atwinc1500) initPins() error {
	if err := a.bus.InitChipSelect(); err != nil {
		return &PinError{Pin: "chip select", Err: err}
	}
	if a.config.WakePin != nil {
		if err := a.config.WakePin.Set(true); err != nil {
			return &PinError{Pin: "wake", Err: err}
		}
	}
	if a.config.ResetPin != nil {
		if err := a.config.ResetPin.Set(false); err != nil {
			return &PinError{Pin: "reset", Err: err}
		}
		time.Sleep(a.config.BootPollInterval)
		if err := a.config.ResetPin.Set(true); err != nil {
			return &PinError{Pin: "reset", Err: err}
		}
		time.Sleep(a.config.BootPollInterval)
	}
	return nil
}

// setupCrc writes the chip's bus protocol configuration when the CRC
// guards are disabled. The chip powers up expecting them.
func (a *Atwinc1500) setupCrc() error {
	if a.config.CRC {
		return nil
	}
	if err := a.bus.WriteRegister(protocol.RegSpiProtocolConfig, protocol.SpiConfigNoCrc); err != nil {
		return fmt.Errorf("disable bus crc: %w", err)
	}
	a.bus.SetCrc(false)
	return nil
}

// pollRegister reads a register until match reports true, pausing
// BootPollInterval between reads, up to BootAttempts reads.
func (a *Atwinc1500) pollRegister(ctx context.Context, stage string, addr uint32, match func(uint32) bool) error {
	for i := 0; i < a.config.BootAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, err := a.bus.ReadRegister(addr)
		if err != nil {
			return err
		}
		if match(value) {
			return nil
		}

		if a.config.BootPollInterval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.config.BootPollInterval):
			}
		}
	}
	return &BootError{Stage: stage, Register: addr, Attempts: a.config.BootAttempts}
}

// enableChipInterrupt routes the chip interrupt to its pin and unmasks
// it.
func (a *Atwinc1500) enableChipInterrupt() error {
	mux, err := a.bus.ReadRegister(protocol.RegNMIPinMux0)
	if err != nil {
		return err
	}
	if err := a.bus.WriteRegister(protocol.RegNMIPinMux0, mux|0x100); err != nil {
		return err
	}

	base, err := a.bus.ReadRegister(protocol.RegNMIIntrEnable)
	if err != nil {
		return err
	}
	return a.bus.WriteRegister(protocol.RegNMIIntrEnable, base|1<<16)
}
