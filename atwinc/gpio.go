package atwinc

import "github.com/moffa90/go-atwinc1500/protocol"

// Gpio identifies a host-controllable chip GPIO pin. The pin number is
// its bit position in the GPIO registers.
type Gpio uint8

// Chip GPIO pins available to the host.
const (
	Gpio3 Gpio = 3
	Gpio4 Gpio = 4
	Gpio5 Gpio = 5
	Gpio6 Gpio = 6
)

// GpioDirection configures a chip GPIO pin as input or output.
type GpioDirection uint8

const (
	// GpioInput configures the pin as an input
	GpioInput GpioDirection = iota

	// GpioOutput configures the pin as an output
	GpioOutput
)

// GpioValue is the logic level of a chip GPIO pin.
type GpioValue uint8

const (
	// GpioLow is the low logic level
	GpioLow GpioValue = iota

	// GpioHigh is the high logic level
	GpioHigh
)

// SetGpioDirection configures a chip GPIO pin as input or output.
func (a *Atwinc1500) SetGpioDirection(pin Gpio, dir GpioDirection) error {
	value, err := a.bus.ReadRegister(protocol.RegGpioDir)
	if err != nil {
		return err
	}
	if dir == GpioOutput {
		value |= 1 << pin
	} else {
		value &^= 1 << pin
	}
	return a.bus.WriteRegister(protocol.RegGpioDir, value)
}

// SetGpioValue drives a chip GPIO pin high or low. The pin must be
// configured as an output first.
func (a *Atwinc1500) SetGpioValue(pin Gpio, value GpioValue) error {
	reg, err := a.bus.ReadRegister(protocol.RegGpioVal)
	if err != nil {
		return err
	}
	if value == GpioHigh {
		reg |= 1 << pin
	} else {
		reg &^= 1 << pin
	}
	return a.bus.WriteRegister(protocol.RegGpioVal, reg)
}

// GetGpioDirection reads back the configured direction of a chip GPIO
// pin.
func (a *Atwinc1500) GetGpioDirection(pin Gpio) (GpioDirection, error) {
	value, err := a.bus.ReadRegister(protocol.RegGpioGetDir)
	if err != nil {
		return GpioInput, err
	}
	if value>>pin&1 == 1 {
		return GpioOutput, nil
	}
	return GpioInput, nil
}
