// Package spidev adapts a Linux SPI port and host GPIO pins to the
// bus.Transport and bus.OutputPin interfaces, using periph.io.
//
//	dev, err := spidev.Open("/dev/spidev0.0", spidev.DefaultFrequency)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	cs, err := spidev.OpenPin("GPIO8")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chip := atwinc.New(dev, cs)
package spidev

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultFrequency is a safe bus clock for the chip, well under its
// 48MHz ceiling.
const DefaultFrequency = 8 * physic.MegaHertz

var hostInit sync.Once

func initHost() error {
	var err error
	hostInit.Do(func() {
		_, err = host.Init()
	})
	return err
}

// Device is a bus.Transport over a Linux SPI port.
type Device struct {
	port spi.PortCloser
	conn spi.Conn
}

// Open opens the named SPI port (empty string selects the first
// available one) in mode 0 at the given clock frequency.
func Open(portName string, freq physic.Frequency) (*Device, error) {
	if err := initHost(); err != nil {
		return nil, fmt.Errorf("initialize host drivers: %w", err)
	}
	if freq <= 0 {
		freq = DefaultFrequency
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}
	conn, err := port.Connect(freq, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("configure spi port %q: %w", portName, err)
	}

	return &Device{port: port, conn: conn}, nil
}

// Transfer shuttles one full-duplex byte exchange.
func (d *Device) Transfer(tx, rx []byte) error {
	return d.conn.Tx(tx, rx)
}

// Close releases the SPI port.
func (d *Device) Close() error {
	return d.port.Close()
}

// Pin is a bus.OutputPin over a named host GPIO.
type Pin struct {
	out gpio.PinOut
}

// OpenPin looks up a host GPIO by name ("GPIO8", "22", ...) and
// configures it as an output.
func OpenPin(name string) (*Pin, error) {
	if err := initHost(); err != nil {
		return nil, fmt.Errorf("initialize host drivers: %w", err)
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	if err := p.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("configure gpio pin %q: %w", name, err)
	}
	return &Pin{out: p}, nil
}

// Set drives the pin level.
func (p *Pin) Set(high bool) error {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	return p.out.Out(level)
}
