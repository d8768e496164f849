// Command atwincctl talks to an ATWINC1500 WiFi chip over a Linux SPI
// port.
//
// Usage:
//
//	atwincctl [flags] <command>
//
// Commands:
//
//	info        print chip id, firmware version and MAC address
//	scan        scan for networks and print the results
//	connect     join the network configured in the config file
//	disconnect  leave the current network
//	gpio        control a chip GPIO pin: gpio <pin> <in|out|high|low|get>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-atwinc1500/atwinc"
	"github.com/moffa90/go-atwinc1500/hif"
	"github.com/moffa90/go-atwinc1500/protocol"
	"github.com/moffa90/go-atwinc1500/spidev"
)

func main() {
	var (
		configPath = flag.String("config", "/etc/atwincctl.yaml", "configuration file")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
		timeout    = flag.Duration("timeout", 30*time.Second, "overall operation timeout")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(log, *configPath, *timeout, flag.Args()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, configPath string, timeout time.Duration, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	dev, cleanup, err := openChip(log, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := dev.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize chip: %w", err)
	}

	switch cmd := args[0]; cmd {
	case "info":
		return runInfo(ctx, dev)
	case "scan":
		return runScan(ctx, dev, channel(cfg.Network.Channel))
	case "connect":
		return runConnect(ctx, log, dev, cfg)
	case "disconnect":
		return dev.Disconnect(ctx)
	case "gpio":
		return runGpio(dev, args[1:])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// openChip wires the SPI port and control pins into a driver.
func openChip(log zerolog.Logger, cfg Config) (*atwinc.Atwinc1500, func(), error) {
	port, err := spidev.Open(cfg.SPI.Port, physic.Frequency(cfg.SPI.FrequencyHz)*physic.Hertz)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { port.Close() }

	cs, err := spidev.OpenPin(cfg.Pins.ChipSelect)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts := []atwinc.Option{
		atwinc.WithLogger(zerologAdapter{log: log}),
		atwinc.WithCRC(cfg.CRC),
		atwinc.WithReadyAttempts(cfg.ReadyAttempts),
	}
	if cfg.Pins.Reset != "" {
		pin, err := spidev.OpenPin(cfg.Pins.Reset)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, atwinc.WithResetPin(pin))
	}
	if cfg.Pins.Wake != "" {
		pin, err := spidev.OpenPin(cfg.Pins.Wake)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, atwinc.WithWakePin(pin))
	}

	return atwinc.New(port, cs, opts...), cleanup, nil
}

func runInfo(ctx context.Context, dev *atwinc.Atwinc1500) error {
	id, err := dev.ChipID()
	if err != nil {
		return err
	}
	version, err := dev.GetFirmwareVersion(ctx)
	if err != nil {
		return err
	}
	mac, err := dev.GetMacAddress(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("chip id:  0x%06X\n", id)
	fmt.Printf("firmware: %s\n", version)
	fmt.Printf("mac:      %s\n", mac)
	return nil
}

func runScan(ctx context.Context, dev *atwinc.Atwinc1500, ch protocol.Channel) error {
	results, err := dev.Scan(ctx, ch)
	if err != nil {
		return err
	}

	fmt.Printf("%d networks found\n", results.Count())
	for {
		r, ok := results.Next()
		if !ok {
			return nil
		}
		fmt.Printf("%-33s  %-14s  ch%-2d  %4ddBm  %s\n",
			r.SSID, r.Security, r.Channel, r.RSSI, formatBSSID(r.BSSID))
	}
}

func runConnect(ctx context.Context, log zerolog.Logger, dev *atwinc.Atwinc1500, cfg Config) error {
	if cfg.Network.SSID == "" {
		return fmt.Errorf("config: network.ssid is required for connect")
	}

	var conn protocol.Connection
	if cfg.Network.Passphrase == "" {
		conn = protocol.OpenConnection(cfg.Network.SSID, channel(cfg.Network.Channel))
	} else {
		conn = protocol.WpaPskConnection(cfg.Network.SSID, cfg.Network.Passphrase,
			channel(cfg.Network.Channel), cfg.Network.Save)
	}

	done := make(chan protocol.ConnectionEvent, 1)
	dev.OnConnection(func(ev protocol.ConnectionEvent) {
		select {
		case done <- ev:
		default:
		}
	})

	if err := dev.Connect(ctx, conn); err != nil {
		return err
	}

	// The chip answers asynchronously; poll for the state change event.
	for {
		select {
		case ev := <-done:
			if ev.State != protocol.StateConnected {
				return fmt.Errorf("connection failed: code %d", ev.ErrCode)
			}
			log.Info().Str("ssid", cfg.Network.SSID).Msg("connected")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := dev.HandleEvent(ctx)
		var notReady *hif.DeviceNotReadyError
		if errors.As(err, &notReady) {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if err != nil {
			return err
		}
	}
}

func runGpio(dev *atwinc.Atwinc1500, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: gpio <pin> <in|out|high|low|get>")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 3 || n > 6 {
		return fmt.Errorf("gpio pin must be 3..6")
	}
	pin := atwinc.Gpio(n)

	switch args[1] {
	case "in":
		return dev.SetGpioDirection(pin, atwinc.GpioInput)
	case "out":
		return dev.SetGpioDirection(pin, atwinc.GpioOutput)
	case "high":
		return dev.SetGpioValue(pin, atwinc.GpioHigh)
	case "low":
		return dev.SetGpioValue(pin, atwinc.GpioLow)
	case "get":
		dir, err := dev.GetGpioDirection(pin)
		if err != nil {
			return err
		}
		if dir == atwinc.GpioOutput {
			fmt.Println("out")
		} else {
			fmt.Println("in")
		}
		return nil
	default:
		return fmt.Errorf("unknown gpio action %q", args[1])
	}
}

func channel(n int) protocol.Channel {
	if n == 0 {
		return protocol.ChannelAny
	}
	return protocol.Channel(n)
}

func formatBSSID(b [6]byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}

// zerologAdapter bridges the driver's Logger interface onto zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func (a zerologAdapter) Debug(msg string, keysAndValues ...interface{}) {
	a.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (a zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.log.Info().Fields(keysAndValues).Msg(msg)
}

func (a zerologAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.log.Error().Fields(keysAndValues).Msg(msg)
}
