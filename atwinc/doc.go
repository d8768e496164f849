// Package atwinc drives an ATWINC1500 WiFi chip from the host side of
// its serial bus.
//
// The driver brings the chip through its boot sequence, then exposes
// the host operations: firmware and MAC queries, network connect and
// disconnect, channel scanning, event dispatch and chip GPIO control.
// Transport and control pins are injected, so the driver runs over any
// bus implementation (see the spidev package for a Linux one).
//
// # Basic Usage
//
//	dev := atwinc.New(spi, cs,
//	    atwinc.WithResetPin(reset),
//	    atwinc.WithWakePin(wake),
//	)
//
//	ctx := context.Background()
//	if err := dev.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	version, err := dev.GetFirmwareVersion(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("firmware:", version)
//
// # Joining a Network
//
// Connect is fire and forget. The chip reports the outcome later as a
// connection state change event; register a callback and call
// HandleEvent when the chip raises its interrupt line:
//
//	dev := atwinc.New(spi, cs,
//	    atwinc.WithConnectionCallback(func(ev protocol.ConnectionEvent) {
//	        fmt.Println("connection:", ev.State)
//	    }),
//	)
//
//	conn := protocol.WpaPskConnection("home", "passphrase", protocol.ChannelAny, true)
//	dev.Connect(ctx, conn)
//
// # Scanning
//
//	results, err := dev.Scan(ctx, protocol.ChannelAny)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    r, ok := results.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Printf("%s  %s  ch%d  %ddBm\n", r.SSID, r.Security, r.Channel, r.RSSI)
//	}
package atwinc
