package atwinc

import (
	"context"

	"github.com/moffa90/go-atwinc1500/protocol"
)

// GetFirmwareVersion queries the firmware version running on the chip.
func (a *Atwinc1500) GetFirmwareVersion(ctx context.Context) (protocol.FirmwareVersion, error) {
	payload, err := a.hif.Request(ctx,
		protocol.GroupMain, protocol.OpReqFirmwareVersion, protocol.OpRespFirmwareVersion,
		protocol.Body{})
	if err != nil {
		return protocol.FirmwareVersion{}, err
	}
	return protocol.ParseFirmwareVersionResponse(payload)
}

// GetMacAddress queries the working MAC address of the chip.
func (a *Atwinc1500) GetMacAddress(ctx context.Context) (protocol.MacAddress, error) {
	payload, err := a.hif.Request(ctx,
		protocol.GroupMain, protocol.OpReqMacAddress, protocol.OpRespMacAddress,
		protocol.Body{})
	if err != nil {
		return protocol.MacAddress{}, err
	}
	return protocol.ParseMacAddressResponse(payload)
}

// Connect asks the chip to join the network described by conn. The
// request is fire and forget: the outcome arrives later as a
// connection state change event, dispatched by HandleEvent.
//
// Example:
//
//	conn := protocol.WpaPskConnection("home", "passphrase", protocol.ChannelAny, true)
//	if err := dev.Connect(ctx, conn); err != nil {
//	    log.Fatal(err)
//	}
func (a *Atwinc1500) Connect(ctx context.Context, conn protocol.Connection) error {
	payload, err := protocol.BuildConnectPayload(conn)
	if err != nil {
		return err
	}
	a.log.Info("connecting", "ssid", conn.SSID, "security", conn.Security.String())
	return a.hif.Send(ctx, protocol.GroupWifi, protocol.OpReqConnect,
		protocol.Body{Payload: payload})
}

// ConnectDefault asks the chip to rejoin the network whose credentials
// it last saved.
func (a *Atwinc1500) ConnectDefault(ctx context.Context) error {
	return a.hif.Send(ctx, protocol.GroupWifi, protocol.OpReqDefaultConnect, protocol.Body{})
}

// Disconnect asks the chip to leave the current network.
func (a *Atwinc1500) Disconnect(ctx context.Context) error {
	return a.hif.Send(ctx, protocol.GroupWifi, protocol.OpReqDisconnect, protocol.Body{})
}

// Scan runs a single synchronous scan on the given channel and returns
// the collected results. Use protocol.ChannelAny to sweep all channels.
func (a *Atwinc1500) Scan(ctx context.Context, channel protocol.Channel) (*protocol.ScanResults, error) {
	payload, err := a.hif.Request(ctx,
		protocol.GroupWifi, protocol.OpReqScan, protocol.OpRespScanResults,
		protocol.Body{Payload: protocol.BuildScanPayload(channel)})
	if err != nil {
		return nil, err
	}
	return protocol.ParseScanResults(payload)
}

// ScanChannels runs a single synchronous scan restricted to the
// channels set in mask (bit 0 = channel 1).
func (a *Atwinc1500) ScanChannels(ctx context.Context, mask uint16) (*protocol.ScanResults, error) {
	payload, err := a.hif.Request(ctx,
		protocol.GroupWifi, protocol.OpReqScan, protocol.OpRespScanResults,
		protocol.Body{
			Payload: protocol.BuildScanPayload(protocol.ChannelAny),
			Control: protocol.BuildChannelMaskControl(mask),
		})
	if err != nil {
		return nil, err
	}
	return protocol.ParseScanResults(payload)
}

// HandleEvent receives one pending chip frame and dispatches it.
// Connection state changes go to the configured ConnectionCallback;
// frames nobody listens for are logged and dropped. Call it when the
// chip raises its interrupt line.
func (a *Atwinc1500) HandleEvent(ctx context.Context) error {
	hdr, payload, err := a.hif.Receive(ctx)
	if err != nil {
		return err
	}

	switch {
	case hdr.GroupID == protocol.GroupWifi && hdr.Opcode == protocol.OpRespConStateChanged:
		ev, err := protocol.ParseConnectionEvent(payload)
		if err != nil {
			return err
		}
		a.log.Info("connection state changed", "state", ev.State.String(), "code", ev.ErrCode)
		if a.config.ConnectionCallback != nil {
			a.config.ConnectionCallback(ev)
		}
	default:
		a.log.Debug("unhandled chip event", "group", hdr.GroupID, "opcode", hdr.Opcode, "length", hdr.Length)
	}
	return nil
}
