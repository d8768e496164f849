package protocol

import "fmt"

// FirmwareVersion is the chip firmware version.
// Returned by the firmware version operation.
type FirmwareVersion struct {
	Major byte
	Minor byte
	Patch byte
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MacAddress is the chip's working mac address.
type MacAddress [6]byte

func (m MacAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		m[0], m[1], m[2], m[3], m[4], m[5])
}

// SecurityType identifies the security scheme of a wireless network.
type SecurityType byte

const (
	// SecurityOpen means the network is not secured
	SecurityOpen SecurityType = 1

	// SecurityWpaPsk means WPA/WPA2 personal (pre-shared key); this is
	// the only fully supported scheme
	SecurityWpaPsk SecurityType = 2

	// SecurityWep means WEP-40 or WEP-104, open or shared
	SecurityWep SecurityType = 3

	// SecurityWpaEnterprise means WPA/WPA2 enterprise with IEEE 802.1x
	// username/password authentication
	SecurityWpaEnterprise SecurityType = 4
)

func (s SecurityType) String() string {
	switch s {
	case SecurityOpen:
		return "open"
	case SecurityWpaPsk:
		return "wpa-psk"
	case SecurityWep:
		return "wep"
	case SecurityWpaEnterprise:
		return "wpa-enterprise"
	default:
		return fmt.Sprintf("unknown security type %d", byte(s))
	}
}

// Channel is a wireless channel selector. ChannelAny asks the chip to
// search all channels.
type Channel byte

const (
	Channel1  Channel = 1
	Channel2  Channel = 2
	Channel3  Channel = 3
	Channel4  Channel = 4
	Channel5  Channel = 5
	Channel6  Channel = 6
	Channel7  Channel = 7
	Channel8  Channel = 8
	Channel9  Channel = 9
	Channel10 Channel = 10
	Channel11 Channel = 11
	Channel12 Channel = 12
	Channel13 Channel = 13
	Channel14 Channel = 14

	// ChannelAny selects all channels
	ChannelAny Channel = 255
)

// ScanResult is one discovered network record from a scan response.
type ScanResult struct {
	// RSSI is the received signal strength in dBm
	RSSI int8

	// Security is the network's advertised security scheme
	Security SecurityType

	// Channel the network was seen on
	Channel Channel

	// BSSID is the access point hardware address
	BSSID [6]byte

	// SSID is the network name
	SSID string
}

// ConnectionState reports the chip's connection status in a
// state-changed event.
type ConnectionState byte

const (
	// StateDisconnected means the chip left or lost the network
	StateDisconnected ConnectionState = 0

	// StateConnected means the chip joined the network
	StateConnected ConnectionState = 1
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("unknown state %d", byte(s))
	}
}

// ConnectionEvent is a parsed connection state-changed event.
type ConnectionEvent struct {
	State ConnectionState

	// ErrCode is the chip's error code for a failed connection; zero
	// on success
	ErrCode byte
}
