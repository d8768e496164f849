package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Connection describes the network a connect request should join.
// Credential material is carried as opaque bytes; only the fields
// matching Security are consulted when encoding.
type Connection struct {
	// SSID is the network name, at most MaxSSIDLen-1 bytes
	SSID string

	// Security selects the credential scheme
	Security SecurityType

	// Channel restricts the search; ChannelAny searches all channels
	Channel Channel

	// SaveCredentials asks the chip to remember this network
	SaveCredentials bool

	// Passphrase is the WPA/WPA2 pre-shared key (SecurityWpaPsk)
	Passphrase string

	// Username and Password authenticate against WPA enterprise
	// networks (SecurityWpaEnterprise)
	Username string
	Password string

	// WepKeyIndex and WepKey configure WEP networks (SecurityWep)
	WepKeyIndex byte
	WepKey      string
}

// OpenConnection returns a Connection for an unsecured network.
func OpenConnection(ssid string, channel Channel) Connection {
	return Connection{SSID: ssid, Security: SecurityOpen, Channel: channel}
}

// WpaPskConnection returns a Connection for a WPA/WPA2 personal
// network.
func WpaPskConnection(ssid, passphrase string, channel Channel, save bool) Connection {
	return Connection{
		SSID:            ssid,
		Security:        SecurityWpaPsk,
		Channel:         channel,
		SaveCredentials: save,
		Passphrase:      passphrase,
	}
}

// WepConnection returns a Connection for a WEP network.
func WepConnection(ssid string, keyIndex byte, key string, channel Channel, save bool) Connection {
	return Connection{
		SSID:            ssid,
		Security:        SecurityWep,
		Channel:         channel,
		SaveCredentials: save,
		WepKeyIndex:     keyIndex,
		WepKey:          key,
	}
}

// WpaEnterpriseConnection returns a Connection for a WPA/WPA2
// enterprise network.
func WpaEnterpriseConnection(ssid, username, password string, channel Channel, save bool) Connection {
	return Connection{
		SSID:            ssid,
		Security:        SecurityWpaEnterprise,
		Channel:         channel,
		SaveCredentials: save,
		Username:        username,
		Password:        password,
	}
}

// BuildConnectPayload encodes a connect request payload.
//
// Payload layout (ConnectPayloadSize bytes):
//
//	[CREDENTIALS(65)][SEC(1)][CH(1)][SAVE(1)][RES(2)][SSID(33)][RES(5)]
//
// The credential area is scheme-specific:
//
//	wpa-psk:        [PSK, NUL padded]
//	wep:            [KEY_INDEX][KEY_LEN][KEY, NUL padded]
//	wpa-enterprise: [USERNAME(21)][PASSWORD(41)]
//	open:           zeroed
//
// Returns an error if any field exceeds its wire width.
func BuildConnectPayload(c Connection) ([]byte, error) {
	if len(c.SSID) >= MaxSSIDLen {
		return nil, fmt.Errorf("ssid must be at most %d bytes, got %d", MaxSSIDLen-1, len(c.SSID))
	}

	payload := make([]byte, ConnectPayloadSize)

	switch c.Security {
	case SecurityOpen:
		// no credential material
	case SecurityWpaPsk:
		if len(c.Passphrase) >= MaxPSKLen {
			return nil, fmt.Errorf("passphrase must be at most %d bytes, got %d", MaxPSKLen-1, len(c.Passphrase))
		}
		copy(payload[connOffCredentials:], c.Passphrase)
	case SecurityWep:
		if len(c.WepKey) > MaxWepKeyLen {
			return nil, fmt.Errorf("wep key must be at most %d bytes, got %d", MaxWepKeyLen, len(c.WepKey))
		}
		payload[connOffCredentials] = c.WepKeyIndex
		payload[connOffCredentials+1] = byte(len(c.WepKey))
		copy(payload[connOffCredentials+2:], c.WepKey)
	case SecurityWpaEnterprise:
		if len(c.Username) >= MaxUsernameLen {
			return nil, fmt.Errorf("username must be at most %d bytes, got %d", MaxUsernameLen-1, len(c.Username))
		}
		if len(c.Password) >= MaxPasswordLen {
			return nil, fmt.Errorf("password must be at most %d bytes, got %d", MaxPasswordLen-1, len(c.Password))
		}
		copy(payload[connOffCredentials:connOffCredentials+MaxUsernameLen], c.Username)
		copy(payload[connOffCredentials+MaxUsernameLen:], c.Password)
	default:
		return nil, fmt.Errorf("unsupported security type %d", byte(c.Security))
	}

	payload[connOffSecurity] = byte(c.Security)
	payload[connOffChannel] = byte(c.Channel)
	if c.SaveCredentials {
		payload[connOffSaveCreds] = 1
	}
	copy(payload[connOffSSID:connOffSSID+MaxSSIDLen], c.SSID)

	return payload, nil
}

// ParseConnectPayload decodes a connect request payload back into a
// Connection. It is the inverse of BuildConnectPayload and exists for
// chip simulators and round-trip verification.
func ParseConnectPayload(payload []byte) (Connection, error) {
	if len(payload) != ConnectPayloadSize {
		return Connection{}, &FrameError{
			Reason: "connect payload size mismatch",
			Want:   ConnectPayloadSize,
			Got:    len(payload),
		}
	}

	c := Connection{
		SSID:            trimNul(payload[connOffSSID : connOffSSID+MaxSSIDLen]),
		Security:        SecurityType(payload[connOffSecurity]),
		Channel:         Channel(payload[connOffChannel]),
		SaveCredentials: payload[connOffSaveCreds] != 0,
	}

	creds := payload[connOffCredentials : connOffCredentials+MaxPSKLen]
	switch c.Security {
	case SecurityOpen:
		// nothing carried
	case SecurityWpaPsk:
		c.Passphrase = trimNul(creds)
	case SecurityWep:
		c.WepKeyIndex = creds[0]
		keyLen := int(creds[1])
		if keyLen > MaxWepKeyLen {
			return Connection{}, &FrameError{
				Reason: "wep key length out of range",
				Want:   MaxWepKeyLen,
				Got:    keyLen,
			}
		}
		c.WepKey = string(creds[2 : 2+keyLen])
	case SecurityWpaEnterprise:
		c.Username = trimNul(creds[:MaxUsernameLen])
		c.Password = trimNul(creds[MaxUsernameLen : MaxUsernameLen+MaxPasswordLen])
	default:
		return Connection{}, &FrameError{Reason: fmt.Sprintf("unknown security type %d", payload[connOffSecurity])}
	}

	return c, nil
}

// BuildScanPayload encodes a scan request payload: the channel
// selector plus one reserved byte.
func BuildScanPayload(channel Channel) []byte {
	return []byte{byte(channel), 0}
}

// BuildChannelMaskControl encodes the optional scan control segment: a
// little-endian bitmask of channels 1..14 (bit 0 = channel 1).
func BuildChannelMaskControl(mask uint16) []byte {
	buf := make([]byte, ScanMaskSize)
	binary.LittleEndian.PutUint16(buf, mask)
	return buf
}

// ScanResults is the decoded form of a scan response: a finite,
// non-restartable sequence of network records drained with Next. The
// underlying transaction is single-shot, so the sequence cannot be
// rewound; drain it before issuing another command.
type ScanResults struct {
	buf   []byte
	count int
	next  int
}

// ParseScanResults validates a scan response payload and returns the
// record sequence.
//
// Payload layout:
//
//	[COUNT(1)] followed by COUNT records of ScanRecordSize bytes:
//	[RSSI(1)][SEC(1)][CH(1)][BSSID(6)][SSID(33)]
func ParseScanResults(payload []byte) (*ScanResults, error) {
	if len(payload) < 1 {
		return nil, &FrameError{Reason: "scan response empty", Want: 1, Got: 0}
	}

	count := int(payload[0])
	want := 1 + count*ScanRecordSize
	if len(payload) != want {
		return nil, &FrameError{
			Reason: "scan response size mismatch",
			Want:   want,
			Got:    len(payload),
		}
	}

	return &ScanResults{buf: payload[1:], count: count}, nil
}

// Count returns the total number of records the response declared.
func (s *ScanResults) Count() int {
	return s.count
}

// Next returns the next network record. ok is false once the sequence
// is drained.
func (s *ScanResults) Next() (result ScanResult, ok bool) {
	if s.next >= s.count {
		return ScanResult{}, false
	}

	rec := s.buf[s.next*ScanRecordSize : (s.next+1)*ScanRecordSize]
	s.next++

	result = ScanResult{
		RSSI:     int8(rec[0]),
		Security: SecurityType(rec[1]),
		Channel:  Channel(rec[2]),
		SSID:     trimNul(rec[9:ScanRecordSize]),
	}
	copy(result.BSSID[:], rec[3:9])
	return result, true
}

// EncodeScanResult encodes one network record. The inverse of the
// record decoding done by Next; used by chip simulators.
func EncodeScanResult(r ScanResult) []byte {
	rec := make([]byte, ScanRecordSize)
	rec[0] = byte(r.RSSI)
	rec[1] = byte(r.Security)
	rec[2] = byte(r.Channel)
	copy(rec[3:9], r.BSSID[:])
	copy(rec[9:], r.SSID)
	return rec
}

// ParseFirmwareVersionResponse decodes the firmware version response.
//
// Payload layout (FirmwareVersionResponseSize bytes):
//
//	[MAJOR][MINOR][PATCH][RESERVED]
func ParseFirmwareVersionResponse(payload []byte) (FirmwareVersion, error) {
	if len(payload) != FirmwareVersionResponseSize {
		return FirmwareVersion{}, &FrameError{
			Reason: "firmware version response size mismatch",
			Want:   FirmwareVersionResponseSize,
			Got:    len(payload),
		}
	}

	return FirmwareVersion{Major: payload[0], Minor: payload[1], Patch: payload[2]}, nil
}

// ParseMacAddressResponse decodes the mac address response.
func ParseMacAddressResponse(payload []byte) (MacAddress, error) {
	var mac MacAddress
	if len(payload) != MacAddressResponseSize {
		return mac, &FrameError{
			Reason: "mac address response size mismatch",
			Want:   MacAddressResponseSize,
			Got:    len(payload),
		}
	}

	copy(mac[:], payload)
	return mac, nil
}

// ParseConnectionEvent decodes a connection state-changed event
// payload.
//
// Payload layout (ConStateChangedSize bytes):
//
//	[STATE][ERRCODE][RESERVED(2)]
func ParseConnectionEvent(payload []byte) (ConnectionEvent, error) {
	if len(payload) != ConStateChangedSize {
		return ConnectionEvent{}, &FrameError{
			Reason: "connection event size mismatch",
			Want:   ConStateChangedSize,
			Got:    len(payload),
		}
	}

	return ConnectionEvent{
		State:   ConnectionState(payload[0]),
		ErrCode: payload[1],
	}, nil
}

// trimNul returns buf up to the first NUL as a string.
func trimNul(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
