package protocol

// HifHeaderSize is the size of a Host Interface frame header in bytes:
// GROUP(1) + OPCODE(1) + LENGTH(2)
const HifHeaderSize = 4

// Host Interface group ids. Each group selects a functional subsystem
// on the chip; the opcode selects the operation within the group.
const (
	// GroupMain carries chip identity and housekeeping operations
	GroupMain = 0x00

	// GroupWifi carries wireless connection and scan operations
	GroupWifi = 0x01

	// GroupIP carries IP stack operations (not driven by this library)
	GroupIP = 0x02

	// GroupHif carries host-interface management operations
	GroupHif = 0x03
)

// Main group opcodes. The chip firmware reserves this group for
// identity queries; request/response opcodes are paired.
const (
	// OpReqFirmwareVersion requests the running firmware version
	OpReqFirmwareVersion = 0x01

	// OpRespFirmwareVersion carries the 4-byte version response
	OpRespFirmwareVersion = 0x02

	// OpReqMacAddress requests the working mac address
	OpReqMacAddress = 0x03

	// OpRespMacAddress carries the 6-byte mac address response
	OpRespMacAddress = 0x04
)

// Wifi group opcodes per the chip's host interface numbering.
const (
	// OpReqConnect requests a connection to a network described by a
	// 108-byte connection payload
	OpReqConnect = 40

	// OpReqDefaultConnect requests a connection to the last
	// successfully joined network cached on the chip
	OpReqDefaultConnect = 41

	// OpRespConnect acknowledges a connect request
	OpRespConnect = 42

	// OpReqDisconnect tears down the current connection
	OpReqDisconnect = 43

	// OpRespConStateChanged reports an asynchronous connection state
	// change (4-byte payload: state, error code, 2 reserved)
	OpRespConStateChanged = 44

	// OpReqSleep requests chip power-save mode
	OpReqSleep = 45

	// OpReqScan starts a network scan; the payload selects the channel
	// and an optional control segment carries a channel mask
	OpReqScan = 48

	// OpReqEnableMonitoring and OpReqDisableMonitoring toggle
	// promiscuous monitoring mode
	OpReqEnableMonitoring  = 53
	OpReqDisableMonitoring = 54

	// OpReqListenInterval sets the station listen interval
	OpReqListenInterval = 57

	// OpReqDoze requests a timed doze
	OpReqDoze = 58

	// OpRespScanResults carries the scan response: a count byte
	// followed by count fixed-size network records
	OpRespScanResults = 59
)

// Socket opcodes (IP group). Declared for completeness of the chip's
// command map; no socket layer is built on top of them here.
const (
	OpSocketBind     = 0x41
	OpSocketListen   = 0x42
	OpSocketAccept   = 0x43
	OpSocketConnect  = 0x44
	OpSocketSend     = 0x45
	OpSocketRecv     = 0x46
	OpSocketSendTo   = 0x47
	OpSocketRecvFrom = 0x48
	OpSocketClose    = 0x49
)

// Chip register map. Addresses are 24-bit bus addresses; values are
// 32-bit. Only the registers the driver touches are listed.
const (
	// RegNMIChipID holds the chip identification value
	RegNMIChipID uint32 = 0x1000

	// RegEfuse reports efuse load state; bit 31 set means loaded
	RegEfuse uint32 = 0x1014

	// RegWifiHostRcvCtrl0 is the receive status register: bit 1 is the
	// busy bit, bits 2..13 hold the pending frame size in bytes
	RegWifiHostRcvCtrl0 uint32 = 0x1070

	// RegWifiHostRcvCtrl1 holds the transfer address of a pending
	// chip-to-host frame
	RegWifiHostRcvCtrl1 uint32 = 0x1084

	// RegWifiHostRcvCtrl2 is the send status register: the host sets
	// bit 1 to request a transfer slot and the chip clears it when the
	// slot is allocated
	RegWifiHostRcvCtrl2 uint32 = 0x1078

	// RegWifiHostRcvCtrl3 receives the end-of-transaction signal for a
	// host-to-chip frame: transfer address << 2 | 2
	RegWifiHostRcvCtrl3 uint32 = 0x106c

	// RegWifiHostRcvCtrl4 holds the transfer address allocated for an
	// outgoing host-to-chip frame
	RegWifiHostRcvCtrl4 uint32 = 0x150400

	// RegNMIState carries the packed frame header word during send
	// setup, and the boot handshake values during initialization
	RegNMIState uint32 = 0x108c

	// RegNMIPinMux0 selects pin functions; bit 8 routes the interrupt
	RegNMIPinMux0 uint32 = 0x1408

	// RegNMIIntrEnable is the interrupt enable base register
	RegNMIIntrEnable uint32 = 0x1a00

	// RegNMIGp1 and RegNMIGp2 are general purpose scratch registers
	// used by the boot handshake
	RegNMIGp1 uint32 = 0x14a0
	RegNMIGp2 uint32 = 0xc0008

	// RegSpiProtocolConfig configures the bus protocol; writing
	// SpiConfigNoCrc disables CRC checking on the chip side
	RegSpiProtocolConfig uint32 = 0xe824

	// RegBootRom is the boot ROM state register
	RegBootRom uint32 = 0xc000c

	// RegWaitForHost gates firmware start on host readiness
	RegWaitForHost uint32 = 0x207bc

	// RegNMIRev holds the firmware revision used by the ATE check
	RegNMIRev    uint32 = 0x207ac
	RegNMIRevAte uint32 = 0x1048

	// RegGpioDir, RegGpioGetDir and RegGpioVal are the GPIO
	// collaborator registers: direction bits, direction readback, and
	// value bits
	RegGpioDir    uint32 = 0x20108
	RegGpioGetDir uint32 = 0x20104
	RegGpioVal    uint32 = 0x20100
)

// Status register bit layout shared by the send and receive readiness
// registers.
const (
	// StatusBusyBit is set while the chip is processing the prior
	// transaction; readiness means this bit is clear
	StatusBusyBit uint32 = 1 << 1

	// StatusSizeShift and StatusSizeMask extract the pending frame
	// size from the receive status register
	StatusSizeShift        = 2
	StatusSizeMask  uint32 = 0xfff
)

// Boot handshake values written to or polled from the chip during
// initialization.
const (
	// BootFinishBootRom is reported by the boot ROM when it is ready
	// to accept the firmware start request
	BootFinishBootRom uint32 = 0x10add09e

	// BootDriverVerInfo identifies this driver revision to the chip
	BootDriverVerInfo uint32 = 0x13521330

	// BootConfValue is the driver configuration word
	BootConfValue uint32 = 0x102

	// BootStartFirmware requests the firmware start
	BootStartFirmware uint32 = 0xef522f61

	// BootFinishInit is reported once the firmware finished starting
	BootFinishInit uint32 = 0x02532636

	// EfuseLoadedBit is set in RegEfuse once the efuse contents loaded
	EfuseLoadedBit uint32 = 1 << 31

	// SpiConfigNoCrc disables bus CRC checking when written to
	// RegSpiProtocolConfig
	SpiConfigNoCrc uint32 = 0x52

	// AteFwIsUpValue in RegNMIRev means ATE firmware is running and
	// the revision must be read from RegNMIRevAte instead
	AteFwIsUpValue uint32 = 0xd75dc1c3
)

// Connection payload layout. The connect request payload is a fixed
// 108-byte block; the offsets are part of the chip's wire contract.
const (
	// ConnectPayloadSize is the total connect payload size
	ConnectPayloadSize = 108

	// MaxSSIDLen is the SSID field width including the NUL terminator
	MaxSSIDLen = 33

	// MaxPSKLen is the passphrase field width including the NUL
	// terminator
	MaxPSKLen = 65

	// MaxUsernameLen and MaxPasswordLen bound enterprise credentials
	MaxUsernameLen = 21
	MaxPasswordLen = 41

	// MaxWepKeyLen is the WEP-104 key string width
	MaxWepKeyLen = 26

	// Field offsets within the connect payload
	connOffCredentials = 0
	connOffSecurity    = 65
	connOffChannel     = 66
	connOffSaveCreds   = 67
	connOffSSID        = 70
)

// Scan wire sizes.
const (
	// ScanPayloadSize is the scan request payload: channel + reserved
	ScanPayloadSize = 2

	// ScanMaskSize is the optional channel-mask control segment size
	ScanMaskSize = 2

	// ScanRecordSize is one network record in the scan response:
	// RSSI(1) + SEC(1) + CH(1) + BSSID(6) + SSID(33)
	ScanRecordSize = 42
)

// Fixed response payload sizes.
const (
	// FirmwareVersionResponseSize is the firmware version response:
	// MAJOR(1) + MINOR(1) + PATCH(1) + RESERVED(1)
	FirmwareVersionResponseSize = 4

	// MacAddressResponseSize is the mac address response size
	MacAddressResponseSize = 6

	// ConStateChangedSize is the connection state event payload:
	// STATE(1) + ERRCODE(1) + RESERVED(2)
	ConStateChangedSize = 4
)
