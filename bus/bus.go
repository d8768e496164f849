package bus

import (
	"encoding/binary"
	"fmt"

	"github.com/moffa90/go-atwinc1500/protocol"
)

// Bus command codes. The high nibble 0xC marks the command start; the
// low nibble selects the command type.
const (
	// CmdDmaWrite / CmdDmaRead are the short-count burst commands
	CmdDmaWrite = 0xc1
	CmdDmaRead  = 0xc2

	// CmdInternalWrite / CmdInternalRead address clockless registers
	CmdInternalWrite = 0xc3
	CmdInternalRead  = 0xc4

	// CmdTerminate aborts an in-flight command
	CmdTerminate = 0xc5

	// CmdRepeat re-issues the previous command
	CmdRepeat = 0xc6

	// CmdDmaExtWrite / CmdDmaExtRead are the burst data commands used
	// for frame transfer (3-byte count)
	CmdDmaExtWrite = 0xc7
	CmdDmaExtRead  = 0xc8

	// CmdSingleWrite / CmdSingleRead access one 32-bit register
	CmdSingleWrite = 0xc9
	CmdSingleRead  = 0xca

	// CmdReset soft-resets the bus protocol engine
	CmdReset = 0xcf
)

// Response section layout. Every command is answered, within the same
// chip-select window, by a command echo and a state byte; read-class
// commands additionally return a data-start marker followed by the
// data bytes.
const (
	// dataStartMask / dataStartValue validate the data-start marker:
	// its high nibble is always 0xF
	dataStartMask  = 0xf0
	dataStartValue = 0xf0

	// registerSize is the width of a chip register in bytes
	registerSize = 4

	// addrSize and countSize are the command packet field widths
	addrSize  = 3
	countSize = 3

	// maxAddress bounds the 24-bit address field
	maxAddress = 1<<(addrSize*8) - 1

	// maxBurstLen bounds the 24-bit count field
	maxBurstLen = 1<<(countSize*8) - 1
)

// Transport is the external physical bus: one full-duplex byte
// shuttle. Both buffers must be the same length; rx may capture bytes
// clocked in while tx is shifted out.
type Transport interface {
	Transfer(tx, rx []byte) error
}

// OutputPin drives a single digital output. The chip select pin is
// active low.
type OutputPin interface {
	Set(high bool) error
}

// Bus issues the four primitive bus transactions against a Transport.
// Each operation is one complete chip-select-scoped transaction; the
// select line is released on every exit path, including errors.
//
// Bus owns no protocol semantics beyond byte shuttling and framing:
// transport failures are forwarded untouched and nothing is retried.
type Bus struct {
	spi Transport
	cs  OutputPin
	crc bool
}

// New returns a Bus over the given transport and chip select pin.
// crc enables the CRC7/CRC16 packet guards; it must match the chip's
// bus protocol configuration.
func New(spi Transport, cs OutputPin, crc bool) *Bus {
	if spi == nil {
		panic("transport cannot be nil")
	}
	if cs == nil {
		panic("chip select pin cannot be nil")
	}

	return &Bus{spi: spi, cs: cs, crc: crc}
}

// InitChipSelect deasserts the select line, leaving the bus idle.
func (b *Bus) InitChipSelect() error {
	return b.cs.Set(true)
}

// SetCrc switches the CRC guards on or off. The chip side must be
// reconfigured to match (RegSpiProtocolConfig).
func (b *Bus) SetCrc(enabled bool) {
	b.crc = enabled
}

// CrcEnabled reports whether packet CRC guards are active.
func (b *Bus) CrcEnabled() bool {
	return b.crc
}

// ReadRegister reads one 32-bit register.
//
// Transaction layout (n = command packet length):
//
//	tx: [CMD][A23..16][A15..8][A7..0]([CRC7]) + clock bytes
//	rx: n bytes, then [ECHO][STATE][MARKER][V0][V1][V2][V3][PAD]
//
// The value is little-endian on the wire.
func (b *Bus) ReadRegister(addr uint32) (uint32, error) {
	pkt, err := b.command(CmdSingleRead, addr, nil)
	if err != nil {
		return 0, err
	}

	n := len(pkt)
	tx := make([]byte, n+3+registerSize+1)
	copy(tx, pkt)
	rx := make([]byte, len(tx))

	if err := b.transaction(tx, rx); err != nil {
		return 0, &TransportError{Cmd: CmdSingleRead, Addr: addr, Err: err}
	}
	if err := b.checkResponse(CmdSingleRead, addr, rx[n], rx[n+1]); err != nil {
		return 0, err
	}
	if rx[n+2]&dataStartMask != dataStartValue {
		return 0, &ResponseError{Cmd: CmdSingleRead, Addr: addr, Reason: fmt.Sprintf("bad data start marker 0x%02X", rx[n+2])}
	}

	return binary.LittleEndian.Uint32(rx[n+3 : n+3+registerSize]), nil
}

// WriteRegister writes one 32-bit register. The value is big-endian on
// the wire, per the chip's register-write convention.
func (b *Bus) WriteRegister(addr, value uint32) error {
	var data [registerSize]byte
	binary.BigEndian.PutUint32(data[:], value)

	pkt, err := b.command(CmdSingleWrite, addr, data[:])
	if err != nil {
		return err
	}

	n := len(pkt)
	tx := make([]byte, n+2)
	copy(tx, pkt)
	rx := make([]byte, len(tx))

	if err := b.transaction(tx, rx); err != nil {
		return &TransportError{Cmd: CmdSingleWrite, Addr: addr, Err: err}
	}
	return b.checkResponse(CmdSingleWrite, addr, rx[n], rx[n+1])
}

// ReadData issues a burst read of count bytes starting at addr.
func (b *Bus) ReadData(addr uint32, count int) ([]byte, error) {
	if count <= 0 || count > maxBurstLen {
		return nil, fmt.Errorf("burst read length %d out of range 1..%d", count, maxBurstLen)
	}

	pkt, err := b.command(CmdDmaExtRead, addr, burstCount(count))
	if err != nil {
		return nil, err
	}

	n := len(pkt)
	total := n + 3 + count
	if b.crc {
		total += 2
	}
	tx := make([]byte, total)
	copy(tx, pkt)
	rx := make([]byte, total)

	if err := b.transaction(tx, rx); err != nil {
		return nil, &TransportError{Cmd: CmdDmaExtRead, Addr: addr, Err: err}
	}
	if err := b.checkResponse(CmdDmaExtRead, addr, rx[n], rx[n+1]); err != nil {
		return nil, err
	}
	if rx[n+2]&dataStartMask != dataStartValue {
		return nil, &ResponseError{Cmd: CmdDmaExtRead, Addr: addr, Reason: fmt.Sprintf("bad data start marker 0x%02X", rx[n+2])}
	}

	data := make([]byte, count)
	copy(data, rx[n+3:n+3+count])

	if b.crc {
		want := binary.BigEndian.Uint16(rx[n+3+count : n+5+count])
		if got := protocol.Crc16(data); got != want {
			return nil, &protocol.FrameError{Reason: fmt.Sprintf("burst data crc mismatch: got 0x%04X, want 0x%04X", got, want)}
		}
	}

	return data, nil
}

// WriteData issues a burst write of data starting at addr. The burst
// follows the command response within the same chip-select window.
func (b *Bus) WriteData(addr uint32, data []byte) error {
	if len(data) == 0 || len(data) > maxBurstLen {
		return fmt.Errorf("burst write length %d out of range 1..%d", len(data), maxBurstLen)
	}

	pkt, err := b.command(CmdDmaExtWrite, addr, burstCount(len(data)))
	if err != nil {
		return err
	}

	n := len(pkt)
	total := n + 2 + len(data)
	if b.crc {
		total += 2
	}
	tx := make([]byte, total)
	copy(tx, pkt)
	copy(tx[n+2:], data)
	if b.crc {
		binary.BigEndian.PutUint16(tx[n+2+len(data):], protocol.Crc16(data))
	}
	rx := make([]byte, total)

	if err := b.transaction(tx, rx); err != nil {
		return &TransportError{Cmd: CmdDmaExtWrite, Addr: addr, Err: err}
	}
	return b.checkResponse(CmdDmaExtWrite, addr, rx[n], rx[n+1])
}

// command assembles a command packet: command byte, 24-bit address,
// optional trailing field (register value or burst count), and the
// CRC7 guard when enabled.
func (b *Bus) command(cmd byte, addr uint32, tail []byte) ([]byte, error) {
	if addr > maxAddress {
		return nil, fmt.Errorf("address 0x%X exceeds the %d-bit address space", addr, addrSize*8)
	}

	pkt := make([]byte, 0, 1+addrSize+len(tail)+1)
	pkt = append(pkt, cmd)
	pkt = append(pkt, byte(addr>>16), byte(addr>>8), byte(addr))
	pkt = append(pkt, tail...)
	if b.crc {
		pkt = append(pkt, protocol.Crc7(pkt)<<1|1)
	}
	return pkt, nil
}

// transaction runs one chip-select-scoped transfer. The select line is
// released on every exit path.
func (b *Bus) transaction(tx, rx []byte) (err error) {
	if cerr := b.cs.Set(false); cerr != nil {
		return fmt.Errorf("assert chip select: %w", cerr)
	}
	defer func() {
		if cerr := b.cs.Set(true); cerr != nil && err == nil {
			err = fmt.Errorf("release chip select: %w", cerr)
		}
	}()

	return b.spi.Transfer(tx, rx)
}

// checkResponse validates the command echo and state byte the chip
// returns for every command.
func (b *Bus) checkResponse(cmd byte, addr uint32, echo, state byte) error {
	if echo != cmd {
		return &ResponseError{Cmd: cmd, Addr: addr, Reason: fmt.Sprintf("command echo 0x%02X does not match", echo)}
	}
	if state != StateNoError {
		return &ResponseError{Cmd: cmd, Addr: addr, Status: state}
	}
	return nil
}

func burstCount(count int) []byte {
	return []byte{byte(count >> 16), byte(count >> 8), byte(count)}
}
