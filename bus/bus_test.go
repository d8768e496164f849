package bus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/moffa90/go-atwinc1500/protocol"
)

// scriptTransport answers each Transfer with a canned response and
// records what was transmitted.
type scriptTransport struct {
	responses [][]byte
	idx       int
	err       error
	txLog     [][]byte
}

func (m *scriptTransport) Transfer(tx, rx []byte) error {
	sent := make([]byte, len(tx))
	copy(sent, tx)
	m.txLog = append(m.txLog, sent)

	if m.err != nil {
		return m.err
	}
	if m.idx < len(m.responses) {
		copy(rx, m.responses[m.idx])
		m.idx++
	}
	return nil
}

// mockPin records chip select transitions.
type mockPin struct {
	high bool
	log  []bool
	err  error
}

func (p *mockPin) Set(high bool) error {
	if p.err != nil {
		return p.err
	}
	p.high = high
	p.log = append(p.log, high)
	return nil
}

// singleReadResponse builds the chip's answer to a register read:
// echo, state and marker after the n command bytes, then the value
// little-endian.
func singleReadResponse(n int, state, marker byte, value uint32) []byte {
	rx := make([]byte, n+3+4+1)
	rx[n] = CmdSingleRead
	rx[n+1] = state
	rx[n+2] = marker
	binary.LittleEndian.PutUint32(rx[n+3:n+7], value)
	return rx
}

func TestReadRegister(t *testing.T) {
	spi := &scriptTransport{
		responses: [][]byte{singleReadResponse(4, StateNoError, 0xf3, 0x10add09e)},
	}
	b := New(spi, &mockPin{}, false)

	value, err := b.ReadRegister(0xc000c)
	if err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}
	if value != 0x10add09e {
		t.Errorf("value = 0x%08X, want 0x10ADD09E", value)
	}

	wantTx := []byte{CmdSingleRead, 0x0c, 0x00, 0x0c, 0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(spi.txLog[0], wantTx) {
		t.Errorf("tx = % X, want % X", spi.txLog[0], wantTx)
	}
}

func TestReadRegisterWithCrc(t *testing.T) {
	spi := &scriptTransport{
		responses: [][]byte{singleReadResponse(5, StateNoError, 0xf3, 0x1002a0)},
	}
	b := New(spi, &mockPin{}, true)

	value, err := b.ReadRegister(0x1000)
	if err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}
	if value != 0x1002a0 {
		t.Errorf("value = 0x%08X, want 0x001002A0", value)
	}

	tx := spi.txLog[0]
	if len(tx) != 13 {
		t.Fatalf("tx length = %d, want 13", len(tx))
	}
	wantGuard := protocol.Crc7(tx[:4])<<1 | 1
	if tx[4] != wantGuard {
		t.Errorf("crc guard byte = 0x%02X, want 0x%02X", tx[4], wantGuard)
	}
}

func TestReadRegisterResponseErrors(t *testing.T) {
	tests := []struct {
		name     string
		response []byte
	}{
		{name: "echo mismatch", response: singleReadResponse(4, StateNoError, 0xf3, 0)},
		{name: "error state", response: singleReadResponse(4, StateUnexpectedData, 0xf3, 0)},
		{name: "bad data start marker", response: singleReadResponse(4, StateNoError, 0x00, 0)},
	}
	tests[0].response[4] = 0x00 // clobber the echo

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spi := &scriptTransport{responses: [][]byte{tt.response}}
			b := New(spi, &mockPin{}, false)

			_, err := b.ReadRegister(0x1000)

			var re *ResponseError
			if !errors.As(err, &re) {
				t.Fatalf("ReadRegister() error = %v, want *ResponseError", err)
			}
		})
	}
}

func TestReadRegisterTransportError(t *testing.T) {
	cause := errors.New("wire fault")
	spi := &scriptTransport{err: cause}
	pin := &mockPin{}
	b := New(spi, pin, false)

	_, err := b.ReadRegister(0x1000)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("ReadRegister() error = %v, want *TransportError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("TransportError does not wrap the transport failure")
	}

	// The select line must be released even on failure.
	if !pin.high {
		t.Error("chip select still asserted after a failed transaction")
	}
}

func TestReadRegisterAddressOutOfRange(t *testing.T) {
	b := New(&scriptTransport{}, &mockPin{}, false)

	if _, err := b.ReadRegister(0x1000000); err == nil {
		t.Error("24-bit address overflow accepted, want error")
	}
}

func TestWriteRegister(t *testing.T) {
	n := 8
	rx := make([]byte, n+2)
	rx[n] = CmdSingleWrite
	rx[n+1] = StateNoError

	spi := &scriptTransport{responses: [][]byte{rx}}
	b := New(spi, &mockPin{}, false)

	if err := b.WriteRegister(0x108c, 0x13521330); err != nil {
		t.Fatalf("WriteRegister() error = %v", err)
	}

	// The value is big-endian on the wire, unlike register reads.
	wantTx := []byte{CmdSingleWrite, 0x00, 0x10, 0x8c, 0x13, 0x52, 0x13, 0x30, 0, 0}
	if !bytes.Equal(spi.txLog[0], wantTx) {
		t.Errorf("tx = % X, want % X", spi.txLog[0], wantTx)
	}
}

func TestReadData(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	n := 7
	rx := make([]byte, n+3+len(data))
	rx[n] = CmdDmaExtRead
	rx[n+1] = StateNoError
	rx[n+2] = 0xf1
	copy(rx[n+3:], data)

	spi := &scriptTransport{responses: [][]byte{rx}}
	b := New(spi, &mockPin{}, false)

	got, err := b.ReadData(0x2000, len(data))
	if err != nil {
		t.Fatalf("ReadData() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("data = % X, want % X", got, data)
	}

	wantTx := make([]byte, n+3+len(data))
	copy(wantTx, []byte{CmdDmaExtRead, 0x00, 0x20, 0x00, 0x00, 0x00, 0x04})
	if !bytes.Equal(spi.txLog[0], wantTx) {
		t.Errorf("tx = % X, want % X", spi.txLog[0], wantTx)
	}
}

func TestReadDataCrcMismatch(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	n := 8 // command packet carries the crc7 guard
	rx := make([]byte, n+3+len(data)+2)
	rx[n] = CmdDmaExtRead
	rx[n+1] = StateNoError
	rx[n+2] = 0xf1
	copy(rx[n+3:], data)
	binary.BigEndian.PutUint16(rx[n+3+len(data):], protocol.Crc16(data)^0x0001)

	spi := &scriptTransport{responses: [][]byte{rx}}
	b := New(spi, &mockPin{}, true)

	_, err := b.ReadData(0x2000, len(data))

	var fe *protocol.FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadData() error = %v, want *protocol.FrameError", err)
	}
}

func TestReadDataCrcValid(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n := 8
	rx := make([]byte, n+3+len(data)+2)
	rx[n] = CmdDmaExtRead
	rx[n+1] = StateNoError
	rx[n+2] = 0xf1
	copy(rx[n+3:], data)
	binary.BigEndian.PutUint16(rx[n+3+len(data):], protocol.Crc16(data))

	spi := &scriptTransport{responses: [][]byte{rx}}
	b := New(spi, &mockPin{}, true)

	got, err := b.ReadData(0x2000, len(data))
	if err != nil {
		t.Fatalf("ReadData() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("data = % X, want % X", got, data)
	}
}

func TestWriteData(t *testing.T) {
	data := []byte{0xca, 0xfe}
	n := 7
	rx := make([]byte, n+2+len(data))
	rx[n] = CmdDmaExtWrite
	rx[n+1] = StateNoError

	spi := &scriptTransport{responses: [][]byte{rx}}
	b := New(spi, &mockPin{}, false)

	if err := b.WriteData(0x2004, data); err != nil {
		t.Fatalf("WriteData() error = %v", err)
	}

	wantTx := []byte{CmdDmaExtWrite, 0x00, 0x20, 0x04, 0x00, 0x00, 0x02, 0, 0, 0xca, 0xfe}
	if !bytes.Equal(spi.txLog[0], wantTx) {
		t.Errorf("tx = % X, want % X", spi.txLog[0], wantTx)
	}
}

func TestWriteDataWithCrc(t *testing.T) {
	data := []byte{0xca, 0xfe}
	n := 8
	rx := make([]byte, n+2+len(data)+2)
	rx[n] = CmdDmaExtWrite
	rx[n+1] = StateNoError

	spi := &scriptTransport{responses: [][]byte{rx}}
	b := New(spi, &mockPin{}, true)

	if err := b.WriteData(0x2004, data); err != nil {
		t.Fatalf("WriteData() error = %v", err)
	}

	tx := spi.txLog[0]
	want := protocol.Crc16(data)
	if got := binary.BigEndian.Uint16(tx[len(tx)-2:]); got != want {
		t.Errorf("trailing data crc = 0x%04X, want 0x%04X", got, want)
	}
}

func TestBurstLengthValidation(t *testing.T) {
	b := New(&scriptTransport{}, &mockPin{}, false)

	if _, err := b.ReadData(0x2000, 0); err == nil {
		t.Error("zero-length burst read accepted, want error")
	}
	if err := b.WriteData(0x2000, nil); err == nil {
		t.Error("empty burst write accepted, want error")
	}
	if err := b.WriteData(0x2000, make([]byte, 1<<24)); err == nil {
		t.Error("oversized burst write accepted, want error")
	}
}

func TestChipSelectScopesTransaction(t *testing.T) {
	spi := &scriptTransport{
		responses: [][]byte{singleReadResponse(4, StateNoError, 0xf3, 1)},
	}
	pin := &mockPin{high: true}
	b := New(spi, pin, false)

	if _, err := b.ReadRegister(0x1000); err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}

	want := []bool{false, true} // assert, then release
	if len(pin.log) != 2 || pin.log[0] != want[0] || pin.log[1] != want[1] {
		t.Errorf("chip select transitions = %v, want %v", pin.log, want)
	}
}

func TestInitChipSelect(t *testing.T) {
	pin := &mockPin{}
	b := New(&scriptTransport{}, pin, false)

	if err := b.InitChipSelect(); err != nil {
		t.Fatalf("InitChipSelect() error = %v", err)
	}
	if !pin.high {
		t.Error("chip select not deasserted")
	}
}
