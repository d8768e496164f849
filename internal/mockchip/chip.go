// Package mockchip provides a register-level ATWINC1500 chip
// simulator for driver tests. It implements bus.Transport by decoding
// the bus command packets (CRC guards off) against an in-memory
// register file and byte-addressable memory, recording every operation
// for assertions.
package mockchip

import (
	"encoding/binary"
	"fmt"

	"github.com/moffa90/go-atwinc1500/bus"
	"github.com/moffa90/go-atwinc1500/protocol"
)

// Op records one decoded bus operation.
type Op struct {
	// Cmd is the bus command byte
	Cmd byte

	// Addr is the target address
	Addr uint32

	// Value is the register value read or written (register commands)
	Value uint32

	// Data is the burst payload (burst commands)
	Data []byte
}

// Chip simulates the chip side of the bus protocol.
type Chip struct {
	regs   map[uint32]uint32
	queued map[uint32][]uint32
	mem    map[uint32]byte

	// Ops is the decoded operation log, in issue order
	Ops []Op

	calls   int
	failAt  int
	failErr error
}

// New returns an empty chip: all registers and memory read as zero.
func New() *Chip {
	return &Chip{
		regs:   make(map[uint32]uint32),
		queued: make(map[uint32][]uint32),
		mem:    make(map[uint32]byte),
	}
}

// SetRegister sets the steady value a register reads as.
func (c *Chip) SetRegister(addr, value uint32) {
	c.regs[addr] = value
}

// QueueRegister queues values a register returns on successive reads,
// ahead of its steady value. Useful for busy-then-ready sequences.
func (c *Chip) QueueRegister(addr uint32, values ...uint32) {
	c.queued[addr] = append(c.queued[addr], values...)
}

// Register returns the current steady value of a register.
func (c *Chip) Register(addr uint32) uint32 {
	return c.regs[addr]
}

// LoadMemory places data at addr in chip memory.
func (c *Chip) LoadMemory(addr uint32, data []byte) {
	for i, b := range data {
		c.mem[addr+uint32(i)] = b
	}
}

// Memory returns n bytes of chip memory starting at addr.
func (c *Chip) Memory(addr uint32, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = c.mem[addr+uint32(i)]
	}
	return out
}

// FailOnCall makes the n-th Transfer (1-based) and every later one
// fail with err, simulating a transport fault mid-transaction.
func (c *Chip) FailOnCall(n int, err error) {
	c.failAt = n
	c.failErr = err
}

// Calls returns the number of Transfer invocations seen so far.
func (c *Chip) Calls() int {
	return c.calls
}

// WritesTo returns the register values written to addr, in order.
func (c *Chip) WritesTo(addr uint32) []uint32 {
	var out []uint32
	for _, op := range c.Ops {
		if op.Cmd == bus.CmdSingleWrite && op.Addr == addr {
			out = append(out, op.Value)
		}
	}
	return out
}

// BurstWrites returns the burst write operations, in order.
func (c *Chip) BurstWrites() []Op {
	var out []Op
	for _, op := range c.Ops {
		if op.Cmd == bus.CmdDmaExtWrite {
			out = append(out, op)
		}
	}
	return out
}

// StageReceiveFrame loads a chip-to-host frame at addr and arms the
// receive status and address registers. busyPolls is the number of
// busy answers the status register gives before reporting the frame;
// declaredSize overrides the reported transfer size when positive.
func (c *Chip) StageReceiveFrame(addr uint32, busyPolls int, frame []byte, declaredSize int) {
	size := len(frame)
	if declaredSize > 0 {
		size = declaredSize
	}

	for i := 0; i < busyPolls; i++ {
		c.QueueRegister(protocol.RegWifiHostRcvCtrl0, protocol.StatusBusyBit)
	}
	c.SetRegister(protocol.RegWifiHostRcvCtrl0, uint32(size)<<protocol.StatusSizeShift)
	c.SetRegister(protocol.RegWifiHostRcvCtrl1, addr)
	c.LoadMemory(addr, frame)
}

// Transfer implements bus.Transport against the simulated chip.
func (c *Chip) Transfer(tx, rx []byte) error {
	c.calls++
	if c.failAt > 0 && c.calls >= c.failAt {
		return c.failErr
	}
	if len(rx) != len(tx) {
		return fmt.Errorf("mockchip: buffer length mismatch: tx %d, rx %d", len(tx), len(rx))
	}
	if len(tx) < 4 {
		return fmt.Errorf("mockchip: command packet too short: %d bytes", len(tx))
	}

	cmd := tx[0]
	addr := uint32(tx[1])<<16 | uint32(tx[2])<<8 | uint32(tx[3])

	switch cmd {
	case bus.CmdSingleRead:
		value := c.readRegister(addr)
		rx[4] = cmd
		rx[5] = bus.StateNoError
		rx[6] = 0xf3
		binary.LittleEndian.PutUint32(rx[7:11], value)
		c.Ops = append(c.Ops, Op{Cmd: cmd, Addr: addr, Value: value})

	case bus.CmdSingleWrite:
		value := binary.BigEndian.Uint32(tx[4:8])
		c.regs[addr] = value
		// A send transfer request is serviced immediately: the chip
		// clears the busy bit so the next poll sees the slot ready.
		// Queue busy values on the register to simulate a slow chip.
		if addr == protocol.RegWifiHostRcvCtrl2 && value&protocol.StatusBusyBit != 0 {
			c.regs[addr] = value &^ protocol.StatusBusyBit
		}
		rx[8] = cmd
		rx[9] = bus.StateNoError
		c.Ops = append(c.Ops, Op{Cmd: cmd, Addr: addr, Value: value})

	case bus.CmdDmaExtRead:
		count := int(tx[4])<<16 | int(tx[5])<<8 | int(tx[6])
		rx[7] = cmd
		rx[8] = bus.StateNoError
		rx[9] = 0xf3
		copy(rx[10:10+count], c.Memory(addr, count))
		c.Ops = append(c.Ops, Op{Cmd: cmd, Addr: addr, Data: c.Memory(addr, count)})

	case bus.CmdDmaExtWrite:
		count := int(tx[4])<<16 | int(tx[5])<<8 | int(tx[6])
		data := make([]byte, count)
		copy(data, tx[9:9+count])
		c.LoadMemory(addr, data)
		rx[7] = cmd
		rx[8] = bus.StateNoError
		c.Ops = append(c.Ops, Op{Cmd: cmd, Addr: addr, Data: data})

	default:
		return fmt.Errorf("mockchip: unsupported command 0x%02X", cmd)
	}

	return nil
}

// readRegister pops a queued value if one is pending, falling back to
// the steady value.
func (c *Chip) readRegister(addr uint32) uint32 {
	if q := c.queued[addr]; len(q) > 0 {
		c.queued[addr] = q[1:]
		return q[0]
	}
	return c.regs[addr]
}

// Pin is a recording OutputPin for chip select, reset and wake lines.
type Pin struct {
	// High is the current pin level
	High bool

	// Transitions counts Set calls
	Transitions int

	// Err, when set, is returned by Set
	Err error
}

// Set implements bus.OutputPin.
func (p *Pin) Set(high bool) error {
	if p.Err != nil {
		return p.Err
	}
	p.High = high
	p.Transitions++
	return nil
}
