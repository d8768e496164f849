package hif

import (
	"context"

	"github.com/moffa90/go-atwinc1500/bus"
	"github.com/moffa90/go-atwinc1500/protocol"
)

// DefaultReadyAttempts is the default readiness poll ceiling. The
// value is a conservative safety bound: under normal operation the
// chip answers within tens of polls.
const DefaultReadyAttempts = 100

// Engine sequences the Host Interface transaction protocol: readiness
// gating, transfer address negotiation, and frame transfer, as one
// atomic logical transaction per send or receive.
//
// The Engine exclusively owns the bus for the duration of a
// transaction; no other component may interleave bus operations inside
// one. A failed step aborts the transaction and surfaces the first
// failure. There is no partial retry; the caller restarts the whole
// operation if it wants another attempt.
type Engine struct {
	bus           *bus.Bus
	readyAttempts int
}

// New returns an Engine over the given bus. readyAttempts bounds the
// readiness poll; values below 1 select DefaultReadyAttempts.
func New(b *bus.Bus, readyAttempts int) *Engine {
	if b == nil {
		panic("bus cannot be nil")
	}
	if readyAttempts < 1 {
		readyAttempts = DefaultReadyAttempts
	}

	return &Engine{bus: b, readyAttempts: readyAttempts}
}

// ReadyAttempts returns the configured readiness poll ceiling.
func (e *Engine) ReadyAttempts() int {
	return e.readyAttempts
}

// Send transfers one frame to the chip:
//
//  1. Arm the chip: write the packed header word to the state
//     register, latch the transfer request.
//  2. Wait for the chip to allocate a transfer slot.
//  3. Read the negotiated transfer address (valid for this write
//     sequence only).
//  4. Burst-write the header, then the payload and control segments
//     when present. Empty segments are never written: the chip reads
//     a shorter burst as "no body", so a zero-length write would be
//     misread as a malformed frame.
//  5. Signal end-of-transaction.
func (e *Engine) Send(ctx context.Context, groupID, opcode byte, body protocol.Body) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	hdr := protocol.NewHeader(groupID, opcode, uint16(len(body.Payload)))

	word := uint32(hdr.GroupID) | uint32(hdr.Opcode)<<8 | uint32(hdr.Length)<<16
	if err := e.bus.WriteRegister(protocol.RegNMIState, word); err != nil {
		return err
	}
	if err := e.bus.WriteRegister(protocol.RegWifiHostRcvCtrl2, protocol.StatusBusyBit); err != nil {
		return err
	}

	if _, err := waitReady(ctx, e.bus, protocol.RegWifiHostRcvCtrl2, e.readyAttempts); err != nil {
		return err
	}

	addr, err := e.bus.ReadRegister(protocol.RegWifiHostRcvCtrl4)
	if err != nil {
		return err
	}

	if err := e.bus.WriteData(addr, hdr.Bytes()); err != nil {
		return err
	}
	if len(body.Payload) > 0 {
		if err := e.bus.WriteData(addr+protocol.HifHeaderSize, body.Payload); err != nil {
			return err
		}
	}
	if len(body.Control) > 0 {
		off := uint32(protocol.HifHeaderSize + len(body.Payload))
		if err := e.bus.WriteData(addr+off, body.Control); err != nil {
			return err
		}
	}

	return e.bus.WriteRegister(protocol.RegWifiHostRcvCtrl3, addr<<2|protocol.StatusBusyBit)
}

// Receive transfers one pending frame from the chip, mirroring Send:
// readiness gate, transfer address read, burst reads of header and
// declared-length payload, receive-done signal.
//
// The readiness status value carries the pending transfer size; a
// header declaring more payload than the transfer holds yields a
// *protocol.FrameError before any body bytes are read.
func (e *Engine) Receive(ctx context.Context) (protocol.Header, []byte, error) {
	status, err := waitReady(ctx, e.bus, protocol.RegWifiHostRcvCtrl0, e.readyAttempts)
	if err != nil {
		return protocol.Header{}, nil, err
	}

	size := int(status >> protocol.StatusSizeShift & protocol.StatusSizeMask)
	if size < protocol.HifHeaderSize {
		return protocol.Header{}, nil, &protocol.FrameError{
			Reason: "pending transfer smaller than a frame header",
			Want:   protocol.HifHeaderSize,
			Got:    size,
		}
	}

	addr, err := e.bus.ReadRegister(protocol.RegWifiHostRcvCtrl1)
	if err != nil {
		return protocol.Header{}, nil, err
	}

	hdrBytes, err := e.bus.ReadData(addr, protocol.HifHeaderSize)
	if err != nil {
		return protocol.Header{}, nil, err
	}
	hdr, err := protocol.ParseHeader(hdrBytes)
	if err != nil {
		return protocol.Header{}, nil, err
	}

	if protocol.HifHeaderSize+int(hdr.Length) > size {
		return protocol.Header{}, nil, &protocol.FrameError{
			Reason: "declared payload exceeds pending transfer",
			Want:   int(hdr.Length),
			Got:    size - protocol.HifHeaderSize,
		}
	}

	var payload []byte
	if hdr.Length > 0 {
		payload, err = e.bus.ReadData(addr+protocol.HifHeaderSize, int(hdr.Length))
		if err != nil {
			return protocol.Header{}, nil, err
		}
	}

	if err := e.bus.WriteRegister(protocol.RegWifiHostRcvCtrl0, protocol.StatusBusyBit); err != nil {
		return protocol.Header{}, nil, err
	}

	return hdr, payload, nil
}

// Request sends a frame and returns the payload of the matching
// response. A response whose group id or opcode differs from the
// expected pair yields *protocol.UnexpectedResponseError: the chip and
// host have desynchronized and the caller should consider a reset.
func (e *Engine) Request(ctx context.Context, groupID, opcode, respOpcode byte, body protocol.Body) ([]byte, error) {
	if err := e.Send(ctx, groupID, opcode, body); err != nil {
		return nil, err
	}

	hdr, payload, err := e.Receive(ctx)
	if err != nil {
		return nil, err
	}
	if hdr.GroupID != groupID || hdr.Opcode != respOpcode {
		return nil, &protocol.UnexpectedResponseError{
			WantGroup:  groupID,
			WantOpcode: respOpcode,
			GotGroup:   hdr.GroupID,
			GotOpcode:  hdr.Opcode,
		}
	}

	return payload, nil
}
