package hif

import (
	"context"

	"github.com/moffa90/go-atwinc1500/bus"
	"github.com/moffa90/go-atwinc1500/protocol"
)

// gateState is the readiness gate's polling state.
type gateState int

const (
	gatePolling gateState = iota
	gateReady
	gateTimedOut
)

// readyGate busy-polls a status register until the chip clears the
// busy bit or the attempt budget runs out. Attempts are unconditional
// polls with no backoff: the chip's response latency is bounded and
// small, and the attempt ceiling is a safety bound, not a tuned
// deadline.
type readyGate struct {
	bus       *bus.Bus
	register  uint32
	remaining int
	value     uint32
}

// step performs one poll attempt and reports the resulting state. The
// register value read on the final attempt is kept in g.value.
func (g *readyGate) step() (gateState, error) {
	if g.remaining <= 0 {
		return gateTimedOut, nil
	}
	g.remaining--

	v, err := g.bus.ReadRegister(g.register)
	if err != nil {
		return gatePolling, err
	}
	g.value = v

	if v&protocol.StatusBusyBit == 0 {
		return gateReady, nil
	}
	return gatePolling, nil
}

// waitReady polls register until readiness, returning the final status
// value. Exhausting attempts yields *DeviceNotReadyError. ctx is
// consulted before each poll, giving callers a wall-clock bound on top
// of the attempt ceiling.
func waitReady(ctx context.Context, b *bus.Bus, register uint32, attempts int) (uint32, error) {
	g := readyGate{bus: b, register: register, remaining: attempts}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		state, err := g.step()
		if err != nil {
			return 0, err
		}

		switch state {
		case gateReady:
			return g.value, nil
		case gateTimedOut:
			return 0, &DeviceNotReadyError{Register: register, Attempts: attempts}
		}
	}
}
