package hif

import (
	"context"
	"errors"
	"testing"

	"github.com/moffa90/go-atwinc1500/bus"
	"github.com/moffa90/go-atwinc1500/internal/mockchip"
	"github.com/moffa90/go-atwinc1500/protocol"
)

func newGateFixture() (*mockchip.Chip, *bus.Bus) {
	chip := mockchip.New()
	return chip, bus.New(chip, &mockchip.Pin{}, false)
}

func TestWaitReadyImmediate(t *testing.T) {
	chip, b := newGateFixture()
	chip.SetRegister(protocol.RegWifiHostRcvCtrl0, 0x40) // ready, size 16

	value, err := waitReady(context.Background(), b, protocol.RegWifiHostRcvCtrl0, 5)
	if err != nil {
		t.Fatalf("waitReady() error = %v", err)
	}
	if value != 0x40 {
		t.Errorf("value = 0x%X, want 0x40", value)
	}
	if chip.Calls() != 1 {
		t.Errorf("polls = %d, want 1", chip.Calls())
	}
}

func TestWaitReadyOnFinalAttempt(t *testing.T) {
	const attempts = 5

	chip, b := newGateFixture()
	for i := 0; i < attempts-1; i++ {
		chip.QueueRegister(protocol.RegWifiHostRcvCtrl0, protocol.StatusBusyBit)
	}
	chip.SetRegister(protocol.RegWifiHostRcvCtrl0, 0x40)

	value, err := waitReady(context.Background(), b, protocol.RegWifiHostRcvCtrl0, attempts)
	if err != nil {
		t.Fatalf("waitReady() error = %v", err)
	}
	if value != 0x40 {
		t.Errorf("value = 0x%X, want 0x40", value)
	}
	if chip.Calls() != attempts {
		t.Errorf("polls = %d, want %d", chip.Calls(), attempts)
	}
}

func TestWaitReadyExhausted(t *testing.T) {
	const attempts = 5

	chip, b := newGateFixture()
	chip.SetRegister(protocol.RegWifiHostRcvCtrl0, protocol.StatusBusyBit)

	_, err := waitReady(context.Background(), b, protocol.RegWifiHostRcvCtrl0, attempts)

	var nre *DeviceNotReadyError
	if !errors.As(err, &nre) {
		t.Fatalf("waitReady() error = %v, want *DeviceNotReadyError", err)
	}
	if nre.Register != protocol.RegWifiHostRcvCtrl0 || nre.Attempts != attempts {
		t.Errorf("DeviceNotReadyError = %+v", nre)
	}

	// The poll budget is a hard ceiling.
	if chip.Calls() != attempts {
		t.Errorf("polls = %d, want exactly %d", chip.Calls(), attempts)
	}
}

func TestWaitReadyContextCancelled(t *testing.T) {
	chip, b := newGateFixture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := waitReady(ctx, b, protocol.RegWifiHostRcvCtrl0, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("waitReady() error = %v, want context.Canceled", err)
	}
	if chip.Calls() != 0 {
		t.Errorf("polls after cancellation = %d, want 0", chip.Calls())
	}
}

func TestWaitReadyBusFailure(t *testing.T) {
	chip, b := newGateFixture()
	chip.FailOnCall(1, errors.New("wire fault"))

	_, err := waitReady(context.Background(), b, protocol.RegWifiHostRcvCtrl0, 5)

	var te *bus.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("waitReady() error = %v, want *bus.TransportError", err)
	}
}
