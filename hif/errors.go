package hif

import "fmt"

// DeviceNotReadyError indicates the readiness gate exhausted its
// attempt budget without observing the chip clear the busy bit. Fatal
// for the current operation; the caller may retry the entire logical
// operation from scratch.
type DeviceNotReadyError struct {
	// Register is the status register that was polled
	Register uint32

	// Attempts is the exhausted attempt budget
	Attempts int
}

func (e *DeviceNotReadyError) Error() string {
	return fmt.Sprintf("device not ready: status register 0x%06X still busy after %d polls",
		e.Register, e.Attempts)
}
