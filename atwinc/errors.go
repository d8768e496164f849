package atwinc

import "fmt"

// BootError indicates a chip boot stage did not reach its expected
// state within the configured number of polls.
type BootError struct {
	// Stage names the boot stage that stalled
	Stage string

	// Register is the register that was polled
	Register uint32

	// Attempts is the number of polls performed
	Attempts int
}

func (e *BootError) Error() string {
	return fmt.Sprintf("boot stalled at %s: register 0x%06X not ready after %d attempts",
		e.Stage, e.Register, e.Attempts)
}

// PinError indicates a control pin could not be driven.
type PinError struct {
	// Pin names the control line
	Pin string

	// Err is the underlying pin error
	Err error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("failed to drive %s pin: %v", e.Pin, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}
