package bus

import "fmt"

// Chip state codes returned in the response state byte. Values above
// StateInternalError are not defined by the chip; receiving one means
// responses are no longer being read correctly.
const (
	// StateNoError means the command was accepted
	StateNoError = 0x00

	// StateUnsupportedCommand means the command byte was not valid
	StateUnsupportedCommand = 0x01

	// StateUnexpectedData means the chip did not expect the data sent
	StateUnexpectedData = 0x02

	// StateCrc7Error means the command packet CRC7 was invalid
	StateCrc7Error = 0x03

	// StateCrc16Error means the burst data CRC16 was invalid
	StateCrc16Error = 0x04

	// StateInternalError means the chip hit an internal error
	StateInternalError = 0x05
)

// TransportError indicates the physical transport reported a
// communication fault during a bus transaction. Never retried here:
// retrying a corrupted transaction risks leaving the chip in an
// inconsistent framing state.
type TransportError struct {
	// Cmd is the bus command that was in flight
	Cmd byte

	// Addr is the target address
	Addr uint32

	// Err is the underlying transport fault
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bus transfer failed: cmd 0x%02X addr 0x%06X: %v", e.Cmd, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError indicates the chip answered a bus command with a
// non-success state byte or a malformed response section.
type ResponseError struct {
	// Cmd is the bus command that was answered
	Cmd byte

	// Addr is the target address
	Addr uint32

	// Status is the chip's state code, when the failure is a reported
	// state rather than a malformed response
	Status byte

	// Reason describes a malformed response section
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("bus response invalid: cmd 0x%02X addr 0x%06X: %s", e.Cmd, e.Addr, e.Reason)
	}
	return fmt.Sprintf("bus command rejected: cmd 0x%02X addr 0x%06X: %s (0x%02X)",
		e.Cmd, e.Addr, stateName(e.Status), e.Status)
}

// stateName returns a human-readable name for a chip state code.
func stateName(code byte) string {
	switch code {
	case StateNoError:
		return "no error"
	case StateUnsupportedCommand:
		return "unsupported command"
	case StateUnexpectedData:
		return "unexpected data"
	case StateCrc7Error:
		return "command crc invalid"
	case StateCrc16Error:
		return "data crc invalid"
	case StateInternalError:
		return "chip internal error"
	default:
		return fmt.Sprintf("unknown state code 0x%02X", code)
	}
}
