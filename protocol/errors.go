package protocol

import "fmt"

// FrameError indicates a malformed Host Interface frame: a declared
// length that the available bytes cannot satisfy, a shape check that
// failed, or a payload integrity mismatch.
//
// A FrameError is always fatal for the current operation; frames are
// never silently truncated or padded.
type FrameError struct {
	// Reason describes the violated framing rule
	Reason string

	// Want and Got carry the relevant byte counts where applicable
	Want int
	Got  int
}

func (e *FrameError) Error() string {
	if e.Want != 0 || e.Got != 0 {
		return fmt.Sprintf("frame error: %s: want %d bytes, got %d", e.Reason, e.Want, e.Got)
	}
	return fmt.Sprintf("frame error: %s", e.Reason)
}

// UnexpectedResponseError indicates that a response frame's group id
// or opcode does not match the request that was issued. This signals
// protocol desynchronization; the caller should not trust the chip's
// state and should consider a reset.
type UnexpectedResponseError struct {
	WantGroup  byte
	WantOpcode byte
	GotGroup   byte
	GotOpcode  byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response: want group 0x%02X opcode 0x%02X, got group 0x%02X opcode 0x%02X",
		e.WantGroup, e.WantOpcode, e.GotGroup, e.GotOpcode)
}
