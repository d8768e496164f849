package protocol

import "encoding/binary"

// Header is a Host Interface frame header.
//
// Wire form (HifHeaderSize bytes):
//
//	[GROUP][OPCODE][LEN_L][LEN_H]
//
// Length counts the payload segment only. A control segment, when
// present, follows the payload and is never included in Length; the
// chip tracks it through the transfer size instead.
type Header struct {
	// GroupID selects the functional subsystem on the chip
	GroupID byte

	// Opcode selects the operation within the group
	Opcode byte

	// Length is the payload byte count
	Length uint16
}

// NewHeader returns a Header for the given group, opcode and payload
// length.
func NewHeader(groupID, opcode byte, payloadLen uint16) Header {
	return Header{GroupID: groupID, Opcode: opcode, Length: payloadLen}
}

// Bytes returns the 4-byte wire form of the header.
func (h Header) Bytes() []byte {
	buf := make([]byte, HifHeaderSize)
	buf[0] = h.GroupID
	buf[1] = h.Opcode
	binary.LittleEndian.PutUint16(buf[2:4], h.Length)
	return buf
}

// BodyKind names the payload/control presence variant of a frame body.
type BodyKind int

const (
	// NoBody means the frame is header-only
	NoBody BodyKind = iota

	// PayloadOnly means the frame carries a payload and no control
	// segment
	PayloadOnly

	// ControlOnly means the frame carries a control segment and no
	// payload
	ControlOnly

	// PayloadAndControl means both segments are present
	PayloadAndControl
)

// Body is the optional content of a frame: a payload segment and a
// control segment, either of which may be absent. An empty segment is
// never emitted on the wire.
type Body struct {
	Payload []byte
	Control []byte
}

// Kind reports which presence variant the body is.
func (b Body) Kind() BodyKind {
	switch {
	case len(b.Payload) > 0 && len(b.Control) > 0:
		return PayloadAndControl
	case len(b.Payload) > 0:
		return PayloadOnly
	case len(b.Control) > 0:
		return ControlOnly
	default:
		return NoBody
	}
}

// BuildFrame constructs the complete wire form of a frame: header,
// then payload, then control segment, in that fixed order. The
// header's length field is always set from the payload.
func BuildFrame(groupID, opcode byte, body Body) []byte {
	frame := make([]byte, 0, HifHeaderSize+len(body.Payload)+len(body.Control))
	frame = append(frame, NewHeader(groupID, opcode, uint16(len(body.Payload))).Bytes()...)
	frame = append(frame, body.Payload...)
	frame = append(frame, body.Control...)
	return frame
}

// ParseHeader extracts a Header from the first HifHeaderSize bytes of
// buf. Returns a FrameError if buf is too short.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HifHeaderSize {
		return Header{}, &FrameError{
			Reason: "header truncated",
			Want:   HifHeaderSize,
			Got:    len(buf),
		}
	}

	return Header{
		GroupID: buf[0],
		Opcode:  buf[1],
		Length:  binary.LittleEndian.Uint16(buf[2:4]),
	}, nil
}

// SplitFrame is the inverse of BuildFrame: it splits buf into the
// header, the declared-length payload, and whatever remains (the
// control segment, when the sender appended one).
//
// Returns a FrameError if the declared payload length cannot be
// satisfied by the bytes available.
func SplitFrame(buf []byte) (Header, []byte, []byte, error) {
	hdr, err := ParseHeader(buf)
	if err != nil {
		return Header{}, nil, nil, err
	}

	end := HifHeaderSize + int(hdr.Length)
	if len(buf) < end {
		return Header{}, nil, nil, &FrameError{
			Reason: "payload truncated",
			Want:   int(hdr.Length),
			Got:    len(buf) - HifHeaderSize,
		}
	}

	return hdr, buf[HifHeaderSize:end], buf[end:], nil
}
