package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderBytes(t *testing.T) {
	h := NewHeader(GroupWifi, OpReqConnect, 0x0108)
	got := h.Bytes()
	want := []byte{GroupWifi, OpReqConnect, 0x08, 0x01} // length little-endian

	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}

func TestParseHeader(t *testing.T) {
	hdr, err := ParseHeader([]byte{GroupMain, OpRespFirmwareVersion, 0x04, 0x00, 0xAA})
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if hdr.GroupID != GroupMain || hdr.Opcode != OpRespFirmwareVersion || hdr.Length != 4 {
		t.Errorf("ParseHeader() = %+v, want {GroupID:%d Opcode:%d Length:4}",
			hdr, GroupMain, OpRespFirmwareVersion)
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := ParseHeader([]byte{GroupMain, OpRespFirmwareVersion, 0x04})

	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("ParseHeader() error = %v, want *FrameError", err)
	}
	if fe.Want != HifHeaderSize || fe.Got != 3 {
		t.Errorf("FrameError = want %d got %d, expected want %d got 3", fe.Want, fe.Got, HifHeaderSize)
	}
}

func TestBodyKind(t *testing.T) {
	tests := []struct {
		name     string
		body     Body
		expected BodyKind
	}{
		{name: "no body", body: Body{}, expected: NoBody},
		{name: "payload only", body: Body{Payload: []byte{1}}, expected: PayloadOnly},
		{name: "control only", body: Body{Control: []byte{1}}, expected: ControlOnly},
		{name: "payload and control", body: Body{Payload: []byte{1}, Control: []byte{2}}, expected: PayloadAndControl},
		{name: "empty slices count as absent", body: Body{Payload: []byte{}, Control: []byte{}}, expected: NoBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.body.Kind(); got != tt.expected {
				t.Errorf("Kind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSplitFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body Body
	}{
		{name: "header only", body: Body{}},
		{name: "payload only", body: Body{Payload: []byte{0xDE, 0xAD, 0xBE, 0xEF}}},
		{name: "control only", body: Body{Control: []byte{0x0F, 0x00}}},
		{name: "payload and control", body: Body{Payload: []byte{1, 2, 3}, Control: []byte{4, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := BuildFrame(GroupWifi, OpReqScan, tt.body)

			hdr, payload, rest, err := SplitFrame(frame)
			if err != nil {
				t.Fatalf("SplitFrame() error = %v", err)
			}
			if hdr.GroupID != GroupWifi || hdr.Opcode != OpReqScan {
				t.Errorf("header = %+v, want group %d opcode %d", hdr, GroupWifi, OpReqScan)
			}
			if int(hdr.Length) != len(tt.body.Payload) {
				t.Errorf("Length = %d, want %d", hdr.Length, len(tt.body.Payload))
			}
			if !bytes.Equal(payload, tt.body.Payload) {
				t.Errorf("payload = % X, want % X", payload, tt.body.Payload)
			}
			if !bytes.Equal(rest, tt.body.Control) {
				t.Errorf("rest = % X, want % X", rest, tt.body.Control)
			}
		})
	}
}

func TestSplitFrameTruncatedPayload(t *testing.T) {
	frame := BuildFrame(GroupWifi, OpReqScan, Body{Payload: []byte{1, 2, 3, 4}})

	_, _, _, err := SplitFrame(frame[:HifHeaderSize+2])

	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("SplitFrame() error = %v, want *FrameError", err)
	}
	if fe.Want != 4 || fe.Got != 2 {
		t.Errorf("FrameError = want %d got %d, expected want 4 got 2", fe.Want, fe.Got)
	}
}
