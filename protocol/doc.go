// Package protocol implements the ATWINC1500 Host Interface (HIF) wire
// protocol: frame construction and parsing, command payload encodings,
// the chip register map, and the checksums guarding bus transactions.
//
// # Frame Structure
//
// Every HIF message is a frame:
//
//	[GROUP][OPCODE][LEN_L][LEN_H][PAYLOAD...][CONTROL...]
//
// Where:
//   - GROUP selects the chip subsystem (GroupMain, GroupWifi, ...)
//   - OPCODE selects the operation within the group
//   - LEN = 16-bit payload length (little-endian); the optional
//     control segment is tracked through the transfer size and never
//     counted in LEN
//
// # Building and Parsing
//
// Use BuildFrame to assemble a frame and SplitFrame to take one apart:
//
//	frame := protocol.BuildFrame(protocol.GroupWifi, protocol.OpReqScan,
//	    protocol.Body{Payload: protocol.BuildScanPayload(protocol.ChannelAny)})
//
//	hdr, payload, ctrl, err := protocol.SplitFrame(frame)
//
// # Command Encodings
//
// Each catalog operation has a payload builder and/or response parser:
//
//	payload, err := protocol.BuildConnectPayload(conn)
//	version, err := protocol.ParseFirmwareVersionResponse(data)
//	results, err := protocol.ParseScanResults(data)
//
// # Error Handling
//
// Malformed frames surface as *FrameError; group/opcode mismatches as
// *UnexpectedResponseError. Both are fatal for the current operation
// and are never retried at this layer.
package protocol
