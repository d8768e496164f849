package protocol

// Checksum algorithm constants.
const (
	// Crc7Polynomial is the CRC-7 polynomial x^7 + x^3 + 1 (0x09)
	Crc7Polynomial = 0x09

	// Crc7InitialValue is the CRC-7 initial register value
	Crc7InitialValue = 0x7f

	// Crc7HighBitMask is the high bit of the 7-bit register
	Crc7HighBitMask = 0x40

	// Crc16Polynomial is the CRC-16-CCITT polynomial (0x1021)
	Crc16Polynomial = 0x1021

	// Crc16InitialValue is the CRC-16 initial value
	Crc16InitialValue = 0xffff

	// Crc16HighBitMask is the high bit mask for CRC-16 calculations
	Crc16HighBitMask = 0x8000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)

// Crc7 computes the 7-bit CRC guarding bus command packets.
// The result occupies the low 7 bits; the bus layer transmits it as
// (crc << 1) | 1 with the protocol stop bit appended.
//
// CRC-7 parameters:
//   - Polynomial: Crc7Polynomial
//   - Initial value: Crc7InitialValue
//   - MSB first, no final XOR
func Crc7(data []byte) byte {
	crc := byte(Crc7InitialValue)

	for _, b := range data {
		for i := BitsPerByte - 1; i >= 0; i-- {
			bit := (b >> i) & 1
			high := crc & Crc7HighBitMask

			crc = (crc << 1) & 0x7f
			if (high != 0) != (bit != 0) {
				crc ^= Crc7Polynomial
			}
		}
	}

	return crc
}

// Crc16 computes the CRC-16-CCITT checksum guarding burst-data
// payloads when CRC mode is enabled.
//
// CRC-16-CCITT parameters:
//   - Polynomial: Crc16Polynomial
//   - Initial value: Crc16InitialValue
//   - No final XOR
func Crc16(data []byte) uint16 {
	crc := uint16(Crc16InitialValue)

	for _, b := range data {
		crc ^= uint16(b) << BitsPerByte
		for i := 0; i < BitsPerByte; i++ {
			if crc&Crc16HighBitMask != 0 {
				crc = (crc << 1) ^ Crc16Polynomial
			} else {
				crc = crc << 1
			}
		}
	}

	return crc
}
