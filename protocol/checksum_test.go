package protocol

import "testing"

func TestCrc7(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x7F, // initial register value
		},
		{
			name:     "single zero byte",
			data:     []byte{0x00},
			expected: 0x70,
		},
		{
			name:     "single 0xFF byte",
			data:     []byte{0xFF},
			expected: 0x09,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Crc7(tt.data)
			if result != tt.expected {
				t.Errorf("Crc7() = 0x%02X, want 0x%02X", result, tt.expected)
			}
		})
	}
}

func TestCrc7FitsRegister(t *testing.T) {
	// The result must fit 7 bits: the bus layer shifts it left to
	// append the stop bit.
	for b := 0; b < 256; b++ {
		if crc := Crc7([]byte{byte(b)}); crc > 0x7F {
			t.Fatalf("Crc7({0x%02X}) = 0x%02X exceeds 7 bits", b, crc)
		}
	}
}

func TestCrc16(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFF, // initial value
		},
		{
			name:     "single zero byte",
			data:     []byte{0x00},
			expected: 0xE1F0,
		},
		{
			name:     "single 0xFF byte",
			data:     []byte{0xFF},
			expected: 0xFF00,
		},
		{
			name:     "reference check sequence",
			data:     []byte("123456789"),
			expected: 0x29B1, // published CRC-16/CCITT-FALSE check value
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Crc16(tt.data)
			if result != tt.expected {
				t.Errorf("Crc16() = 0x%04X, want 0x%04X", result, tt.expected)
			}
		})
	}
}

func BenchmarkCrc7(b *testing.B) {
	data := make([]byte, 8)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Crc7(data)
	}
}

func BenchmarkCrc16(b *testing.B) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Crc16(data)
	}
}
