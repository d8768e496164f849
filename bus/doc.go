// Package bus implements the four primitive ATWINC1500 bus
// transactions over an injected full-duplex transport.
//
// # Operations
//
//	value, err := b.ReadRegister(addr)   // CMD_SINGLE_READ
//	err := b.WriteRegister(addr, value)  // CMD_SINGLE_WRITE
//	data, err := b.ReadData(addr, n)     // CMD_DMA_EXT_READ
//	err := b.WriteData(addr, data)       // CMD_DMA_EXT_WRITE
//
// Each operation is one complete bus transaction: the chip select line
// is asserted for the duration and released on every exit path. The
// layer carries no retries and no protocol semantics: transport
// faults are surfaced untouched as *TransportError and chip
// rejections as *ResponseError.
//
// # Hardware Independence
//
// The package does not talk to hardware. Callers provide a Transport
// (one full-duplex byte shuttle) and an OutputPin for chip select; the
// spidev package provides both for Linux SPI hosts, and tests provide
// mocks.
package bus
