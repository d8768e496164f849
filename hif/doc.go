// Package hif implements the ATWINC1500 Host Interface transaction
// engine: the readiness gate and the orchestration that turns the four
// primitive bus operations into one atomic framed transaction.
//
// A send transaction arms the chip, waits for a transfer slot, reads
// the negotiated transfer address, burst-writes the frame (header,
// then any payload, then any control segment), and signals
// end-of-transaction. Receiving mirrors the sequence with burst reads.
// Every transaction either completes or fails explicitly: the first
// failing step aborts the rest and nothing is retried above the
// readiness gate's bounded poll.
package hif
