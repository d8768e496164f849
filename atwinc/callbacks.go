package atwinc

import "github.com/moffa90/go-atwinc1500/protocol"

// Logger is an optional logging interface that can be provided to the driver.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	dev := atwinc.New(spi, cs, atwinc.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// nopLogger discards everything. Used when no logger is configured.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ConnectionCallback is called from HandleEvent when the chip reports a
// connection state change. Implementations should return quickly to
// avoid blocking event dispatch.
//
// Example:
//
//	dev := atwinc.New(spi, cs,
//	    atwinc.WithConnectionCallback(func(ev protocol.ConnectionEvent) {
//	        fmt.Printf("state: %s\n", ev.State)
//	    }),
//	)
type ConnectionCallback func(protocol.ConnectionEvent)
