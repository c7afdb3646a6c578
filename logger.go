package tourguide

import "log/slog"

// Logger receives the server, dispatcher and connector events. A *slog.Logger
// satisfies it directly.
//
// Events carry key/value pairs: "addr" for the peer, "error" for failures,
// "elapsed" for exchange duration and "payload" for decoded messages. Failed
// exchanges are logged at Warn, accept failures at Error, lifecycle at Info
// and per-exchange traces at Debug.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// defaultLogger is used when no LoggerOption is given.
func defaultLogger() Logger {
	return slog.Default()
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
