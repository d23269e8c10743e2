package logging

import "github.com/Egglessbonek/project-oasis/types"

// NopLogger discards all log messages.
//
// Used as the default logger when callers do not provide one.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
//
// Returns:
//   - *NopLogger: A logger that discards everything
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (l *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (l *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (l *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message and does NOT exit.
//
// A no-op logger must never terminate the program; callers that need
// fatal semantics should provide a real logger.
func (l *NopLogger) Fatal(_ string, _ ...any) {}
