package testing

import (
	"testing"

	"github.com/Egglessbonek/project-oasis/types"
)

// NewTestLogger creates a types.Logger that writes through t.Logf, so
// solver convergence warnings and worker log lines appear interleaved
// with the test output of the computation under test.
//
// Example:
//
//	engine, err := oasis.NewEngine(&cfg,
//	    oasis.WithLogger(oasistest.NewTestLogger(t)))
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) log(level, msg string, keysAndValues []any) {
	l.t.Helper()
	l.t.Logf("%s: %s %v", level, msg, keysAndValues)
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.log("DEBUG", msg, keysAndValues)
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.log("INFO", msg, keysAndValues)
}

func (l *testLogger) Warn(msg string, keysAndValues ...any) {
	l.log("WARN", msg, keysAndValues)
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.log("ERROR", msg, keysAndValues)
}

// Fatal fails the test immediately; a fatal log line during a
// computation is itself a test failure.
func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Fatalf("FATAL: %s %v", msg, keysAndValues)
}
