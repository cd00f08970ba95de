package testing

import (
	"testing"

	"github.com/arloliu/feasible/internal/logging"
	"github.com/arloliu/feasible/types"
)

// NewTestLogger returns a Logger that writes through t.Logf, so output shows
// up only for failing or verbose test runs.
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) Debug(msg string, keysAndValues ...any) { l.log("DEBUG", msg, keysAndValues) }

func (l *testLogger) Info(msg string, keysAndValues ...any) { l.log("INFO", msg, keysAndValues) }

func (l *testLogger) Warn(msg string, keysAndValues ...any) { l.log("WARN", msg, keysAndValues) }

func (l *testLogger) Error(msg string, keysAndValues ...any) { l.log("ERROR", msg, keysAndValues) }

func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL: %s %s", msg, logging.FormatKeyValues(keysAndValues))
}

func (l *testLogger) log(level, msg string, keysAndValues []any) {
	l.t.Helper()
	l.t.Logf("%s: %s %s", level, msg, logging.FormatKeyValues(keysAndValues))
}
