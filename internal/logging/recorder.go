package logging

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arloliu/feasible/types"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level   string
	Message string
	Fields  string
}

// Recorder captures log messages in memory so tests can assert on them.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Entries returns a copy of the captured messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry(nil), r.entries...)
}

// Has reports whether a message at level containing substr was captured.
func (r *Recorder) Has(level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}

	return false
}

// Debug records a debug message.
func (r *Recorder) Debug(msg string, keysAndValues ...any) { r.add("DEBUG", msg, keysAndValues) }

// Info records an info message.
func (r *Recorder) Info(msg string, keysAndValues ...any) { r.add("INFO", msg, keysAndValues) }

// Warn records a warning.
func (r *Recorder) Warn(msg string, keysAndValues ...any) { r.add("WARN", msg, keysAndValues) }

// Error records an error message.
func (r *Recorder) Error(msg string, keysAndValues ...any) { r.add("ERROR", msg, keysAndValues) }

// Fatal records a fatal message without exiting.
func (r *Recorder) Fatal(msg string, keysAndValues ...any) { r.add("FATAL", msg, keysAndValues) }

func (r *Recorder) add(level, msg string, keysAndValues []any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: level, Message: msg, Fields: FormatKeyValues(keysAndValues)})
}

// FormatKeyValues renders alternating key-value pairs as "k=v k=v".
// A trailing key without a value renders as "k=<missing>".
func FormatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v=<missing>", keysAndValues[i])
		}
	}

	return b.String()
}
