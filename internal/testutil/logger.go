package testutil

import (
	"sync"

	"shelfsend/internal/shelf"
)

// LogEntry is one message captured by RecordingLogger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// RecordingLogger captures log calls for assertions. Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *RecordingLogger) Debug(msg string, args ...any) { l.record("DEBUG", msg, args) }
func (l *RecordingLogger) Info(msg string, args ...any)  { l.record("INFO", msg, args) }
func (l *RecordingLogger) Warn(msg string, args ...any)  { l.record("WARN", msg, args) }
func (l *RecordingLogger) Error(msg string, args ...any) { l.record("ERROR", msg, args) }

// Messages returns the messages logged at level, in order.
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.entries {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}

var _ shelf.Logger = (*RecordingLogger)(nil)
