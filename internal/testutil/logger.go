package testutil

import (
	"fmt"
	"sync"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level   string
	Message string
	KeyVals []interface{}
}

// RecordingLogger records log calls in memory.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Debug records a debug message.
func (l *RecordingLogger) Debug(msg interface{}, keyvals ...interface{}) {
	l.record("debug", msg, keyvals)
}

// Info records an informational message.
func (l *RecordingLogger) Info(msg interface{}, keyvals ...interface{}) {
	l.record("info", msg, keyvals)
}

// Warn records a warning.
func (l *RecordingLogger) Warn(msg interface{}, keyvals ...interface{}) {
	l.record("warn", msg, keyvals)
}

// Entries returns all recorded entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Warnings returns the messages of recorded warnings.
func (l *RecordingLogger) Warnings() []string {
	var warnings []string
	for _, e := range l.Entries() {
		if e.Level == "warn" {
			warnings = append(warnings, e.Message)
		}
	}
	return warnings
}

func (l *RecordingLogger) record(level string, msg interface{}, keyvals []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{
		Level:   level,
		Message: fmt.Sprint(msg),
		KeyVals: keyvals,
	})
}
