package observability

import "sync"

// CaptureLogger records log entries in memory for assertions in tests.
type CaptureLogger struct {
	mu      sync.Mutex
	entries []CapturedEntry
}

// CapturedEntry is a single recorded log call.
type CapturedEntry struct {
	Level  string
	Msg    string
	Fields []Field
}

// NewCaptureLogger returns an empty capture logger.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (c *CaptureLogger) record(level, msg string, fields []Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, CapturedEntry{Level: level, Msg: msg, Fields: fields})
}

// Debug records a debug entry.
func (c *CaptureLogger) Debug(msg string, fields ...Field) { c.record("debug", msg, fields) }

// Info records an info entry.
func (c *CaptureLogger) Info(msg string, fields ...Field) { c.record("info", msg, fields) }

// Warn records a warn entry.
func (c *CaptureLogger) Warn(msg string, fields ...Field) { c.record("warn", msg, fields) }

// Error records an error entry.
func (c *CaptureLogger) Error(msg string, fields ...Field) { c.record("error", msg, fields) }

// Entries returns a copy of the recorded entries.
func (c *CaptureLogger) Entries() []CapturedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CapturedEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// CountLevel returns how many entries were recorded at the given level.
func (c *CaptureLogger) CountLevel(level string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, entry := range c.entries {
		if entry.Level == level {
			count++
		}
	}
	return count
}
