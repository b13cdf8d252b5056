// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture is a slog.Handler that records every log record so tests
// can assert on pipeline log output.
type LogCapture struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogCapture returns a capture handler and a logger backed by it.
func NewLogCapture() (*LogCapture, *slog.Logger) {
	c := &LogCapture{}
	return c, slog.New(c)
}

func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (c *LogCapture) Enabled(context.Context, slog.Level) bool { return true }
func (c *LogCapture) WithAttrs([]slog.Attr) slog.Handler       { return c }
func (c *LogCapture) WithGroup(string) slog.Handler            { return c }

// Records returns a copy of the captured records.
func (c *LogCapture) Records() []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LogRecord, len(c.records))
	copy(out, c.records)
	return out
}

// HasMessage reports whether any captured record at the given level
// contains substr in its message.
func (c *LogCapture) HasMessage(level slog.Level, substr string) bool {
	for _, r := range c.Records() {
		if r.Level == level && strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}
