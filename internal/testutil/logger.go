// Package testutil provides test loggers and Pine Script fixtures.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes to t.Log, so
// analyzer and fixer logs only show up for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, _ := NewRecordingLogger(t)
	return logger
}

// LogRecorder keeps the messages logged through a recording logger.
type LogRecorder struct {
	mu      sync.Mutex
	entries []string
}

// Messages returns "LEVEL message" for every record, in logging order.
func (r *LogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

// Contains reports whether a record at level has msg as its message.
func (r *LogRecorder) Contains(level slog.Level, msg string) bool {
	want := level.String() + " " + msg
	for _, m := range r.Messages() {
		if m == want {
			return true
		}
	}
	return false
}

// NewRecordingLogger is NewTestLogger that also records each message, for
// tests asserting that a skipped rename or an overlapping block was logged.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *LogRecorder) {
	t.Helper()
	rec := &LogRecorder{}
	text := slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(recordingHandler{Handler: text, rec: rec}), rec
}

type recordingHandler struct {
	slog.Handler
	rec *LogRecorder
}

func (h recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.rec.mu.Lock()
	h.rec.entries = append(h.rec.entries, r.Level.String()+" "+r.Message)
	h.rec.mu.Unlock()
	return h.Handler.Handle(ctx, r)
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recordingHandler{Handler: h.Handler.WithAttrs(attrs), rec: h.rec}
}

func (h recordingHandler) WithGroup(name string) slog.Handler {
	return recordingHandler{Handler: h.Handler.WithGroup(name), rec: h.rec}
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
