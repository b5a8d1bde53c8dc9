//go:build !tinygo

package hal

import (
	"log/slog"
	"sync"
)

type slogLogger struct {
	log *slog.Logger
}

// NewSlogLogger adapts a structured logger to the line sink the firmware uses.
// Each line becomes one record; the line itself is the message.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{log: l}
}

func (l *slogLogger) WriteLineString(s string) { l.log.Info(s) }
func (l *slogLogger) WriteLineBytes(b []byte)  { l.log.Info(string(b)) }

// RecentLines keeps the last few lines written through it and forwards every
// line to an optional next sink.
type RecentLines struct {
	mu    sync.Mutex
	next  Logger
	lines []string
	max   int
}

func NewRecentLines(max int, next Logger) *RecentLines {
	if max <= 0 {
		max = 1
	}
	return &RecentLines{next: next, max: max}
}

func (r *RecentLines) WriteLineString(s string) {
	r.mu.Lock()
	r.lines = append(r.lines, s)
	if len(r.lines) > r.max {
		r.lines = r.lines[len(r.lines)-r.max:]
	}
	r.mu.Unlock()
	if r.next != nil {
		r.next.WriteLineString(s)
	}
}

func (r *RecentLines) WriteLineBytes(b []byte) { r.WriteLineString(string(b)) }

// Lines returns a copy of the retained lines, oldest first.
func (r *RecentLines) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}
