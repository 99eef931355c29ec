package log

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const ringCapacity = 200

var defaultRing = newRingHandler(ringCapacity)

// ringHandler keeps the last N formatted records in memory for the TUI log
// overlay. It accepts every level; filtering happens at display time.
type ringHandler struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func newRingHandler(max int) *ringHandler {
	return &ringHandler{max: max}
}

func (h *ringHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *ringHandler) Handle(_ context.Context, r slog.Record) error {
	line := fmt.Sprintf("%s %-5s %s", r.Time.Format(time.TimeOnly), r.Level, r.Message)
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, line)
	if len(h.lines) > h.max {
		h.lines = h.lines[len(h.lines)-h.max:]
	}
	return nil
}

// WithAttrs returns the same handler; every logger in the process shares the
// one overlay buffer, and the category attr already arrives per record.
func (h *ringHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *ringHandler) WithGroup(string) slog.Handler { return h }

// Recent returns up to n of the newest lines, oldest first.
func (h *ringHandler) Recent(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 || n > len(h.lines) {
		n = len(h.lines)
	}
	out := make([]string, n)
	copy(out, h.lines[len(h.lines)-n:])
	return out
}
