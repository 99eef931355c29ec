// Package log is the application logger. Call sites tag every record with a
// category so the TUI log overlay can filter by subsystem:
//
//	log.Debug(log.CatAutosave, "debounce fired", "key", key)
//
// Records fan out to a JSON log file and an in-memory ring consumed by the
// overlay.
package log

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	slogmulti "github.com/samber/slog-multi"
)

// Category tags a log record with its originating subsystem.
type Category string

const (
	CatConfig   Category = "config"
	CatHistory  Category = "history"
	CatStorage  Category = "storage"
	CatAutosave Category = "autosave"
	CatWatcher  Category = "watcher"
	CatUI       Category = "ui"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	// Until Init runs, records go nowhere but the ring so early failures
	// are still visible in the overlay.
	logger.Store(slog.New(defaultRing))
}

// Init routes records to the given file and the in-memory ring. An empty
// path keeps ring-only logging (tests, --no-log runs).
func Init(path string, level slog.Level) error {
	handlers := []slog.Handler{defaultRing}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	logger.Store(slog.New(slogmulti.Fanout(handlers...)))
	return nil
}

// Debug logs at debug level under the given category.
func Debug(cat Category, msg string, args ...any) { logWith(slog.LevelDebug, cat, msg, args...) }

// Info logs at info level under the given category.
func Info(cat Category, msg string, args ...any) { logWith(slog.LevelInfo, cat, msg, args...) }

// Warn logs at warn level under the given category.
func Warn(cat Category, msg string, args ...any) { logWith(slog.LevelWarn, cat, msg, args...) }

// Error logs at error level under the given category.
func Error(cat Category, msg string, args ...any) { logWith(slog.LevelError, cat, msg, args...) }

func logWith(level slog.Level, cat Category, msg string, args ...any) {
	l := logger.Load()
	if l == nil {
		return
	}
	args = append([]any{"category", string(cat)}, args...)
	l.Log(context.Background(), level, msg, args...)
}

// Recent returns the newest ring records, most recent last.
func Recent(n int) []string {
	return defaultRing.Recent(n)
}
