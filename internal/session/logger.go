// Package session keeps an append-only log of calculator activity.
//
// The log is advisory. Every write is best effort: a full disk or an
// unwritable path never surfaces as a calculation error.
package session

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Logger appends timestamped entries to a log file. It starts out disabled;
// Enable opens the file and stamps a session start marker. The zero value is
// not usable, use New.
type Logger struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	slogger *slog.Logger
	id      string
	enabled bool
}

// New creates a disabled logger that will write to path once enabled.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Enabled reports whether entries are currently being written.
func (l *Logger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Path returns the current log file path.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Enable opens the log file for appending and writes a session start entry.
// Each Enable begins a new session with a fresh id.
func (l *Logger) Enable() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled {
		return nil
	}
	if err := l.open(); err != nil {
		return err
	}
	l.enabled = true
	l.id = uuid.NewString()
	l.slogger.Info("session start", "id", l.id)
	return nil
}

// Disable writes a session stop entry and closes the file. Entries written
// while disabled are dropped.
func (l *Logger) Disable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	l.slogger.Info("session stop", "id", l.id)
	l.enabled = false
	l.closeFile()
}

// SetPath switches the log file. If logging is enabled the old file is
// closed and a new session starts in the new one.
func (l *Logger) SetPath(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if path == l.path {
		return nil
	}
	if !l.enabled {
		l.path = path
		return nil
	}
	l.slogger.Info("session stop", "id", l.id)
	l.closeFile()
	l.path = path
	if err := l.open(); err != nil {
		l.enabled = false
		return err
	}
	l.id = uuid.NewString()
	l.slogger.Info("session start", "id", l.id)
	return nil
}

// Logf writes one formatted entry. It is a no-op while disabled and never
// reports an error.
func (l *Logger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	l.slogger.Info(fmt.Sprintf(format, args...))
}

// Warnf writes one warning entry.
func (l *Logger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	l.slogger.Warn(fmt.Sprintf(format, args...))
}

// Tail returns the last n lines of the log file. It reads the file as it is
// on disk, so it works whether or not logging is currently enabled.
func (l *Logger) Tail(n int) ([]string, error) {
	l.mu.Lock()
	path := l.path
	l.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Close stops the session if one is active.
func (l *Logger) Close() error {
	l.Disable()
	return nil
}

// open must be called with l.mu held.
func (l *Logger) open() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	l.file = f
	l.slogger = slog.New(slog.NewTextHandler(f, nil))
	return nil
}

// closeFile must be called with l.mu held.
func (l *Logger) closeFile() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
		l.slogger = nil
	}
}
