// Package debug provides debug logging utilities.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	enabled = os.Getenv("WODTIMER_DEBUG") == "1"
	out     io.Writer = os.Stderr
	file    *os.File
)

// Logf writes a debug message if WODTIMER_DEBUG=1
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[DEBUG %s] %s\n", timestamp, msg)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled turns debug logging on or off, overriding WODTIMER_DEBUG.
func SetEnabled(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// ToFile appends debug output to path while the full-screen UI owns the
// terminal. The returned func restores stderr and closes the file. When
// debugging is disabled nothing is opened.
func ToFile(path string) (func(), error) {
	if !Enabled() {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from dirs.DebugLog
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	mu.Lock()
	file = f
	out = f
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = os.Stderr
		if file != nil {
			_ = file.Close()
			file = nil
		}
	}, nil
}
