// Package debug provides optional file-based debug logging.
//
// When the SHEETVIEW_DEBUG environment variable, the debug.logFile config
// key or Init names a file, debug messages are appended to it. Otherwise
// logging is a no-op.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the log path
const EnvVar = "SHEETVIEW_DEBUG"

var (
	logFile *os.File
	mu      sync.Mutex
	now     = time.Now
)

// Init opens path for appending and routes Logf to it
func Init(path string) error {
	if path == "" {
		return fmt.Errorf("debug log path is empty")
	}

	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

// InitFromEnv calls Init with the path in SHEETVIEW_DEBUG, falling back to
// fallback. It does nothing when both are empty.
func InitFromEnv(fallback string) error {
	path := os.Getenv(EnvVar)
	if path == "" {
		path = fallback
	}
	if path == "" {
		return nil
	}
	return Init(path)
}

// Enabled reports whether a log file is open
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logFile != nil
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Logf writes a timestamped line to the debug log
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}

	timestamp := now().Format("15:04:05.000")
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
	logFile.Sync()
}

// Scoped returns a logger that prefixes every line with scope
func Scoped(scope string) func(format string, args ...any) {
	return func(format string, args ...any) {
		Logf(scope+": "+format, args...)
	}
}
