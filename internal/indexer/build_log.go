package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// BuildLogger writes leveled build diagnostics to a per-run log file.
// A nil BuildLogger is safe to use and logs nothing.
type BuildLogger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewBuildLogger creates a timestamped log file under dir
func NewBuildLogger(dir string) (*BuildLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("index-%s.log", timestamp))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &BuildLogger{file: file, path: path}, nil
}

// Path returns the log file location
func (l *BuildLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

func (l *BuildLogger) log(level, message string, details map[string]interface{}) {
	if l == nil {
		return
	}

	line := fmt.Sprintf("[%s] %s: %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, message)
	for k, v := range details {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	line += "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.WriteString(line)
}

// Info logs an informational message with optional key/value details
func (l *BuildLogger) Info(message string, details map[string]interface{}) {
	l.log("INFO", message, details)
}

// Warn logs a warning
func (l *BuildLogger) Warn(message string, details map[string]interface{}) {
	l.log("WARN", message, details)
}

// Error logs an error
func (l *BuildLogger) Error(message string, details map[string]interface{}) {
	l.log("ERROR", message, details)
}

// Close flushes and closes the log file
func (l *BuildLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
