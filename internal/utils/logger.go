package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger provides a centralized logging mechanism for filetable.
// The TUI owns the terminal, so log output goes to a file.
type Logger struct {
	warningLogger *log.Logger
	debugLogger   *log.Logger
	errorLogger   *log.Logger
	file          *os.File
	debug         bool
	mu            sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// DefaultLogPath is used until Init is called with a configured path
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "filetable.log")
}

// GetLogger returns the default logger, opening DefaultLogPath on first use
func GetLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = openOrFallback(DefaultLogPath())
	}
	return defaultLogger
}

// Init replaces the default logger with one writing to logPath.
// Debug messages are only written when debug is true.
func Init(logPath string, debug bool) error {
	l, err := NewLogger(logPath)
	if err != nil {
		return err
	}
	l.debug = debug

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// SetOutput points the default logger at w with debug output enabled
func SetOutput(w io.Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger != nil {
		defaultLogger.Close()
	}
	defaultLogger = newWriterLogger(w)
	defaultLogger.debug = true
}

func openOrFallback(logPath string) *Logger {
	l, err := NewLogger(logPath)
	if err != nil {
		// Fallback to stderr if we can't create the log file
		log.Printf("Failed to create log file, falling back to stderr: %v", err)
		return newWriterLogger(os.Stderr)
	}
	return l
}

// NewLogger creates a new logger that writes to the specified file
func NewLogger(logPath string) (*Logger, error) {
	// Ensure the directory exists
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open or create the log file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := newWriterLogger(file)
	l.file = file
	return l, nil
}

func newWriterLogger(w io.Writer) *Logger {
	return &Logger{
		warningLogger: log.New(w, "[WARN] ", log.LstdFlags|log.Lshortfile),
		debugLogger:   log.New(w, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
		errorLogger:   log.New(w, "[ERROR] ", log.LstdFlags|log.Lshortfile),
	}
}

type level int

const (
	levelWarning level = iota
	levelDebug
	levelError
)

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.output(levelWarning, format, args)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.output(levelDebug, format, args)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.output(levelError, format, args)
}

// output must be called directly from an exported entry point so that
// calldepth 3 resolves to that entry point's caller.
func (l *Logger) output(lv level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lg *log.Logger
	switch lv {
	case levelDebug:
		if !l.debug {
			return
		}
		lg = l.debugLogger
	case levelError:
		lg = l.errorLogger
	default:
		lg = l.warningLogger
	}
	lg.Output(3, fmt.Sprintf(format, args...))
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Convenience functions for the default logger
func Warning(format string, args ...interface{}) {
	GetLogger().output(levelWarning, format, args)
}

func Debug(format string, args ...interface{}) {
	GetLogger().output(levelDebug, format, args)
}

func Error(format string, args ...interface{}) {
	GetLogger().output(levelError, format, args)
}
