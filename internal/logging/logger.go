// Package logging provides the file and console logger used by smxscale
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// logPrefix starts the name of every log file
const logPrefix = "smxscale_"

// FileLogger implements the smxapi.Logger interface with file and console output
type FileLogger struct {
	fileLogger *log.Logger
	logFile    *os.File
	console    io.Writer
	verbose    bool
	path       string
}

// NewFileLogger creates a new logger that writes to both file and stdout
func NewFileLogger(logDir string, verbose bool) (*FileLogger, error) {
	return newFileLogger(logDir, verbose, os.Stdout)
}

func newFileLogger(logDir string, verbose bool, console io.Writer) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Nanoseconds keep two loggers started in the same second apart
	timestamp := time.Now().Format("20060102_150405.000000000")
	logPath := filepath.Join(logDir, fmt.Sprintf("%s%s.log", logPrefix, timestamp))

	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &FileLogger{
		fileLogger: log.New(logFile, "", log.LstdFlags),
		logFile:    logFile,
		console:    console,
		verbose:    verbose,
		path:       logPath,
	}

	fmt.Fprintf(console, "📝 Logging to: %s\n", logPath)
	logger.Info(fmt.Sprintf("Logging to: %s", logPath))

	return logger, nil
}

// Path returns the log file location
func (l *FileLogger) Path() string {
	return l.path
}

// Close closes the log file
func (l *FileLogger) Close() error {
	if l.logFile != nil {
		err := l.logFile.Close()
		l.logFile = nil // Set to nil to prevent double closing
		return err
	}
	return nil
}

func (l *FileLogger) write(level, message string, toConsole bool) {
	if l.logFile != nil {
		l.fileLogger.Printf("[%s] %s", level, message)
	}
	if toConsole && l.console != nil {
		fmt.Fprintf(l.console, "%s: %s\n", level, message)
	}
}

// Debug logs debug messages (console only in verbose mode)
func (l *FileLogger) Debug(message string) {
	l.write("DEBUG", message, l.verbose)
}

// Info logs informational messages
func (l *FileLogger) Info(message string) {
	l.write("INFO", message, true)
}

// Warn logs warning messages
func (l *FileLogger) Warn(message string) {
	l.write("WARN", message, true)
}

// Error logs error messages
func (l *FileLogger) Error(message string) {
	l.write("ERROR", message, true)
}
