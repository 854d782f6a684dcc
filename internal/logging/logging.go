package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger = slog.Default()

// Dir returns the directory pilar writes its log to:
// $XDG_STATE_HOME/pilar, falling back to ~/.pilar/logs.
func Dir() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "pilar"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".pilar", "logs"), nil
}

// Init initializes the logging system, writing logs to pilar.log inside Dir.
// The TUI owns the terminal, so nothing is written to stderr.
// The returned closer releases the log file.
func Init(level slog.Level) (io.Closer, error) {
	logDir, err := Dir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	// Open log file in append mode
	logPath := filepath.Join(logDir, "pilar.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Logger = New(file, level)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return file, nil
}

// New builds a human readable text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Discard returns a logger that drops every record. Tests use it.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
