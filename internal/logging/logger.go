package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// maxLogSize is the maximum log file size before rotation (5 MB).
	maxLogSize = 5 * 1024 * 1024
	// maxLogBackups is the number of rotated log files to keep.
	maxLogBackups = 3
)

// Options controls where and how verbosely the logger writes.
type Options struct {
	// Debug selects DEBUG level with source locations; otherwise INFO.
	Debug bool
	// Path overrides the platform log file location.
	Path string
	// Echo additionally writes every record to this writer (e.g. os.Stderr).
	Echo io.Writer
}

// Logger is an slog.Logger backed by a log file that must be closed.
type Logger struct {
	*slog.Logger
	file *os.File
}

// Close flushes and closes the underlying log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Open creates a JSON logger writing to the platform log file for appName:
//   - macOS:   ~/Library/Logs/<app>/<app>.log
//   - Linux:   ~/.local/state/<app>/<app>.log
//   - Windows: %LOCALAPPDATA%\<app>\Logs\<app>.log
//
// The file is rotated first if it has grown past maxLogSize.
func Open(appName string, opts Options) (*Logger, error) {
	// An explicit path wins over the platform default
	logPath := opts.Path
	if logPath == "" {
		var err error
		logPath, err = getLogFilePath(appName)
		if err != nil {
			return nil, fmt.Errorf("failed to get log file path: %w", err)
		}
	}

	// Make sure the log directory exists
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	// Rotate before opening so this session starts in a fresh file
	if err := rotateIfNeeded(logPath); err != nil {
		return nil, fmt.Errorf("failed to rotate log file: %w", err)
	}

	// Append to whatever the current file already holds
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	// Mirror entries to Echo when set, e.g. stderr for --debug runs
	var out io.Writer = logFile
	if opts.Echo != nil {
		out = io.MultiWriter(logFile, opts.Echo)
	}

	// Debug mode lowers the level and records source locations
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	})

	return &Logger{Logger: slog.New(handler), file: logFile}, nil
}

// rotateIfNeeded renames log → log.1, .1 → .2 and so on once the file
// exceeds maxLogSize, keeping at most maxLogBackups old files.
func rotateIfNeeded(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // first run, no file yet
		}
		return err
	}

	if info.Size() < maxLogSize {
		return nil
	}

	// Walk backups from oldest to newest: the oldest is removed, then
	// each remaining .i moves up to .i+1. Missing backups are skipped.
	for i := maxLogBackups; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", logPath, i)
		if i == maxLogBackups {
			os.Remove(src)
			continue
		}
		os.Rename(src, fmt.Sprintf("%s.%d", logPath, i+1))
	}

	// The current log becomes the newest backup
	if err := os.Rename(logPath, logPath+".1"); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}

	return nil
}

// getLogFilePath returns the platform-specific log file path.
func getLogFilePath(appName string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", appName, appName+".log"), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			return filepath.Join(state, appName, appName+".log"), nil
		}
		return filepath.Join(homeDir, ".local", "state", appName, appName+".log"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, "Logs", appName+".log"), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// NewNopLogger returns a logger that discards everything, for tests.
func NewNopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
