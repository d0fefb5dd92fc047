// Package logger owns the process-wide logger. Entries go to a rotating file
// under <config-dir>/logs; debug mode also copies them to stderr unless the
// TUI owns the terminal.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/hotelcal/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	logFile string
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Interactive suppresses the stderr copy in debug mode.
	Interactive bool
	// JSON writes one JSON object per entry instead of text.
	JSON bool

	// Rotation limits; zero means the default.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}
	logFile = filepath.Join(logDir, constants.AppName+".log")

	var writer io.Writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    orDefault(cfg.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, defaultMaxAgeDays),
		Compress:   true,
	}
	if cfg.Debug && !cfg.Interactive {
		writer = io.MultiWriter(os.Stderr, writer)
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	formatter := log.TextFormatter
	if cfg.JSON {
		formatter = log.JSONFormatter
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       formatter,
	})
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	return logFile
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// With returns a child of the global logger that adds keyvals to every
// entry, e.g. the request id of a bulk edit. Before Init it discards.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.With(keyvals...)
}
