package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how the logger writes.
// In TUI mode the terminal belongs to Bubble Tea, so logs must go to a file.
type Config struct {
	Level   string
	Format  string
	File    string
	TUIMode bool
}

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	sink      *lumberjack.Logger
)

func init() {
	Initialize()
}

// Initialize configures the logger from LOG_LEVEL, LOG_FORMAT and RANGEPICK_DEBUG,
// writing to stderr
func Initialize() {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("RANGEPICK_DEBUG")
		if levelStr == "1" || levelStr == "true" {
			levelStr = "DEBUG"
		} else {
			levelStr = "INFO"
		}
	}

	// stderr-only config cannot fail
	_ = InitializeWithConfig(Config{
		Level:  levelStr,
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// InitializeWithConfig (re)configures the global logger
func InitializeWithConfig(cfg Config) error {
	level := parseLevel(cfg.Level)
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
	}

	file := cfg.File
	if file == "" && cfg.TUIMode {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("TUI mode requires file-based logging: %w", err)
		}
		file = filepath.Join(home, ".rangepick", "logs", "rangepick.log")
	}

	var out io.Writer = os.Stderr
	var newSink *lumberjack.Logger
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			if cfg.TUIMode {
				return fmt.Errorf("TUI mode requires file-based logging: %w", err)
			}
			file = ""
		} else {
			newSink = &lumberjack.Logger{
				Filename:   file,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
			}
			out = newSink
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		_ = sink.Close()
	}
	sink = newSink
	logger = slog.New(handler)
	logLevel = level
	logFormat = format
	logFile = file
	tuiMode = cfg.TUIMode

	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close flushes and closes the log file, if any. Safe to call repeatedly.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}

func GetLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func GetLogFile() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFile
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
