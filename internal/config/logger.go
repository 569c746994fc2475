package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// logLevel is shared by every handler InitLogger builds so the level can be
// changed at runtime when the config file is reloaded.
var logLevel = new(slog.LevelVar)

// SetLogLevel changes the level of the active logger
func SetLogLevel(level string) {
	logLevel.Set(parseLogLevel(level))
}

// InitLogger initializes the application logger based on configuration.
// An empty cfg.File with toStderr set logs to the console instead of the
// default rotating file.
func InitLogger(cfg *LoggingConfig, toStderr bool) (*slog.Logger, error) {
	logLevel.Set(parseLogLevel(cfg.Level))

	if cfg.File == "" && !toStderr {
		cfg.File = filepath.Join(getStateDir(), appName, appName+".log")
	}

	// Create log file directory if it doesn't exist
	if cfg.File != "" {
		logDir := filepath.Dir(cfg.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// Configure log rotation
	var writer io.Writer
	if cfg.File != "" {
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
	} else {
		writer = os.Stderr
	}

	logger := slog.New(newHandler(writer, cfg.Format, cfg.Color && cfg.File == ""))
	slog.SetDefault(logger)

	return logger, nil
}

func newHandler(w io.Writer, format string, color bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLevel}

	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	if color {
		return slog.NewTextHandler(&colorWriter{w: w}, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// colorWriter colorizes the level=... token of each text-handler line.
// slog.TextHandler issues exactly one Write per record.
type colorWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var levelColors = map[string]string{
	"level=DEBUG": "\033[90m", // gray
	"level=INFO":  "\033[32m", // green
	"level=WARN":  "\033[33m", // yellow
	"level=ERROR": "\033[31m", // red
}

func (c *colorWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := p
	for token, color := range levelColors {
		idx := bytes.Index(line, []byte(token))
		if idx < 0 {
			continue
		}
		var buf bytes.Buffer
		buf.Grow(len(line) + 10)
		buf.Write(line[:idx])
		buf.WriteString(color)
		buf.WriteString(token)
		buf.WriteString("\033[0m")
		buf.Write(line[idx+len(token):])
		line = buf.Bytes()
		break
	}

	if _, err := c.w.Write(line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// parseLogLevel parses a log level string
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
