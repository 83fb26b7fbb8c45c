package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"campaignhub/internal/config/configs"
)

var defaultLogger *slog.Logger

// Initialize builds the process logger from cfg and installs it as the slog
// default.
func Initialize(cfg configs.Logger) (*slog.Logger, error) {
	var writer io.Writer = os.Stdout

	if cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
			return nil, err
		}

		writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	defaultLogger = New(writer, cfg)
	slog.SetDefault(defaultLogger)

	return defaultLogger, nil
}

// New returns a logger writing to w with cfg's level and format.
func New(w io.Writer, cfg configs.Logger) *slog.Logger {
	level := cfg.SlogLevel()
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if cfg.SlogFormat() == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func Get() *slog.Logger {
	if defaultLogger == nil {
		return slog.Default()
	}
	return defaultLogger
}
