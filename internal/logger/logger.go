package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"

	"storefront/internal/config"
)

// Logger defines the logging interface used across services. Args are slog key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New builds a console or rotating file logger from cfg.
func New(cfg config.LogConfig) (Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	switch cfg.Type {
	case config.LogTypeConsole:
		return FromSlog(slog.New(slog.NewTextHandler(os.Stderr, opts))), nil
	case config.LogTypeFile:
		writer := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
		return FromSlog(slog.New(slog.NewJSONHandler(writer, opts))), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", cfg.Type)
	}
}

// FromSlog wraps an existing slog logger.
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

// Nop discards everything; handy in tests.
func Nop() Logger {
	return FromSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
