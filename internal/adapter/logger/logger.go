package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
)

// LoggerAdapter implements ports.LoggerPort on top of slog with a JSON
// handler. Non-production environments log at debug level.
type LoggerAdapter struct {
	log *slog.Logger
}

func NewLoggerAdapter(env string) *LoggerAdapter {
	return NewLoggerAdapterWithOutput(env, os.Stdout)
}

func NewLoggerAdapterWithOutput(env string, out io.Writer) *LoggerAdapter {
	level := slog.LevelDebug
	if env == "production" {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	return &LoggerAdapter{
		log: slog.New(handler).With("service", "city-bikes"),
	}
}

func (l *LoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, args(fields)...)
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, args(fields)...)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, args(fields)...)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, args(fields)...)
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}

var _ ports.LoggerPort = (*LoggerAdapter)(nil)
