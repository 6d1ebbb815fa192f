// Package logging builds the slog.Logger used across the application.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

// TimeFormat is the timestamp layout of the console handler.
const TimeFormat = "2006-01-02 15:04:05"

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w, and to Fluent when cfg.Fluent.Enabled.
// The returned close function flushes and closes the Fluent connection, if any.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, func() error, error) {
	level := ParseLevel(cfg.Level)

	var console slog.Handler
	if cfg.Format == "json" {
		console = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource})
	} else {
		console = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  cfg.AddSource,
			TimeFormat: TimeFormat,
			NoColor:    cfg.NoColor,
		})
	}

	if !cfg.Fluent.Enabled {
		return slog.New(console), func() error { return nil }, nil
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Fluent.Host,
		FluentPort: cfg.Fluent.Port,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating fluent client: %w", err)
	}

	handler := NewFanout(console, NewFluentHandler(client, cfg.Fluent.Tag, level))
	return slog.New(handler), client.Close, nil
}
