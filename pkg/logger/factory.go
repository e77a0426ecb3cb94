package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for machine consumption.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for local runs.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format. Panics for invalid formats so a bad setting
// fails at startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets the output destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// Unknown names fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

type config struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// defaultConfig writes text at info level to stderr, keeping stdout free for
// command results.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatText,
		output: os.Stderr,
	}
}

// New creates a configured slog.Logger.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	return slog.New(handler)
}
