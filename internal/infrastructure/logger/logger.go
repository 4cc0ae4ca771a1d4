package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Config selects the level and output format of the service logger.
type Config struct {
	Level  string // trace, debug, info, warn, error; anything else means info
	Format string // json or console
	// Service is stamped on every line; empty means "fundledger".
	Service string
}

func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds the logger over out. The CLI uses it with stderr.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	service := cfg.Service
	if service == "" {
		service = "fundledger"
	}

	ctx := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service)
	if cfg.Level == "debug" || cfg.Level == "trace" {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}

// FromContext returns base enriched with the chi request id, when present.
func FromContext(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return base.With().Str("request_id", reqID).Logger()
	}

	return base
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
