// Package svcctx provides service context for dependency injection via context.
// Commands extract what they need via the individual extractors.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/papercrane/reflow/internal/config"
	"github.com/papercrane/reflow/internal/convert"
	"github.com/papercrane/reflow/internal/home"
)

// Services holds all core services that flow through context.
type Services struct {
	Config    *config.Manager
	Logger    *slog.Logger
	Home      *home.Dir
	Converter convert.Converter
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// ConverterFrom extracts the script converter from context.
func ConverterFrom(ctx context.Context) convert.Converter {
	if s := ServicesFrom(ctx); s != nil {
		return s.Converter
	}
	return nil
}
