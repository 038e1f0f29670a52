package gizmo

import (
	"log/slog"

	"github.com/gogpu/gizmo/backend"
)

// Option configures a Gizmos2D or Gizmos3D facade.
//
// Example:
//
//	g2 := gizmo.NewGizmos2D(
//	    gizmo.WithSurfaces(canvas),
//	    gizmo.WithConfig(cfg),
//	)
type Option func(*options)

// options holds optional configuration for facade creation.
type options struct {
	config   Config
	logger   *slog.Logger
	surfaces backend.SurfaceFactory
	viewport backend.Viewport
}

// defaultOptions returns the default facade options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		logger: nil, // Resolved through Logger() at use time
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the facade logger, falling back to the package logger.
func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithConfig sets the defaults contexts start every frame with.
// The config is expected to be valid; see Config.Validate.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets a logger for one facade instead of the package logger
// configured by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSurfaces sets the factory 2D contexts create their backing surface
// from. Without it every 2D context is unavailable and ignores draw calls.
func WithSurfaces(f backend.SurfaceFactory) Option {
	return func(o *options) {
		o.surfaces = f
	}
}

// WithViewport sets the viewport 3D contexts submit geometry to. Without
// it every 3D context is unavailable and ignores draw calls.
func WithViewport(v backend.Viewport) Option {
	return func(o *options) {
		o.viewport = v
	}
}
