package bridge

import (
	"log/slog"

	"github.com/symbridge-dev/symbridge-go/config"
	"github.com/symbridge-dev/symbridge-go/domain/entities"
	"github.com/symbridge-dev/symbridge-go/exports"
	"github.com/symbridge-dev/symbridge-go/mirror"
)

// Option configures New.
type Option func(*moduleConfig)

type moduleConfig struct {
	logger      *slog.Logger
	evalOpts    *entities.EvalOptions
	hostExports []exports.Export
	middleware  []exports.Middleware
	mirrorOpts  []mirror.Option
	preload     []string
}

// WithLogger sets the logger shared by the operators, the mirror and the
// registry logging middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *moduleConfig) {
		c.logger = logger
	}
}

// WithEvalOptions sets the options used for every evaluation the bridge issues.
func WithEvalOptions(opts entities.EvalOptions) Option {
	return func(c *moduleConfig) {
		c.evalOpts = &opts
	}
}

// WithHostExport adds a host value or HostFunc after the operators.
// Mirrored globals with the same name are dropped.
func WithHostExport(name string, value any) Option {
	return func(c *moduleConfig) {
		c.hostExports = append(c.hostExports, exports.Export{Name: name, Value: value})
	}
}

// WithMiddleware wraps every host function of the module.
func WithMiddleware(mw ...exports.Middleware) Option {
	return func(c *moduleConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithMirrorOptions passes options to the global mirror.
func WithMirrorOptions(opts ...mirror.Option) Option {
	return func(c *moduleConfig) {
		c.mirrorOpts = append(c.mirrorOpts, opts...)
	}
}

// WithPreload evaluates the script files at paths, in order, before mirroring.
func WithPreload(paths ...string) Option {
	return func(c *moduleConfig) {
		c.preload = append(c.preload, paths...)
	}
}

// WithConfig applies a loaded configuration.
func WithConfig(cfg config.Config) Option {
	return func(c *moduleConfig) {
		c.evalOpts = &entities.EvalOptions{Filename: cfg.Filename, FromHost: cfg.FromHost}
		c.mirrorOpts = append(c.mirrorOpts,
			mirror.WithEvaluatorName(cfg.EvaluatorName),
			mirror.WithPrivatePrefix(cfg.PrivatePrefix),
			mirror.WithExclude(cfg.Exclude...),
			mirror.WithBuiltinsOnly(cfg.BuiltinsOnly),
		)
		c.preload = append(c.preload, cfg.Preload...)
	}
}
