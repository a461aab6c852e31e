package mirror

import (
	"log/slog"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
)

// Defaults applied by New.
const (
	DefaultEvaluatorName = "eval"
	DefaultPrivatePrefix = "_"
)

// DefaultEvalOptions is used to compile the mirror helpers.
var DefaultEvalOptions = entities.EvalOptions{
	Filename: "symbridge/mirror.js",
	FromHost: true,
}

// Option configures a Mirror.
type Option func(*mirrorConfig)

type mirrorConfig struct {
	logger        *slog.Logger
	exclude       map[string]struct{}
	evaluatorName string
	privatePrefix string
	evalOpts      entities.EvalOptions
	builtinsOnly  bool
}

func defaultMirrorConfig() mirrorConfig {
	return mirrorConfig{
		evaluatorName: DefaultEvaluatorName,
		privatePrefix: DefaultPrivatePrefix,
		evalOpts:      DefaultEvalOptions,
		exclude:       make(map[string]struct{}),
	}
}

// WithEvaluatorName sets the global treated as the evaluator entry point.
// An empty name disables the filter.
func WithEvaluatorName(name string) Option {
	return func(c *mirrorConfig) {
		c.evaluatorName = name
	}
}

// WithPrivatePrefix sets the prefix marking private globals.
// An empty prefix disables the filter.
func WithPrivatePrefix(prefix string) Option {
	return func(c *mirrorConfig) {
		c.privatePrefix = prefix
	}
}

// WithExclude adds names that are never mirrored.
func WithExclude(names ...string) Option {
	return func(c *mirrorConfig) {
		for _, name := range names {
			c.exclude[name] = struct{}{}
		}
	}
}

// WithBuiltinsOnly restricts mirroring to non-enumerable globals, i.e. the
// engine built-ins, dropping everything scripts declared.
func WithBuiltinsOnly(enabled bool) Option {
	return func(c *mirrorConfig) {
		c.builtinsOnly = enabled
	}
}

// WithLogger sets the mirror logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *mirrorConfig) {
		c.logger = logger
	}
}

// WithEvalOptions sets the evaluation options used to compile the helpers.
func WithEvalOptions(opts entities.EvalOptions) Option {
	return func(c *mirrorConfig) {
		c.evalOpts = opts
	}
}
