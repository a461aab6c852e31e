package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
	"github.com/symbridge-dev/symbridge-go/exports"
	"github.com/symbridge-dev/symbridge-go/mirror"
	"github.com/symbridge-dev/symbridge-go/operators"
)

// Module is the host side of the bridge: the operators, the host exports and
// the mirrored script globals, in that order.
type Module struct {
	registry *exports.Registry
	proxy    *operators.Proxy
	report   entities.MirrorReport
}

// New builds a Module over engine. The global scope is mirrored exactly once;
// globals defined afterwards are not picked up.
func New(ctx context.Context, engine ports.Engine, opts ...Option) (*Module, error) {
	if engine == nil {
		return nil, fmt.Errorf("bridge: engine is nil")
	}
	cfg := &moduleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	if err := preload(engine, cfg); err != nil {
		return nil, err
	}

	proxyOpts := []operators.ProxyOption{operators.WithLogger(cfg.logger)}
	mirrorOpts := []mirror.Option{mirror.WithLogger(cfg.logger)}
	if cfg.evalOpts != nil {
		proxyOpts = append(proxyOpts, operators.WithEvalOptions(*cfg.evalOpts))
		mirrorOpts = append(mirrorOpts, mirror.WithEvalOptions(*cfg.evalOpts))
	}

	proxy, err := operators.NewProxy(engine, proxyOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create operator proxy: %w", err)
	}

	middleware := append([]exports.Middleware{
		exports.PanicRecoveryMiddleware(),
		exports.LoggingMiddleware(cfg.logger),
	}, cfg.middleware...)

	base, err := exports.NewRegistry(
		exports.WithMiddleware(middleware...),
		exports.WithBundle(proxy),
		exports.WithExports(cfg.hostExports...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create export registry: %w", err)
	}

	m, err := mirror.New(engine, append(mirrorOpts, cfg.mirrorOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create global mirror: %w", err)
	}
	mirrored, report, err := m.Collect(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror globals: %w", err)
	}

	registry, err := base.Extend(exports.WithExports(mirrored...))
	if err != nil {
		return nil, fmt.Errorf("failed to register mirrored globals: %w", err)
	}

	cfg.logger.InfoContext(ctx, "bridge: module ready",
		"exports", registry.Len(),
		"mirrored", len(report.Mirrored),
		"skipped", len(report.Skipped))

	return &Module{registry: registry, proxy: proxy, report: report}, nil
}

func preload(engine ports.Engine, cfg *moduleConfig) error {
	opts := entities.EvalOptions{FromHost: true}
	if cfg.evalOpts != nil {
		opts = *cfg.evalOpts
	}
	for _, path := range cfg.preload {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read preload script: %w", err)
		}
		if _, err := engine.Evaluate(string(src), opts.WithFilename(path)); err != nil {
			return fmt.Errorf("failed to evaluate preload script: %w", err)
		}
		cfg.logger.Debug("bridge: preloaded script", "path", path)
	}
	return nil
}

// Lookup returns the export registered under name.
func (m *Module) Lookup(name string) (any, bool) {
	return m.registry.Lookup(name)
}

// Exports returns every export name in registration order.
func (m *Module) Exports() []string {
	return m.registry.Names()
}

// Invoke calls the host function exported under name.
func (m *Module) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	return m.registry.Invoke(ctx, name, args...)
}

// Typeof returns the script typeof tag of v.
func (m *Module) Typeof(v any) (string, error) {
	return m.proxy.Typeof(v)
}

// New returns a factory constructing objects of ctor, which is either
// constructor source text or a script handle.
func (m *Module) New(ctor any) (operators.Factory, error) {
	c, err := operators.CtorOf(ctor)
	if err != nil {
		return nil, err
	}
	return m.proxy.New(c)
}

// Report returns the summary of the mirroring pass.
func (m *Module) Report() entities.MirrorReport {
	return m.report
}

// Registry returns the underlying export registry.
func (m *Module) Registry() *exports.Registry {
	return m.registry
}
