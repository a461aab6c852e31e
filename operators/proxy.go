package operators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
	"github.com/symbridge-dev/symbridge-go/exports"
)

// Export names of the two operators.
const (
	TypeofName = "typeof"
	NewName    = "new"
)

const typeofSource = `'use strict'; (
function bridgeTypeof(value)
{
  return typeof value;
}
)`

// The factory is bound to one constructor; the returned function spreads its
// own arguments so that zero host arguments construct with an empty list.
const newFactorySource = `'use strict'; (
function bridgeNewFactory(ctor)
{
  return function construct(...args) {
    return new ctor(...args);
  };
}
)`

// DefaultEvalOptions is used to compile the operator closures.
var DefaultEvalOptions = entities.EvalOptions{
	Filename: "symbridge/operators.js",
	FromHost: true,
}

// Factory constructs a new script object per call, forwarding its arguments
// to the bound constructor.
type Factory func(args ...any) (ports.Value, error)

// ProxyOption configures a Proxy.
type ProxyOption func(*Proxy)

// WithEvalOptions sets the evaluation options used to compile the operator
// closures and to resolve constructor source text.
func WithEvalOptions(opts entities.EvalOptions) ProxyOption {
	return func(p *Proxy) {
		p.evalOpts = opts
	}
}

// WithLogger sets the proxy logger.
func WithLogger(logger *slog.Logger) ProxyOption {
	return func(p *Proxy) {
		p.logger = logger
	}
}

// Proxy holds the compiled operator closures for one engine.
type Proxy struct {
	engine     ports.Engine
	typeofFn   ports.Value
	newFactory ports.Value
	logger     *slog.Logger
	evalOpts   entities.EvalOptions
}

var _ exports.Bundle = (*Proxy)(nil)

// NewProxy compiles both operator closures in engine.
func NewProxy(engine ports.Engine, opts ...ProxyOption) (*Proxy, error) {
	if engine == nil {
		return nil, fmt.Errorf("operators: engine is nil")
	}
	p := &Proxy{
		engine:   engine,
		evalOpts: DefaultEvalOptions,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	var err error
	if p.typeofFn, err = engine.Evaluate(typeofSource, p.evalOpts); err != nil {
		return nil, fmt.Errorf("compiling typeof operator: %w", err)
	}
	if p.newFactory, err = engine.Evaluate(newFactorySource, p.evalOpts); err != nil {
		return nil, fmt.Errorf("compiling new operator: %w", err)
	}
	return p, nil
}

// Typeof marshals v into the engine and returns the engine's own typeof tag for it.
// Script handles are passed through unchanged.
func (p *Proxy) Typeof(v any) (string, error) {
	result, err := p.engine.Call(p.typeofFn, v)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

// New resolves ctor and returns a Factory bound to it. Source text is evaluated
// exactly once, here; a resolved handle is used as is unless it is a script
// string, which is evaluated like source text. The resolved value must be a
// function.
func (p *Proxy) New(ctor Constructor) (Factory, error) {
	target, err := p.resolve(ctor)
	if err != nil {
		return nil, err
	}

	tag, err := p.Typeof(target)
	if err != nil {
		return nil, err
	}
	if tag == entities.TypeString && !ctor.IsSource() {
		if target, err = p.resolve(Source(target.String())); err != nil {
			return nil, err
		}
		if tag, err = p.Typeof(target); err != nil {
			return nil, err
		}
	}
	if tag != entities.TypeFunction {
		return nil, &bridgeerrors.EvaluationError{
			Phase:    bridgeerrors.PhaseCall,
			FromHost: true,
			Err:      fmt.Errorf("TypeError: %s resolved to %s, not a constructor", ctor, tag),
		}
	}

	construct, err := p.engine.Call(p.newFactory, target)
	if err != nil {
		return nil, err
	}

	return func(args ...any) (ports.Value, error) {
		return p.engine.Call(construct, args...)
	}, nil
}

func (p *Proxy) resolve(ctor Constructor) (ports.Value, error) {
	switch ctor.kind {
	case ctorSource:
		p.logger.Debug("operators: resolving constructor source", "source", ctor.source)
		return p.engine.Evaluate(ctor.source, p.evalOpts)
	case ctorResolved:
		if ctor.handle == nil {
			return nil, &bridgeerrors.MarshalError{
				Direction: bridgeerrors.ToScript,
				Err:       fmt.Errorf("constructor handle is nil"),
			}
		}
		return ctor.handle, nil
	default:
		return nil, &bridgeerrors.MarshalError{
			Direction: bridgeerrors.ToScript,
			Err:       fmt.Errorf("constructor is neither source nor handle"),
		}
	}
}

// Exports implements exports.Bundle. The typeof export takes exactly one
// argument; the new export takes one constructor argument and returns a
// HostFunc that constructs on every call.
func (p *Proxy) Exports() []exports.Export {
	return []exports.Export{
		{Name: TypeofName, Value: exports.HostFunc(p.typeofExport)},
		{Name: NewName, Value: exports.HostFunc(p.newExport)},
	}
}

func (p *Proxy) typeofExport(_ context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("typeof expects 1 argument, got %d", len(args))
	}
	return p.Typeof(args[0])
}

func (p *Proxy) newExport(_ context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("new expects 1 argument, got %d", len(args))
	}
	ctor, err := CtorOf(args[0])
	if err != nil {
		return nil, err
	}
	factory, err := p.New(ctor)
	if err != nil {
		return nil, err
	}
	return exports.HostFunc(func(_ context.Context, args ...any) (any, error) {
		return factory(args...)
	}), nil
}
