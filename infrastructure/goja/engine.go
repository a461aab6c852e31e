package goja

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
)

// DefaultFilename is used for diagnostics when neither the caller nor the
// engine configuration names the evaluated source.
const DefaultFilename = "<symbridge>"

// EngineConfig holds configuration for the goja engine adapter.
type EngineConfig struct {
	// Logger receives debug records for evaluations (default: slog.Default()).
	Logger *slog.Logger

	// DefaultFilename is used when EvalOptions.Filename is empty.
	DefaultFilename string
}

// EngineOption configures the adapter.
type EngineOption func(*EngineConfig)

// WithDefaultFilename sets the diagnostic filename used when none is given.
func WithDefaultFilename(name string) EngineOption {
	return func(c *EngineConfig) {
		c.DefaultFilename = name
	}
}

// WithLogger sets the logger used by the adapter.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(c *EngineConfig) {
		c.Logger = logger
	}
}

func defaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultFilename: DefaultFilename,
	}
}

// Engine implements ports.Engine on top of a goja runtime.
type Engine struct {
	rt     *goja.Runtime
	config EngineConfig
}

var _ ports.Engine = (*Engine)(nil)

// NewEngine wraps rt. A nil runtime is replaced by a fresh goja.New().
func NewEngine(rt *goja.Runtime, opts ...EngineOption) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if rt == nil {
		rt = goja.New()
	}
	return &Engine{rt: rt, config: cfg}
}

// Runtime returns the wrapped goja runtime.
func (e *Engine) Runtime() *goja.Runtime {
	return e.rt
}

// Evaluate compiles source under the configured filename and runs it in the
// global scope. The completion value of the script is returned.
func (e *Engine) Evaluate(source string, opts entities.EvalOptions) (result ports.Value, err error) {
	filename := opts.Filename
	if filename == "" {
		filename = e.config.DefaultFilename
	}

	program, err := goja.Compile(filename, source, false)
	if err != nil {
		return nil, &bridgeerrors.EvaluationError{
			Phase:    bridgeerrors.PhaseCompile,
			Filename: filename,
			FromHost: opts.FromHost,
			Err:      err,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = evaluationFromPanic(r, bridgeerrors.PhaseRun, filename, opts.FromHost)
		}
	}()

	e.config.Logger.Debug("goja: evaluating source", "filename", filename, "from_host", opts.FromHost)

	v, err := e.rt.RunProgram(program)
	if err != nil {
		return nil, evaluationFromError(err, bridgeerrors.PhaseRun, filename, opts.FromHost)
	}
	return v, nil
}

// Call invokes fn with undefined as receiver. Every argument is marshaled
// before the call; the first argument that cannot be marshaled aborts it.
func (e *Engine) Call(fn ports.Value, args ...any) (result ports.Value, err error) {
	target, err := e.toScript(fn)
	if err != nil {
		return nil, err
	}
	callable, ok := goja.AssertFunction(target)
	if !ok {
		return nil, &bridgeerrors.EvaluationError{
			Phase: bridgeerrors.PhaseCall,
			Err:   fmt.Errorf("TypeError: %s is not a function", describe(target)),
		}
	}

	scriptArgs := make([]goja.Value, len(args))
	for i, arg := range args {
		v, err := e.toScript(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		scriptArgs[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = evaluationFromPanic(r, bridgeerrors.PhaseCall, "", false)
		}
	}()

	v, err := callable(goja.Undefined(), scriptArgs...)
	if err != nil {
		return nil, evaluationFromError(err, bridgeerrors.PhaseCall, "", false)
	}
	return v, nil
}

// ToHost converts v into a host value. Primitives are exported to Go values and
// undefined becomes nil. Null, objects, functions and symbols are returned
// unchanged as handles, so null stays distinct from undefined.
func (e *Engine) ToHost(v ports.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	gv, ok := v.(goja.Value)
	if !ok {
		return nil, &bridgeerrors.MarshalError{
			Direction: bridgeerrors.ToHost,
			GoType:    fmt.Sprintf("%T", v),
			Err:       fmt.Errorf("value does not belong to a goja engine"),
		}
	}
	if goja.IsUndefined(gv) {
		return nil, nil
	}
	if goja.IsNull(gv) {
		return gv, nil
	}
	switch gv.(type) {
	case *goja.Object, *goja.Symbol:
		return gv, nil
	}
	return gv.Export(), nil
}

// evaluationFromError converts an error returned by goja into an EvaluationError.
func evaluationFromError(err error, phase, filename string, fromHost bool) error {
	evalErr := &bridgeerrors.EvaluationError{
		Phase:    phase,
		Filename: filename,
		FromHost: fromHost,
		Err:      err,
	}
	var ex *goja.Exception
	if errors.As(err, &ex) {
		evalErr.Stack = ex.String()
	}
	return evalErr
}

// evaluationFromPanic converts a value recovered while script code was running.
// Host callbacks may panic with arbitrary values; those never escape the adapter.
func evaluationFromPanic(r any, phase, filename string, fromHost bool) error {
	var err error
	switch v := r.(type) {
	case *goja.Exception:
		return evaluationFromError(v, phase, filename, fromHost)
	case error:
		err = fmt.Errorf("host panic: %w", v)
	default:
		err = fmt.Errorf("host panic: %v", v)
	}
	return &bridgeerrors.EvaluationError{
		Phase:    phase,
		Filename: filename,
		FromHost: fromHost,
		Err:      err,
	}
}

func describe(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
