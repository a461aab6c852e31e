package ports

import "github.com/symbridge-dev/symbridge-go/domain/entities"

// Value is an opaque handle to a value living in the script engine's heap.
// Its lifetime is managed by the engine's collector; holders never own it.
type Value interface {
	// Export returns the engine's default host representation of the value.
	Export() any

	// String returns the script-side string conversion of the value.
	String() string
}

// Engine is the capability the bridge needs from an embedded script engine.
//
// Implementations are not required to be safe for concurrent use. Callers that
// share an Engine across goroutines must serialize access themselves.
type Engine interface {
	// Evaluate compiles and runs source in the engine's global scope and returns
	// the completion value. Engine errors are reported as *errors.EvaluationError.
	Evaluate(source string, opts entities.EvalOptions) (Value, error)

	// Call invokes fn with the given host arguments, each marshaled into the
	// engine. Unrepresentable arguments fail with *errors.MarshalError before
	// the call is made; exceptions surface as *errors.EvaluationError.
	Call(fn Value, args ...any) (Value, error)

	// ToHost converts v into a host value. Primitives become Go values; objects,
	// functions and symbols are returned as the Value handle itself.
	ToHost(v Value) (any, error)
}
