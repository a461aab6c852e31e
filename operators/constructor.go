package operators

import (
	"fmt"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
)

// Constructor identifies the constructor handed to New: either script source
// that evaluates to a constructor, or an already resolved handle.
type Constructor struct {
	handle ports.Value
	source string
	kind   ctorKind
}

type ctorKind int

const (
	ctorInvalid ctorKind = iota
	ctorSource
	ctorResolved
)

// Source returns a Constructor resolved by evaluating src as a script expression.
func Source(src string) Constructor {
	return Constructor{kind: ctorSource, source: src}
}

// Resolved returns a Constructor wrapping an existing script handle.
func Resolved(handle ports.Value) Constructor {
	return Constructor{kind: ctorResolved, handle: handle}
}

// IsSource reports whether c still needs evaluation.
func (c Constructor) IsSource() bool {
	return c.kind == ctorSource
}

// String describes the constructor for diagnostics.
func (c Constructor) String() string {
	switch c.kind {
	case ctorSource:
		return fmt.Sprintf("source %q", c.source)
	case ctorResolved:
		return "handle"
	default:
		return "invalid constructor"
	}
}

// CtorOf classifies a raw host argument. Go strings are source text and script
// handles are resolved. Proxy.New re-classifies a handle to a script string as
// source text.
func CtorOf(v any) (Constructor, error) {
	switch tv := v.(type) {
	case Constructor:
		return tv, nil
	case string:
		return Source(tv), nil
	case ports.Value:
		return Resolved(tv), nil
	}
	return Constructor{}, &bridgeerrors.MarshalError{
		Direction: bridgeerrors.ToScript,
		GoType:    fmt.Sprintf("%T", v),
		Err:       fmt.Errorf("constructor must be source text or a script handle"),
	}
}
