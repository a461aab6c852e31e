package goja

import (
	"fmt"
	"reflect"

	"github.com/dop251/goja"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
)

// toScript marshals a host value into the engine.
//
// nil is undefined and goja values pass through unchanged, which keeps the
// conversion symmetric with ToHost. Handles from other engine implementations
// and Go kinds with no script counterpart are rejected with a MarshalError.
func (e *Engine) toScript(v any) (result goja.Value, err error) {
	switch tv := v.(type) {
	case nil:
		return goja.Undefined(), nil
	case goja.Value:
		return tv, nil
	case ports.Value:
		return nil, &bridgeerrors.MarshalError{
			Direction: bridgeerrors.ToScript,
			GoType:    fmt.Sprintf("%T", v),
			Err:       fmt.Errorf("handle belongs to a different engine"),
		}
	}

	if err := checkRepresentable(v); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &bridgeerrors.MarshalError{
				Direction: bridgeerrors.ToScript,
				GoType:    fmt.Sprintf("%T", v),
				Err:       fmt.Errorf("conversion panicked: %v", r),
			}
		}
	}()

	return e.rt.ToValue(v), nil
}

// checkRepresentable rejects Go kinds the engine could only wrap as inert
// reflection objects.
func checkRepresentable(v any) error {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	var reason string
	switch t.Kind() {
	case reflect.Chan:
		reason = "channels have no script representation"
	case reflect.Complex64, reflect.Complex128:
		reason = "complex numbers have no script representation"
	case reflect.UnsafePointer:
		reason = "unsafe pointers cannot cross the engine boundary"
	default:
		return nil
	}
	return &bridgeerrors.MarshalError{
		Direction: bridgeerrors.ToScript,
		GoType:    t.String(),
		Err:       fmt.Errorf("%s", reason),
	}
}
