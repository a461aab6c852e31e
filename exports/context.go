package exports

import (
	"context"
)

// CallContext wraps a standard context.Context with export-specific helpers.
// It exposes the invoked export name and lets middleware share call-scoped
// values without growing the context chain.
type CallContext interface {
	context.Context

	// ExportName returns the name of the export being invoked.
	ExportName() string

	// SetValue stores a call-scoped value. Unlike context.WithValue,
	// this mutates the existing CallContext.
	SetValue(key, value any)

	// GetValue retrieves a call-scoped value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

type callContext struct {
	context.Context
	values map[any]any
	name   string
}

// NewCallContext creates a new CallContext wrapping the given context.
func NewCallContext(ctx context.Context, name string) CallContext {
	return &callContext{
		Context: ctx,
		name:    name,
		values:  make(map[any]any),
	}
}

func (c *callContext) ExportName() string {
	return c.name
}

func (c *callContext) SetValue(key, value any) {
	c.values[key] = value
}

func (c *callContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// CallContextFrom extracts a CallContext from ctx.
// If ctx is already a CallContext for the same export it is returned directly;
// otherwise a new CallContext wrapping ctx is created.
func CallContextFrom(ctx context.Context, name string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.ExportName() == name {
		return cc
	}
	return NewCallContext(ctx, name)
}
