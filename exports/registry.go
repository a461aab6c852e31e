package exports

import (
	"context"
	"fmt"
	"sort"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
)

// Export is a single named host symbol.
type Export struct {
	Value any
	Name  string
}

// Registry is an immutable, ordered collection of named host exports.
// Once created via NewRegistry, entries cannot be added or removed, which keeps
// lookups lock-free. Extend derives a new registry instead.
type Registry struct {
	values     map[string]any
	names      []string // registration order
	middleware []Middleware
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	values     map[string]any
	names      []string
	middleware []Middleware
	errors     []error
}

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any name is empty or registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(proxy),
//	    WithValue("VERSION", "1.0"),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	return build(&registryBuilder{values: make(map[string]any)}, opts)
}

// Extend returns a new Registry holding every entry of r followed by the
// entries added by opts. Middleware already registered on r also wraps the
// new host functions. r itself is left unchanged.
func (r *Registry) Extend(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		values:     make(map[string]any, len(r.values)),
		names:      make([]string, 0, len(r.names)),
		middleware: append([]Middleware(nil), r.middleware...),
	}
	// Copied entries are already wrapped; they are re-added unwrapped below.
	for _, name := range r.names {
		b.names = append(b.names, name)
		b.values[name] = unwrapped(r.values[name])
	}
	return build(b, opts)
}

func build(b *registryBuilder, opts []RegistryOption) (*Registry, error) {
	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	// Apply middleware chain to all host functions (FIFO order)
	values := make(map[string]any, len(b.values))
	for name, v := range b.values {
		fn, ok := v.(HostFunc)
		if !ok {
			values[name] = v
			continue
		}
		wrapped := fn
		for i := len(b.middleware) - 1; i >= 0; i-- {
			wrapped = b.middleware[i](wrapped)
		}
		values[name] = &boundFunc{raw: fn, wrapped: withCallContext(name, wrapped)}
	}

	names := make([]string, len(b.names))
	copy(names, b.names)

	return &Registry{
		values:     values,
		names:      names,
		middleware: b.middleware,
	}, nil
}

// Lookup returns the value exported under name. Host functions are returned
// with their middleware chain applied and always run under a CallContext.
func (r *Registry) Lookup(name string) (any, bool) {
	v, ok := r.values[name]
	if !ok {
		return nil, false
	}
	if bf, isFunc := v.(*boundFunc); isFunc {
		return bf.wrapped, true
	}
	return v, true
}

// Has returns true if name is exported.
func (r *Registry) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len returns the number of exports.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns every exported name in registration order.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Sorted returns every exported name in lexical order.
func (r *Registry) Sorted() []string {
	result := r.Names()
	sort.Strings(result)
	return result
}

// Invoke dispatches a call to the host function exported under name.
func (r *Registry) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	v, ok := r.values[name]
	if !ok {
		return nil, &bridgeerrors.LookupError{Name: name}
	}
	bf, ok := v.(*boundFunc)
	if !ok {
		return nil, &bridgeerrors.LookupError{Name: name, NotCallable: true}
	}
	return bf.wrapped(ctx, args...)
}

// boundFunc keeps the unwrapped function next to its middleware chain so that
// Extend can re-wrap without stacking middleware twice.
type boundFunc struct {
	raw     HostFunc
	wrapped HostFunc
}

func withCallContext(name string, fn HostFunc) HostFunc {
	return func(ctx context.Context, args ...any) (any, error) {
		return fn(CallContextFrom(ctx, name), args...)
	}
}

func unwrapped(v any) any {
	if bf, ok := v.(*boundFunc); ok {
		return bf.raw
	}
	return v
}

// add registers a value under name.
// Returns an error if the name is empty or already registered.
func (b *registryBuilder) add(name string, value any) error {
	if name == "" {
		return fmt.Errorf("export name cannot be empty")
	}
	if _, exists := b.values[name]; exists {
		return fmt.Errorf("duplicate export name: %q", name)
	}
	b.values[name] = value
	b.names = append(b.names, name)
	return nil
}

// WithValue exports a plain value under name.
func WithValue(name string, value any) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.add(name, value); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithFunc exports a host function under name.
func WithFunc(name string, fn HostFunc) RegistryOption {
	return func(b *registryBuilder) {
		if fn == nil {
			b.errors = append(b.errors, fmt.Errorf("host function %q is nil", name))
			return
		}
		if err := b.add(name, fn); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithExports registers each export in order.
func WithExports(list ...Export) RegistryOption {
	return func(b *registryBuilder) {
		for _, e := range list {
			if err := b.add(e.Name, e.Value); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
