package exports

// Bundle is a pre-configured, ordered set of related exports.
type Bundle interface {
	// Exports returns the bundle's entries in registration order.
	Exports() []Export
}

// staticBundle implements Bundle with a fixed list of exports.
type staticBundle struct {
	exports []Export
}

func (b *staticBundle) Exports() []Export {
	return b.exports
}

// NewBundle returns a Bundle over a fixed list of exports.
func NewBundle(list ...Export) Bundle {
	return &staticBundle{exports: list}
}

// compositeBundle concatenates multiple bundles.
type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Exports() []Export {
	var result []Export
	for _, bundle := range b.bundles {
		result = append(result, bundle.Exports()...)
	}
	return result
}

// Compose returns a Bundle holding the entries of every bundle, in order.
// Duplicate names are reported when the bundle is registered.
func Compose(bundles ...Bundle) Bundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all exports from a bundle, in order.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, e := range bundle.Exports() {
			if err := b.add(e.Name, e.Value); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
