package exports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBundle(t *testing.T) {
	b := NewBundle(Export{Name: "a", Value: 1}, Export{Name: "b", Value: 2})
	require.Len(t, b.Exports(), 2)
	assert.Equal(t, "a", b.Exports()[0].Name)
}

func TestCompose(t *testing.T) {
	b := Compose(
		NewBundle(Export{Name: "typeof", Value: 1}, Export{Name: "new", Value: 2}),
		NewBundle(Export{Name: "VERSION", Value: "1"}),
	)

	var names []string
	for _, e := range b.Exports() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"typeof", "new", "VERSION"}, names)
}

func TestWithBundle(t *testing.T) {
	reg, err := NewRegistry(
		WithBundle(NewBundle(Export{Name: "x", Value: 1}, Export{Name: "y", Value: 2})),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, reg.Names())
}

func TestWithBundle_Duplicate(t *testing.T) {
	_, err := NewRegistry(
		WithBundle(Compose(
			NewBundle(Export{Name: "x", Value: 1}),
			NewBundle(Export{Name: "x", Value: 2}),
		)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate export name")
}

func TestWithExports(t *testing.T) {
	reg, err := NewRegistry(
		WithExports(Export{Name: "a", Value: 1}),
		WithExports(Export{Name: "b", Value: 2}, Export{Name: "c", Value: 3}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
}
