package operators

import (
	"context"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
	"github.com/symbridge-dev/symbridge-go/exports"
	"github.com/symbridge-dev/symbridge-go/internal/testutil"
)

const fixtures = `
function Foo() {
  this.argc = arguments.length;
  this.args = Array.prototype.slice.call(arguments);
}
function Thrower() { throw new Error('ctor failed'); }
class Point { constructor(x, y) { this.x = x; this.y = y; } }
var notCallable = 42;
var ctorName = 'Foo';
`

func newProxy(t *testing.T) (*Proxy, ports.Engine) {
	t.Helper()
	e := testutil.NewEngine(t, fixtures)
	p, err := NewProxy(e, WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	return p, e
}

func field(t *testing.T, v ports.Value, name string) any {
	t.Helper()
	obj, ok := v.(*goja.Object)
	require.True(t, ok, "expected object, got %T", v)
	return obj.Get(name).Export()
}

func TestNewProxy_NilEngine(t *testing.T) {
	_, err := NewProxy(nil)
	require.Error(t, err)
}

func TestProxy_Typeof(t *testing.T) {
	p, e := newProxy(t)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "int", value: 42, want: entities.TypeNumber},
		{name: "float", value: 1.5, want: entities.TypeNumber},
		{name: "string", value: "hello", want: entities.TypeString},
		{name: "bool", value: true, want: entities.TypeBoolean},
		{name: "nil is undefined", value: nil, want: entities.TypeUndefined},
		{name: "script null", value: testutil.Eval(t, e, "null"), want: entities.TypeObject},
		{name: "map", value: map[string]any{"a": 1}, want: entities.TypeObject},
		{name: "slice", value: []int{1, 2}, want: entities.TypeObject},
		{name: "go func", value: func(a int) int { return a }, want: entities.TypeFunction},
		{name: "script function", value: testutil.Eval(t, e, "Foo"), want: entities.TypeFunction},
		{name: "script undefined", value: testutil.Eval(t, e, "undefined"), want: entities.TypeUndefined},
		{name: "script symbol", value: testutil.Eval(t, e, "Symbol('s')"), want: entities.TypeSymbol},
		{name: "script object", value: testutil.Eval(t, e, "({})"), want: entities.TypeObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Typeof(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, entities.IsKnownTypeTag(got))
		})
	}
}

func TestProxy_Typeof_MarshalError(t *testing.T) {
	p, _ := newProxy(t)

	_, err := p.Typeof(make(chan int))
	testutil.AssertMarshalError(t, err)
}

func TestProxy_New_ZeroArguments(t *testing.T) {
	p, e := newProxy(t)

	factory, err := p.New(Resolved(testutil.Eval(t, e, "Foo")))
	require.NoError(t, err)

	obj, err := factory()
	require.NoError(t, err)
	assert.Equal(t, int64(0), field(t, obj, "argc"))
	assert.Equal(t, []any{}, field(t, obj, "args"))
}

func TestProxy_New_Variadic(t *testing.T) {
	p, e := newProxy(t)

	factory, err := p.New(Resolved(testutil.Eval(t, e, "Foo")))
	require.NoError(t, err)

	first, err := factory(1, "b", true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), field(t, first, "argc"))
	assert.Equal(t, []any{int64(1), "b", true}, field(t, first, "args"))

	second, err := factory(1, "b", true)
	require.NoError(t, err)

	same, err := e.Call(testutil.Eval(t, e, "(function (a, b) { return a === b; })"), first, second)
	require.NoError(t, err)
	assert.Equal(t, false, same.Export(), "each call must construct a distinct object")

	isFoo, err := e.Call(testutil.Eval(t, e, "(function (o) { return o instanceof Foo; })"), first)
	require.NoError(t, err)
	assert.Equal(t, true, isFoo.Export())
}

func TestProxy_New_Class(t *testing.T) {
	p, _ := newProxy(t)

	factory, err := p.New(Source("Point"))
	require.NoError(t, err)

	pt, err := factory(3, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), field(t, pt, "x"))
	assert.Equal(t, int64(4), field(t, pt, "y"))
}

func TestProxy_New_SourceResolvedOnce(t *testing.T) {
	p, e := newProxy(t)

	factory, err := p.New(Source("(globalThis.resolutions = (globalThis.resolutions || 0) + 1, Foo)"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := factory(i)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), testutil.Eval(t, e, "resolutions").Export())
}

func TestProxy_New_ScriptStringHandle(t *testing.T) {
	p, e := newProxy(t)

	factory, err := p.New(Resolved(testutil.Eval(t, e, "ctorName")))
	require.NoError(t, err)

	obj, err := factory("x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), field(t, obj, "argc"))
}

func TestProxy_New_Errors(t *testing.T) {
	p, e := newProxy(t)

	tests := []struct {
		name   string
		ctor   Constructor
		substr string
	}{
		{name: "undefined name", ctor: Source("NoSuchCtor"), substr: "ReferenceError"},
		{name: "syntax error", ctor: Source("function ("), substr: "compile"},
		{name: "not a function", ctor: Source("notCallable"), substr: "not a constructor"},
		{name: "object handle", ctor: Resolved(testutil.Eval(t, e, "({})")), substr: "not a constructor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.New(tt.ctor)
			testutil.AssertEvaluationError(t, err, tt.substr)
		})
	}

	t.Run("nil handle", func(t *testing.T) {
		_, err := p.New(Resolved(nil))
		testutil.AssertMarshalError(t, err)
	})

	t.Run("zero constructor", func(t *testing.T) {
		_, err := p.New(Constructor{})
		testutil.AssertMarshalError(t, err)
	})
}

func TestProxy_New_ConstructionErrorsPropagate(t *testing.T) {
	p, e := newProxy(t)

	factory, err := p.New(Source("Thrower"))
	require.NoError(t, err)
	_, err = factory()
	testutil.AssertEvaluationError(t, err, "ctor failed")

	arrow, err := p.New(Resolved(testutil.Eval(t, e, "(() => 1)")))
	require.NoError(t, err, "arrow functions pass the typeof check")
	_, err = arrow()
	testutil.AssertEvaluationError(t, err, "TypeError")

	foo, err := p.New(Source("Foo"))
	require.NoError(t, err)
	_, err = foo(make(chan struct{}))
	testutil.AssertMarshalError(t, err)
}

func TestProxy_TypeofOfNewObject(t *testing.T) {
	p, _ := newProxy(t)

	factory, err := p.New(Source("Foo"))
	require.NoError(t, err)
	obj, err := factory()
	require.NoError(t, err)

	tag, err := p.Typeof(obj)
	require.NoError(t, err)
	assert.Equal(t, entities.TypeObject, tag)
}

func TestProxy_Exports(t *testing.T) {
	p, _ := newProxy(t)

	reg, err := exports.NewRegistry(exports.WithBundle(p))
	require.NoError(t, err)
	assert.Equal(t, []string{TypeofName, NewName}, reg.Names())

	ctx := context.Background()

	tag, err := reg.Invoke(ctx, TypeofName, 42)
	require.NoError(t, err)
	assert.Equal(t, entities.TypeNumber, tag)

	_, err = reg.Invoke(ctx, TypeofName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 1 argument")

	made, err := reg.Invoke(ctx, NewName, "Foo")
	require.NoError(t, err)
	construct, ok := made.(exports.HostFunc)
	require.True(t, ok)

	obj, err := construct(ctx, 1, 2)
	require.NoError(t, err)
	tag, err = reg.Invoke(ctx, TypeofName, obj)
	require.NoError(t, err)
	assert.Equal(t, entities.TypeObject, tag)

	_, err = reg.Invoke(ctx, NewName, 12)
	testutil.AssertMarshalError(t, err)
}
