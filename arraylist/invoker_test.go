package arraylist_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/samsarahq/coerce/arraylist"
	"github.com/samsarahq/coerce/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(methods []arraylist.Method) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.Name
	}
	return out
}

func lookup(t *testing.T, typ reflect.Type, name string) arraylist.Method {
	for _, m := range (arraylist.MethodsDiscovery{}).Discover(typ) {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("%s has no method %s", typ, name)
	return arraylist.Method{}
}

type greeter struct{ greeting string }

func (g greeter) Greet(name string) string { return g.greeting + ", " + name }

func (g *greeter) SetGreeting(greeting string) { g.greeting = greeting }

func (g greeter) Fail() (int, error) { return 0, errors.New("no greeting") }

func (g greeter) Explode() { panic(fmt.Errorf("kaboom")) }

func (g greeter) Join(sep string, parts ...string) string { return strings.Join(parts, sep) }

func (g greeter) unexported() {}

func TestDiscoverArrays(t *testing.T) {
	listType := reflect.TypeOf((*collection.List)(nil)).Elem()
	expected := (arraylist.MethodsDiscovery{}).Discover(listType)
	require.NotEmpty(t, expected)

	for _, v := range []interface{}{[]int{}, [2]string{}, &[1]bool{}, []*greeter{}} {
		methods := (arraylist.MethodsDiscovery{}).Discover(reflect.TypeOf(v))
		if diff := pretty.Compare(names(methods), names(expected)); diff != "" {
			t.Errorf("methods of %T differ from collection.List:\n%s", v, diff)
		}
		for i := range methods {
			assert.Equal(t, expected[i], methods[i])
			assert.Equal(t, listType, methods[i].Owner)
		}
	}
}

func TestDiscoverOtherTypes(t *testing.T) {
	d := arraylist.MethodsDiscovery{}

	assert.Equal(t, []string{"Explode", "Fail", "Greet", "Join"}, names(d.Discover(reflect.TypeOf(greeter{}))))
	assert.Equal(t, []string{"Explode", "Fail", "Greet", "Join", "SetGreeting"}, names(d.Discover(reflect.TypeOf(&greeter{}))))
	assert.Empty(t, d.Discover(reflect.TypeOf(1)))
	assert.Nil(t, d.Discover(nil))

	greet := lookup(t, reflect.TypeOf(greeter{}), "Greet")
	assert.Equal(t, reflect.TypeOf(func(string) string { return "" }), greet.Type)
	assert.Equal(t, "arraylist_test.greeter.Greet", greet.String())
}

type partlyHidden interface {
	Visible() string
	hidden()
}

func TestDiscoverSkipsUnexportedMethods(t *testing.T) {
	typ := reflect.TypeOf((*partlyHidden)(nil)).Elem()
	assert.Equal(t, []string{"Visible"}, names((arraylist.MethodsDiscovery{}).Discover(typ)))
}

func TestInvokeRedirectsArrays(t *testing.T) {
	arrayType := reflect.TypeOf([]int{})
	inv := arraylist.MethodInvoker{}

	size, err := inv.Invoke(lookup(t, arrayType, "Size"), []int{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	first, err := inv.Invoke(lookup(t, reflect.TypeOf([]string{}), "Get"), []string{"a", "b"}, []interface{}{0})
	require.NoError(t, err)
	assert.Equal(t, "a", first)

	contains, err := inv.Invoke(lookup(t, arrayType, "Contains"), [3]int{4, 5, 6}, []interface{}{5})
	require.NoError(t, err)
	assert.Equal(t, true, contains)

	names := []string{"x", "y"}
	_, err = inv.Invoke(lookup(t, arrayType, "Set"), names, []interface{}{1, "w"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "w"}, names)
}

func TestInvokeRedirectsEmbeddedSurfaces(t *testing.T) {
	collType := reflect.TypeOf((*collection.Collection)(nil)).Elem()
	inv := arraylist.MethodInvoker{}

	empty, err := inv.Invoke(lookup(t, collType, "IsEmpty"), []string{}, nil)
	require.NoError(t, err)
	assert.Equal(t, true, empty)
}

func TestInvokeDirect(t *testing.T) {
	inv := arraylist.MethodInvoker{}
	g := &greeter{greeting: "hello"}

	out, err := inv.Invoke(lookup(t, reflect.TypeOf(g), "Greet"), g, []interface{}{"bob"})
	require.NoError(t, err)
	assert.Equal(t, "hello, bob", out)

	out, err = inv.Invoke(lookup(t, reflect.TypeOf(g), "SetGreeting"), g, []interface{}{"hi"})
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, "hi", g.greeting)

	out, err = inv.Invoke(lookup(t, reflect.TypeOf(g), "Join"), g, []interface{}{"-", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a-b", out)

	out, err = inv.Invoke(lookup(t, reflect.TypeOf(g), "Join"), g, []interface{}{"-"})
	require.NoError(t, err)
	assert.Equal(t, "", out)

	// Lists are called directly: they already have the methods.
	list := collection.ArrayListOf("q")
	out, err = inv.Invoke(lookup(t, reflect.TypeOf([]int{}), "Size"), list, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out)
}

func TestInvokeScalarAliases(t *testing.T) {
	type name string
	out, err := (arraylist.MethodInvoker{}).Invoke(lookup(t, reflect.TypeOf(greeter{}), "Greet"), greeter{greeting: "yo"}, []interface{}{name("al")})
	require.NoError(t, err)
	assert.Equal(t, "yo, al", out)
}

func invocationError(t *testing.T, err error) *arraylist.InvocationError {
	t.Helper()
	require.Error(t, err)
	var ierr *arraylist.InvocationError
	require.True(t, errors.As(err, &ierr), "%v is not an InvocationError", err)
	return ierr
}

func TestInvokeErrors(t *testing.T) {
	inv := arraylist.MethodInvoker{}
	g := greeter{}
	greetT := reflect.TypeOf(g)

	_, err := inv.Invoke(lookup(t, greetT, "Greet"), nil, []interface{}{"x"})
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrIllegalAccess))

	_, err = inv.Invoke(lookup(t, reflect.TypeOf(&greeter{}), "SetGreeting"), g, []interface{}{"x"})
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrIllegalAccess))

	_, err = inv.Invoke(lookup(t, reflect.TypeOf([]int{}), "Size"), g, nil)
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrIllegalAccess))

	_, err = inv.Invoke(arraylist.Method{Name: "unexported"}, g, nil)
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrIllegalAccess))

	_, err = inv.Invoke(arraylist.Method{Name: "Greet", Type: reflect.TypeOf(func(int) string { return "" })}, g, []interface{}{1})
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrIllegalAccess))

	_, err = inv.Invoke(lookup(t, greetT, "Greet"), g, nil)
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrArgumentMismatch))

	_, err = inv.Invoke(lookup(t, greetT, "Greet"), g, []interface{}{1})
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrArgumentMismatch))

	_, err = inv.Invoke(lookup(t, greetT, "Greet"), g, []interface{}{nil})
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrArgumentMismatch))

	_, err = inv.Invoke(lookup(t, greetT, "Join"), g, nil)
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrArgumentMismatch))

	_, err = inv.Invoke(lookup(t, greetT, "Fail"), g, nil)
	ierr := invocationError(t, err)
	assert.Equal(t, "no greeting", ierr.Err.Error())
	assert.Equal(t, greetT, ierr.Target)
	assert.Equal(t, "invoking Fail on arraylist_test.greeter: no greeting", ierr.Error())

	_, err = inv.Invoke(lookup(t, greetT, "Explode"), g, nil)
	ierr = invocationError(t, err)
	var panicErr *arraylist.PanicError
	require.True(t, errors.As(ierr, &panicErr))
	assert.Equal(t, "panic: kaboom", panicErr.Error())
	assert.NotEmpty(t, panicErr.Stack)
	assert.EqualError(t, errors.Unwrap(panicErr), "kaboom")
}

func TestInvokeRedirectedErrors(t *testing.T) {
	inv := arraylist.MethodInvoker{}
	arrayType := reflect.TypeOf([]string{})

	_, err := inv.Invoke(lookup(t, arrayType, "Get"), []string{"a"}, []interface{}{3})
	ierr := invocationError(t, err)
	assert.True(t, errors.Is(ierr, collection.ErrIndexOutOfRange))
	assert.Equal(t, arrayType, ierr.Target)

	_, err = inv.Invoke(lookup(t, arrayType, "Add"), []string{"a"}, []interface{}{"b"})
	assert.True(t, errors.Is(invocationError(t, err), collection.ErrUnsupported))

	_, err = inv.Invoke(lookup(t, arrayType, "Size"), []string(nil), nil)
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrIllegalAccess))

	_, err = inv.Invoke(lookup(t, arrayType, "Get"), []string{"a"}, []interface{}{"zero"})
	assert.True(t, errors.Is(invocationError(t, err), arraylist.ErrArgumentMismatch))
}
