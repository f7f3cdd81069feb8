package collection_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/samsarahq/coerce/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(l collection.Iterable) []interface{} {
	var out []interface{}
	for it := l.Iterator(); it.Next(); {
		out = append(out, it.Value())
	}
	return out
}

func TestArrayList(t *testing.T) {
	l := collection.ArrayListOf(1, 2, 3)
	assert.Equal(t, 3, l.Size())
	assert.False(t, l.IsEmpty())
	assert.True(t, l.Contains(2))
	assert.False(t, l.Contains(int64(2)))

	require.NoError(t, l.Add(2))
	assert.Equal(t, 1, l.IndexOf(2))
	assert.Equal(t, 3, l.LastIndexOf(2))
	assert.Equal(t, -1, l.IndexOf("x"))

	require.NoError(t, l.Insert(0, 0))
	require.NoError(t, l.Insert(l.Size(), 9))
	if diff := pretty.Compare(l.ToSlice(), []interface{}{0, 1, 2, 3, 2, 9}); diff != "" {
		t.Errorf("unexpected elements:\n%s", diff)
	}

	old, err := l.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0, old)

	found, err := l.Remove(2)
	require.NoError(t, err)
	assert.True(t, found)
	found, err = l.Remove("missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []interface{}{1, 3, 2, 9}, drain(l))

	old, err = l.Set(1, "three")
	require.NoError(t, err)
	assert.Equal(t, 3, old)

	sub, err := l.SubList(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"three", 2}, sub.ToSlice())

	require.NoError(t, l.Clear())
	assert.True(t, l.IsEmpty())
	assert.Equal(t, 2, sub.Size(), "sub lists of an ArrayList are copies")
}

func TestArrayListBounds(t *testing.T) {
	l := collection.ArrayListOf("a")

	_, err := l.Get(1)
	assert.True(t, errors.Is(err, collection.ErrIndexOutOfRange))
	_, err = l.Get(-1)
	assert.True(t, errors.Is(err, collection.ErrIndexOutOfRange))
	_, err = l.Set(5, "b")
	assert.True(t, errors.Is(err, collection.ErrIndexOutOfRange))
	assert.True(t, errors.Is(l.Insert(3, "b"), collection.ErrIndexOutOfRange))
	_, err = l.SubList(1, 0)
	assert.True(t, errors.Is(err, collection.ErrIndexOutOfRange))
}

func TestViewAliasesSlice(t *testing.T) {
	names := []string{"a", "b", "c"}
	v := collection.ViewOf(reflect.ValueOf(names))

	got, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	names[0] = "z"
	got, err = v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "z", got)

	old, err := v.Set(2, "y")
	require.NoError(t, err)
	assert.Equal(t, "c", old)
	assert.Equal(t, "y", names[2])

	sub, err := v.SubList(1, 3)
	require.NoError(t, err)
	_, err = sub.Set(0, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "x", "y"}, names)

	assert.Equal(t, []interface{}{"z", "x", "y"}, drain(v))
	assert.Equal(t, 1, v.IndexOf("x"))
	assert.True(t, v.Contains("y"))
}

func TestViewIsFixedSize(t *testing.T) {
	v := collection.ViewOf(reflect.ValueOf([]string{"a"}))

	assert.True(t, errors.Is(v.Add("b"), collection.ErrUnsupported))
	assert.True(t, errors.Is(v.Insert(0, "b"), collection.ErrUnsupported))
	assert.True(t, errors.Is(v.Clear(), collection.ErrUnsupported))
	_, err := v.Remove("a")
	assert.True(t, errors.Is(err, collection.ErrUnsupported))
	_, err = v.RemoveAt(0)
	assert.True(t, errors.Is(err, collection.ErrUnsupported))
	assert.Equal(t, 1, v.Size())
}

func TestViewElementTypes(t *testing.T) {
	type name string
	ptrs := []*int{nil}
	v := collection.ViewOf(reflect.ValueOf(ptrs))
	_, err := v.Set(0, nil)
	require.NoError(t, err)
	_, err = v.Set(0, "nope")
	assert.True(t, errors.Is(err, collection.ErrElementType))

	names := []name{"a"}
	v = collection.ViewOf(reflect.ValueOf(names))
	_, err = v.Set(0, "b")
	require.NoError(t, err)
	assert.Equal(t, name("b"), names[0])
	_, err = v.Set(0, nil)
	assert.True(t, errors.Is(err, collection.ErrElementType))
}

func TestViewOfArrayPointer(t *testing.T) {
	arr := [2]string{"a", "b"}
	v := collection.ViewOf(reflect.ValueOf(&arr))
	_, err := v.Set(1, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", arr[1])

	byValue := collection.ViewOf(reflect.ValueOf(arr))
	_, err = byValue.Set(0, "z")
	require.NoError(t, err)
	assert.Equal(t, "a", arr[0], "a plain array value is never aliased")
	got, _ := byValue.Get(0)
	assert.Equal(t, "z", got)
}
