package collection

import (
	"fmt"
	"reflect"

	"github.com/samsarahq/coerce/internal"
)

// view is a fixed-size List over the storage of a slice or array. Reads and
// positional writes go straight to that storage; anything that would change
// its length fails with ErrUnsupported.
//
// A view takes no locks. Writes made to the storage through other
// references while the view is in use are seen in unspecified order.
type view struct {
	array reflect.Value
}

// ViewOf returns a List backed by array, which must hold a slice, an array
// or a pointer to an array. Slices and pointed-to arrays are aliased; a
// plain array value has no shared storage, so the view works on its own
// copy of it.
func ViewOf(array reflect.Value) List {
	switch array.Kind() {
	case reflect.Slice:
	case reflect.Ptr:
		array = array.Elem()
	case reflect.Array:
		if !array.CanAddr() {
			addressable := reflect.New(array.Type()).Elem()
			addressable.Set(array)
			array = addressable
		}
	default:
		panic("collection: ViewOf called on " + array.Type().String())
	}
	return &view{array: array}
}

func (v *view) Iterator() Iterator {
	return &indexIterator{len: v.array.Len(), get: func(i int) interface{} { return v.array.Index(i).Interface() }}
}

func (v *view) Size() int     { return v.array.Len() }
func (v *view) IsEmpty() bool { return v.array.Len() == 0 }

func (v *view) Contains(value interface{}) bool {
	return v.IndexOf(value) >= 0
}

func (v *view) ToSlice() []interface{} {
	out := make([]interface{}, v.array.Len())
	for i := range out {
		out[i] = v.array.Index(i).Interface()
	}
	return out
}

func (v *view) Add(value interface{}) error { return unsupported("Add") }

func (v *view) Remove(value interface{}) (bool, error) { return false, unsupported("Remove") }

func (v *view) Clear() error { return unsupported("Clear") }

func (v *view) Get(index int) (interface{}, error) {
	if err := checkIndex(index, v.array.Len()); err != nil {
		return nil, err
	}
	return v.array.Index(index).Interface(), nil
}

func (v *view) Set(index int, value interface{}) (interface{}, error) {
	if err := checkIndex(index, v.array.Len()); err != nil {
		return nil, err
	}
	elem := v.array.Index(index)
	val, err := elementValue(elem.Type(), value)
	if err != nil {
		return nil, err
	}
	old := elem.Interface()
	elem.Set(val)
	return old, nil
}

func (v *view) IndexOf(value interface{}) int {
	for i := 0; i < v.array.Len(); i++ {
		if equal(v.array.Index(i).Interface(), value) {
			return i
		}
	}
	return -1
}

func (v *view) LastIndexOf(value interface{}) int {
	for i := v.array.Len() - 1; i >= 0; i-- {
		if equal(v.array.Index(i).Interface(), value) {
			return i
		}
	}
	return -1
}

// SubList returns a view over [from, to) that shares storage with v.
func (v *view) SubList(from, to int) (List, error) {
	if err := checkRange(from, to, v.array.Len()); err != nil {
		return nil, err
	}
	return &view{array: v.array.Slice(from, to)}, nil
}

func (v *view) Insert(index int, value interface{}) error { return unsupported("Insert") }

func (v *view) RemoveAt(index int) (interface{}, error) { return nil, unsupported("RemoveAt") }

func (v *view) String() string {
	return fmt.Sprint(v.array.Interface())
}

// elementValue adapts value for storage in an element of type typ.
func elementValue(typ reflect.Type, value interface{}) (reflect.Value, error) {
	if value == nil {
		if internal.IsNillable(typ.Kind()) {
			return reflect.Zero(typ), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: cannot store nil in %s", ErrElementType, typ)
	}
	val := reflect.ValueOf(value)
	switch {
	case val.Type().AssignableTo(typ):
		return val, nil
	case internal.TypesIdenticalOrScalarAliases(val.Type(), typ):
		return val.Convert(typ), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot store %s in %s", ErrElementType, val.Type(), typ)
	}
}
