// The collection package defines the ordered-collection capability surface
// that expressions can call methods on, and the two implementations handed
// out when an array is coerced into it:
//   - ArrayList, an owning, growable list of boxed values
//   - the fixed-size view returned by ViewOf, which reads and writes an
//     existing slice or array in place
package collection

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupported is returned by operations a list does not permit, such
	// as changing the length of a fixed-size view.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrIndexOutOfRange is returned when an index falls outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrElementType is returned when a value cannot be stored in a typed
	// backing array.
	ErrElementType = errors.New("element type mismatch")
)

// Iterator walks a sequence in order.
//
//   for it := list.Iterator(); it.Next(); {
//     use(it.Value())
//   }
type Iterator interface {
	Next() bool
	Value() interface{}
}

// Iterable is anything that can be walked in order.
type Iterable interface {
	Iterator() Iterator
}

// Collection is a sized Iterable.
type Collection interface {
	Iterable

	Size() int
	IsEmpty() bool
	Contains(value interface{}) bool
	// ToSlice returns the elements in a newly allocated slice.
	ToSlice() []interface{}

	Add(value interface{}) error
	// Remove removes the first element equal to value and reports whether
	// one was found.
	Remove(value interface{}) (bool, error)
	Clear() error
}

// List is an index-addressable Collection.
type List interface {
	Collection

	Get(index int) (interface{}, error)
	// Set replaces the element at index and returns the previous one.
	Set(index int, value interface{}) (interface{}, error)
	IndexOf(value interface{}) int
	LastIndexOf(value interface{}) int
	SubList(from, to int) (List, error)

	Insert(index int, value interface{}) error
	RemoveAt(index int) (interface{}, error)
}

func equal(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}

func checkIndex(index, size int) error {
	if index < 0 || index >= size {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, size)
	}
	return nil
}

func checkRange(from, to, size int) error {
	if from < 0 || to > size || from > to {
		return fmt.Errorf("%w: range [%d, %d), size %d", ErrIndexOutOfRange, from, to, size)
	}
	return nil
}

func unsupported(op string) error {
	return fmt.Errorf("%w: %s on a fixed-size list", ErrUnsupported, op)
}

type indexIterator struct {
	pos int
	len int
	get func(int) interface{}
}

func (it *indexIterator) Next() bool {
	if it.pos >= it.len {
		return false
	}
	it.pos++
	return true
}

func (it *indexIterator) Value() interface{} {
	if it.pos == 0 {
		return nil
	}
	return it.get(it.pos - 1)
}
