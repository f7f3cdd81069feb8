// The arraylist package lets an expression evaluator treat Go slices and
// arrays as collection.List values.
//
// Convert turns an array into a List: arrays of numbers, booleans and
// characters are copied into a new collection.ArrayList, anything else is
// wrapped in a fixed-size view sharing the array's storage. Converter
// plugs Convert into a conversion.Service, MethodsDiscovery gives arrays
// the method set of collection.List, and MethodInvoker converts an array
// target before calling one of those methods on it.
//
// Everything in the package is stateless and safe for concurrent use.
package arraylist

import (
	"reflect"

	"github.com/samsarahq/coerce/collection"
	"github.com/samsarahq/coerce/conversion"
	"github.com/samsarahq/coerce/internal"
	"github.com/samsarahq/coerce/typedesc"
)

// Convert returns value, which must be an array, as a List. nil, a nil
// slice and a nil array pointer all convert to a nil List.
func Convert(value interface{}) (collection.List, error) {
	if value == nil {
		return nil, nil
	}
	array := reflect.ValueOf(value)
	if !internal.IsArrayType(array.Type()) {
		return nil, &TypeMismatchError{Type: array.Type()}
	}
	if (array.Kind() == reflect.Slice || array.Kind() == reflect.Ptr) && array.IsNil() {
		return nil, nil
	}

	if !internal.IsPrimitiveKind(internal.ComponentType(array.Type()).Kind()) {
		return collection.ViewOf(array), nil
	}

	// Primitive storage cannot be handed out as interface{} elements in
	// place, so box a copy of every element.
	if array.Kind() == reflect.Ptr {
		array = array.Elem()
	}
	n := array.Len()
	list := collection.NewArrayList(n)
	for i := 0; i < n; i++ {
		list.Add(array.Index(i).Interface())
	}
	return list, nil
}

var convertiblePairs = [...]conversion.ConvertiblePair{
	{Source: conversion.ShapeKey(typedesc.Array), Target: conversion.ShapeKey(typedesc.Iterable)},
	{Source: conversion.ShapeKey(typedesc.Array), Target: conversion.ShapeKey(typedesc.Collection)},
	{Source: conversion.ShapeKey(typedesc.Array), Target: conversion.ShapeKey(typedesc.List)},
}

// Converter is the conversion.ConditionalGenericConverter for arrays to
// collection interfaces. It applies when the array's elements can be
// converted to the target's element type; the elements themselves are
// handed over as they are.
type Converter struct {
	checker conversion.Checker
}

var _ conversion.ConditionalGenericConverter = &Converter{}

// NewConverter returns a Converter that asks checker about element types.
func NewConverter(checker conversion.Checker) *Converter {
	return &Converter{checker: checker}
}

// Register adds a Converter backed by s to s.
func Register(s *conversion.Service) {
	s.Add(NewConverter(s))
}

func (c *Converter) ConvertibleTypes() []conversion.ConvertiblePair {
	pairs := convertiblePairs
	return pairs[:]
}

func (c *Converter) Matches(sourceType, targetType *typedesc.Descriptor) bool {
	return CanConvertElements(sourceType.Element(), targetType.Element(), c.checker)
}

func (c *Converter) Convert(source interface{}, _, _ *typedesc.Descriptor) (interface{}, error) {
	list, err := Convert(source)
	if err != nil || list == nil {
		return nil, err
	}
	return list, nil
}
