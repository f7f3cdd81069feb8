// The typedesc package describes the declared type of a value for the
// conversion machinery: its Go type, the shape the type has from a
// collection point of view, and for containers the type of their elements.
package typedesc

import (
	"fmt"
	"reflect"

	"github.com/samsarahq/coerce/collection"
	"github.com/samsarahq/coerce/internal"
)

// Shape classifies a type by the collection capabilities it offers.
type Shape int

const (
	Other Shape = iota
	Array
	Iterable
	Collection
	List
)

func (s Shape) String() string {
	switch s {
	case Array:
		return "array"
	case Iterable:
		return "iterable"
	case Collection:
		return "collection"
	case List:
		return "list"
	default:
		return "other"
	}
}

var (
	iterableType   = reflect.TypeOf((*collection.Iterable)(nil)).Elem()
	collectionType = reflect.TypeOf((*collection.Collection)(nil)).Elem()
	listType       = reflect.TypeOf((*collection.List)(nil)).Elem()
)

// ShapeOf returns the most specific shape of t. Slices, arrays and pointers
// to arrays are arrays; anything satisfying one of the collection
// interfaces takes the shape of the richest one it satisfies.
func ShapeOf(t reflect.Type) Shape {
	switch {
	case t == nil:
		return Other
	case internal.IsArrayType(t):
		return Array
	case t.Implements(listType):
		return List
	case t.Implements(collectionType):
		return Collection
	case t.Implements(iterableType):
		return Iterable
	default:
		return Other
	}
}

// Descriptor is an immutable description of a declared type. A nil
// *Descriptor stands for an unknown type and every method accepts one.
type Descriptor struct {
	Type  reflect.Type
	Kind  reflect.Kind
	Shape Shape

	elem *Descriptor
}

// New describes t. For array types the element descriptor is derived from
// the component type when Element is called, so recursive types such as
// type tree []tree are fine. Collection interfaces carry no element
// information, use CollectionOf to attach one. New(nil) returns nil.
func New(t reflect.Type) *Descriptor {
	if t == nil {
		return nil
	}
	return &Descriptor{Type: t, Kind: t.Kind(), Shape: ShapeOf(t)}
}

// Of describes the static type T of the value pointed to by ptr, which is
// how interface types are named: Of((*collection.List)(nil)).
func Of(ptr interface{}) *Descriptor {
	return New(reflect.TypeOf(ptr).Elem())
}

// ForValue describes the dynamic type of v, or returns nil for nil.
func ForValue(v interface{}) *Descriptor {
	return New(reflect.TypeOf(v))
}

// CollectionOf describes the container type t whose elements are described
// by elem. A nil elem leaves the element type unconstrained.
func CollectionOf(t reflect.Type, elem *Descriptor) *Descriptor {
	d := New(t)
	if d == nil {
		return nil
	}
	d.elem = elem
	return d
}

// Element returns the element descriptor, or nil when the element type is
// unconstrained or d is not a container.
func (d *Descriptor) Element() *Descriptor {
	switch {
	case d == nil:
		return nil
	case d.elem == nil && d.Shape == Array:
		return New(internal.ComponentType(d.Type))
	default:
		return d.elem
	}
}

// ReflectType returns the described type, or nil.
func (d *Descriptor) ReflectType() reflect.Type {
	if d == nil {
		return nil
	}
	return d.Type
}

// ShapeOrOther returns d.Shape, or Other for a nil descriptor.
func (d *Descriptor) ShapeOrOther() Shape {
	if d == nil {
		return Other
	}
	return d.Shape
}

// IsPrimitive reports whether values of the described type are stored
// inline (numbers, booleans, characters).
func (d *Descriptor) IsPrimitive() bool {
	return d != nil && internal.IsPrimitiveKind(d.Kind)
}

// AssignableTo reports whether a value described by d can be used as a
// value described by other without conversion. Element descriptors are not
// consulted.
func (d *Descriptor) AssignableTo(other *Descriptor) bool {
	if d == nil || other == nil {
		return false
	}
	return d.Type.AssignableTo(other.Type)
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<unknown>"
	}
	if d.elem != nil && d.Shape != Array {
		return fmt.Sprintf("%s<%s>", d.Type, d.elem)
	}
	return d.Type.String()
}
