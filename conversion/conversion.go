// The conversion package is a registry of converters between Go types.
//
// Converters register for one or more ConvertiblePairs. A pair names its
// source and target with Keys, which match either one concrete type, every
// type of a Shape (all arrays, all lists, ...), or any type at all. Lookups
// try the most specific keys first, and conditional converters get a final
// say through Matches.
package conversion

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/samsarahq/coerce/typedesc"
)

// Checker answers whether a value of one type can be converted to another.
type Checker interface {
	CanConvert(sourceType, targetType *typedesc.Descriptor) bool
}

// GenericConverter converts between the pairs it declares.
type GenericConverter interface {
	ConvertibleTypes() []ConvertiblePair
	Convert(source interface{}, sourceType, targetType *typedesc.Descriptor) (interface{}, error)
}

// ConditionalGenericConverter is a GenericConverter that can decline a
// lookup after its pair matched.
type ConditionalGenericConverter interface {
	GenericConverter
	Matches(sourceType, targetType *typedesc.Descriptor) bool
}

// Key identifies the types a converter applies to.
type Key struct {
	Type  reflect.Type
	Shape typedesc.Shape
}

// Any matches every type.
var Any = Key{}

// TypeKey matches exactly t.
func TypeKey(t reflect.Type) Key { return Key{Type: t} }

// ShapeKey matches every type of shape s.
func ShapeKey(s typedesc.Shape) Key { return Key{Shape: s} }

func (k Key) String() string {
	switch {
	case k.Type != nil:
		return k.Type.String()
	case k.Shape != typedesc.Other:
		return "<" + k.Shape.String() + ">"
	default:
		return "<any>"
	}
}

// keysFor lists the keys that can match d, most specific first.
func keysFor(d *typedesc.Descriptor) []Key {
	keys := make([]Key, 0, 3)
	keys = append(keys, TypeKey(d.Type))
	if d.Shape != typedesc.Other {
		keys = append(keys, ShapeKey(d.Shape))
	}
	return append(keys, Any)
}

// ConvertiblePair is a source/target combination a converter handles.
type ConvertiblePair struct {
	Source Key
	Target Key
}

func (p ConvertiblePair) String() string {
	return fmt.Sprintf("%s -> %s", p.Source, p.Target)
}

// ErrConverterNotFound is matched by errors reporting that no converter
// exists for a pair of types.
var ErrConverterNotFound = errors.New("converter not found")

// ConverterNotFoundError reports a conversion request no converter accepts.
type ConverterNotFoundError struct {
	Source *typedesc.Descriptor
	Target *typedesc.Descriptor
}

func (e *ConverterNotFoundError) Error() string {
	return fmt.Sprintf("no converter from %s to %s", e.Source, e.Target)
}

func (e *ConverterNotFoundError) Is(target error) bool {
	return target == ErrConverterNotFound
}

// funcConverter adapts a plain function to a single concrete pair.
type funcConverter struct {
	pair ConvertiblePair
	fn   func(interface{}) (interface{}, error)
}

func (c *funcConverter) ConvertibleTypes() []ConvertiblePair {
	return []ConvertiblePair{c.pair}
}

func (c *funcConverter) Convert(source interface{}, _, _ *typedesc.Descriptor) (interface{}, error) {
	return c.fn(source)
}
