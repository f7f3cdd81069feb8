package arraylist

import (
	"fmt"
	"reflect"

	"github.com/samsarahq/coerce/collection"
	"github.com/samsarahq/coerce/internal"
)

var listType = reflect.TypeOf((*collection.List)(nil)).Elem()

// Method describes a method that can be invoked on values of Owner.
type Method struct {
	Name  string
	Owner reflect.Type
	// Type is the method's func type without the receiver.
	Type reflect.Type
}

func (m Method) String() string {
	return fmt.Sprintf("%s.%s", m.Owner, m.Name)
}

// methodOf describes m, found in the method set of owner.
func methodOf(owner reflect.Type, m reflect.Method) Method {
	typ := m.Type
	if owner.Kind() != reflect.Interface {
		in := make([]reflect.Type, 0, typ.NumIn()-1)
		for i := 1; i < typ.NumIn(); i++ {
			in = append(in, typ.In(i))
		}
		out := make([]reflect.Type, 0, typ.NumOut())
		for i := 0; i < typ.NumOut(); i++ {
			out = append(out, typ.Out(i))
		}
		typ = reflect.FuncOf(in, out, typ.IsVariadic())
	}
	return Method{Name: m.Name, Owner: owner, Type: typ}
}

// methodsOf lists the exported methods of t. Interface method sets also
// hold unexported methods, which cannot be called through reflect.
func methodsOf(t reflect.Type) []Method {
	methods := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		if m := t.Method(i); m.PkgPath == "" {
			methods = append(methods, methodOf(t, m))
		}
	}
	return methods
}

var listMethods = methodsOf(listType)

// MethodsDiscovery finds the methods expressions may call on a type.
type MethodsDiscovery struct{}

// Discover returns the exported methods of t in name order. Arrays have no
// methods of their own; for them Discover returns the methods of
// collection.List.
func (MethodsDiscovery) Discover(t reflect.Type) []Method {
	if t == nil {
		return nil
	}
	if internal.IsArrayType(t) {
		methods := make([]Method, len(listMethods))
		copy(methods, listMethods)
		return methods
	}
	return methodsOf(t)
}

// onListSurface reports whether m is declared by collection.List or one
// of the interfaces it embeds.
func onListSurface(m Method) bool {
	return m.Owner != nil && m.Owner.Kind() == reflect.Interface && m.Owner.NumMethod() > 0 && listType.Implements(m.Owner)
}
