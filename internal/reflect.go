package internal

import "reflect"

func IsScalarType(t reflect.Type) bool {
	switch t.Kind() {
	case
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true

	default:
		return false
	}
}

func TypesIdenticalOrScalarAliases(a, b reflect.Type) bool {
	return a == b || (a.Kind() == b.Kind() && IsScalarType(a))
}

// IsPrimitiveKind reports whether values of kind k are stored inline and
// must be boxed to be handed out as interface{} elements. Strings are not
// primitive: they are immutable references to their bytes.
func IsPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true

	default:
		return false
	}
}

// IsNumericKind reports whether k is an integer, float or complex kind.
func IsNumericKind(k reflect.Kind) bool {
	return k != reflect.Bool && IsPrimitiveKind(k)
}

// IsArrayType reports whether t is a slice, an array or a pointer to an
// array.
func IsArrayType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Ptr:
		return t.Elem().Kind() == reflect.Array
	default:
		return false
	}
}

// ComponentType returns the element type of an array type as understood by
// IsArrayType.
func ComponentType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Elem()
}

// IsNillable reports whether the zero value of kind k is nil.
func IsNillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
