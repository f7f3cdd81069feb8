package arraylist

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/samsarahq/coerce/internal"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// MethodInvoker calls methods found by MethodsDiscovery.
type MethodInvoker struct{}

// Invoke calls m on target with args. When target is an array and m
// belongs to collection.List, target is converted with Convert first.
//
// Methods may return nothing, a value, an error, or a value and an error.
// Invoke returns the value, or nil. Any failure is an *InvocationError.
func (MethodInvoker) Invoke(m Method, target interface{}, args []interface{}) (interface{}, error) {
	if target != nil && internal.IsArrayType(reflect.TypeOf(target)) && onListSurface(m) {
		list, err := Convert(target)
		if err != nil {
			return nil, err
		}
		result, err := call(m, list, args)
		if ierr, ok := err.(*InvocationError); ok {
			ierr.Target = reflect.TypeOf(target)
		}
		return result, err
	}
	return call(m, target, args)
}

func call(m Method, target interface{}, args []interface{}) (result interface{}, err error) {
	receiver := reflect.ValueOf(target)
	fail := func(cause error) (interface{}, error) {
		e := &InvocationError{Method: m, Err: cause}
		if receiver.IsValid() {
			e.Target = receiver.Type()
		}
		return nil, e
	}

	if !receiver.IsValid() {
		return fail(fmt.Errorf("%w: %s called on nil", ErrIllegalAccess, m.Name))
	}
	fn := receiver.MethodByName(m.Name)
	if !fn.IsValid() {
		return fail(fmt.Errorf("%w: %s has no method %s", ErrIllegalAccess, receiver.Type(), m.Name))
	}
	if m.Type != nil && fn.Type() != m.Type {
		return fail(fmt.Errorf("%w: %s.%s is %s, not %s", ErrIllegalAccess, receiver.Type(), m.Name, fn.Type(), m.Type))
	}

	in, err := prepareArgs(fn.Type(), args)
	if err != nil {
		return fail(err)
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = fail(&PanicError{Value: r, Stack: debug.Stack()})
		}
	}()
	out := fn.Call(in)

	return extractResultAndErr(fn.Type(), out, fail)
}

// prepareArgs adapts args to the parameters of a func of type ft.
func prepareArgs(ft reflect.Type, args []interface{}) ([]reflect.Value, error) {
	numIn := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("%w: got %d arguments, want at least %d", ErrArgumentMismatch, len(args), numIn-1)
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("%w: got %d arguments, want %d", ErrArgumentMismatch, len(args), numIn)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var typ reflect.Type
		if ft.IsVariadic() && i >= numIn-1 {
			typ = ft.In(numIn - 1).Elem()
		} else {
			typ = ft.In(i)
		}

		v, ok := argValue(typ, arg)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d is %T, want %s", ErrArgumentMismatch, i, arg, typ)
		}
		in[i] = v
	}
	return in, nil
}

func argValue(typ reflect.Type, arg interface{}) (reflect.Value, bool) {
	if arg == nil {
		return reflect.Zero(typ), internal.IsNillable(typ.Kind())
	}
	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(typ):
		return v, true
	case internal.TypesIdenticalOrScalarAliases(v.Type(), typ):
		return v.Convert(typ), true
	default:
		return reflect.Value{}, false
	}
}

// extractResultAndErr unpacks the results of a call. A trailing error
// result that is non-nil is the method's own failure.
func extractResultAndErr(ft reflect.Type, out []reflect.Value, fail func(error) (interface{}, error)) (interface{}, error) {
	if n := len(out); n > 0 && ft.Out(n-1) == errType {
		if errVal := out[n-1]; !errVal.IsNil() {
			return fail(errVal.Interface().(error))
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
