package arraylist

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrTypeMismatch is matched by errors from Convert called on something
	// that is not an array. Callers are expected to check first, so seeing
	// it means the caller's dispatch is wrong.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrIllegalAccess means the method cannot be called on the target: the
	// target is nil or its method set has no such method.
	ErrIllegalAccess = errors.New("illegal access")

	// ErrArgumentMismatch means the arguments do not fit the method's
	// parameters.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// TypeMismatchError reports a value handed to Convert that is not an array.
type TypeMismatchError struct {
	Type reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: %s is not an array", ErrTypeMismatch, e.Type)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// InvocationError is returned for every failed Invoke. Err is the cause:
// one of the sentinels above, a *PanicError, or the error returned by the
// method itself, untouched.
type InvocationError struct {
	Method Method
	Target reflect.Type
	Err    error
}

func (e *InvocationError) Error() string {
	target := "<nil>"
	if e.Target != nil {
		target = e.Target.String()
	}
	return fmt.Sprintf("invoking %s on %s: %v", e.Method.Name, target, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// PanicError holds a panic raised by an invoked method.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
