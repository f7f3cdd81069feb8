// Package evaluator evaluates small method-call expressions such as
//
//	#names.get(0)
//	#ints.Size()
//	#matrix[1].Contains(4)
//
// against a set of variables. Methods are resolved with
// arraylist.MethodsDiscovery and called with arraylist.MethodInvoker, so
// arrays answer the methods of collection.List. Arguments are converted to
// parameter types with a conversion.Service.
package evaluator

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/samsarahq/coerce/arraylist"
	"github.com/samsarahq/coerce/collection"
	"github.com/samsarahq/coerce/conversion"
	"github.com/samsarahq/coerce/internal"
	"github.com/samsarahq/coerce/logger"
	"github.com/samsarahq/coerce/typedesc"
	"github.com/samsarahq/go/oops"
)

var intType = reflect.TypeOf(0)

// EvalError reports a failure at a position in an expression.
type EvalError struct {
	Expr string
	Pos  int
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %q at offset %d: %v", e.Expr, e.Pos, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Evaluator evaluates expressions. It is safe for concurrent use.
type Evaluator struct {
	service   *conversion.Service
	discovery arraylist.MethodsDiscovery
	invoker   arraylist.MethodInvoker
	logger    logger.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithService converts arguments and results with s. The array-to-list
// converter is registered on s.
func WithService(s *conversion.Service) Option {
	return func(e *Evaluator) {
		e.service = s
	}
}

// WithLogger logs method resolution to l.
func WithLogger(l logger.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// New builds an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{logger: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.service == nil {
		e.service = conversion.NewService(conversion.WithLogger(e.logger))
	}
	arraylist.Register(e.service)
	return e
}

// Evaluate parses expr and evaluates it against vars.
func (e *Evaluator) Evaluate(expr string, vars map[string]interface{}) (interface{}, error) {
	n, err := parse(expr)
	if err != nil {
		return nil, err
	}
	return e.eval(expr, n, vars)
}

// EvaluateAs evaluates expr and converts the result to target.
func (e *Evaluator) EvaluateAs(expr string, vars map[string]interface{}, target *typedesc.Descriptor) (interface{}, error) {
	result, err := e.Evaluate(expr, vars)
	if err != nil {
		return nil, err
	}
	converted, err := e.service.Convert(result, nil, target)
	if err != nil {
		return nil, &EvalError{Expr: expr, Pos: 0, Err: err}
	}
	return converted, nil
}

func (e *Evaluator) eval(expr string, n node, vars map[string]interface{}) (interface{}, error) {
	fail := func(err error) (interface{}, error) {
		if _, ok := err.(*EvalError); ok {
			return nil, err
		}
		return nil, &EvalError{Expr: expr, Pos: n.offset(), Err: err}
	}

	switch n := n.(type) {
	case *literal:
		return n.value, nil

	case *variable:
		v, ok := vars[n.name]
		if !ok {
			return fail(oops.Errorf("unknown variable #%s", n.name))
		}
		return v, nil

	case *methodCall:
		target, err := e.eval(expr, n.target, vars)
		if err != nil {
			return nil, err
		}
		args := make([]interface{}, len(n.args))
		for i, a := range n.args {
			if args[i], err = e.eval(expr, a, vars); err != nil {
				return nil, err
			}
		}
		result, err := e.call(target, n.name, args)
		if err != nil {
			return fail(err)
		}
		return result, nil

	case *indexing:
		target, err := e.eval(expr, n.target, vars)
		if err != nil {
			return nil, err
		}
		idx, err := e.eval(expr, n.index, vars)
		if err != nil {
			return nil, err
		}
		result, err := e.index(target, idx)
		if err != nil {
			return fail(err)
		}
		return result, nil

	default:
		return fail(oops.Errorf("unknown node %T", n))
	}
}

// methodName maps an expression name to a Go method name: size -> Size.
func methodName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func (e *Evaluator) call(target interface{}, name string, args []interface{}) (interface{}, error) {
	if target == nil {
		return nil, oops.Errorf("method %s called on null", name)
	}

	goName := methodName(name)
	typ := reflect.TypeOf(target)
	for _, m := range e.discovery.Discover(typ) {
		if m.Name != goName {
			continue
		}
		converted, ok := e.convertArgs(m.Type, args)
		if !ok {
			continue
		}
		e.logger.Debug("resolved method", "method", m, "target", typ)
		return e.invoker.Invoke(m, target, converted)
	}
	return nil, oops.Errorf("no method %s on %s accepts %d arguments %v", name, typ, len(args), args)
}

// convertArgs converts args to the parameters of ft, or reports that ft
// cannot accept them.
func (e *Evaluator) convertArgs(ft reflect.Type, args []interface{}) ([]interface{}, bool) {
	numIn := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, false
		}
	} else if len(args) != numIn {
		return nil, false
	}

	out := make([]interface{}, len(args))
	for i, arg := range args {
		var typ reflect.Type
		if ft.IsVariadic() && i >= numIn-1 {
			typ = ft.In(numIn - 1).Elem()
		} else {
			typ = ft.In(i)
		}

		switch {
		case arg == nil:
			if !internal.IsNillable(typ.Kind()) {
				return nil, false
			}
			out[i] = nil
		case reflect.TypeOf(arg).AssignableTo(typ):
			out[i] = arg
		default:
			target := typedesc.New(typ)
			if !e.service.CanConvert(typedesc.ForValue(arg), target) {
				return nil, false
			}
			v, err := e.service.Convert(arg, nil, target)
			if err != nil {
				return nil, false
			}
			out[i] = v
		}
	}
	return out, true
}

func (e *Evaluator) toIndex(idx interface{}) (int, error) {
	if idx == nil {
		return 0, oops.Errorf("null index")
	}
	i, err := e.service.ConvertTo(idx, intType)
	if err != nil {
		return 0, oops.Wrapf(err, "index %v", idx)
	}
	return i.(int), nil
}

func (e *Evaluator) index(target, idx interface{}) (interface{}, error) {
	if target == nil {
		return nil, oops.Errorf("cannot index null")
	}

	if list, ok := target.(collection.List); ok {
		i, err := e.toIndex(idx)
		if err != nil {
			return nil, err
		}
		return list.Get(i)
	}

	typ := reflect.TypeOf(target)
	v := reflect.Indirect(reflect.ValueOf(target))
	switch {
	case internal.IsArrayType(typ):
		if !v.IsValid() {
			return nil, oops.Errorf("cannot index null %s", typ)
		}
		i, err := e.toIndex(idx)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= v.Len() {
			return nil, fmt.Errorf("%w: index %d, length %d", collection.ErrIndexOutOfRange, i, v.Len())
		}
		return v.Index(i).Interface(), nil

	case typ.Kind() == reflect.Map:
		key, err := e.service.ConvertTo(idx, typ.Key())
		if err != nil {
			return nil, oops.Wrapf(err, "key %v", idx)
		}
		kv := reflect.Zero(typ.Key())
		if key != nil {
			kv = reflect.ValueOf(key)
		}
		elem := v.MapIndex(kv)
		if !elem.IsValid() {
			return nil, nil
		}
		return elem.Interface(), nil

	default:
		return nil, oops.Errorf("cannot index %s", typ)
	}
}
