package conversion

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/samsarahq/coerce/internal"
	"github.com/samsarahq/coerce/logger"
	"github.com/samsarahq/coerce/typedesc"
	"github.com/samsarahq/go/oops"
)

// Service is a registry of converters. It is safe for concurrent use;
// registrations made while a conversion is running are seen by later
// lookups only.
type Service struct {
	mu         sync.RWMutex
	converters map[ConvertiblePair][]GenericConverter
	logger     logger.Logger
}

type options struct {
	logger   logger.Logger
	defaults bool
}

// Option configures a Service.
type Option func(*options)

// WithLogger sets the logger registrations are reported to.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithoutDefaults leaves out the built-in converters.
func WithoutDefaults() Option {
	return func(o *options) { o.defaults = false }
}

// NewService creates a Service holding the default converters.
func NewService(opts ...Option) *Service {
	o := options{logger: logger.Nop(), defaults: true}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service{
		converters: make(map[ConvertiblePair][]GenericConverter),
		logger:     o.logger,
	}
	if o.defaults {
		addDefaultConverters(s)
	}
	return s
}

// Add registers c for every pair it declares. Converters added later take
// precedence over earlier ones for the same pair.
func (s *Service) Add(c GenericConverter) {
	pairs := c.ConvertibleTypes()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pair := range pairs {
		s.converters[pair] = append(s.converters[pair], c)
		s.logger.Debug("registered converter", "pair", pair, "converter", fmt.Sprintf("%T", c))
	}
}

// AddFunc registers fn as the converter from source to target.
func (s *Service) AddFunc(source, target reflect.Type, fn func(interface{}) (interface{}, error)) {
	s.Add(&funcConverter{pair: ConvertiblePair{Source: TypeKey(source), Target: TypeKey(target)}, fn: fn})
}

// candidates returns the converters registered for pairs that can match
// sourceType and targetType, in lookup order.
func (s *Service) candidates(sourceType, targetType *typedesc.Descriptor) []GenericConverter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []GenericConverter
	for _, sourceKey := range keysFor(sourceType) {
		for _, targetKey := range keysFor(targetType) {
			registered := s.converters[ConvertiblePair{Source: sourceKey, Target: targetKey}]
			for i := len(registered) - 1; i >= 0; i-- {
				out = append(out, registered[i])
			}
		}
	}
	return out
}

// find returns the first candidate that accepts the pair. Matches runs
// without the lock held, as conditional converters may query the Service.
func (s *Service) find(sourceType, targetType *typedesc.Descriptor) GenericConverter {
	for _, c := range s.candidates(sourceType, targetType) {
		if conditional, ok := c.(ConditionalGenericConverter); ok && !conditional.Matches(sourceType, targetType) {
			continue
		}
		return c
	}
	return nil
}

// scalarAliases reports whether source and target are scalar types of the
// same kind, such as string and type label string. Go converts between
// those directly.
func scalarAliases(sourceType, targetType *typedesc.Descriptor) bool {
	return internal.TypesIdenticalOrScalarAliases(sourceType.Type, targetType.Type)
}

// CanConvert reports whether values described by sourceType can be
// converted to targetType. An unknown source or target type is always
// convertible.
func (s *Service) CanConvert(sourceType, targetType *typedesc.Descriptor) bool {
	if sourceType == nil || targetType == nil {
		return true
	}
	if sourceType.AssignableTo(targetType) || scalarAliases(sourceType, targetType) {
		return true
	}
	return s.find(sourceType, targetType) != nil
}

// Convert converts value from sourceType to targetType. A nil sourceType
// is taken from the value itself. nil converts to nil. Scalar aliases
// without a registered converter are converted with reflect.
func (s *Service) Convert(value interface{}, sourceType, targetType *typedesc.Descriptor) (interface{}, error) {
	if value == nil || targetType == nil {
		return value, nil
	}
	if sourceType == nil {
		sourceType = typedesc.ForValue(value)
	}
	if sourceType.AssignableTo(targetType) {
		return value, nil
	}

	c := s.find(sourceType, targetType)
	if c == nil {
		if scalarAliases(sourceType, targetType) && reflect.TypeOf(value).ConvertibleTo(targetType.Type) {
			return reflect.ValueOf(value).Convert(targetType.Type).Interface(), nil
		}
		return nil, &ConverterNotFoundError{Source: sourceType, Target: targetType}
	}
	result, err := c.Convert(value, sourceType, targetType)
	if err != nil {
		return nil, oops.Wrapf(err, "converting %s to %s", sourceType, targetType)
	}
	return result, nil
}

// ConvertTo converts value to the type t.
func (s *Service) ConvertTo(value interface{}, t reflect.Type) (interface{}, error) {
	return s.Convert(value, nil, typedesc.New(t))
}
