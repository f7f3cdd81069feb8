package conversion

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/gogo/protobuf/proto"
	"github.com/samsarahq/coerce/internal"
	"github.com/samsarahq/coerce/typedesc"
	uuid "github.com/satori/go.uuid"
)

var (
	stringType   = reflect.TypeOf("")
	bytesType    = reflect.TypeOf([]byte{})
	timeType     = reflect.TypeOf(time.Time{})
	nullTimeType = reflect.TypeOf(mysql.NullTime{})
	uuidType     = reflect.TypeOf(uuid.UUID{})
	protoMsgType = reflect.TypeOf((*proto.Message)(nil)).Elem()

	anyToString = ConvertiblePair{Source: Any, Target: TypeKey(stringType)}
	stringToAny = ConvertiblePair{Source: TypeKey(stringType), Target: Any}
	anyToAny    = ConvertiblePair{Source: Any, Target: Any}
	anyToBytes  = ConvertiblePair{Source: Any, Target: TypeKey(bytesType)}
	bytesToAny  = ConvertiblePair{Source: TypeKey(bytesType), Target: Any}
)

func addDefaultConverters(s *Service) {
	s.Add(numberConverter{})
	s.Add(formatConverter{})
	s.Add(parseConverter{})

	s.AddFunc(stringType, uuidType, func(v interface{}) (interface{}, error) {
		return uuid.FromString(v.(string))
	})
	s.AddFunc(uuidType, stringType, func(v interface{}) (interface{}, error) {
		return v.(uuid.UUID).String(), nil
	})

	s.AddFunc(nullTimeType, timeType, func(v interface{}) (interface{}, error) {
		nt := v.(mysql.NullTime)
		if !nt.Valid {
			return nil, nil
		}
		return nt.Time, nil
	})
	s.AddFunc(timeType, nullTimeType, func(v interface{}) (interface{}, error) {
		return mysql.NullTime{Time: v.(time.Time), Valid: true}, nil
	})

	s.Add(ProtoConverter{})
}

func isReal(k reflect.Kind) bool {
	return internal.IsNumericKind(k) && k != reflect.Complex64 && k != reflect.Complex128
}

// numberConverter converts between integer and floating point types with
// Go conversion semantics: floats are truncated, integers wrap.
type numberConverter struct{}

func (numberConverter) ConvertibleTypes() []ConvertiblePair { return []ConvertiblePair{anyToAny} }

func (numberConverter) Matches(sourceType, targetType *typedesc.Descriptor) bool {
	return isReal(sourceType.Kind) && isReal(targetType.Kind)
}

func (numberConverter) Convert(source interface{}, _, targetType *typedesc.Descriptor) (interface{}, error) {
	return reflect.ValueOf(source).Convert(targetType.Type).Interface(), nil
}

// formatConverter renders primitives as strings.
type formatConverter struct{}

func (formatConverter) ConvertibleTypes() []ConvertiblePair { return []ConvertiblePair{anyToString} }

func (formatConverter) Matches(sourceType, _ *typedesc.Descriptor) bool {
	return sourceType.IsPrimitive()
}

func (formatConverter) Convert(source interface{}, _, _ *typedesc.Descriptor) (interface{}, error) {
	return fmt.Sprint(source), nil
}

// parseConverter parses strings into numbers and booleans.
type parseConverter struct{}

func (parseConverter) ConvertibleTypes() []ConvertiblePair { return []ConvertiblePair{stringToAny} }

func (parseConverter) Matches(_, targetType *typedesc.Descriptor) bool {
	return targetType.Kind == reflect.Bool || isReal(targetType.Kind)
}

func (parseConverter) Convert(source interface{}, _, targetType *typedesc.Descriptor) (interface{}, error) {
	s := source.(string)
	t := targetType.Type
	switch k := t.Kind(); {
	case k == reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(b).Convert(t).Interface(), nil
	case k >= reflect.Int && k <= reflect.Int64:
		i, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(i).Convert(t).Interface(), nil
	case k >= reflect.Uint && k <= reflect.Uintptr:
		u, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(u).Convert(t).Interface(), nil
	default:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	}
}

// ProtoConverter marshals protobuf messages to their wire bytes and back.
type ProtoConverter struct{}

func (ProtoConverter) ConvertibleTypes() []ConvertiblePair {
	return []ConvertiblePair{anyToBytes, bytesToAny}
}

func (ProtoConverter) Matches(sourceType, targetType *typedesc.Descriptor) bool {
	if targetType.Type == bytesType {
		return sourceType.Type.Implements(protoMsgType)
	}
	return targetType.Kind == reflect.Ptr && targetType.Type.Implements(protoMsgType)
}

func (ProtoConverter) Convert(source interface{}, _, targetType *typedesc.Descriptor) (interface{}, error) {
	if msg, ok := source.(proto.Message); ok {
		return proto.Marshal(msg)
	}
	msg := reflect.New(targetType.Type.Elem()).Interface().(proto.Message)
	if err := proto.Unmarshal(source.([]byte), msg); err != nil {
		return nil, err
	}
	return msg, nil
}
