package expireoption

import (
	"encoding/json"
	"strconv"

	"github.com/goccy/go-reflect"
)

// ValueCodec converts typed values to and from the string payload held in
// the value record. Implementations must never encode a valid value as the
// empty string, since the empty string is the "no value" sentinel.
type ValueCodec[V any] interface {
	EncodeValue(V) (string, error)
	DecodeValue(string) (V, error)
}

// FunctionsCodec is a ValueCodec implementation that uses functions to
// perform the conversions.
type FunctionsCodec[V any] struct {
	// EncodeFunc converts a value to its stored string form.
	EncodeFunc func(V) (string, error)

	// DecodeFunc converts a stored string back to a value.
	DecodeFunc func(string) (V, error)
}

// EncodeValue calls the EncodeFunc function.
func (c FunctionsCodec[V]) EncodeValue(v V) (string, error) {
	return c.EncodeFunc(v)
}

// DecodeValue calls the DecodeFunc function.
func (c FunctionsCodec[V]) DecodeValue(s string) (V, error) {
	return c.DecodeFunc(s)
}

// JSONCodec is a ValueCodec that stores values as JSON.
// It is the fallback for composite types such as structs, maps, and slices.
type JSONCodec[V any] struct{}

// EncodeValue marshals the value as JSON.
func (JSONCodec[V]) EncodeValue(v V) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeValue unmarshals the value from JSON.
func (JSONCodec[V]) DecodeValue(s string) (V, error) {
	var v V
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

// DefaultValueCodec returns a default codec for the given value type.
// Strings pass through unchanged, booleans and numeric types use their
// canonical decimal forms, and every other type is stored as JSON.
func DefaultValueCodec[V any]() ValueCodec[V] {
	var zero V
	typ := reflect.TypeOf(&zero).Elem()

	switch typ.Kind() {
	case reflect.String:
		return FunctionsCodec[V]{
			EncodeFunc: func(v V) (string, error) {
				return reflect.ValueOf(v).String(), nil
			},
			DecodeFunc: func(s string) (V, error) {
				var v V
				reflect.ValueOf(&v).Elem().SetString(s)
				return v, nil
			},
		}

	case reflect.Bool:
		return FunctionsCodec[V]{
			EncodeFunc: func(v V) (string, error) {
				return strconv.FormatBool(reflect.ValueOf(v).Bool()), nil
			},
			DecodeFunc: func(s string) (V, error) {
				var v V
				b, err := strconv.ParseBool(s)
				if err != nil {
					return v, err
				}
				reflect.ValueOf(&v).Elem().SetBool(b)
				return v, nil
			},
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FunctionsCodec[V]{
			EncodeFunc: func(v V) (string, error) {
				return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil
			},
			DecodeFunc: func(s string) (V, error) {
				var v V
				n, err := strconv.ParseInt(s, 10, typ.Bits())
				if err != nil {
					return v, err
				}
				reflect.ValueOf(&v).Elem().SetInt(n)
				return v, nil
			},
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FunctionsCodec[V]{
			EncodeFunc: func(v V) (string, error) {
				return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil
			},
			DecodeFunc: func(s string) (V, error) {
				var v V
				n, err := strconv.ParseUint(s, 10, typ.Bits())
				if err != nil {
					return v, err
				}
				reflect.ValueOf(&v).Elem().SetUint(n)
				return v, nil
			},
		}

	case reflect.Float32, reflect.Float64:
		return FunctionsCodec[V]{
			EncodeFunc: func(v V) (string, error) {
				return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, typ.Bits()), nil
			},
			DecodeFunc: func(s string) (V, error) {
				var v V
				f, err := strconv.ParseFloat(s, typ.Bits())
				if err != nil {
					return v, err
				}
				reflect.ValueOf(&v).Elem().SetFloat(f)
				return v, nil
			},
		}

	default:
		return JSONCodec[V]{}
	}
}
