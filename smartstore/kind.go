package smartstore

import (
	"bytes"
	"encoding"
	"encoding/json"
	"reflect"
)

// Kind is the JSON-level category of a Go value.
type Kind string

const (
	KindNull     Kind = "null"
	KindBoolean  Kind = "boolean"
	KindNumber   Kind = "number"
	KindString   Kind = "string"
	KindArray    Kind = "array"
	KindObject   Kind = "object"
	KindFunction Kind = "function" // anything JSON has no representation for
)

var (
	marshalerType     = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// maxIndirections bounds how many pointers and interfaces KindOf follows.
// Anything deeper is treated as a cycle. encoding/json uses the same limit.
const maxIndirections = 1000

// KindOf classifies v the way it would appear once encoded. Nil pointers,
// maps, slices and interfaces are null. A json.Marshaler is asked for its
// encoding and classified by that. Pointer cycles are KindFunction.
func KindOf(v any) Kind {
	return kindOf(v, true)
}

// storable reports whether v can be handed to json.Marshal. Unlike KindOf it
// never calls MarshalJSON; json.Marshal rejects bad marshaler output itself.
func storable(v any) bool {
	return kindOf(v, false) != KindFunction
}

func kindOf(v any, callMarshalers bool) Kind {
	if v == nil {
		return KindNull
	}
	c := classifier{callMarshalers: callMarshalers}
	return c.kind(reflect.ValueOf(v))
}

type classifier struct {
	callMarshalers bool
	depth          int
}

func (c *classifier) kind(rv reflect.Value) Kind {
	t := rv.Type()
	switch {
	case t.Implements(marshalerType):
		if isNilable(rv) && rv.IsNil() {
			return KindNull
		}
		if !c.callMarshalers {
			// storable only needs to know it is not a function
			return KindObject
		}
		data, err := rv.Interface().(json.Marshaler).MarshalJSON()
		if err != nil {
			return KindFunction
		}
		return kindOfJSON(data)
	case t.Implements(textMarshalerType):
		if isNilable(rv) && rv.IsNil() {
			return KindNull
		}
		return KindString
	}

	switch rv.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte encodes as a base64 string
			return KindString
		}
		return KindArray
	case reflect.Array:
		return KindArray
	case reflect.Map, reflect.Struct:
		if rv.Kind() == reflect.Map && rv.IsNil() {
			return KindNull
		}
		return KindObject
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		if c.depth++; c.depth > maxIndirections {
			return KindFunction
		}
		return c.kind(rv.Elem())
	default:
		// Func, Chan, Complex64, Complex128, UnsafePointer
		return KindFunction
	}
}

func isNilable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func kindOfJSON(data []byte) Kind {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return KindFunction
	}
	switch data[0] {
	case 'n':
		return KindNull
	case 't', 'f':
		return KindBoolean
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	default:
		return KindNumber
	}
}
