package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is the payload of a patch. It is a closed variant over the JSON data
// model: null, string, number, boolean, array or object. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

func Null() Value {
	return Value{kind: KindNull}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func Boolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

func Array(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: KindArray, arr: values}
}

func Object(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}
	return Value{kind: KindObject, obj: members}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsString returns the string held by v, or false if v is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the number held by v, or false if v is not a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsBoolean returns the boolean held by v, or false if v is not a boolean.
func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Equal reports whether v and other hold the same variant and contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBoolean:
		return v.b == other.b
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, m := range v.obj {
			o, ok := other.obj[k]
			if !ok || !m.Equal(o) {
				return false
			}
		}
		return true
	}

	return false
}

// Interface converts v into plain Go values: nil, string, float64, bool,
// []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBoolean:
		return v.b
	case KindArray:
		arr := make([]any, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Interface()
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.obj))
		for k, m := range v.obj {
			obj[k] = m.Interface()
		}
		return obj
	}
	return nil
}

// FromInterface converts decoded JSON or msgpack data into a Value. Integer
// types are widened to float64.
func FromInterface(data any) (Value, error) {
	switch d := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return d, nil
	case string:
		return String(d), nil
	case []byte:
		return String(string(d)), nil
	case bool:
		return Boolean(d), nil
	case float64:
		return Number(d), nil
	case float32:
		return Number(float64(d)), nil
	case int:
		return Number(float64(d)), nil
	case int8:
		return Number(float64(d)), nil
	case int16:
		return Number(float64(d)), nil
	case int32:
		return Number(float64(d)), nil
	case int64:
		return Number(float64(d)), nil
	case uint:
		return Number(float64(d)), nil
	case uint8:
		return Number(float64(d)), nil
	case uint16:
		return Number(float64(d)), nil
	case uint32:
		return Number(float64(d)), nil
	case uint64:
		return Number(float64(d)), nil
	case json.Number:
		n, err := d.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", d.String(), err)
		}
		return Number(n), nil
	case []any:
		arr := make([]Value, len(d))
		for i, elem := range d {
			val, err := FromInterface(elem)
			if err != nil {
				return Null(), fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = val
		}
		return Array(arr...), nil
	case map[string]any:
		obj := make(map[string]Value, len(d))
		for k, elem := range d {
			val, err := FromInterface(elem)
			if err != nil {
				return Null(), fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = val
		}
		return Object(obj), nil
	case map[any]any:
		obj := make(map[string]Value, len(d))
		for k, elem := range d {
			key, ok := k.(string)
			if !ok {
				return Null(), fmt.Errorf("unsupported object key type %T", k)
			}
			val, err := FromInterface(elem)
			if err != nil {
				return Null(), fmt.Errorf("object[%q]: %w", key, err)
			}
			obj[key] = val
		}
		return Object(obj), nil
	}

	return Null(), fmt.Errorf("unsupported value type %T", data)
}

func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(b)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("non-finite number %v cannot be represented in json", v.num)
		}
		return json.Marshal(v.num)
	case KindBoolean:
		return json.Marshal(v.b)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := v.arr[i].MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			b, err := v.obj[k].MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("unknown value kind %d", int(v.kind))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	val, err := FromInterface(raw)
	if err != nil {
		return err
	}

	*v = val
	return nil
}

var _ msgpack.CustomEncoder = Value{}
var _ msgpack.CustomDecoder = (*Value)(nil)

func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindString:
		return enc.EncodeString(v.str)
	case KindNumber:
		return enc.EncodeFloat64(v.num)
	case KindBoolean:
		return enc.EncodeBool(v.b)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for i := range v.arr {
			if err := v.arr[i].EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if err := enc.EncodeMapLen(len(keys)); err != nil {
			return err
		}
		for _, k := range keys {
			if err := enc.EncodeString(k); err != nil {
				return err
			}
			if err := v.obj[k].EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown value kind %d", int(v.kind))
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeInterface()
	if err != nil {
		return err
	}

	val, err := FromInterface(raw)
	if err != nil {
		return err
	}

	*v = val
	return nil
}
