// Package lexcode implements an order-preserving binary codec: encoding two
// values of the same shape and comparing the results byte-lexicographically
// yields the same answer as comparing the values themselves. It exists to
// serve as the key-encoding layer of an ordered key-value store, where
// composite keys must sort correctly without being deserialized first.
//
// Most callers only need Encode and Decode, which walk a Go value with
// reflection and drive the primitive codec on Encoder/Decoder directly —
// Go has no derive-macro equivalent, so reflection is this package's
// traversal driver. Types that need full control over their wire shape can
// implement Marshaler and Unmarshaler instead.
package lexcode

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/josefs/lexcode/errs"
	"github.com/josefs/lexcode/varint"
)

// FixedBytes is a byte slice of statically-known length that encodes to
// exactly its own bytes, with no sentinel framing and no per-byte varint
// overhead. Use it for hash digests, UUIDs, or any other fixed-width
// binary field embedded in a composite key.
type FixedBytes []byte

// Char is a Unicode scalar value. Declare a field as Char rather than rune
// when it should encode as the char primitive (unsigned varint of the code
// point); a plain rune or int32 field encodes as a signed integer instead.
type Char rune

// Option is a generic substitute for a derive-macro-generated optional
// field: Valid reports whether Value is present. The traversal driver
// recognizes this exact two-field shape for any instantiation of T.
type Option[T any] struct {
	Valid bool
	Value T
}

// Some constructs a present Option.
func Some[T any](v T) Option[T] { return Option[T]{Valid: true, Value: v} }

// None constructs an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Tagged represents a variant selecting one of several named shapes: Tag is
// the variant's unsigned discriminant, Payload its encoding (nil for a unit
// variant, or any value the traversal driver otherwise knows how to
// encode).
type Tagged struct {
	Tag     uint64
	Payload any
}

// Marshaler lets a type take over its own encoding, bypassing reflection.
type Marshaler interface {
	MarshalLex(e *Encoder) error
}

// Unmarshaler is Marshaler's decode-side counterpart.
type Unmarshaler interface {
	UnmarshalLex(d *Decoder) error
}

var (
	fixedBytesType = reflect.TypeOf(FixedBytes(nil))
	charType       = reflect.TypeOf(Char(0))
	taggedType     = reflect.TypeOf(Tagged{})
	byteSliceType  = reflect.TypeOf([]byte(nil))
	uint128Type    = reflect.TypeOf(varint.Uint128{})
	int128Type     = reflect.TypeOf(varint.Int128{})
)

// Encode walks v with reflection and returns its lexcode encoding.
func Encode(v any) ([]byte, error) {
	enc := NewEncoder()

	if err := encodeValue(enc, reflect.ValueOf(v)); err != nil {
		enc.Release()
		return nil, err
	}

	return enc.Finish(), nil
}

// Decode reconstructs out's value from data. out must be a non-nil pointer;
// its pointed-to type is the "expected shape" the spec's decode operation
// takes as a parameter. Trailing bytes beyond what the shape consumes are
// left unread, not rejected — see Decoder.Remaining.
func Decode(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errs.Messagef("lexcode: Decode target must be a non-nil pointer")
	}

	dec := NewDecoder(data)
	return decodeValue(dec, rv.Elem())
}

func encodeValue(e *Encoder, v reflect.Value) error {
	if !v.IsValid() {
		return errs.Messagef("lexcode: cannot encode invalid value")
	}

	if v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return m.MarshalLex(e)
		}
	}

	switch v.Type() {
	case fixedBytesType:
		return e.PutFixedBytes(v.Bytes())
	case charType:
		e.PutChar(rune(v.Int()))
		return nil
	case uint128Type:
		e.PutUint128(v.Interface().(varint.Uint128))
		return nil
	case int128Type:
		e.PutInt128(v.Interface().(varint.Int128))
		return nil
	case taggedType:
		return encodeTagged(e, v.Interface().(Tagged))
	}

	if isOptionType(v.Type()) {
		return encodeOption(e, v)
	}

	switch v.Kind() {
	case reflect.Bool:
		e.PutBool(v.Bool())
		return nil
	case reflect.Int8:
		e.PutInt8(int8(v.Int()))
		return nil
	case reflect.Int16:
		e.PutInt16(int16(v.Int()))
		return nil
	case reflect.Int32:
		e.PutInt32(int32(v.Int()))
		return nil
	case reflect.Int, reflect.Int64:
		e.PutInt64(v.Int())
		return nil
	case reflect.Uint8:
		e.PutUint8(uint8(v.Uint()))
		return nil
	case reflect.Uint16:
		e.PutUint16(uint16(v.Uint()))
		return nil
	case reflect.Uint32:
		e.PutUint32(uint32(v.Uint()))
		return nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		e.PutUint64(v.Uint())
		return nil
	case reflect.Float32:
		e.PutFloat32(float32(v.Float()))
		return nil
	case reflect.Float64:
		e.PutFloat64(v.Float())
		return nil
	case reflect.String:
		e.PutString(v.String())
		return nil
	case reflect.Ptr:
		if v.IsNil() {
			e.PutNone()
			return nil
		}
		e.PutSome()
		return encodeValue(e, v.Elem())
	case reflect.Array:
		return encodeArray(e, v)
	case reflect.Slice:
		return encodeSlice(e, v)
	case reflect.Map:
		return encodeMap(e, v)
	case reflect.Struct:
		return encodeStruct(e, v)
	default:
		return fmt.Errorf("%w: cannot encode kind %s", errs.ErrUnsupported, v.Kind())
	}
}

func encodeArray(e *Encoder, v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		data := make([]byte, v.Len())
		reflect.Copy(reflect.ValueOf(data), v)
		return e.PutFixedBytes(data)
	}
	for i := 0; i < v.Len(); i++ {
		if err := encodeValue(e, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func encodeSlice(e *Encoder, v reflect.Value) error {
	if v.Type() == byteSliceType {
		e.PutBytes(v.Bytes())
		return nil
	}

	e.BeginSeq()
	for i := 0; i < v.Len(); i++ {
		e.PutSeqElem()
		if err := encodeValue(e, v.Index(i)); err != nil {
			return err
		}
	}
	e.EndSeq()
	return nil
}

func encodeMap(e *Encoder, v reflect.Value) error {
	keys := v.MapKeys()
	sortedKeys, err := sortMapKeys(keys)
	if err != nil {
		return err
	}

	e.BeginMap()
	for _, k := range sortedKeys {
		e.PutMapEntry()
		if err := encodeValue(e, k); err != nil {
			return err
		}
		if err := encodeValue(e, v.MapIndex(k)); err != nil {
			return err
		}
	}
	e.EndMap()
	return nil
}

func sortMapKeys(keys []reflect.Value) ([]reflect.Value, error) {
	if len(keys) == 0 {
		return keys, nil
	}

	switch keys[0].Kind() {
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	default:
		return nil, fmt.Errorf("%w: map key kind %s has no defined order", errs.ErrUnsupported, keys[0].Kind())
	}
	return keys, nil
}

func encodeStruct(e *Encoder, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if t.Field(i).PkgPath != "" { // unexported
			continue
		}
		if err := encodeValue(e, v.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func encodeTagged(e *Encoder, tg Tagged) error {
	e.PutVariantTag(tg.Tag)
	if tg.Payload == nil {
		return nil
	}
	return encodeValue(e, reflect.ValueOf(tg.Payload))
}

func isOptionType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.NumField() != 2 {
		return false
	}
	f0, f1 := t.Field(0), t.Field(1)
	return f0.Name == "Valid" && f0.Type.Kind() == reflect.Bool && f1.Name == "Value"
}

func encodeOption(e *Encoder, v reflect.Value) error {
	if !v.FieldByName("Valid").Bool() {
		e.PutNone()
		return nil
	}
	e.PutSome()
	return encodeValue(e, v.FieldByName("Value"))
}

func decodeValue(d *Decoder, v reflect.Value) error {
	if !v.IsValid() {
		return errs.Messagef("lexcode: cannot decode into invalid value")
	}

	if v.CanAddr() && v.Addr().CanInterface() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalLex(d)
		}
	}

	switch v.Type() {
	case fixedBytesType:
		// Length is part of the static shape; the caller must size the
		// slice before calling Decode (e.g. make(FixedBytes, 16)).
		data, err := d.GetFixedBytes(v.Len())
		if err != nil {
			return err
		}
		v.SetBytes(data)
		return nil
	case charType:
		r, err := d.GetChar()
		if err != nil {
			return err
		}
		v.SetInt(int64(r))
		return nil
	case uint128Type:
		u, err := d.GetUint128()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(u))
		return nil
	case int128Type:
		n, err := d.GetInt128()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(n))
		return nil
	}

	if isOptionType(v.Type()) {
		return decodeOption(d, v)
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := d.GetBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Int8:
		n, err := d.GetInt8()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int16:
		n, err := d.GetInt16()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int32:
		n, err := d.GetInt32()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int, reflect.Int64:
		n, err := d.GetInt64()
		if err != nil {
			return err
		}
		v.SetInt(n)
		return nil
	case reflect.Uint8:
		n, err := d.GetUint8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint16:
		n, err := d.GetUint16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint32:
		n, err := d.GetUint32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		n, err := d.GetUint64()
		if err != nil {
			return err
		}
		v.SetUint(n)
		return nil
	case reflect.Float32:
		f, err := d.GetFloat32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	case reflect.Float64:
		f, err := d.GetFloat64()
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case reflect.String:
		s, err := d.GetString()
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case reflect.Ptr:
		has, err := d.GetOptionTag()
		if err != nil {
			return err
		}
		if !has {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		elem := reflect.New(v.Type().Elem())
		if err := decodeValue(d, elem.Elem()); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case reflect.Array:
		return decodeArray(d, v)
	case reflect.Slice:
		return decodeSlice(d, v)
	case reflect.Map:
		return decodeMap(d, v)
	case reflect.Struct:
		return decodeStruct(d, v)
	default:
		return fmt.Errorf("%w: cannot decode kind %s", errs.ErrUnsupported, v.Kind())
	}
}

func decodeArray(d *Decoder, v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		data, err := d.GetFixedBytes(v.Len())
		if err != nil {
			return err
		}
		reflect.Copy(v, reflect.ValueOf(data))
		return nil
	}
	for i := 0; i < v.Len(); i++ {
		if err := decodeValue(d, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeSlice(d *Decoder, v reflect.Value) error {
	if v.Type() == byteSliceType {
		b, err := d.GetBytes()
		if err != nil {
			return err
		}
		v.SetBytes(b)
		return nil
	}

	elemType := v.Type().Elem()
	out := reflect.MakeSlice(v.Type(), 0, 0)
	for {
		more, err := d.NextSeqElem()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		elem := reflect.New(elemType).Elem()
		if err := decodeValue(d, elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	v.Set(out)
	return nil
}

func decodeMap(d *Decoder, v reflect.Value) error {
	keyType, valType := v.Type().Key(), v.Type().Elem()
	out := reflect.MakeMap(v.Type())
	for {
		more, err := d.NextMapEntry()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		key := reflect.New(keyType).Elem()
		if err := decodeValue(d, key); err != nil {
			return err
		}
		val := reflect.New(valType).Elem()
		if err := decodeValue(d, val); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	v.Set(out)
	return nil
}

func decodeStruct(d *Decoder, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue
		}
		if err := decodeValue(d, v.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeOption(d *Decoder, v reflect.Value) error {
	has, err := d.GetOptionTag()
	if err != nil {
		return err
	}
	v.FieldByName("Valid").SetBool(has)
	if !has {
		return nil
	}
	return decodeValue(d, v.FieldByName("Value"))
}
