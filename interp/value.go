package interp

import "fmt"

// Tag identifies the shape of a Value.
type Tag uint8

const (
	// TagNil is the absent value. Optional arguments arrive as nil,
	// and accessors return nil where the original value is absent.
	TagNil Tag = iota

	// TagInt is a signed integer scalar.
	TagInt

	// TagStr is a string scalar.
	TagStr

	// TagArr is a numeric array: a Go slice of one of the supported
	// element kinds (see Kind).
	TagArr

	// TagObj is an opaque object implementing the Object protocol.
	TagObj
)

// String returns the tag name as used in error messages.
func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagInt:
		return "integer"
	case TagStr:
		return "string"
	case TagArr:
		return "array"
	case TagObj:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged host value crossing the interpreter boundary.
// Data holds the Go representation selected by Tag: nothing for
// TagNil, int64 for TagInt, string for TagStr, a supported numeric
// slice for TagArr, an Object for TagObj.
type Value struct {
	Tag  Tag
	Data any
}

// Nil returns the absent value.
func Nil() Value { return Value{Tag: TagNil} }

// Int returns an integer scalar value.
func Int(v int64) Value { return Value{Tag: TagInt, Data: v} }

// Str returns a string scalar value.
func Str(s string) Value { return Value{Tag: TagStr, Data: s} }

// Bytes returns a byte-array value.
func Bytes(b []byte) Value { return Value{Tag: TagArr, Data: b} }

// Arr returns a numeric-array value holding elems, which should be a
// slice of one of the supported element kinds. Unsupported element
// types are not rejected here; consumers validate at use (mirroring
// hosts that hand out untyped array references and let the callee
// check the type code).
func Arr(elems any) Value { return Value{Tag: TagArr, Data: elems} }

// Obj returns an object value.
func Obj(o Object) Value { return Value{Tag: TagObj, Data: o} }

// Text returns a string value holding a copy of the first n bytes of
// src, or the absent value when src is nil. A length of -1 means all
// of src. Any other negative length, a length past the end of src,
// or a nonzero length with an absent src is rejected. The copy is of
// exactly n bytes; embedded zero bytes are kept.
func Text(src []byte, n int) (Value, error) {
	if n == -1 {
		n = len(src)
	}
	if n < 0 || n > len(src) {
		return Nil(), fmt.Errorf("invalid string length")
	}
	if src == nil {
		return Nil(), nil
	}
	return Str(string(src[:n])), nil
}

// IsNil reports whether the value is absent.
func (v Value) IsNil() bool { return v.Tag == TagNil }

// AsInt returns the integer scalar, if the value is one.
func (v Value) AsInt() (int64, bool) {
	if v.Tag != TagInt {
		return 0, false
	}
	i, ok := v.Data.(int64)
	return i, ok
}

// AsStr returns the string scalar, if the value is one.
func (v Value) AsStr() (string, bool) {
	if v.Tag != TagStr {
		return "", false
	}
	s, ok := v.Data.(string)
	return s, ok
}

// AsArr returns the numeric slice, if the value is an array.
func (v Value) AsArr() (any, bool) {
	if v.Tag != TagArr || v.Data == nil {
		return nil, false
	}
	return v.Data, true
}

// AsObj returns the object, if the value is one.
func (v Value) AsObj() (Object, bool) {
	if v.Tag != TagObj {
		return nil, false
	}
	o, ok := v.Data.(Object)
	return o, ok
}

// Kind is the element type code of a host numeric array. The set
// mirrors the numeric types hosts exchange: bytes, three signed
// integer widths, two float widths, and complex values counted as two
// doubles.
type Kind uint8

const (
	KindByte Kind = iota
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindComplex
)

// Size returns the element width in bytes.
func (k Kind) Size() int {
	switch k {
	case KindByte:
		return 1
	case KindShort:
		return 2
	case KindInt, KindFloat:
		return 4
	case KindLong, KindDouble:
		return 8
	case KindComplex:
		return 16
	default:
		return 0
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// KindOf returns the element kind of a supported numeric slice.
func KindOf(elems any) (Kind, bool) {
	switch elems.(type) {
	case []byte:
		return KindByte, true
	case []int16:
		return KindShort, true
	case []int32:
		return KindInt, true
	case []int64:
		return KindLong, true
	case []float32:
		return KindFloat, true
	case []float64:
		return KindDouble, true
	case []complex128:
		return KindComplex, true
	default:
		return 0, false
	}
}

// ElemCount returns the element count of a supported numeric slice.
func ElemCount(elems any) (int, bool) {
	switch a := elems.(type) {
	case []byte:
		return len(a), true
	case []int16:
		return len(a), true
	case []int32:
		return len(a), true
	case []int64:
		return len(a), true
	case []float32:
		return len(a), true
	case []float64:
		return len(a), true
	case []complex128:
		return len(a), true
	default:
		return 0, false
	}
}
