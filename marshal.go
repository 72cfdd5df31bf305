package xpa

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Payload marshaling between host numeric arrays and the raw bytes
// the messaging library exchanges. Element widths follow the host
// numeric types: byte (1), short (2), int (4), long (8), float (4),
// double (8), complex as two doubles (16). Byte order is the
// platform's native order, as payloads cross process boundaries on
// the same machine.

// PackedSize returns the total byte size of a supported numeric
// slice. Unsupported element types fail with TypeError.
func PackedSize(elems any) (int, error) {
	switch a := elems.(type) {
	case []byte:
		return len(a), nil
	case []int16:
		return 2 * len(a), nil
	case []int32:
		return 4 * len(a), nil
	case []int64:
		return 8 * len(a), nil
	case []float32:
		return 4 * len(a), nil
	case []float64:
		return 8 * len(a), nil
	case []complex128:
		return 16 * len(a), nil
	default:
		return 0, &TypeError{Type: fmt.Sprintf("%T", elems)}
	}
}

// Pack encodes a supported numeric slice as its native-order bytes.
// Byte slices pass through without copying; the caller keeps
// ownership and the result must not be retained past the call it is
// handed to.
func Pack(elems any) ([]byte, error) {
	switch a := elems.(type) {
	case []byte:
		return a, nil
	case []int16:
		buf := make([]byte, 2*len(a))
		for i, v := range a {
			binary.NativeEndian.PutUint16(buf[2*i:], uint16(v))
		}
		return buf, nil
	case []int32:
		buf := make([]byte, 4*len(a))
		for i, v := range a {
			binary.NativeEndian.PutUint32(buf[4*i:], uint32(v))
		}
		return buf, nil
	case []int64:
		buf := make([]byte, 8*len(a))
		for i, v := range a {
			binary.NativeEndian.PutUint64(buf[8*i:], uint64(v))
		}
		return buf, nil
	case []float32:
		buf := make([]byte, 4*len(a))
		for i, v := range a {
			binary.NativeEndian.PutUint32(buf[4*i:], math.Float32bits(v))
		}
		return buf, nil
	case []float64:
		buf := make([]byte, 8*len(a))
		for i, v := range a {
			binary.NativeEndian.PutUint64(buf[8*i:], math.Float64bits(v))
		}
		return buf, nil
	case []complex128:
		buf := make([]byte, 16*len(a))
		for i, v := range a {
			binary.NativeEndian.PutUint64(buf[16*i:], math.Float64bits(real(v)))
			binary.NativeEndian.PutUint64(buf[16*i+8:], math.Float64bits(imag(v)))
		}
		return buf, nil
	default:
		return nil, &TypeError{Type: fmt.Sprintf("%T", elems)}
	}
}

// Scatter decodes src into dst, a supported numeric slice whose total
// byte size must equal len(src) exactly. The sizes are compared in
// bytes only; a payload may be scattered into a differently-typed
// slice of equal byte size.
func Scatter(src []byte, dst any) error {
	size, err := PackedSize(dst)
	if err != nil {
		return err
	}
	if size != len(src) {
		return &SizeMismatchError{Want: len(src), Got: size}
	}
	switch a := dst.(type) {
	case []byte:
		copy(a, src)
	case []int16:
		for i := range a {
			a[i] = int16(binary.NativeEndian.Uint16(src[2*i:]))
		}
	case []int32:
		for i := range a {
			a[i] = int32(binary.NativeEndian.Uint32(src[4*i:]))
		}
	case []int64:
		for i := range a {
			a[i] = int64(binary.NativeEndian.Uint64(src[8*i:]))
		}
	case []float32:
		for i := range a {
			a[i] = math.Float32frombits(binary.NativeEndian.Uint32(src[4*i:]))
		}
	case []float64:
		for i := range a {
			a[i] = math.Float64frombits(binary.NativeEndian.Uint64(src[8*i:]))
		}
	case []complex128:
		for i := range a {
			re := math.Float64frombits(binary.NativeEndian.Uint64(src[16*i:]))
			im := math.Float64frombits(binary.NativeEndian.Uint64(src[16*i+8:]))
			a[i] = complex(re, im)
		}
	}
	return nil
}
