// Package codec converts values of an element type to and from a
// self-describing byte blob, as required by the payload codec contract of
// the disk-resident ordered set engine (pkg/avltree).
//
// A codec is deterministic: Decode(Encode(v)) must compare equal to v under
// the element's ordering. The engine only needs the encoded length before
// writing a node (to fill in the payload size) and the decoded value
// afterwards (for search); it is otherwise agnostic to the byte layout.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// ErrDecode is wrapped by codec failures during Decode.
var ErrDecode = errors.New("codec: decode failed")

// Codec converts values of type T to and from bytes.
type Codec[T any] interface {
	// Encode converts v to its canonical byte representation.
	Encode(v T) ([]byte, error)
	// Decode converts bytes back to a value of type T. Implementations
	// must return a freshly allocated value so that mutating it never
	// aliases stored bytes.
	Decode(b []byte) (T, error)
	// Compare reports whether a is less than, equal to, or greater than
	// b, establishing the total order the engine operates on.
	Compare(a, b T) int
}

// orderedCodec implements Codec for any ordered numeric primitive encoded
// as a fixed-width big-endian blob. Byte order of the blob matches numeric
// order for the integer codecs; Float64 stores raw IEEE-754 bits, whose
// byte order does not match numeric order for negative values.
type orderedCodec[T constraints.Integer | constraints.Float] struct {
	size    int
	encode  func(T) []byte
	decode  func([]byte) (T, error)
	compare func(a, b T) int
}

func (c orderedCodec[T]) Encode(v T) ([]byte, error) { return c.encode(v), nil }

func (c orderedCodec[T]) Decode(b []byte) (T, error) {
	if len(b) != c.size {
		var zero T
		return zero, errDecodeLen(c.size, len(b))
	}
	return c.decode(b)
}

func (c orderedCodec[T]) Compare(a, b T) int { return c.compare(a, b) }

func errDecodeLen(want, got int) error {
	return errors.Join(ErrDecode, errLenMismatch{want, got})
}

type errLenMismatch struct{ want, got int }

func (e errLenMismatch) Error() string {
	return "codec: expected " + strconv.Itoa(e.want) + " bytes, got " + strconv.Itoa(e.got)
}

// Int64 returns a codec for int64 values, stored as 8-byte big-endian with
// the sign bit flipped so that unsigned byte-order comparison matches
// signed numeric comparison (not relied upon by this engine, which compares
// decoded values, but kept as the canonical fixed-width layout).
func Int64() Codec[int64] {
	return orderedCodec[int64]{
		size: 8,
		encode: func(v int64) []byte {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, uint64(v)^(1<<63))
			return buf
		},
		decode: func(b []byte) (int64, error) {
			return int64(binary.BigEndian.Uint64(b) ^ (1 << 63)), nil
		},
		compare: func(a, b int64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		},
	}
}

// Uint64 returns a codec for uint64 values, stored as 8-byte big-endian.
func Uint64() Codec[uint64] {
	return orderedCodec[uint64]{
		size: 8,
		encode: func(v uint64) []byte {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, v)
			return buf
		},
		decode: func(b []byte) (uint64, error) {
			return binary.BigEndian.Uint64(b), nil
		},
		compare: func(a, b uint64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		},
	}
}

// Float64 returns a codec for float64 values, stored as 8-byte big-endian
// IEEE-754 bits.
func Float64() Codec[float64] {
	return orderedCodec[float64]{
		size: 8,
		encode: func(v float64) []byte {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, math.Float64bits(v))
			return buf
		},
		decode: func(b []byte) (float64, error) {
			return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
		},
		compare: func(a, b float64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		},
	}
}

// stringCodec encodes strings as their raw UTF-8 bytes and orders them
// lexicographically.
type stringCodec struct{}

// String returns a codec for string values, stored as raw UTF-8 bytes and
// compared lexicographically.
func String() Codec[string] { return stringCodec{} }

func (stringCodec) Encode(v string) ([]byte, error) { return []byte(v), nil }

func (stringCodec) Decode(b []byte) (string, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	return string(cp), nil
}

func (stringCodec) Compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// bytesCodec encodes []byte values as a raw passthrough, ordered
// lexicographically by byte value.
type bytesCodec struct{}

// Bytes returns a codec for []byte values, stored verbatim and compared
// lexicographically.
func Bytes() Codec[[]byte] { return bytesCodec{} }

func (bytesCodec) Encode(v []byte) ([]byte, error) {
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (bytesCodec) Decode(b []byte) ([]byte, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (bytesCodec) Compare(a, b []byte) int { return bytes.Compare(a, b) }
