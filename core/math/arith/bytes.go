package arith

import (
	"errors"

	"github.com/cronokirby/saferith"
)

var (
	ErrNegativeValue = errors.New("arith: buffer encodes a negative value")
	ErrShortBuffer   = errors.New("arith: buffer too small for value")
)

// Buffers are fixed-width, little-endian, two's-complement integers: the least
// significant byte comes first and the sign bit is the top bit of the last
// byte. Every value this package handles is non-negative, so that bit is
// always clear.

// DecodeNat reads a non-negative integer from a two's-complement buffer.
// An empty buffer decodes to zero.
func DecodeNat(data []byte) (*saferith.Nat, error) {
	if len(data) > 0 && data[len(data)-1]&0x80 != 0 {
		return nil, ErrNegativeValue
	}
	return new(saferith.Nat).SetBytes(reversed(data)), nil
}

// EncodedLen returns the minimal width of a two's-complement buffer holding x,
// sign bit included.
func EncodedLen(x *saferith.Nat) int {
	return x.TrueLen()/8 + 1
}

// EncodeNat writes x into buf, least significant byte first, and zeroes the
// bytes past the value. buf is left untouched if it is shorter than
// EncodedLen(x).
func EncodeNat(buf []byte, x *saferith.Nat) error {
	if EncodedLen(x) > len(buf) {
		return ErrShortBuffer
	}
	be := x.Big().FillBytes(make([]byte, len(buf)))
	for i, b := range be {
		buf[len(buf)-1-i] = b
	}
	return nil
}

// reversed returns a copy of data with its bytes in reverse order.
func reversed(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[len(data)-1-i] = b
	}
	return out
}
