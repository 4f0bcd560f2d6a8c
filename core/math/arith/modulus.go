package arith

import (
	"errors"

	"github.com/cronokirby/saferith"
)

var (
	ErrZeroModulus = errors.New("arith: modulus is zero")
)

// Modulus wraps a saferith.Modulus holding a public ciphertext modulus N².
// A Modulus is never zero: every constructor rejects it, and the zero value
// of the struct is reported as zero by the functions that consume it.
type Modulus struct {
	// represents modulus N²
	*saferith.Modulus
}

// NewModulus returns a Modulus for n.
// The value is not copied.
func NewModulus(n *saferith.Nat) (*Modulus, error) {
	if n == nil || n.EqZero() == 1 {
		return nil, ErrZeroModulus
	}
	return &Modulus{
		Modulus: saferith.ModulusFromNat(n),
	}, nil
}

// ModulusFromBytes decodes a fixed-width two's-complement buffer into a Modulus.
func ModulusFromBytes(data []byte) (*Modulus, error) {
	n, err := DecodeNat(data)
	if err != nil {
		return nil, err
	}
	return NewModulus(n)
}

// Valid returns true if n can be used as a reduction modulus.
func (n *Modulus) Valid() bool {
	return n != nil && n.Modulus != nil && n.Modulus.Nat().EqZero() != 1
}

// ByteLen returns the number of bytes needed to hold N² without a sign byte.
func (n *Modulus) ByteLen() int {
	return (n.BitLen() + 7) / 8
}

// BufferLen returns the width of a two's-complement buffer that can hold any
// residue modulo N². It is ByteLen plus one sign byte.
func (n *Modulus) BufferLen() int {
	return n.ByteLen() + 1
}
