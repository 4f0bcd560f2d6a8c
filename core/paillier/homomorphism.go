package paillier

import (
	"github.com/cronokirby/saferith"

	"github.com/mr-shifu/paillier-homomorphism/core/math/arith"
)

// Operands are trusted: values outside [0, N²) and halves taken from unrelated
// encodings yield well-defined but meaningless results, never an error.

// Combine returns the homomorphic sum a ⊕ b.
// a ⊕ b = a•b (mod N²)
//
// If a = Enc(p) and b = Enc(q), the result is Enc(p + q mod N).
// A nil or zero modulus returns arith.ErrZeroModulus.
func Combine(a, b *saferith.Nat, n2 *arith.Modulus) (*saferith.Nat, error) {
	if !n2.Valid() {
		return nil, arith.ErrZeroModulus
	}
	return new(saferith.Nat).ModMul(a, b, n2.Modulus), nil
}

// AddEncoded returns the encoding of p + q, given encodings of p and q.
//
//	actual   = first.Actual ⊕ second.Actual
//	negative = first.Negative ⊕ second.Negative
func AddEncoded(first, second *EncodedCiphertext, n2 *arith.Modulus) (*EncodedCiphertext, error) {
	actual, err := Combine(first.Actual, second.Actual, n2)
	if err != nil {
		return nil, err
	}
	negative, err := Combine(first.Negative, second.Negative, n2)
	if err != nil {
		return nil, err
	}
	return NewEncodedCiphertext(actual, negative), nil
}

// SubtractEncoded returns the encoding of p - q, given encodings of p and q.
// second.Negative already encrypts -q, so p - q = p + (-q) needs no separate
// negation step. Only the halves of second are crossed:
//
//	actual   = first.Actual ⊕ second.Negative   = Enc(p - q)
//	negative = first.Negative ⊕ second.Actual   = Enc(q - p)
func SubtractEncoded(first, second *EncodedCiphertext, n2 *arith.Modulus) (*EncodedCiphertext, error) {
	actual, err := Combine(first.Actual, second.Negative, n2)
	if err != nil {
		return nil, err
	}
	negative, err := Combine(first.Negative, second.Actual, n2)
	if err != nil {
		return nil, err
	}
	return NewEncodedCiphertext(actual, negative), nil
}

// Negate returns the encoding of -p by swapping the halves of x.
// The halves are copied.
func Negate(x *EncodedCiphertext) *EncodedCiphertext {
	return NewEncodedCiphertext(x.Negative.Clone(), x.Actual.Clone())
}
