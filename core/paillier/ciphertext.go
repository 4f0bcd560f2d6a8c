package paillier

import (
	"github.com/cronokirby/saferith"
)

// EncodedCiphertext represents a signed plaintext v as a pair of ciphertexts
// under the same public key:
//   - Actual   = Enc(v mod N)
//   - Negative = Enc(-v mod N)
//
// Both halves of a result are always derived from the matching halves of the
// operands.
type EncodedCiphertext struct {
	Actual   *saferith.Nat
	Negative *saferith.Nat
}

// NewEncodedCiphertext pairs two ciphertexts. The values are not copied.
func NewEncodedCiphertext(actual, negative *saferith.Nat) *EncodedCiphertext {
	return &EncodedCiphertext{
		Actual:   actual,
		Negative: negative,
	}
}

// Clone returns a deep copy of ct.
func (ct *EncodedCiphertext) Clone() *EncodedCiphertext {
	return &EncodedCiphertext{
		Actual:   ct.Actual.Clone(),
		Negative: ct.Negative.Clone(),
	}
}

// Equal checks whether both halves of ct and ctA hold the same values.
func (ct *EncodedCiphertext) Equal(ctA *EncodedCiphertext) bool {
	return ct.Actual.Eq(ctA.Actual)&ct.Negative.Eq(ctA.Negative) == 1
}
