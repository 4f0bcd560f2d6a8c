// Package homomorphism exposes the Paillier homomorphic operations of
// core/paillier over fixed-width byte buffers.
//
// Every buffer holds a little-endian two's-complement integer, the layout of
// .NET's BigInteger.ToByteArray. Inputs may have any width; outputs are
// written from index 0 into caller-allocated buffers and zero-filled past the
// value. A modular product can need one byte more than the modulus for
// its sign bit, so output buffers should be arith.Modulus.BufferLen() wide.
// A call that cannot fit its result fails with arith.ErrShortBuffer and
// leaves every output buffer untouched.
package homomorphism

import (
	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"

	"github.com/mr-shifu/paillier-homomorphism/core/math/arith"
	"github.com/mr-shifu/paillier-homomorphism/core/paillier"
)

// AddIntegers writes first ⊕ second = first•second (mod N²) into result.
// It is not aware of the dual encoding of signed values.
func AddIntegers(first, second, nsquare, result []byte) error {
	n2, err := decodeModulus(nsquare)
	if err != nil {
		return err
	}
	a, err := decode(first, "first")
	if err != nil {
		return err
	}
	b, err := decode(second, "second")
	if err != nil {
		return err
	}

	res, err := paillier.Combine(a, b, n2)
	if err != nil {
		return err
	}
	return errors.WithMessage(arith.EncodeNat(result, res), "homomorphism: result")
}

// AddEncoded adds two encoded ciphertexts given as their actual and negative
// halves, and writes the halves of the sum into resultActual and resultNegative.
func AddEncoded(
	firstActual, firstNegative []byte,
	secondActual, secondNegative []byte,
	nsquare []byte,
	resultActual, resultNegative []byte,
) error {
	return apply(paillier.AddEncoded,
		firstActual, firstNegative, secondActual, secondNegative, nsquare, resultActual, resultNegative)
}

// SubtractEncoded subtracts the second encoded ciphertext from the first and
// writes the halves of the difference into resultActual and resultNegative.
func SubtractEncoded(
	firstActual, firstNegative []byte,
	secondActual, secondNegative []byte,
	nsquare []byte,
	resultActual, resultNegative []byte,
) error {
	return apply(paillier.SubtractEncoded,
		firstActual, firstNegative, secondActual, secondNegative, nsquare, resultActual, resultNegative)
}

type encodedOp func(first, second *paillier.EncodedCiphertext, n2 *arith.Modulus) (*paillier.EncodedCiphertext, error)

func apply(
	op encodedOp,
	firstActual, firstNegative []byte,
	secondActual, secondNegative []byte,
	nsquare []byte,
	resultActual, resultNegative []byte,
) error {
	n2, err := decodeModulus(nsquare)
	if err != nil {
		return err
	}
	first, err := decodeEncoded(firstActual, firstNegative, "first")
	if err != nil {
		return err
	}
	second, err := decodeEncoded(secondActual, secondNegative, "second")
	if err != nil {
		return err
	}

	res, err := op(first, second, n2)
	if err != nil {
		return err
	}
	return writeEncoded(res, resultActual, resultNegative)
}

func decodeModulus(nsquare []byte) (*arith.Modulus, error) {
	n2, err := arith.ModulusFromBytes(nsquare)
	return n2, errors.WithMessage(err, "homomorphism: modulus")
}

func decode(data []byte, name string) (*saferith.Nat, error) {
	x, err := arith.DecodeNat(data)
	return x, errors.WithMessagef(err, "homomorphism: %s operand", name)
}

func decodeEncoded(actual, negative []byte, name string) (*paillier.EncodedCiphertext, error) {
	a, err := decode(actual, name+" actual")
	if err != nil {
		return nil, err
	}
	n, err := decode(negative, name+" negative")
	if err != nil {
		return nil, err
	}
	return paillier.NewEncodedCiphertext(a, n), nil
}

// writeEncoded writes both halves of ct, or nothing at all.
func writeEncoded(ct *paillier.EncodedCiphertext, actual, negative []byte) error {
	if arith.EncodedLen(ct.Actual) > len(actual) {
		return errors.WithMessage(arith.ErrShortBuffer, "homomorphism: result actual")
	}
	if arith.EncodedLen(ct.Negative) > len(negative) {
		return errors.WithMessage(arith.ErrShortBuffer, "homomorphism: result negative")
	}
	if err := arith.EncodeNat(actual, ct.Actual); err != nil {
		return err
	}
	return arith.EncodeNat(negative, ct.Negative)
}
