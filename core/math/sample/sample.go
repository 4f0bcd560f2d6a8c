package sample

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"

	"github.com/mr-shifu/paillier-homomorphism/core/math/arith"
)

// maxIterations bounds rejection sampling. The acceptance probability of a
// single draw is at least 1/2, so hitting the bound means rand is broken.
const maxIterations = 256

var ErrMaxIterations = errors.New("sample: failed to generate after max iterations")

// ModN samples an element of ℤₙ uniformly at random.
// If rand is nil, crypto/rand is used.
func ModN(rand io.Reader, n *arith.Modulus) (*saferith.Nat, error) {
	if !n.Valid() {
		return nil, arith.ErrZeroModulus
	}
	if rand == nil {
		rand = cryptorand.Reader
	}

	bitLen := n.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	// mask off the bits above bitLen so that most draws land below n
	topMask := byte(0xff >> ((8 - bitLen%8) % 8))

	out := new(saferith.Nat)
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.WithMessage(err, "sample: failed to read random bytes")
		}
		buf[0] &= topMask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n.Modulus); lt == 1 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// UnitModN samples an element of ℤₙˣ uniformly at random.
func UnitModN(rand io.Reader, n *arith.Modulus) (*saferith.Nat, error) {
	for i := 0; i < maxIterations; i++ {
		x, err := ModN(rand, n)
		if err != nil {
			return nil, err
		}
		if x.IsUnit(n.Modulus) == 1 {
			return x, nil
		}
	}
	return nil, ErrMaxIterations
}
