package test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/paillier-homomorphism/core/math/arith"
	"github.com/mr-shifu/paillier-homomorphism/core/paillier"
)

var one = big.NewInt(1)

// Paillier is a throwaway key pair used to check that homomorphic results
// decrypt to what they should. It is not meant for anything but tests.
type Paillier struct {
	t testing.TB

	n      *big.Int
	n2     *big.Int
	lambda *big.Int
	mu     *big.Int

	// NSquared is the ciphertext modulus N².
	NSquared *arith.Modulus
}

// NewPaillier generates a key with an N of the given bit length, using g = N+1.
func NewPaillier(t testing.TB, bits int) *Paillier {
	t.Helper()

	var p, q *big.Int
	var err error
	for {
		p, err = rand.Prime(rand.Reader, bits/2)
		require.NoError(t, err)
		q, err = rand.Prime(rand.Reader, bits-bits/2)
		require.NoError(t, err)
		if p.Cmp(q) != 0 {
			break
		}
	}

	n := new(big.Int).Mul(p, q)
	n2 := new(big.Int).Mul(n, n)
	// λ = φ(N) = (p-1)(q-1)
	lambda := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	// μ = λ⁻¹ (mod N)
	mu := new(big.Int).ModInverse(lambda, n)
	require.NotNil(t, mu, "λ must be invertible mod N")

	nSquared, err := arith.NewModulus(new(saferith.Nat).SetBig(n2, n2.BitLen()))
	require.NoError(t, err)

	return &Paillier{
		t:        t,
		n:        n,
		n2:       n2,
		lambda:   lambda,
		mu:       mu,
		NSquared: nSquared,
	}
}

// N returns the plaintext modulus.
func (k *Paillier) N() *big.Int {
	return new(big.Int).Set(k.n)
}

// Encrypt returns (1 + m•N)•rᴺ (mod N²) for m reduced mod N.
func (k *Paillier) Encrypt(m *big.Int) *saferith.Nat {
	k.t.Helper()

	m = new(big.Int).Mod(m, k.n)
	var r *big.Int
	for {
		var err error
		r, err = rand.Int(rand.Reader, k.n)
		require.NoError(k.t, err)
		if r.Sign() > 0 && new(big.Int).GCD(nil, nil, r, k.n).Cmp(one) == 0 {
			break
		}
	}

	c := new(big.Int).Mul(m, k.n)
	c.Add(c, one)
	c.Mul(c, new(big.Int).Exp(r, k.n, k.n2))
	c.Mod(c, k.n2)
	return new(saferith.Nat).SetBig(c, k.n2.BitLen())
}

// Decrypt returns L(c^λ mod N²)•μ (mod N), with L(x) = (x-1)/N.
func (k *Paillier) Decrypt(c *saferith.Nat) *big.Int {
	x := new(big.Int).Exp(c.Big(), k.lambda, k.n2)
	x.Sub(x, one)
	x.Div(x, k.n)
	x.Mul(x, k.mu)
	return x.Mod(x, k.n)
}

// EncryptSigned encodes v as the pair (Enc(v), Enc(-v)).
func (k *Paillier) EncryptSigned(v int64) *paillier.EncodedCiphertext {
	k.t.Helper()

	m := big.NewInt(v)
	return paillier.NewEncodedCiphertext(k.Encrypt(m), k.Encrypt(new(big.Int).Neg(m)))
}

// DecryptSigned decrypts both halves of ct, mapping residues above N/2 to
// negative values.
func (k *Paillier) DecryptSigned(ct *paillier.EncodedCiphertext) (actual, negative int64) {
	k.t.Helper()

	a := k.signed(k.Decrypt(ct.Actual))
	n := k.signed(k.Decrypt(ct.Negative))
	require.True(k.t, a.IsInt64() && n.IsInt64(), "decrypted value out of int64 range")
	return a.Int64(), n.Int64()
}

func (k *Paillier) signed(m *big.Int) *big.Int {
	half := new(big.Int).Rsh(k.n, 1)
	if m.Cmp(half) > 0 {
		return m.Sub(m, k.n)
	}
	return m
}
