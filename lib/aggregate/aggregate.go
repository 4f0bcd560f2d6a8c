// Package aggregate sums many Paillier ciphertexts by splitting them into
// partitions, reducing each partition on its own goroutine, and reducing the
// partial sums.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"go.uber.org/zap"

	"github.com/mr-shifu/paillier-homomorphism/core/math/arith"
	"github.com/mr-shifu/paillier-homomorphism/core/paillier"
	"github.com/mr-shifu/paillier-homomorphism/core/pool"
)

var (
	ErrNilCiphertext = errors.New("aggregate: nil ciphertext")
)

type Aggregator struct {
	pool   *pool.Pool
	logger *zap.Logger
}

func NewAggregator(cfg *Config) *Aggregator {
	if cfg == nil {
		cfg = NewConfig(0, nil)
	}
	return &Aggregator{
		pool:   pool.NewPool(cfg.Workers()),
		logger: cfg.Logger(),
	}
}

// Sum returns the homomorphic sum of cts, c₁•c₂•…•cₖ (mod N²).
// The sum of no ciphertexts is 1 (mod N²).
func (a *Aggregator) Sum(ctx context.Context, n2 *arith.Modulus, cts []*saferith.Nat) (*saferith.Nat, error) {
	if !n2.Valid() {
		return nil, fmt.Errorf("aggregate: %w", arith.ErrZeroModulus)
	}
	for i, ct := range cts {
		if ct == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilCiphertext, i)
		}
	}
	combine := func(x, y *saferith.Nat) (*saferith.Nat, error) {
		return paillier.Combine(x, y, n2)
	}
	identity := func() *saferith.Nat {
		return identityNat(n2)
	}

	res, err := reduce(ctx, a, cts, identity, combine)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	return res, nil
}

// SumEncoded returns the encoding of the sum of the signed values encoded by
// cts. Actual halves are only combined with actual halves and negative with
// negative. The sum of no values is (1, 1) (mod N²).
func (a *Aggregator) SumEncoded(ctx context.Context, n2 *arith.Modulus, cts []*paillier.EncodedCiphertext) (*paillier.EncodedCiphertext, error) {
	if !n2.Valid() {
		return nil, fmt.Errorf("aggregate: %w", arith.ErrZeroModulus)
	}
	for i, ct := range cts {
		if ct == nil || ct.Actual == nil || ct.Negative == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilCiphertext, i)
		}
	}
	combine := func(x, y *paillier.EncodedCiphertext) (*paillier.EncodedCiphertext, error) {
		return paillier.AddEncoded(x, y, n2)
	}
	identity := func() *paillier.EncodedCiphertext {
		return paillier.NewEncodedCiphertext(identityNat(n2), identityNat(n2))
	}

	res, err := reduce(ctx, a, cts, identity, combine)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	return res, nil
}

func reduce[T any](
	ctx context.Context,
	a *Aggregator,
	items []T,
	identity func() T,
	combine func(x, y T) (T, error),
) (T, error) {
	var zero T
	if len(items) == 0 {
		a.logger.Debug("aggregating ciphertexts", zap.Int("count", 0), zap.Int("partitions", 0))
		return identity(), nil
	}

	// every partition but the last holds exactly size items
	size := (len(items) + a.pool.Workers() - 1) / a.pool.Workers()
	partitions := (len(items) + size - 1) / size
	a.logger.Debug("aggregating ciphertexts",
		zap.Int("count", len(items)),
		zap.Int("partitions", partitions),
	)

	partials := make([]T, partitions)
	err := a.pool.Parallelize(ctx, partitions, func(ctx context.Context, p int) error {
		start := p * size
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		acc := identity()
		for _, item := range items[start:end] {
			if err := ctx.Err(); err != nil {
				return err
			}
			next, err := combine(acc, item)
			if err != nil {
				return err
			}
			acc = next
		}
		partials[p] = acc
		a.logger.Debug("partition reduced", zap.Int("partition", p), zap.Int("size", end-start))
		return nil
	})
	if err != nil {
		a.logger.Debug("aggregation failed", zap.Error(err))
		return zero, err
	}

	acc := identity()
	for _, partial := range partials {
		next, err := combine(acc, partial)
		if err != nil {
			return zero, err
		}
		acc = next
	}
	return acc, nil
}

// identityNat returns 1 (mod N²), which encrypts 0 at the integer level.
func identityNat(n2 *arith.Modulus) *saferith.Nat {
	return new(saferith.Nat).Mod(new(saferith.Nat).SetUint64(1), n2.Modulus)
}
