package aggregate

import (
	"context"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mr-shifu/paillier-homomorphism/core/math/arith"
	"github.com/mr-shifu/paillier-homomorphism/core/paillier"
)

func nat(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func modulus(t *testing.T, x uint64) *arith.Modulus {
	n, err := arith.NewModulus(nat(x))
	require.NoError(t, err)
	return n
}

func TestSum(t *testing.T) {
	n := modulus(t, 1000003)
	cts := make([]*saferith.Nat, 0, 37)
	expected := uint64(1)
	for i := uint64(2); i < 39; i++ {
		cts = append(cts, nat(i))
		expected = expected * i % 1000003
	}

	for _, workers := range []int{0, 1, 3, 100} {
		agg := NewAggregator(NewConfig(workers, nil))
		res, err := agg.Sum(context.Background(), n, cts)
		require.NoError(t, err)
		assert.Equal(t, expected, res.Big().Uint64(), "workers=%d", workers)
	}
}

func TestSum_Empty(t *testing.T) {
	agg := NewAggregator(nil)

	res, err := agg.Sum(context.Background(), modulus(t, 10), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Big().Uint64())

	res, err = agg.Sum(context.Background(), modulus(t, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), res.Big().Uint64())
}

func TestSum_Single(t *testing.T) {
	agg := NewAggregator(nil)
	x := nat(7)

	res, err := agg.Sum(context.Background(), modulus(t, 10), []*saferith.Nat{x})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res.Big().Uint64())

	// the result is a new value
	res.SetUint64(3)
	assert.Equal(t, uint64(7), x.Uint64())
}

func TestSum_Errors(t *testing.T) {
	agg := NewAggregator(nil)

	_, err := agg.Sum(context.Background(), nil, []*saferith.Nat{nat(1)})
	assert.ErrorIs(t, err, arith.ErrZeroModulus)

	_, err = agg.Sum(context.Background(), modulus(t, 10), []*saferith.Nat{nat(1), nil})
	assert.ErrorIs(t, err, ErrNilCiphertext)
}

func TestSum_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := NewAggregator(NewConfig(2, nil))
	_, err := agg.Sum(ctx, modulus(t, 10), []*saferith.Nat{nat(1), nat(2), nat(3)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSum_CanceledAfterReduce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, _ := observer.New(zapcore.DebugLevel)
	logger := zap.New(core, zap.Hooks(func(e zapcore.Entry) error {
		if e.Message == "partition reduced" {
			cancel()
		}
		return nil
	}))

	// a single partition, so the context is canceled only once all work is done
	agg := NewAggregator(NewConfig(1, logger))
	res, err := agg.Sum(ctx, modulus(t, 100), []*saferith.Nat{nat(3), nat(5), nat(7)})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), res.Big().Uint64())
}

func TestSumEncoded(t *testing.T) {
	n := modulus(t, 10)
	cts := []*paillier.EncodedCiphertext{
		paillier.NewEncodedCiphertext(nat(1), nat(2)),
		paillier.NewEncodedCiphertext(nat(3), nat(4)),
		paillier.NewEncodedCiphertext(nat(7), nat(9)),
	}

	agg := NewAggregator(NewConfig(2, nil))
	res, err := agg.SumEncoded(context.Background(), n, cts)
	require.NoError(t, err)
	// 1•3•7 = 21, 2•4•9 = 72
	assert.Equal(t, uint64(1), res.Actual.Big().Uint64())
	assert.Equal(t, uint64(2), res.Negative.Big().Uint64())
}

func TestSumEncoded_Errors(t *testing.T) {
	agg := NewAggregator(nil)

	_, err := agg.SumEncoded(context.Background(), &arith.Modulus{}, nil)
	assert.ErrorIs(t, err, arith.ErrZeroModulus)

	_, err = agg.SumEncoded(context.Background(), modulus(t, 10), []*paillier.EncodedCiphertext{
		paillier.NewEncodedCiphertext(nat(1), nil),
	})
	assert.ErrorIs(t, err, ErrNilCiphertext)
}

func TestSum_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	agg := NewAggregator(NewConfig(2, zap.New(core)))

	_, err := agg.Sum(context.Background(), modulus(t, 10), []*saferith.Nat{nat(1), nat(2), nat(3)})
	require.NoError(t, err)

	entries := logs.FilterMessage("aggregating ciphertexts").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
	assert.Equal(t, int64(2), entries[0].ContextMap()["partitions"])
	assert.Equal(t, 2, logs.FilterMessage("partition reduced").Len())
}

func TestSum_UnevenPartitions(t *testing.T) {
	n := modulus(t, 1000003)
	cts := []*saferith.Nat{nat(2), nat(3), nat(5), nat(7), nat(11)}

	agg := NewAggregator(NewConfig(4, nil))
	res, err := agg.Sum(context.Background(), n, cts)
	require.NoError(t, err)
	assert.Equal(t, uint64(2310), res.Big().Uint64())
}
