package homomorphism

import (
	"errors"
)

var (
	ErrOddLength = errors.New("homomorphism: encoded buffer has odd length")
)

// Add adds two encoded ciphertexts stored as actual || negative, each half
// taking exactly half of the buffer. The result has the layout and width of
// first.
func Add(first, second, nsquare []byte) ([]byte, error) {
	return applyConcatenated(AddEncoded, first, second, nsquare)
}

// Subtract subtracts second from first, both stored as actual || negative.
// The result has the layout and width of first.
func Subtract(first, second, nsquare []byte) ([]byte, error) {
	return applyConcatenated(SubtractEncoded, first, second, nsquare)
}

type bufferOp func(firstActual, firstNegative, secondActual, secondNegative, nsquare, resultActual, resultNegative []byte) error

func applyConcatenated(op bufferOp, first, second, nsquare []byte) ([]byte, error) {
	firstActual, firstNegative, err := split(first)
	if err != nil {
		return nil, err
	}
	secondActual, secondNegative, err := split(second)
	if err != nil {
		return nil, err
	}

	result := make([]byte, len(first))
	resultActual, resultNegative, _ := split(result)
	if err := op(firstActual, firstNegative, secondActual, secondNegative, nsquare, resultActual, resultNegative); err != nil {
		return nil, err
	}
	return result, nil
}

func split(data []byte) (actual, negative []byte, err error) {
	if len(data)%2 != 0 {
		return nil, nil, ErrOddLength
	}
	half := len(data) / 2
	return data[:half:half], data[half:], nil
}
