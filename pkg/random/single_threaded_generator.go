package random

import (
	"math/rand/v2"
)

// SingleThreadedGenerator is a Random Number Generator (RNG) that
// cannot be used concurrently. This interface is a subset of Go's
// rand.Rand.
type SingleThreadedGenerator interface {
	// Generates a number in range [0.0, 1.0).
	Float64() float64
	// Generates a number in range [0, n), where n is of type int.
	IntN(n int) int
	// Shuffle the elements in a list.
	Shuffle(n int, swap func(i, j int))
	// Generates an arbitrary 64-bit integer value.
	Uint64() uint64
}

var _ SingleThreadedGenerator = (*rand.Rand)(nil)
