package random

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/lazybeaver/xorshift"
)

func mustCryptoRandUint64() uint64 {
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("Failed to obtain random data: %s", err))
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NewFastSingleThreadedGenerator creates a new SingleThreadedGenerator
// that is not suitable for cryptographic purposes. The generator is
// randomly seeded.
func NewFastSingleThreadedGenerator() SingleThreadedGenerator {
	seed := mustCryptoRandUint64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// xorShiftSource adapts a xorshift sequence to rand.Source.
type xorShiftSource struct {
	sequence interface{ Next() uint64 }
}

func (s xorShiftSource) Uint64() uint64 {
	return s.sequence.Next()
}

// NewSeededSingleThreadedGenerator creates a new
// SingleThreadedGenerator that yields the same sequence of values for
// the same seed. This is used to make synthetic workloads
// reproducible across runs.
func NewSeededSingleThreadedGenerator(seed uint64) SingleThreadedGenerator {
	// Xorshift gets stuck at zero.
	if seed == 0 {
		seed = 1
	}
	return rand.New(xorShiftSource{sequence: xorshift.NewXorShift64Star(seed)})
}
