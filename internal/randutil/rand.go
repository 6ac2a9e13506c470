// Package randutil builds math/rand/v2 generators for shuffling.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Equal seeds produce equal shuffles, which is what tests and simulations
// rely on.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewRandom returns a generator seeded from the runtime's random source.
func NewRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// FromSeed returns New(seed) for a non-zero seed and NewRandom otherwise, so
// a zero value in configuration means "not set".
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		return NewRandom()
	}
	return New(seed)
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
