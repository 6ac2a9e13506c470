package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draws(seed int64) []int {
	r := New(seed)
	out := make([]int, 16)
	for i := range out {
		out[i] = r.IntN(1000)
	}
	return out
}

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	assert.Equal(t, draws(42), draws(42))
	assert.NotEqual(t, draws(42), draws(43))
	assert.NotEqual(t, draws(0), draws(1))
}

func TestFromSeed(t *testing.T) {
	t.Parallel()
	a := FromSeed(7)
	b := New(7)
	for i := 0; i < 8; i++ {
		assert.Equal(t, b.Uint64(), a.Uint64())
	}

	// zero means unseeded; two random generators should not agree
	x, y := FromSeed(0), FromSeed(0)
	assert.NotEqual(t, []uint64{x.Uint64(), x.Uint64()}, []uint64{y.Uint64(), y.Uint64()})
}

func TestMixSpreadsAdjacentSeeds(t *testing.T) {
	t.Parallel()
	seen := make(map[uint64]bool)
	for i := uint64(0); i < 1000; i++ {
		v := mix(i)
		assert.False(t, seen[v], "collision at %d", i)
		seen[v] = true
	}
}
