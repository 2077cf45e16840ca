package clique

import "math/rand/v2"

// DefaultSeed is used when [Options.Seed] is zero.
const DefaultSeed uint64 = 42

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
