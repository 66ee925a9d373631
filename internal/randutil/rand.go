// Package randutil centralises deterministic RNG construction so that
// every call site derives reproducible sequences from a single seed.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64, deriving the two 64-bit seeds rand/v2 requires.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForGame returns an independent stream for the n-th game of a batch,
// so simulations can run games in any order (or in parallel) and still
// reproduce identical results per game.
func ForGame(seed int64, n int) *rand.Rand {
	u := uint64(seed) + uint64(n)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// mix is the splitmix64 finalizer; it spreads consecutive seeds across
// the whole 64-bit space.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
