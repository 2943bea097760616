package match

import "math/rand/v2"

// RandomSource picks indices for participant selection and elimination.
type RandomSource interface {
	IntN(n int) int // [0, n)
}

// global generator: default selection method
type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// DefaultRNG returns the process-wide generator.
func DefaultRNG() RandomSource { return globalRNG{} }

// NewSeededRNG returns a reproducible source, for tests and the -seed flag.
func NewSeededRNG(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}

// sample returns k distinct values from [0, n) in random order.
func sample(rng RandomSource, n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func shuffle[T any](rng RandomSource, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
