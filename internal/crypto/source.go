package crypto

import "math/rand/v2"

// Source supplies uniform random integers. IntN returns a value in [0, n)
// and may panic if n <= 0, matching math/rand/v2.
type Source interface {
	IntN(n int) int
}

type runtimeSource struct{}

func (runtimeSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource returns the process-wide math/rand/v2 generator, which the
// runtime seeds from the operating system. It is safe for concurrent use.
func DefaultSource() Source {
	return runtimeSource{}
}

// NewSeededSource returns a deterministic source. Two sources created with the
// same seed yield the same sequence. Not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
