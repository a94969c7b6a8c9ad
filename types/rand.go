package types

// Rand is the random source used for edge generation.
//
// *math/rand/v2.Rand satisfies it. Implementations need not be safe for
// concurrent use.
type Rand interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}
