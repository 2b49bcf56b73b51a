// Package dice provides the randomness abstraction used to resolve career
// actions, along with crypto-backed and seeded implementations.
package dice

// Source is the randomness provider for career rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}
