package trivia

import "math/rand/v2"

// Sample returns up to n distinct elements of items drawn uniformly at random.
// The input slice is not modified. n is capped by len(items).
func Sample[T any](rng *rand.Rand, items []T, n int) []T {
	n = max(0, min(n, len(items)))

	pool := make([]T, len(items))
	copy(pool, items)

	// Partial Fisher-Yates: the first n positions end up holding the sample.
	for i := range n {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}
