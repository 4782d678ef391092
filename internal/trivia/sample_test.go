package trivia

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSample_Distinct ensures samples never repeat an element and stay within the input.
func TestSample_Distinct(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	items := []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

	for range 200 {
		got := Sample(rng, items, 6)
		require.Len(t, got, 6)

		seen := make(map[int]struct{}, len(got))
		for _, v := range got {
			require.Contains(t, items, v)
			require.NotContains(t, seen, v)

			seen[v] = struct{}{}
		}
	}
}

// TestSample_Caps verifies the sample never exceeds the available items.
func TestSample_Caps(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))

	got := Sample(rng, []string{"a", "b", "c"}, 5)
	require.ElementsMatch(t, []string{"a", "b", "c"}, got)

	require.Empty(t, Sample(rng, []string{}, 5))
	require.Empty(t, Sample(rng, []string{"a"}, 0))
	require.Empty(t, Sample(rng, []string{"a"}, -1))
}

// TestSample_DoesNotMutateInput keeps the caller's slice order intact.
func TestSample_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 6))
	items := []int{1, 2, 3, 4, 5}

	_ = Sample(rng, items, 3)
	require.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

// TestSample_Uniform checks every element gets picked over many draws.
func TestSample_Uniform(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 8))
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	counts := make([]int, len(items))

	const draws = 4000

	for range draws {
		for _, v := range Sample(rng, items, 2) {
			counts[v]++
		}
	}

	// Expected 1000 hits per element; allow a wide margin.
	for i, c := range counts {
		require.InDelta(t, 1000, c, 200, "element %d", i)
	}
}
