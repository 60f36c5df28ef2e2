package rotation

import (
	"math/rand"
	"time"
)

// rng is the shared random source for permutations. Tests swap it for a
// seeded one.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Permutation returns a uniformly random permutation of 0..n-1 using an
// in-place Fisher-Yates shuffle.
func Permutation(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
