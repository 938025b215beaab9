// Package ordering arranges a freshly loaded deck: weakest cards first, ties
// broken randomly.
package ordering

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/dojocards/internal/deck"
)

// Shuffle permutes s in place with Fisher-Yates: for i from the last index
// down to 1, swap s[i] with a uniformly chosen s[j], 0 <= j <= i.
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Prioritize shuffles cards and then stable-sorts them by descending weakness
// score (wrong - correct). Cards with equal scores keep their shuffled order,
// so the result is deterministic for a given rng state.
func Prioritize(cards []deck.Card, rng *rand.Rand) {
	Shuffle(cards, rng)
	slices.SortStableFunc(cards, func(a, b deck.Card) int {
		return b.Score() - a.Score()
	})
}

// NewRand returns a PCG-backed generator. A zero seed draws a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
