package progress

import (
	"math"
	"slices"

	"github.com/abhisek/dojocards/internal/deck"
)

// Restore reorders freshly built cards to follow rec's saved card order and
// returns the index to resume at. Cards whose front is not in the saved order
// go last, keeping their relative order. The resume index is the card after
// the saved one, clamped to the deck.
func Restore(cards []deck.Card, rec *Record) int {
	if rec == nil {
		return 0
	}

	pos := make(map[string]int, len(rec.CardOrder))
	for i, front := range rec.CardOrder {
		pos[front] = i
	}
	rank := func(c deck.Card) int {
		if p, ok := pos[c.Front]; ok {
			return p
		}
		return math.MaxInt
	}

	slices.SortStableFunc(cards, func(a, b deck.Card) int {
		ra, rb := rank(a), rank(b)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	})

	idx := min(rec.CurrentIndex+1, len(cards)-1)
	return max(idx, 0)
}
