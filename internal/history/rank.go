package history

import (
	"cmp"
	"slices"
)

// Entry pairs a card front with its stats.
type Entry struct {
	Front string
	Stats
}

// Ranked orders all by weakness, weakest first. Ties are broken by front so
// the listing is stable across runs.
func Ranked(all map[string]Stats) []Entry {
	entries := make([]Entry, 0, len(all))
	for front, s := range all {
		entries = append(entries, Entry{Front: front, Stats: s})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
			return c
		}
		return cmp.Compare(a.Front, b.Front)
	})
	return entries
}
