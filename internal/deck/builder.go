package deck

import (
	"context"
	"strings"

	"github.com/abhisek/dojocards/internal/csvline"
	"github.com/abhisek/dojocards/internal/history"
)

// StatsReader supplies the derived answer counts joined onto each card.
type StatsReader interface {
	Stats(ctx context.Context, front string) history.Stats
}

// Builder assembles cards from a belt's source files.
type Builder struct {
	source Source
	stats  StatsReader
}

// NewBuilder creates a Builder reading files from source and stats from stats.
func NewBuilder(source Source, stats StatsReader) *Builder {
	return &Builder{source: source, stats: stats}
}

// Cards loads every card of category for belt. Files are fetched one at a
// time in catalog order and their records concatenated. Any fetch failure
// fails the whole load; malformed records are skipped.
func (b *Builder) Cards(ctx context.Context, belt Belt, category Category) ([]Card, error) {
	files, err := belt.FilesFor(category)
	if err != nil {
		return nil, err
	}

	var cards []Card
	for _, f := range files {
		data, err := b.source.Fetch(ctx, f)
		if err != nil {
			return nil, &FetchError{Path: f, Err: err}
		}
		for _, rec := range ParseRecords(string(data)) {
			s := b.stats.Stats(ctx, rec[0])
			cards = append(cards, Card{
				Front:   rec[0],
				Back:    rec[1],
				Correct: s.Correct,
				Wrong:   s.Wrong,
			})
		}
	}
	return cards, nil
}

// ParseRecords returns the front/back pairs of a deck file. Line 0 is a header
// and is always skipped. Blank lines, lines with fewer than two fields and
// lines with an empty front are dropped. Fields past the second are ignored.
func ParseRecords(text string) [][2]string {
	lines := strings.Split(text, "\n")

	var recs [][2]string
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := csvline.ParseLine(line)
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		recs = append(recs, [2]string{fields[0], fields[1]})
	}
	return recs
}
