package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/logging"
	"github.com/abhisek/dojocards/internal/ordering"
	"github.com/abhisek/dojocards/internal/progress"
)

// ErrLoadInProgress is returned when a load is requested while another is
// still running.
var ErrLoadInProgress = errors.New("deck load already in progress")

// CardBuilder assembles the cards of a deck.
type CardBuilder interface {
	Cards(ctx context.Context, belt deck.Belt, category deck.Category) ([]deck.Card, error)
}

// SessionStore persists and restores session records.
type SessionStore interface {
	SessionSaver
	Load(ctx context.Context, beltID string, category deck.Category) *progress.Record
}

// Loader builds navigators for decks, resuming saved sessions when present.
type Loader struct {
	builder  CardBuilder
	recorder AnswerRecorder
	sessions SessionStore
	rng      *rand.Rand
	logger   *slog.Logger

	mu      sync.Mutex
	loading bool
}

// NewLoader creates a loader. rng drives fresh-start ordering.
func NewLoader(builder CardBuilder, recorder AnswerRecorder, sessions SessionStore, rng *rand.Rand, logger *slog.Logger) *Loader {
	if rng == nil {
		rng = ordering.NewRand(0)
	}
	return &Loader{
		builder:  builder,
		recorder: recorder,
		sessions: sessions,
		rng:      rng,
		logger:   logging.OrDiscard(logger),
	}
}

// Load builds the deck for belt and category. Unless forceNew is set, a saved
// session restores the previous order and resumes after the last answered
// card. Otherwise the cards are prioritized by weakness, the cursor starts at
// zero and the new order is saved immediately.
//
// Only one load runs at a time; a concurrent call gets ErrLoadInProgress. A
// failed load returns the error and no navigator, so callers keep whatever
// deck they had.
func (l *Loader) Load(ctx context.Context, belt deck.Belt, category deck.Category, forceNew bool) (*Navigator, error) {
	if !l.begin() {
		return nil, ErrLoadInProgress
	}
	defer l.end()

	start := time.Now()
	cards, err := l.builder.Cards(ctx, belt, category)
	if err != nil {
		return nil, fmt.Errorf("load %s/%s deck: %w", belt.ID, category, err)
	}

	nav := NewNavigator(belt.ID, category, cards, l.recorder, l.sessions)

	var rec *progress.Record
	if !forceNew {
		rec = l.sessions.Load(ctx, belt.ID, category)
	}
	if rec != nil {
		nav.cursor.CurrentIndex = progress.Restore(nav.cards, rec)
	} else {
		ordering.Prioritize(nav.cards, l.rng)
		l.sessions.Save(ctx, belt.ID, category, 0, deck.Fronts(nav.cards))
	}

	l.logger.Info("deck loaded",
		slog.String(logging.FieldBelt, belt.ID),
		slog.String(logging.FieldCategory, string(category)),
		slog.Int(logging.FieldCount, len(cards)),
		slog.Bool("resumed", rec != nil),
		slog.Int64(logging.FieldDuration, time.Since(start).Milliseconds()),
	)
	return nav, nil
}

// Loading reports whether a load is running.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Loader) begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loading {
		return false
	}
	l.loading = true
	return true
}

func (l *Loader) end() {
	l.mu.Lock()
	l.loading = false
	l.mu.Unlock()
}
