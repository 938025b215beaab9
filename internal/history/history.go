// Package history keeps the rolling answer history of every card.
//
// All records live in one JSON document under a single key:
//
//	{ "<front>": { "history": [true, false, ...] } | { "correct": 3, "wrong": 1 } }
//
// Every mutation is a full read-modify-write of that document. Callers must
// not assume partial or concurrent-safe updates.
package history

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/abhisek/dojocards/internal/logging"
	"github.com/abhisek/dojocards/internal/store"
)

const (
	// MaxHistory is the number of most recent outcomes kept per card.
	MaxHistory = 5

	// DefaultKey is the store key of the history document.
	DefaultKey = "judo_flashcard_stats"
)

// Stats are the derived answer counts of a card.
type Stats struct {
	Correct int
	Wrong   int
}

// Score is the weakness score: wrong minus correct.
func (s Stats) Score() int {
	return s.Wrong - s.Correct
}

// record is one card's entry. History takes precedence over the legacy flat
// counts whenever it is present, even when empty.
type record struct {
	History []bool `json:"history,omitempty"`
	Correct *int   `json:"correct,omitempty"`
	Wrong   *int   `json:"wrong,omitempty"`
}

func (r record) stats() Stats {
	if r.History != nil {
		var s Stats
		for _, ok := range r.History {
			if ok {
				s.Correct++
			} else {
				s.Wrong++
			}
		}
		return s
	}
	var s Stats
	if r.Correct != nil {
		s.Correct = *r.Correct
	}
	if r.Wrong != nil {
		s.Wrong = *r.Wrong
	}
	return s
}

// Store reads and records answer outcomes. It never returns errors: reads
// degrade to an empty document and failed writes are logged.
type Store struct {
	kv     store.KV
	key    string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the document key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a history store on kv.
func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey}
	for _, o := range opts {
		o(s)
	}
	s.logger = logging.OrDiscard(s.logger)
	return s
}

// Stats returns the answer counts for front. Unknown cards and unreadable
// records yield zero counts.
func (s *Store) Stats(ctx context.Context, front string) Stats {
	raw, ok := s.load(ctx)[front]
	if !ok {
		return Stats{}
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Stats{}
	}
	return r.stats()
}

// All returns the stats of every card in the document.
func (s *Store) All(ctx context.Context) map[string]Stats {
	doc := s.load(ctx)
	out := make(map[string]Stats, len(doc))
	for front, raw := range doc {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			out[front] = Stats{}
			continue
		}
		out[front] = r.stats()
	}
	return out
}

// History returns the stored outcomes of front, oldest first. Legacy records
// have no history and return nil.
func (s *Store) History(ctx context.Context, front string) []bool {
	raw, ok := s.load(ctx)[front]
	if !ok {
		return nil
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	return r.History
}

// RecordAnswer appends an outcome to front's history, keeping only the last
// MaxHistory entries. A legacy flat-count record is replaced by a fresh
// history on its first new answer.
func (s *Store) RecordAnswer(ctx context.Context, front string, correct bool) {
	doc := s.load(ctx)

	var r record
	if raw, ok := doc[front]; ok {
		if err := json.Unmarshal(raw, &r); err != nil {
			r = record{}
		}
	}

	history := r.History
	if history == nil {
		history = []bool{}
	}
	history = append(history, correct)
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	raw, err := json.Marshal(record{History: history})
	if err != nil {
		s.logger.Error("failed to encode history record", logging.FieldCard, front, "error", err)
		return
	}
	doc[front] = raw
	s.save(ctx, doc)
}

// Clear removes every history record.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.logger.Error("failed to clear stats", logging.FieldKey, s.key, "error", err)
	}
}

// load reads the whole document. Entries stay raw so that records this
// version does not understand survive a rewrite untouched.
func (s *Store) load(ctx context.Context) map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)

	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed to read stats, treating as empty", logging.FieldKey, s.key, "error", err)
		return doc
	}
	if !ok {
		return doc
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil || doc == nil {
		s.logger.Warn("stats document is corrupt, treating as empty", logging.FieldKey, s.key, "error", err)
		return make(map[string]json.RawMessage)
	}
	return doc
}

func (s *Store) save(ctx context.Context, doc map[string]json.RawMessage) {
	data, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error("failed to encode stats", logging.FieldKey, s.key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to save stats", logging.FieldKey, s.key, "error", err)
	}
}
