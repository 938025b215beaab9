// Package progress persists where the learner is in each deck so a session
// can be resumed.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/logging"
	"github.com/abhisek/dojocards/internal/store"
)

// DefaultNamespace prefixes every session key.
const DefaultNamespace = "judo_flashcard_session"

// Record is the persisted session of one (belt, category) deck.
type Record struct {
	CurrentIndex int      `json:"currentIndex"`
	CardOrder    []string `json:"cardOrder"`
}

// Store saves, loads and clears session records. Persistence failures are
// logged and never returned.
type Store struct {
	kv        store.KV
	namespace string
	logger    *slog.Logger
}

// NewStore creates a session store on kv. An empty namespace uses
// DefaultNamespace.
func NewStore(kv store.KV, namespace string, logger *slog.Logger) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{kv: kv, namespace: namespace, logger: logging.OrDiscard(logger)}
}

// Key returns the store key for a (belt, category) deck.
func (s *Store) Key(beltID string, category deck.Category) string {
	return fmt.Sprintf("%s_%s_%s", s.namespace, beltID, category)
}

// Save persists the cursor and card order for the deck.
func (s *Store) Save(ctx context.Context, beltID string, category deck.Category, currentIndex int, fronts []string) {
	if fronts == nil {
		fronts = []string{}
	}
	key := s.Key(beltID, category)
	data, err := json.Marshal(Record{CurrentIndex: currentIndex, CardOrder: fronts})
	if err != nil {
		s.logger.Error("failed to encode session", logging.FieldKey, key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.Error("failed to save session", logging.FieldKey, key, "error", err)
	}
}

// Load returns the saved session for the deck, or nil if there is none or it
// cannot be read.
func (s *Store) Load(ctx context.Context, beltID string, category deck.Category) *Record {
	key := s.Key(beltID, category)
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read session", logging.FieldKey, key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var doc any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		s.logger.Warn("session is not valid JSON", logging.FieldKey, key, "error", err)
		return nil
	}
	if err := validateRecord(doc); err != nil {
		s.logger.Warn("session has unexpected shape", logging.FieldKey, key, "error", err)
		return nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil
	}
	return &rec
}

// Clear removes the saved session for the deck.
func (s *Store) Clear(ctx context.Context, beltID string, category deck.Category) {
	key := s.Key(beltID, category)
	if err := s.kv.Remove(ctx, key); err != nil {
		s.logger.Error("failed to clear session", logging.FieldKey, key, "error", err)
	}
}

// ClearBelt removes every saved session of the belt, including records of
// categories that no longer exist. It returns the number of records removed.
func (s *Store) ClearBelt(ctx context.Context, beltID string) int {
	prefix := fmt.Sprintf("%s_%s_", s.namespace, beltID)
	keys, err := s.kv.Keys(ctx, prefix)
	if err != nil {
		s.logger.Error("failed to list sessions", logging.FieldBelt, beltID, "error", err)
		return 0
	}

	var removed int
	for _, key := range keys {
		if err := s.kv.Remove(ctx, key); err != nil {
			s.logger.Error("failed to clear session", logging.FieldKey, key, "error", err)
			continue
		}
		removed++
	}
	return removed
}

// Percent reports how far through the saved deck the learner is, in [0, 1].
// It counts the card after the last answered one, as resuming does.
func (s *Store) Percent(ctx context.Context, beltID string, category deck.Category) float64 {
	rec := s.Load(ctx, beltID, category)
	if rec == nil || len(rec.CardOrder) == 0 {
		return 0
	}
	p := float64(rec.CurrentIndex+1) / float64(len(rec.CardOrder))
	return min(max(p, 0), 1)
}
