package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/history"
	"github.com/abhisek/dojocards/internal/ordering"
	"github.com/abhisek/dojocards/internal/progress"
	"github.com/abhisek/dojocards/internal/store/storetest"
)

const reciteKey = "judo_flashcard_session_gokyu_recite"

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"study/gokyu/recite.csv":  {Data: []byte("front,back\nA,1\nB,2\nC,3\n")},
		"study/gokyu/perform.csv": {Data: []byte("front,back\nD,4\n")},
	}
}

type harness struct {
	kv       *storetest.MemoryKV
	history  *history.Store
	sessions *progress.Store
	loader   *Loader
}

func newHarness(t *testing.T, seed map[string]string) *harness {
	t.Helper()
	kv := storetest.NewMemoryKV(seed)
	hist := history.NewStore(kv)
	sessions := progress.NewStore(kv, progress.DefaultNamespace, nil)
	builder := deck.NewBuilder(deck.FSSource{FS: testFS()}, hist)
	return &harness{
		kv:       kv,
		history:  hist,
		sessions: sessions,
		loader:   NewLoader(builder, hist, sessions, ordering.NewRand(7), nil),
	}
}

func gokyu(t *testing.T) deck.Belt {
	t.Helper()
	b, err := deck.DefaultCatalog().Belt("gokyu")
	require.NoError(t, err)
	return b
}

func decodeSession(t *testing.T, raw string) progress.Record {
	t.Helper()
	var rec progress.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestLoaderFreshStartPrioritizesAndSaves(t *testing.T) {
	h := newHarness(t, map[string]string{
		history.DefaultKey: `{"D":{"history":[false,false]},"B":{"history":[true]}}`,
	})

	nav, err := h.loader.Load(context.Background(), gokyu(t), deck.CategoryAll, false)
	require.NoError(t, err)

	fronts := deck.Fronts(nav.Cards())
	require.Len(t, fronts, 4)
	assert.Equal(t, "D", fronts[0])
	assert.Equal(t, "B", fronts[3])
	assert.ElementsMatch(t, []string{"A", "C"}, fronts[1:3])
	assert.Equal(t, Cursor{}, nav.Cursor())

	rec := decodeSession(t, h.kv.Value("judo_flashcard_session_gokyu_all"))
	assert.Equal(t, 0, rec.CurrentIndex)
	assert.Equal(t, fronts, rec.CardOrder)
}

func TestLoaderResumesSavedSession(t *testing.T) {
	h := newHarness(t, map[string]string{
		reciteKey: `{"currentIndex":1,"cardOrder":["C","A","B"]}`,
	})
	sets := h.kv.Sets

	nav, err := h.loader.Load(context.Background(), gokyu(t), deck.CategoryRecite, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "A", "B"}, deck.Fronts(nav.Cards()))
	assert.Equal(t, Cursor{CurrentIndex: 2}, nav.Cursor())
	assert.Equal(t, sets, h.kv.Sets, "resume must not write")
}

func TestLoaderForceNewIgnoresSavedSession(t *testing.T) {
	h := newHarness(t, map[string]string{
		reciteKey: `{"currentIndex":2,"cardOrder":["C","A","B"]}`,
	})

	nav, err := h.loader.Load(context.Background(), gokyu(t), deck.CategoryRecite, true)
	require.NoError(t, err)
	assert.Equal(t, 0, nav.Cursor().CurrentIndex)

	rec := decodeSession(t, h.kv.Value(reciteKey))
	assert.Equal(t, 0, rec.CurrentIndex)
	assert.Equal(t, deck.Fronts(nav.Cards()), rec.CardOrder)
}

func TestLoaderMalformedSessionStartsFresh(t *testing.T) {
	h := newHarness(t, map[string]string{
		reciteKey: `{"currentIndex":"two"}`,
	})

	nav, err := h.loader.Load(context.Background(), gokyu(t), deck.CategoryRecite, false)
	require.NoError(t, err)
	assert.Equal(t, 0, nav.Cursor().CurrentIndex)
	assert.Equal(t, 0, decodeSession(t, h.kv.Value(reciteKey)).CurrentIndex)
}

func TestLoaderAnswerFlowPersists(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	nav, err := h.loader.Load(ctx, gokyu(t), deck.CategoryRecite, false)
	require.NoError(t, err)

	first, _ := nav.Current()
	nav.Flip()
	outcome, _ := nav.Mark(ctx, false)
	require.Equal(t, MarkRecorded, outcome)
	nav.Next()

	assert.Equal(t, []bool{false}, h.history.History(ctx, first.Front))
	rec := decodeSession(t, h.kv.Value(reciteKey))
	assert.Equal(t, 0, rec.CurrentIndex)

	// Reloading resumes on the card after the answered one.
	again, err := h.loader.Load(ctx, gokyu(t), deck.CategoryRecite, false)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Cursor().CurrentIndex)
	assert.Equal(t, deck.Fronts(nav.Cards()), deck.Fronts(again.Cards()))

	for _, c := range again.Cards() {
		if c.Front == first.Front {
			assert.Equal(t, 1, c.Wrong)
		}
	}
}

func TestLoaderFetchFailure(t *testing.T) {
	h := newHarness(t, nil)
	belt, err := deck.DefaultCatalog().Belt("yonkyu")
	require.NoError(t, err)

	nav, err := h.loader.Load(context.Background(), belt, deck.CategoryRecite, false)
	require.Error(t, err)
	assert.Nil(t, nav)

	var fetchErr *deck.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "study/yonkyu/recite.csv", fetchErr.Path)
	assert.Zero(t, h.kv.Sets)
	assert.False(t, h.loader.Loading())
}

type blockingBuilder struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingBuilder) Cards(context.Context, deck.Belt, deck.Category) ([]deck.Card, error) {
	close(b.started)
	<-b.release
	return []deck.Card{{Front: "A", Back: "1"}}, nil
}

func TestLoaderRejectsConcurrentLoad(t *testing.T) {
	kv := storetest.NewMemoryKV(nil)
	hist := history.NewStore(kv)
	sessions := progress.NewStore(kv, progress.DefaultNamespace, nil)
	builder := &blockingBuilder{started: make(chan struct{}), release: make(chan struct{})}
	loader := NewLoader(builder, hist, sessions, nil, nil)
	belt := gokyu(t)

	done := make(chan error, 1)
	go func() {
		_, err := loader.Load(context.Background(), belt, deck.CategoryRecite, false)
		done <- err
	}()

	<-builder.started
	assert.True(t, loader.Loading())
	_, err := loader.Load(context.Background(), belt, deck.CategoryRecite, false)
	assert.True(t, errors.Is(err, ErrLoadInProgress))

	close(builder.release)
	require.NoError(t, <-done)
	assert.False(t, loader.Loading())
}
