package cardstats

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dojocards/internal/history"
	"github.com/abhisek/dojocards/internal/router"
	"github.com/abhisek/dojocards/internal/screen"
	"github.com/abhisek/dojocards/internal/store/storetest"
)

func testScreen(t *testing.T, doc string) *CardStatsScreen {
	t.Helper()
	kv := storetest.NewMemoryKV(map[string]string{history.DefaultKey: doc})
	s := New(history.NewStore(kv))
	msg := s.Init()()
	scr, _ := s.Update(msg)
	return scr.(*CardStatsScreen)
}

func TestCardStatsScreen_Loading(t *testing.T) {
	s := New(history.NewStore(storetest.NewMemoryKV(nil)))
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view before stats arrive")
	}
}

func TestCardStatsScreen_Empty(t *testing.T) {
	s := testScreen(t, `{}`)
	if !strings.Contains(s.View(80, 24), "No answers yet") {
		t.Error("expected empty message")
	}
}

func TestCardStatsScreen_WeakestFirst(t *testing.T) {
	s := testScreen(t, `{"O-goshi":{"history":[false,false]},"Ko-uchi-gari":{"correct":4,"wrong":1}}`)

	if len(s.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(s.entries))
	}
	if s.entries[0].Front != "O-goshi" {
		t.Errorf("first entry = %q, want O-goshi", s.entries[0].Front)
	}
	view := s.View(100, 24)
	if strings.Index(view, "O-goshi") > strings.Index(view, "Ko-uchi-gari") {
		t.Error("expected weakest card rendered first")
	}
}

func TestCardStatsScreen_ExpandShowsRecent(t *testing.T) {
	s := testScreen(t, `{"O-goshi":{"history":[false,true]},"Ko-uchi-gari":{"correct":4,"wrong":1}}`)

	var scr screen.Screen = s
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	cs := scr.(*CardStatsScreen)
	if !cs.expanded[0] {
		t.Fatal("expected first row expanded")
	}
	if got := cs.recent["O-goshi"]; len(got) != 2 || got[0] || !got[1] {
		t.Errorf("recent = %v, want [false true]", got)
	}
	if !strings.Contains(cs.View(100, 24), "recent:") {
		t.Error("expected recent outcomes in view")
	}

	scr, _ = cs.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(scr.View(100, 24), "totals only") {
		t.Error("expected legacy card to note totals only")
	}
}

func TestCardStatsScreen_Navigation(t *testing.T) {
	s := testScreen(t, `{"A":{"history":[true]}}`)

	scr, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if scr.(*CardStatsScreen).selected != 0 {
		t.Error("expected selection clamped at last entry")
	}

	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

var _ StatsSource = (*history.Store)(nil)
