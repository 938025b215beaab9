package drill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/logging"
	"github.com/abhisek/dojocards/internal/router"
	"github.com/abhisek/dojocards/internal/screen"
	"github.com/abhisek/dojocards/internal/screens/summary"
	sess "github.com/abhisek/dojocards/internal/session"
	"github.com/abhisek/dojocards/internal/ui/layout"
	"github.com/abhisek/dojocards/internal/ui/theme"
)

const (
	// AutoAdvanceDelay is the pause between recording an answer and moving on.
	AutoAdvanceDelay = 150 * time.Millisecond
	// CardCloseDelay is how long a face-up card takes to turn back before the
	// next front is shown.
	CardCloseDelay = 300 * time.Millisecond
	// FlipSettleDelay blocks mark keys right after a flip.
	FlipSettleDelay = 400 * time.Millisecond
	// LoadRetryDelay is the wait before retrying a load rejected because
	// another load was running.
	LoadRetryDelay = 100 * time.Millisecond
)

// DeckLoader builds a navigator for a deck.
type DeckLoader interface {
	Load(ctx context.Context, belt deck.Belt, category deck.Category, forceNew bool) (*sess.Navigator, error)
}

// DrillScreen runs a flashcard drill over one belt and category.
type DrillScreen struct {
	loader   DeckLoader
	belt     deck.Belt
	category deck.Category
	logger   *slog.Logger
	keys     keyMap

	nav     *sess.Navigator
	runID   string
	started time.Time

	loading  bool
	forceNew bool // forceNew of the load in flight
	errMsg   string
	settling bool // mark keys ignored until the flip settles
	flipSeq  int
	closing  bool // previous card still turning back
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.BeltProvider = (*DrillScreen)(nil)

// New creates a DrillScreen. The deck is loaded by Init.
func New(loader DeckLoader, belt deck.Belt, category deck.Category, logger *slog.Logger) *DrillScreen {
	return &DrillScreen{
		loader:   loader,
		belt:     belt,
		category: category,
		logger:   logging.OrDiscard(logger),
		keys:     defaultKeyMap(),
		runID:    uuid.New().String(),
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	s.started = time.Now()
	s.logger.Info("drill started",
		slog.String(logging.FieldRunID, s.runID),
		slog.String(logging.FieldBelt, s.belt.ID),
		slog.String(logging.FieldCategory, string(s.category)),
	)
	return s.loadDeck(false)
}

func (s *DrillScreen) Title() string {
	return s.category.DisplayName()
}

func (s *DrillScreen) HeaderBelt() layout.HeaderBelt {
	hb := layout.HeaderBelt{
		Name:  s.belt.Name,
		Color: theme.BeltColor(s.belt.Theme.Primary),
	}
	if s.nav != nil && s.nav.Len() > 0 {
		hb.Counter = fmt.Sprintf("%d/%d", s.nav.Cursor().CurrentIndex+1, s.nav.Len())
	}
	return hb
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.nav == nil || s.nav.Len() == 0 {
		return []layout.KeyHint{
			hint(s.keys.Shuffle),
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.nav.Phase() == sess.PhaseBack {
		return []layout.KeyHint{
			hint(s.keys.Correct),
			hint(s.keys.Wrong),
			{Key: "→", Description: "Skip"},
			hint(s.keys.Turn),
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		hint(s.keys.Flip),
		hint(s.keys.Prev),
		hint(s.keys.Next),
		hint(s.keys.Reset),
		hint(s.keys.Shuffle),
		hint(s.keys.Finish),
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		return s.handleLoaded(msg)

	case loadRetryMsg:
		if !s.loading {
			return s, nil
		}
		return s, s.loadDeck(msg.ForceNew)

	case autoAdvanceMsg:
		if s.nav == nil || msg.nav != s.nav {
			return s, nil
		}
		return s, s.afterMove(s.nav.Next())

	case flipSettledMsg:
		if msg.seq == s.flipSeq {
			s.settling = false
		}
		return s, nil

	case cardRevealMsg:
		s.closing = false
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DrillScreen) loadDeck(forceNew bool) tea.Cmd {
	s.loading = true
	s.forceNew = forceNew
	loader, belt, category := s.loader, s.belt, s.category
	return func() tea.Msg {
		nav, err := loader.Load(context.Background(), belt, category, forceNew)
		return deckLoadedMsg{
			BeltID:   belt.ID,
			Category: category,
			ForceNew: forceNew,
			Nav:      nav,
			Err:      err,
		}
	}
}

func (s *DrillScreen) handleLoaded(msg deckLoadedMsg) (screen.Screen, tea.Cmd) {
	if !s.loading || msg.BeltID != s.belt.ID || msg.Category != s.category || msg.ForceNew != s.forceNew {
		return s, nil
	}
	if errors.Is(msg.Err, sess.ErrLoadInProgress) {
		forceNew := msg.ForceNew
		return s, tea.Tick(LoadRetryDelay, func(time.Time) tea.Msg { return loadRetryMsg{ForceNew: forceNew} })
	}
	s.loading = false
	if msg.Err != nil {
		s.logger.Error("deck load failed",
			slog.String(logging.FieldRunID, s.runID),
			slog.String(logging.FieldBelt, s.belt.ID),
			slog.String(logging.FieldCategory, string(s.category)),
			slog.Any("error", msg.Err),
		)
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.errMsg = ""
	s.nav = msg.Nav
	s.settling = false
	s.closing = false
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Shuffle):
		if s.loading {
			return s, nil
		}
		// Retrying a failed first load keeps the saved session.
		return s, s.loadDeck(s.nav != nil)
	case key.Matches(msg, s.keys.Finish):
		return s, s.finish()
	}

	if s.nav == nil || s.nav.Len() == 0 {
		return s, nil
	}

	ctx := context.Background()
	switch {
	case key.Matches(msg, s.keys.Flip):
		return s, s.flip()

	case key.Matches(msg, s.keys.Turn):
		if s.nav.Cursor().IsFlipped {
			s.nav.FlipBack()
			return s, nil
		}
		return s, s.flip()

	case key.Matches(msg, s.keys.Correct):
		return s, s.mark(ctx, true)

	case key.Matches(msg, s.keys.Wrong):
		return s, s.mark(ctx, false)

	case key.Matches(msg, s.keys.Prev):
		return s, s.afterMove(s.nav.Previous())

	case key.Matches(msg, s.keys.Next):
		outcome, move := s.nav.Skip(ctx)
		if outcome == sess.MarkRecorded {
			s.logAnswer(false)
			return s, s.autoAdvance()
		}
		return s, s.afterMove(move)

	case key.Matches(msg, s.keys.Reset):
		return s, s.afterMove(s.nav.Reset())
	}
	return s, nil
}

func (s *DrillScreen) flip() tea.Cmd {
	if !s.nav.Flip() {
		return nil
	}
	s.settling = true
	s.flipSeq++
	seq := s.flipSeq
	return tea.Tick(FlipSettleDelay, func(time.Time) tea.Msg { return flipSettledMsg{seq: seq} })
}

// mark records an answer while the back is showing and the flip has settled.
func (s *DrillScreen) mark(ctx context.Context, correct bool) tea.Cmd {
	if s.settling || s.nav.Phase() != sess.PhaseBack {
		return nil
	}
	outcome, _ := s.nav.Mark(ctx, correct)
	if outcome != sess.MarkRecorded {
		return nil
	}
	s.logAnswer(correct)
	return s.autoAdvance()
}

func (s *DrillScreen) logAnswer(correct bool) {
	card, _ := s.nav.Current()
	s.logger.Debug("answer recorded",
		slog.String(logging.FieldRunID, s.runID),
		slog.String(logging.FieldCard, card.Front),
		slog.Bool("correct", correct),
	)
}

// afterMove starts the close delay when the card left behind was face up.
func (s *DrillScreen) afterMove(m sess.Move) tea.Cmd {
	if !m.Moved {
		return nil
	}
	s.settling = false
	if !m.WasFlipped {
		s.closing = false
		return nil
	}
	s.closing = true
	return tea.Tick(CardCloseDelay, func(time.Time) tea.Msg { return cardRevealMsg{} })
}

func (s *DrillScreen) finish() tea.Cmd {
	if s.nav == nil {
		return router.PopCmd()
	}
	sum := sess.BuildSummary(s.nav, time.Since(s.started))
	s.logger.Info("drill finished",
		slog.String(logging.FieldRunID, s.runID),
		slog.Int(logging.FieldCount, sum.TotalAnswered),
		slog.Int("correct", sum.TotalCorrect),
		slog.Int64(logging.FieldDuration, sum.Duration.Milliseconds()),
	)
	next := summary.New(sum, s.belt, s.category)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *DrillScreen) autoAdvance() tea.Cmd {
	nav := s.nav
	return tea.Tick(AutoAdvanceDelay, func(time.Time) tea.Msg { return autoAdvanceMsg{nav: nav} })
}
