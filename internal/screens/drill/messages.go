package drill

import (
	"github.com/abhisek/dojocards/internal/deck"
	sess "github.com/abhisek/dojocards/internal/session"
)

// deckLoadedMsg is sent when a deck load finishes. It names the deck it was
// loaded for so a screen can drop results meant for another drill.
type deckLoadedMsg struct {
	BeltID   string
	Category deck.Category
	ForceNew bool
	Nav      *sess.Navigator
	Err      error
}

// loadRetryMsg re-issues a load that was rejected because another one was
// still running.
type loadRetryMsg struct {
	ForceNew bool
}

// autoAdvanceMsg is sent shortly after an answer is recorded. It only moves
// the navigator that scheduled it.
type autoAdvanceMsg struct {
	nav *sess.Navigator
}

// flipSettledMsg ends the pause after a flip during which mark keys are
// ignored. seq identifies the flip that scheduled it.
type flipSettledMsg struct {
	seq int
}

// cardRevealMsg is sent once a card left face up has turned back, so the next
// card's front can be shown.
type cardRevealMsg struct{}
