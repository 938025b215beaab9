package session

import (
	"context"

	"github.com/abhisek/dojocards/internal/deck"
)

// AnswerRecorder receives every answered card.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, front string, correct bool)
}

// SessionSaver persists the cursor and card order of a deck.
type SessionSaver interface {
	Save(ctx context.Context, beltID string, category deck.Category, currentIndex int, fronts []string)
}

// Cursor is the in-memory position within a deck.
type Cursor struct {
	CurrentIndex       int
	IsFlipped          bool
	HasAnsweredCurrent bool
}

// Phase is the state of the current card.
type Phase int

const (
	PhaseFront    Phase = iota // Unflipped, unanswered
	PhaseBack                  // Flipped, unanswered
	PhaseAnswered              // Answered; auto-advance pending
)

// MarkOutcome tells the caller what Mark did.
type MarkOutcome int

const (
	// MarkIgnored means the card was not showing its back; nothing changed.
	MarkIgnored MarkOutcome = iota
	// MarkRecorded means the answer was recorded and the caller should
	// schedule an auto-advance.
	MarkRecorded
	// MarkAdvanced means the card was already answered and Mark moved on
	// instead, as Next does.
	MarkAdvanced
)

// Move describes a cursor change.
type Move struct {
	// Moved is false when the cursor was already at the boundary.
	Moved bool
	// WasFlipped reports the previous card was left showing its back, so the
	// UI should let the card close before showing the new front.
	WasFlipped bool
}

// Navigator drives a learner through one loaded deck. It is not safe for
// concurrent use; all transitions are expected on one event loop.
type Navigator struct {
	beltID   string
	category deck.Category
	cards    []deck.Card
	cursor   Cursor

	recorder AnswerRecorder
	saver    SessionSaver

	run []runAnswer
}

type runAnswer struct {
	front   string
	correct bool
}

// NewNavigator creates a navigator over cards starting at index 0.
func NewNavigator(beltID string, category deck.Category, cards []deck.Card, recorder AnswerRecorder, saver SessionSaver) *Navigator {
	return &Navigator{
		beltID:   beltID,
		category: category,
		cards:    cards,
		recorder: recorder,
		saver:    saver,
	}
}

// BeltID returns the deck's belt.
func (n *Navigator) BeltID() string { return n.beltID }

// Category returns the deck's category.
func (n *Navigator) Category() deck.Category { return n.category }

// Len returns the number of cards.
func (n *Navigator) Len() int { return len(n.cards) }

// Cursor returns a copy of the cursor.
func (n *Navigator) Cursor() Cursor { return n.cursor }

// Cards returns a copy of the deck in study order.
func (n *Navigator) Cards() []deck.Card {
	return append([]deck.Card(nil), n.cards...)
}

// Current returns the card under the cursor. ok is false for an empty deck.
func (n *Navigator) Current() (deck.Card, bool) {
	if len(n.cards) == 0 {
		return deck.Card{}, false
	}
	return n.cards[n.cursor.CurrentIndex], true
}

// Phase returns the state of the current card.
func (n *Navigator) Phase() Phase {
	switch {
	case n.cursor.HasAnsweredCurrent:
		return PhaseAnswered
	case n.cursor.IsFlipped:
		return PhaseBack
	}
	return PhaseFront
}

// Percent is the share of the deck reached, counting the current card.
func (n *Navigator) Percent() float64 {
	if len(n.cards) == 0 {
		return 0
	}
	return float64(n.cursor.CurrentIndex+1) / float64(len(n.cards))
}

// CanPrevious reports whether Previous would move.
func (n *Navigator) CanPrevious() bool {
	return n.cursor.CurrentIndex > 0
}

// CanNext reports whether Next would move.
func (n *Navigator) CanNext() bool {
	return len(n.cards) > 0 && n.cursor.CurrentIndex < len(n.cards)-1
}

// Flip shows the back of the current card. It reports whether the state
// changed; flipping an already flipped card is a no-op.
func (n *Navigator) Flip() bool {
	if n.cursor.IsFlipped || len(n.cards) == 0 {
		return false
	}
	n.cursor.IsFlipped = true
	return true
}

// FlipBack turns the current card face down again. The answered flag is left
// alone, so a later Mark still advances.
func (n *Navigator) FlipBack() bool {
	if !n.cursor.IsFlipped {
		return false
	}
	n.cursor.IsFlipped = false
	return true
}

// Mark records the learner's verdict on the current card. It only records
// while the back is showing and the card is unanswered. Once answered, Mark
// behaves as Next so a second press racing the auto-advance is harmless.
func (n *Navigator) Mark(ctx context.Context, correct bool) (MarkOutcome, Move) {
	if n.cursor.HasAnsweredCurrent {
		return MarkAdvanced, n.Next()
	}
	if !n.cursor.IsFlipped || len(n.cards) == 0 {
		return MarkIgnored, Move{}
	}

	card := &n.cards[n.cursor.CurrentIndex]
	n.recorder.RecordAnswer(ctx, card.Front, correct)
	if correct {
		card.Correct++
	} else {
		card.Wrong++
	}
	n.cursor.HasAnsweredCurrent = true
	n.run = append(n.run, runAnswer{front: card.Front, correct: correct})

	n.saver.Save(ctx, n.beltID, n.category, n.cursor.CurrentIndex, deck.Fronts(n.cards))
	return MarkRecorded, Move{}
}

// Skip moves past the current card. A card showing its unanswered back counts
// as wrong; otherwise Skip is Next.
func (n *Navigator) Skip(ctx context.Context) (MarkOutcome, Move) {
	if n.cursor.IsFlipped && !n.cursor.HasAnsweredCurrent {
		return n.Mark(ctx, false)
	}
	return MarkAdvanced, n.Next()
}

// Next advances one card. It does nothing on the last card.
func (n *Navigator) Next() Move {
	if !n.CanNext() {
		return Move{}
	}
	return n.moveTo(n.cursor.CurrentIndex + 1)
}

// Previous goes back one card. It does nothing on the first card.
func (n *Navigator) Previous() Move {
	if !n.CanPrevious() {
		return Move{}
	}
	return n.moveTo(n.cursor.CurrentIndex - 1)
}

// Reset returns to the first card without reshuffling or saving.
func (n *Navigator) Reset() Move {
	return n.moveTo(0)
}

func (n *Navigator) moveTo(idx int) Move {
	m := Move{Moved: true, WasFlipped: n.cursor.IsFlipped}
	n.cursor = Cursor{CurrentIndex: idx}
	return m
}
